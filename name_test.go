package decor_test

import (
	"testing"

	"github.com/bjaus/decor"
	"github.com/stretchr/testify/assert"
)

type MyClass struct{}

type Obj struct{}

func TestQualifiedName(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		segments []any
		want     string
	}{
		"object":           {segments: []any{Obj{}}, want: "ObjPresenter"},
		"object pointer":   {segments: []any{&Obj{}}, want: "ObjPresenter"},
		"string":           {segments: []any{"test"}, want: "TestPresenter"},
		"multi word":       {segments: []any{"my_test_class"}, want: "MyTestClassPresenter"},
		"spaced words":     {segments: []any{"my test class"}, want: "MyTestClassPresenter"},
		"lowercases rest":  {segments: []any{"ADMIN"}, want: "AdminPresenter"},
		"hyphen in word":   {segments: []any{"foo-bar_baz"}, want: "Foo-barBazPresenter"},
		"apostrophe":       {segments: []any{"o'neil_x"}, want: "O'neilXPresenter"},
		"digit boundary":   {segments: []any{"v2beta"}, want: "V2betaPresenter"},
		"namespace":        {segments: []any{"my_namespace", MyClass{}}, want: "MyNamespace.MyClassPresenter"},
		"deep namespace":   {segments: []any{"ns1", "my_namespace", "another_thing", MyClass{}}, want: "Ns1.MyNamespace.AnotherThing.MyClassPresenter"},
		"empty segments":   {segments: []any{"", "user"}, want: "UserPresenter"},
		"nothing":          {segments: nil, want: ""},
		"unnamed type":     {segments: []any{[]int{}}, want: ""},
		"builtin verbatim": {segments: []any{42}, want: "intPresenter"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, decor.QualifiedName(tt.segments...))
		})
	}
}
