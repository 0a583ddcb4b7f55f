package decor

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Visible string
	hidden  string
}

func (s *sample) Describe(prefix string, extra ...int) string {
	return prefix + s.Visible + string(rune('0'+len(extra)))
}

func (s sample) Scale(f float64) float64 { return f * 2 }

func TestExportName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "FullName", exportName("full_name"))
	assert.Equal(t, "FullName", exportName("fullName"))
	assert.Equal(t, "ID", exportName("ID"))
	assert.Equal(t, "A", exportName("__a"))
	assert.Equal(t, "", exportName(""))
}

func TestPascalCase(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "MySym", pascalCase("my_sym"))
	assert.Equal(t, "AnotherThing", pascalCase("  another   thing "))
	assert.Equal(t, "", pascalCase("__"))
	assert.Equal(t, "Foo-bar", pascalCase("foo-bar"))
	assert.Equal(t, "ÉcoleNormale", pascalCase("ÉCOLE_normale"))
}

func TestTypeName(t *testing.T) {
	t.Parallel()
	s := &sample{}
	assert.Equal(t, "sample", typeName(s))
	assert.Equal(t, "sample", typeName(&s))
	assert.Equal(t, "", typeName(nil))
	assert.Equal(t, "", typeName(map[string]int{}))
}

func TestIsNil(t *testing.T) {
	t.Parallel()
	var p *sample
	var m map[string]int
	var f func()
	assert.True(t, isNil(nil))
	assert.True(t, isNil(p))
	assert.True(t, isNil(m))
	assert.True(t, isNil(f))
	assert.False(t, isNil(0))
	assert.False(t, isNil(""))
	assert.False(t, isNil(&sample{}))
}

func TestStringForm(t *testing.T) {
	t.Parallel()
	type name string
	s, ok := stringForm(name("x"))
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = stringForm(3.5)
	assert.False(t, ok)

	var st *stringerPtr
	_, ok = stringForm(st)
	assert.False(t, ok, "nil stringer must not be called")
}

type stringerPtr struct{}

func (*stringerPtr) String() string { return "ptr" }

func TestAccessPointerReceiverOnValue(t *testing.T) {
	t.Parallel()
	got, err := access(sample{Visible: "v"}, "Describe", []any{"p:", 1, 2})
	require.NoError(t, err)
	assert.Equal(t, "p:v2", got)

	got, err = access(sample{}, "describe", []any{"p:"})
	require.NoError(t, err)
	assert.Equal(t, "p:0", got)
}

func TestAccessConvertsNumericArgs(t *testing.T) {
	t.Parallel()
	got, err := access(sample{}, "Scale", []any{3})
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)

	_, err = access(sample{}, "Describe", []any{nil})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAccessUnexportedField(t *testing.T) {
	t.Parallel()
	_, err := access(sample{hidden: "h"}, "hidden", nil)
	assert.ErrorIs(t, err, ErrAttributeNotFound)

	_, err = access((*sample)(nil), "Visible", nil)
	assert.ErrorIs(t, err, ErrAttributeNotFound)
}

func TestArgValue(t *testing.T) {
	t.Parallel()
	v, err := argValue(nil, reflect.TypeFor[[]int]())
	require.NoError(t, err)
	assert.True(t, v.IsNil())

	v, err = argValue(int8(4), reflect.TypeFor[int64]())
	require.NoError(t, err)
	assert.Equal(t, int64(4), v.Interface())

	_, err = argValue("x", reflect.TypeFor[int]())
	assert.Error(t, err)
}

func TestConvertFallbacks(t *testing.T) {
	t.Parallel()
	got, err := convert(nil, "String", nil)
	require.NoError(t, err)
	assert.Equal(t, "<nil>", got)

	got, err = convert("abc", "Bytes", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	_, err = convert(nil, "Int", nil)
	assert.ErrorIs(t, err, ErrAttributeNotFound)

	_, err = convert(sample{}, "Float64", nil)
	assert.ErrorIs(t, err, ErrAttributeNotFound)

	got, err = convert(uint8(200), "Int64", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(200), got)

	_, err = convert(int8(-3), "Uint64", nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = convert(uint(1<<63), "Int", nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = convert(1e20, "Int64", nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPresentByConventionNeverFails(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	require.NoError(t, r.Register(Define("samplePresenter"), Define("Admin.samplePresenter")))
	o := presentOptions{with: []any{"missing"}}

	got := r.presentByConvention(sample{Visible: "x"}, o)
	p, ok := got.(*Presenter)
	require.True(t, ok)
	assert.Equal(t, "samplePresenter", p.Type().Name())

	o.namespace = []string{"admin"}
	p, ok = r.presentByConvention(sample{}, o).(*Presenter)
	require.True(t, ok)
	assert.Equal(t, "Admin.samplePresenter", p.Type().Name())

	assert.Equal(t, 42, r.presentByConvention(42, o))
	assert.Nil(t, r.presentByConvention(nil, o))
	assert.Same(t, p, r.presentByConvention(p, o))
	assert.Equal(t, []any{"missing"}, o.with)
}

func TestRuleSetExtendOrder(t *testing.T) {
	t.Parallel()
	parent := NewRuleSet(Rule{Matcher: Exact(1), Transform: Constant("parent")})
	child := parent.extend([]Rule{{Matcher: Exact(1), Transform: Constant("child")}})
	got, err := child.Apply(1, nil)
	require.NoError(t, err)
	assert.Equal(t, "child", got)
	assert.Equal(t, 1, parent.Len())
}
