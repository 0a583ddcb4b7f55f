package decor

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Naming defaults used by [QualifiedName] and [NewRegistry].
const (
	DefaultSeparator = "."
	DefaultSuffix    = "Presenter"
)

// QualifiedName builds the presenter type name for a sequence of segments.
// String segments are converted from snake_case or space separated words to
// PascalCase. Any other segment contributes the name of its runtime type
// unchanged. Segments are joined with [DefaultSeparator] and the result
// carries [DefaultSuffix]:
//
//	QualifiedName("my_test_class")        // "MyTestClassPresenter"
//	QualifiedName("admin", User{})        // "Admin.UserPresenter"
func QualifiedName(segments ...any) string {
	return qualify(segmentNames(segments), DefaultSeparator, DefaultSuffix)
}

func qualify(parts []string, sep, suffix string) string {
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, sep) + suffix
}

func segmentNames(segments []any) []string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		var part string
		if str, ok := s.(string); ok {
			part = pascalCase(str)
		} else {
			part = typeName(s)
		}
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func namespaceNames(segments []string) []string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if part := pascalCase(s); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// pascalCase upper-cases the first rune of each word and lower-cases the
// rest. Only underscores and spaces separate words, so "foo-bar" stays one
// word and becomes "Foo-bar".
func pascalCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || unicode.IsSpace(r)
	})
	upper, lower := cases.Upper(language.Und), cases.Lower(language.Und)
	var sb strings.Builder
	for _, w := range words {
		_, size := utf8.DecodeRuneInString(w)
		sb.WriteString(upper.String(w[:size]))
		sb.WriteString(lower.String(w[size:]))
	}
	return sb.String()
}

// exportName upper-cases the first letter of each snake_case word and keeps
// the rest as written, so "full_name" and "fullName" both become "FullName".
func exportName(s string) string {
	var sb strings.Builder
	for _, w := range strings.Split(s, "_") {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(w[size:])
	}
	return sb.String()
}

// typeName returns the declared name of v's runtime type, looking through
// pointers. Unnamed types yield "".
func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}
