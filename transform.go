package decor

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Transform rewrites a matched value. The context may be ignored.
type Transform interface {
	Apply(value any, ctx Context) (any, error)
}

// TransformFunc adapts a function to [Transform].
type TransformFunc func(value any, ctx Context) (any, error)

// Apply calls f.
func (f TransformFunc) Apply(value any, ctx Context) (any, error) { return f(value, ctx) }

// Func returns a transform calling fn with the value and the presenter's
// context. Errors from fn are returned to the caller unchanged.
func Func(fn func(value any, ctx Context) (any, error)) Transform {
	return TransformFunc(fn)
}

// Map returns a transform calling fn with the value only.
func Map(fn func(value any) any) Transform {
	return TransformFunc(func(value any, _ Context) (any, error) {
		return fn(value), nil
	})
}

type constant struct{ v any }

func (c constant) Apply(any, Context) (any, error) { return c.v, nil }

// Constant returns a transform that replaces any value with v.
func Constant(v any) Transform { return constant{v: v} }

type identity struct{}

func (identity) Apply(value any, _ Context) (any, error) { return value, nil }

// Identity returns the value unchanged.
var Identity Transform = identity{}

// --- Built-in string transforms ---
//
// These operate on the value's string form and leave values without one
// untouched.

// Truncate cuts the string form to at most width display columns, marking
// the cut with "..." when width leaves room for it.
func Truncate(width int) Transform {
	return stringTransform(func(s string) string {
		if width <= 0 || runewidth.StringWidth(s) <= width {
			return s
		}
		if width <= 3 {
			return runewidth.Truncate(s, width, "")
		}
		return runewidth.Truncate(s, width, "...")
	})
}

// PadRight pads the string form with spaces to width display columns.
func PadRight(width int) Transform {
	return stringTransform(func(s string) string {
		if pad := width - runewidth.StringWidth(s); pad > 0 {
			return s + strings.Repeat(" ", pad)
		}
		return s
	})
}

// PadLeft right-aligns the string form within width display columns.
func PadLeft(width int) Transform {
	return stringTransform(func(s string) string {
		if pad := width - runewidth.StringWidth(s); pad > 0 {
			return strings.Repeat(" ", pad) + s
		}
		return s
	})
}

// Upper upper-cases the string form.
func Upper() Transform {
	return stringTransform(func(s string) string {
		return cases.Upper(language.Und).String(s)
	})
}

// Lower lower-cases the string form.
func Lower() Transform {
	return stringTransform(func(s string) string {
		return cases.Lower(language.Und).String(s)
	})
}

func stringTransform(fn func(string) string) Transform {
	return TransformFunc(func(value any, _ Context) (any, error) {
		s, ok := stringForm(value)
		if !ok {
			return value, nil
		}
		return fn(s), nil
	})
}
