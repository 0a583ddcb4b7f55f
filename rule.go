package decor

import (
	"fmt"
	"reflect"
	"regexp"
)

type tier int

const (
	tierExact tier = iota
	tierPattern
	tierKind
)

var tiers = []tier{tierExact, tierPattern, tierKind}

// Matcher selects the values a format rule applies to. Build one with
// [Exact], [Pattern], [MustPattern], [Kind] or [KindOf].
type Matcher struct {
	tier    tier
	literal any
	re      *regexp.Regexp
	kind    reflect.Type
}

// Exact matches values equal to v. The value's dynamic type must equal v's.
// Exact(nil) matches nil, including typed nil pointers, maps and slices.
func Exact(v any) Matcher {
	return Matcher{tier: tierExact, literal: v}
}

// Pattern matches values whose string form matches re. Strings, byte slices,
// string-kinded types and [fmt.Stringer] values have a string form; other
// values never match.
func Pattern(re *regexp.Regexp) Matcher {
	return Matcher{tier: tierPattern, re: re}
}

// MustPattern compiles expr and returns a [Pattern] matcher. It panics if
// expr is invalid.
func MustPattern(expr string) Matcher {
	return Pattern(regexp.MustCompile(expr))
}

// Kind matches values assignable to T. When T is an interface, any value
// implementing it matches.
func Kind[T any]() Matcher {
	return KindOf(reflect.TypeFor[T]())
}

// KindOf is the non-generic form of [Kind].
func KindOf(t reflect.Type) Matcher {
	return Matcher{tier: tierKind, kind: t}
}

// Match reports whether value satisfies the matcher.
func (m Matcher) Match(value any) bool {
	switch m.tier {
	case tierExact:
		return equalLiteral(m.literal, value)
	case tierPattern:
		if m.re == nil {
			return false
		}
		s, ok := stringForm(value)
		return ok && m.re.MatchString(s)
	case tierKind:
		if m.kind == nil || value == nil {
			return false
		}
		return reflect.TypeOf(value).AssignableTo(m.kind)
	default:
		return false
	}
}

func (m Matcher) String() string {
	switch m.tier {
	case tierExact:
		return fmt.Sprintf("exact(%#v)", m.literal)
	case tierPattern:
		if m.re == nil {
			return "pattern()"
		}
		return fmt.Sprintf("pattern(/%s/)", m.re)
	default:
		return fmt.Sprintf("kind(%v)", m.kind)
	}
}

func equalLiteral(literal, value any) bool {
	if literal == nil {
		return isNil(value)
	}
	if value == nil || reflect.TypeOf(literal) != reflect.TypeOf(value) {
		return false
	}
	return reflect.DeepEqual(literal, value)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func stringForm(v any) (string, bool) {
	if isNil(v) {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case fmt.Stringer:
		return s.String(), true
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// Rule pairs a matcher with the transform applied to matching values.
type Rule struct {
	Matcher   Matcher
	Transform Transform
}

// RuleSet is an ordered, immutable list of format rules. A presenter type's
// set holds its own rules followed by every inherited rule.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet returns a set holding rules in the given order.
func NewRuleSet(rules ...Rule) RuleSet {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return RuleSet{rules: out}
}

// Len returns the number of rules, inherited ones included.
func (s RuleSet) Len() int { return len(s.rules) }

// Rules returns a copy of the rules in lookup order.
func (s RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// extend returns a set with own rules ahead of the receiver's rules.
func (s RuleSet) extend(own []Rule) RuleSet {
	out := make([]Rule, 0, len(own)+len(s.rules))
	out = append(out, own...)
	out = append(out, s.rules...)
	return RuleSet{rules: out}
}

// Resolve picks the transform for value. Exact matchers are tried first,
// then patterns, then kinds; within a tier the first matching rule wins.
// Without a match it returns [Identity].
func (s RuleSet) Resolve(value any) Transform {
	for _, t := range tiers {
		for _, r := range s.rules {
			if r.Matcher.tier == t && r.Matcher.Match(value) {
				if r.Transform == nil {
					return Identity
				}
				return r.Transform
			}
		}
	}
	return Identity
}

// Apply resolves the transform for value and runs it with ctx.
func (s RuleSet) Apply(value any, ctx Context) (any, error) {
	return s.Resolve(value).Apply(value, ctx)
}
