package decor

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// OverrideFunc answers an attribute on behalf of the presenter. Its result
// is returned as is; call [Presenter.Format] or [Presenter.Present]
// explicitly to format or present it.
type OverrideFunc func(p *Presenter, args ...any) (any, error)

// Type declares how presenters of one kind behave: format rules, attribute
// markers, overrides and a default context. A Type is immutable once
// [Define] returns it.
type Type struct {
	name        string
	parent      *Type
	rules       RuleSet
	formatted   map[string]struct{}
	presented   map[string]struct{}
	collections map[string]struct{}
	overrides   map[string]OverrideFunc
	context     Context
	hasContext  bool
}

// Option configures a [Type] at definition time.
type Option func(*definition)

type definition struct {
	parent      *Type
	rules       []Rule
	formatted   []string
	presented   []string
	collections []string
	overrides   map[string]OverrideFunc
	context     Context
	hasContext  bool
	errs        []error
}

// Inherit makes the type a child of parent. The child sees every parent
// rule, marker, override and the parent's default context, and may only add
// to them.
func Inherit(parent *Type) Option {
	return func(d *definition) { d.parent = parent }
}

// DefaultContext sets the context used by presenters constructed without an
// explicit one.
func DefaultContext(ctx Context) Option {
	return func(d *definition) {
		d.context = ctx
		d.hasContext = true
	}
}

// Format declares a format rule.
func Format(m Matcher, t Transform) Option {
	return func(d *definition) {
		d.rules = append(d.rules, Rule{Matcher: m, Transform: t})
	}
}

// FormatAll declares one rule per matcher, all sharing t.
func FormatAll(t Transform, matchers ...Matcher) Option {
	return func(d *definition) {
		for _, m := range matchers {
			d.rules = append(d.rules, Rule{Matcher: m, Transform: t})
		}
	}
}

// Formatted marks attributes whose values pass through the format rules.
func Formatted(names ...string) Option {
	return func(d *definition) { d.formatted = append(d.formatted, names...) }
}

// Presented marks attributes whose values are themselves presented.
func Presented(names ...string) Option {
	return func(d *definition) { d.presented = append(d.presented, names...) }
}

// PresentedCollection marks attributes holding sequences whose elements are
// presented one by one.
func PresentedCollection(names ...string) Option {
	return func(d *definition) { d.collections = append(d.collections, names...) }
}

// FormattedAndPresented marks attributes as both formatted and presented.
func FormattedAndPresented(names ...string) Option {
	return func(d *definition) {
		d.formatted = append(d.formatted, names...)
		d.presented = append(d.presented, names...)
	}
}

// Override declares the presenter's own answer for an attribute name. A nil
// fn or a blank name makes [Define] panic.
func Override(name string, fn OverrideFunc) Option {
	return func(d *definition) {
		switch {
		case strings.TrimSpace(name) == "":
			d.errs = append(d.errs, fmt.Errorf("%w: override name is required", ErrInvalidDefinition))
		case fn == nil:
			d.errs = append(d.errs, fmt.Errorf("%w: nil override for %q", ErrInvalidDefinition, name))
		default:
			d.overrides[name] = fn
		}
	}
}

// Define builds a presenter type. The name is the key it is registered
// under, e.g. "UserPresenter" or "Admin.UserPresenter". Define panics with
// an error wrapping [ErrInvalidDefinition] when an option is malformed.
func Define(name string, opts ...Option) *Type {
	d := &definition{overrides: make(map[string]OverrideFunc)}
	for _, opt := range opts {
		opt(d)
	}
	if err := errors.Join(d.errs...); err != nil {
		panic(err)
	}

	t := &Type{
		name:        strings.TrimSpace(name),
		parent:      d.parent,
		formatted:   make(map[string]struct{}),
		presented:   make(map[string]struct{}),
		collections: make(map[string]struct{}),
		overrides:   make(map[string]OverrideFunc),
	}
	if p := d.parent; p != nil {
		t.rules = p.rules.extend(d.rules)
		maps.Copy(t.formatted, p.formatted)
		maps.Copy(t.presented, p.presented)
		maps.Copy(t.collections, p.collections)
		maps.Copy(t.overrides, p.overrides)
		t.context, t.hasContext = p.context, p.hasContext
	} else {
		t.rules = NewRuleSet(d.rules...)
	}
	addAll(t.formatted, d.formatted)
	addAll(t.presented, d.presented)
	addAll(t.collections, d.collections)
	maps.Copy(t.overrides, d.overrides)
	if d.hasContext {
		t.context, t.hasContext = d.context, true
	}
	return t
}

func addAll(set map[string]struct{}, names []string) {
	for _, n := range names {
		set[n] = struct{}{}
	}
}

// Name returns the registered name of the type.
func (t *Type) Name() string { return t.name }

// Parent returns the type t inherits from, or nil.
func (t *Type) Parent() *Type { return t.parent }

// Rules returns the composed rule set: own rules first, then inherited ones.
func (t *Type) Rules() RuleSet { return t.rules }

// DefaultContext returns the declared or inherited default context.
func (t *Type) DefaultContext() (Context, bool) { return t.context, t.hasContext }

// IsFormatted reports whether attribute name is marked formatted.
func (t *Type) IsFormatted(name string) bool { return has(t.formatted, name) }

// IsPresented reports whether attribute name is marked presented.
func (t *Type) IsPresented(name string) bool { return has(t.presented, name) }

// IsPresentedCollection reports whether attribute name is marked as a
// presented collection.
func (t *Type) IsPresentedCollection(name string) bool { return has(t.collections, name) }

// HasOverride reports whether the type or an ancestor overrides name.
func (t *Type) HasOverride(name string) bool {
	_, ok := t.overrides[name]
	return ok
}

// Overrides returns the overridden attribute names in sorted order.
func (t *Type) Overrides() []string {
	return slices.Sorted(maps.Keys(t.overrides))
}

// Is reports whether t is other or descends from it.
func (t *Type) Is(other *Type) bool {
	for cur := t; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

func (t *Type) String() string { return t.name }

func (t *Type) override(name string) (OverrideFunc, bool) {
	fn, ok := t.overrides[name]
	return fn, ok
}

func has(set map[string]struct{}, name string) bool {
	_, ok := set[name]
	return ok
}
