package decor

import (
	"fmt"
)

// Presenter wraps a target and mediates attribute access to it. It holds no
// mutable state after construction.
type Presenter struct {
	typ    *Type
	target any
	ctx    Context
	reg    *Registry
}

// Type returns the presenter's type.
func (p *Presenter) Type() *Type { return p.typ }

// Target returns the wrapped object.
func (p *Presenter) Target() any { return p.target }

// Context returns the context the presenter was constructed with.
func (p *Presenter) Context() Context { return p.ctx }

// Get resolves attribute name:
//
//  1. conversion names ([IsConversion]) are read from the target as is;
//  2. an override declared on the type answers next, its result unchanged;
//  3. otherwise the target's attribute is read and, when marked, formatted,
//     then presented as a collection or as a single value.
//
// An attribute unknown to both the type and the target yields an
// [*AttributeError].
func (p *Presenter) Get(name string, args ...any) (any, error) {
	if IsConversion(name) {
		return convert(p.target, name, args)
	}
	if fn, ok := p.typ.override(name); ok {
		return fn(p, args...)
	}

	value, err := access(p.target, name, args)
	if err != nil {
		return nil, err
	}

	formatted := p.typ.IsFormatted(name)
	if p.typ.IsPresentedCollection(name) {
		var format func(any) (any, error)
		if formatted {
			format = p.Format
		}
		c, err := p.reg.collection(value, presentOptions{ctx: p.ctx}, nil, format)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	if formatted {
		if value, err = p.Format(value); err != nil {
			return nil, err
		}
	}
	if p.typ.IsPresented(name) {
		return p.Present(value)
	}
	return value, nil
}

// Send reads attribute name straight from the target, skipping overrides,
// format rules and presentation. Overrides use it to get the raw value.
func (p *Presenter) Send(name string, args ...any) (any, error) {
	return access(p.target, name, args)
}

// Format runs value through the type's format rules with the presenter's
// context, then presents the result by convention.
func (p *Presenter) Format(value any) (any, error) {
	out, err := p.typ.rules.Apply(value, p.ctx)
	if err != nil {
		return nil, err
	}
	return p.Present(out)
}

// Present presents value by convention, passing the presenter's context on.
func (p *Presenter) Present(value any) (any, error) {
	return p.reg.Present(value, WithContext(p.ctx))
}

// String returns the target's string conversion.
func (p *Presenter) String() string {
	s, err := convert(p.target, "String", nil)
	if err != nil {
		return fmt.Sprint(p.target)
	}
	return fmt.Sprint(s)
}

// GoString returns the inspection form "<Type(target) context: ctx>".
func (p *Presenter) GoString() string {
	return fmt.Sprintf("<%s(%#v) context: %#v>", p.typ.name, p.target, p.ctx)
}

// GetAs resolves attribute name on p and asserts the result to T.
func GetAs[T any](p *Presenter, name string, args ...any) (T, error) {
	var zero T
	v, err := p.Get(name, args...)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: attribute %q is %T, not %T", ErrInvalidArgument, name, v, zero)
	}
	return out, nil
}
