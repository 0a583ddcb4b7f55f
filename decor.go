package decor

import (
	"io"
	"iter"
)

// Default is the registry used by the package-level functions.
var Default = NewRegistry()

// PresentOption configures a single presentation.
type PresentOption func(*presentOptions)

type presentOptions struct {
	with      []any
	namespace []string
	ctx       Context
	then      func(*Presenter)
}

func collect(opts []PresentOption) presentOptions {
	var o presentOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// With overrides convention-based resolution. Pass a *Type to use it as is,
// or name segments: With("admin", "user") resolves "Admin.UserPresenter".
// Non-string segments contribute their runtime type name. A With override
// that does not resolve is an error.
func With(segments ...any) PresentOption {
	return func(o *presentOptions) { o.with = segments }
}

// InNamespace prefixes the looked-up name with namespace segments. Unlike
// [With] it keeps convention semantics: a missing type means passthrough.
func InNamespace(segments ...string) PresentOption {
	return func(o *presentOptions) { o.namespace = segments }
}

// WithContext sets the presenter's context, taking precedence over the
// type's default context. A nil context counts as unset.
func WithContext(ctx Context) PresentOption {
	return func(o *presentOptions) { o.ctx = ctx }
}

// Then registers a callback invoked with every constructed presenter.
func Then(fn func(*Presenter)) PresentOption {
	return func(o *presentOptions) { o.then = fn }
}

// Present wraps object in the presenter type resolved for it. When no type
// resolves and no [With] override was given, object is returned unchanged.
// A [With] override that cannot be resolved returns an error wrapping
// [ErrPresenterNotFound]. An existing *Presenter is returned as is unless
// With is given.
func (r *Registry) Present(object any, opts ...PresentOption) (any, error) {
	return r.presentObject(object, collect(opts))
}

func (r *Registry) presentObject(object any, o presentOptions) (any, error) {
	if len(o.with) == 0 {
		return r.presentByConvention(object, o), nil
	}
	t, err := r.resolve(object, o)
	if err != nil {
		r.logger.Debug().Err(err).Msg("presenter type resolution failed")
		return nil, err
	}
	return r.present(t, object, o), nil
}

// presentByConvention presents object under the type named after it, or
// returns object unchanged when no such type is registered. Any With
// override in o is ignored.
func (r *Registry) presentByConvention(object any, o presentOptions) any {
	if p, ok := object.(*Presenter); ok {
		return p
	}
	o.with = nil
	t, err := r.resolve(object, o)
	if err != nil {
		r.logger.Trace().Err(err).Msg("no presenter type, passing through")
		return object
	}
	return r.present(t, object, o)
}

func (r *Registry) present(t *Type, object any, o presentOptions) *Presenter {
	p := r.construct(t, object, o.ctx)
	if o.then != nil {
		o.then(p)
	}
	return p
}

// Register adds types to the [Default] registry.
func Register(types ...*Type) error { return Default.Register(types...) }

// MustRegister adds types to the [Default] registry and panics on failure.
func MustRegister(types ...*Type) { Default.MustRegister(types...) }

// Present presents object using the [Default] registry.
func Present(object any, opts ...PresentOption) (any, error) {
	return Default.Present(object, opts...)
}

// PresentCollection presents collection using the [Default] registry.
func PresentCollection(collection any, opts ...PresentOption) (*Collection, error) {
	return Default.PresentCollection(collection, opts...)
}

// PresentMap presents a map's keys and values using the [Default] registry.
func PresentMap(m any, opts ...PresentOption) (iter.Seq2[any, any], error) {
	return Default.PresentMap(m, opts...)
}

// Load reads YAML presenter definitions into the [Default] registry.
func Load(rd io.Reader) ([]*Type, error) { return Default.Load(rd) }
