package decor

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Registry maps qualified names to presenter types. Types are registered at
// initialization and only read afterwards; all methods are safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	types     map[string]*Type
	logger    zerolog.Logger
	separator string
	suffix    string
}

// RegistryOption configures a [Registry].
type RegistryOption func(*Registry)

// WithLogger sets the logger used for registration and resolution events.
// The default discards everything.
func WithLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) { r.logger = logger }
}

// WithSeparator sets the namespace separator used to qualify names.
// Default: [DefaultSeparator].
func WithSeparator(sep string) RegistryOption {
	return func(r *Registry) { r.separator = sep }
}

// WithSuffix sets the suffix appended to qualified names.
// Default: [DefaultSuffix].
func WithSuffix(suffix string) RegistryOption {
	return func(r *Registry) { r.suffix = suffix }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		types:     make(map[string]*Type),
		logger:    zerolog.Nop(),
		separator: DefaultSeparator,
		suffix:    DefaultSuffix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds types under their names. Nothing is registered if any type
// is nil, unnamed or already present.
func (r *Registry) Register(types ...*Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(types))
	for _, t := range types {
		if t == nil {
			return fmt.Errorf("%w: nil presenter type", ErrInvalidArgument)
		}
		if t.name == "" {
			return fmt.Errorf("%w: presenter type name is required", ErrInvalidDefinition)
		}
		if _, exists := r.types[t.name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateType, t.name)
		}
		if _, dup := seen[t.name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateType, t.name)
		}
		seen[t.name] = struct{}{}
	}
	for _, t := range types {
		r.types[t.name] = t
		r.logger.Debug().Str("type", t.name).Int("rules", t.rules.Len()).Msg("presenter type registered")
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(types ...*Type) {
	if err := r.Register(types...); err != nil {
		panic(err)
	}
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.types))
}

// QualifiedName builds a name the way [QualifiedName] does, with the
// registry's separator and suffix.
func (r *Registry) QualifiedName(segments ...any) string {
	return qualify(segmentNames(segments), r.separator, r.suffix)
}

// Resolve determines the presenter type for target. An explicit [With]
// override wins: a *Type is returned directly, name segments are qualified
// and looked up. Without one the leaf name is target's runtime type name,
// prefixed by any [InNamespace] segments. A failed lookup returns a
// [*NotFoundError].
func (r *Registry) Resolve(target any, opts ...PresentOption) (*Type, error) {
	return r.resolve(target, collect(opts))
}

func (r *Registry) resolve(target any, o presentOptions) (*Type, error) {
	if len(o.with) == 1 {
		if t, ok := o.with[0].(*Type); ok {
			if t == nil {
				return nil, fmt.Errorf("%w: nil presenter type", ErrInvalidArgument)
			}
			return t, nil
		}
	}

	parts := namespaceNames(o.namespace)
	if len(o.with) > 0 {
		for _, seg := range o.with {
			if _, ok := seg.(*Type); ok {
				return nil, fmt.Errorf("%w: a presenter type cannot be a name segment", ErrInvalidArgument)
			}
		}
		parts = append(parts, segmentNames(o.with)...)
	} else {
		leaf := typeName(target)
		if leaf == "" {
			return nil, &NotFoundError{}
		}
		parts = append(parts, leaf)
	}

	name := qualify(parts, r.separator, r.suffix)
	t, ok := r.Lookup(name)
	if !ok {
		r.logger.Debug().Str("type", name).Msg("presenter type not registered")
		return nil, &NotFoundError{Name: name}
	}
	r.logger.Debug().Str("type", name).Msg("presenter type resolved")
	return t, nil
}

func (r *Registry) construct(t *Type, target any, ctx Context) *Presenter {
	return &Presenter{
		typ:    t,
		target: target,
		ctx:    resolveContext(ctx, t),
		reg:    r,
	}
}
