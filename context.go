package decor

// Context is the auxiliary object handed to format transforms and override
// functions. The package never inspects it.
type Context any

type nullContext struct{}

func (nullContext) String() string   { return "NullContext" }
func (nullContext) GoString() string { return "NullContext" }

// NullContext is the shared context used when neither an explicit nor a
// type-level default context is supplied.
var NullContext Context = nullContext{}

func resolveContext(explicit Context, t *Type) Context {
	if explicit != nil {
		return explicit
	}
	if ctx, ok := t.DefaultContext(); ok {
		return ctx
	}
	return NullContext
}
