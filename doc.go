// Package decor decorates domain objects with presenters.
//
// A presenter wraps a target object and mediates attribute access to it. It
// can answer an attribute itself, reformat the target's value, wrap the value
// in another presenter, or pass it through untouched. The central entry
// points are [Present] and [PresentCollection], which resolve a presenter
// type from a [Registry] and construct presenters around objects.
//
// # Declaring Presenter Types
//
// Types are declared once, at initialization, with [Define] and registered
// under their name:
//
//	var userPresenter = decor.Define("UserPresenter",
//		decor.Format(decor.Exact(nil), decor.Constant("N/A")),
//		decor.Format(decor.Kind[time.Time](), decor.Map(func(v any) any {
//			return v.(time.Time).Format(time.DateOnly)
//		})),
//		decor.Formatted("email", "joined_at"),
//		decor.Presented("manager"),
//		decor.PresentedCollection("reports"),
//	)
//
//	func init() { decor.MustRegister(userPresenter) }
//
// [Inherit] composes a parent type: the child keeps every parent rule,
// marker, override and default context and may only add to them.
//
// # Resolution
//
// Without an override, the presenter type for an object is looked up by the
// object's runtime type name plus the "Presenter" suffix: a User resolves to
// "UserPresenter". [InNamespace] prefixes namespace segments
// ("Admin.UserPresenter"). [With] names the type explicitly, either as a
// *[Type] or as name segments converted to PascalCase:
//
//	decor.Present(u, decor.With("admin", "user_card")) // Admin.UserCardPresenter
//
// An object without a presenter type is returned unchanged. An explicit
// override that does not resolve is an error.
//
// # Attribute Resolution
//
// [Presenter.Get] resolves an attribute name in a fixed order:
//
//   - conversion names ([IsConversion]) read straight from the target
//   - an [Override] declared on the type
//   - the target's own attribute: an [Accessor], a map entry, a method or an
//     exported field
//
// Values from the target are then formatted when the attribute is marked
// [Formatted], and presented when marked [Presented] or [PresentedCollection].
// Formatting happens first; the formatted result is what gets presented.
//
// # Format Rules
//
// A rule pairs a [Matcher] with a [Transform]. Exact matchers win over
// pattern matchers, which win over kind matchers, regardless of declaration
// order. Within each tier the first declared rule wins, own rules before
// inherited ones. Values matching no rule are returned unchanged.
//
// # Context
//
// Every presenter carries a [Context] passed to transforms and overrides: the
// one given with [WithContext], else the type's [DefaultContext], else
// [NullContext].
//
// # Declarative Definitions
//
// [Registry.Load] reads presenter types from YAML. Overrides and custom
// transforms still need Go code; constant values and the built-in string
// transforms can be declared:
//
//	presenters:
//	  - name: UserPresenter
//	    formatted: [email]
//	    formats:
//	      - exact: null
//	        value: "N/A"
//	      - kind: string
//	        truncate: 24
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrPresenterNotFound] — an explicit override names no registered type
//   - [ErrAttributeNotFound] — neither presenter nor target has the attribute
//   - [ErrDuplicateType] — a type name is registered twice
//   - [ErrInvalidDefinition] — malformed type declaration or YAML definition
//   - [ErrInvalidArgument] — bad arguments to a target method or API call
//
// Errors returned by transforms, overrides and target methods are passed
// through unchanged.
package decor
