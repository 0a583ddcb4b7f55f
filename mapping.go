package decor

import (
	"cmp"
	"fmt"
	"iter"
	"reflect"
	"slices"
)

// PresentMap returns a restartable sequence over m's entries with each key
// and each value presented by convention. Entries are yielded in the order
// of the keys' string forms. [With] is rejected because keys and values
// rarely share a presenter type.
func (r *Registry) PresentMap(m any, opts ...PresentOption) (iter.Seq2[any, any], error) {
	o := collect(opts)
	if len(o.with) > 0 {
		return nil, fmt.Errorf("%w: With does not apply to maps", ErrInvalidArgument)
	}
	if isNil(m) {
		return func(func(any, any) bool) {}, nil
	}
	rv := reflect.ValueOf(m)
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("%w: %T is not a map", ErrInvalidArgument, m)
	}

	return func(yield func(any, any) bool) {
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		})
		for _, k := range keys {
			pk := r.presentByConvention(k.Interface(), o)
			pv := r.presentByConvention(rv.MapIndex(k).Interface(), o)
			if !yield(pk, pv) {
				return
			}
		}
	}, nil
}
