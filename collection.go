package decor

import (
	"fmt"
	"iter"
	"reflect"
	"sync"
)

// Collection is a lazy, restartable presentation of a sequence. Every
// iteration presents each source element again, in source order; nothing is
// cached between iterations.
type Collection struct {
	reg    *Registry
	source iter.Seq[any]
	typ    *Type
	opts   presentOptions
	format func(any) (any, error)

	mu  sync.Mutex
	err error
}

// PresentCollection returns a lazy presentation of collection, which may be
// a slice, an array, an iter.Seq[any] or nil. Each element is resolved on
// its own unless a [With] override is given; that override is resolved once,
// up front, and its failure is returned here.
func (r *Registry) PresentCollection(collection any, opts ...PresentOption) (*Collection, error) {
	o := collect(opts)
	var typ *Type
	if len(o.with) > 0 {
		t, err := r.resolve(nil, o)
		if err != nil {
			return nil, err
		}
		typ = t
	}
	return r.collection(collection, o, typ, nil)
}

func (r *Registry) collection(collection any, o presentOptions, typ *Type, format func(any) (any, error)) (*Collection, error) {
	source, err := sequence(collection)
	if err != nil {
		return nil, err
	}
	return &Collection{reg: r, source: source, typ: typ, opts: o, format: format}, nil
}

func sequence(collection any) (iter.Seq[any], error) {
	if seq, ok := collection.(iter.Seq[any]); ok {
		return seq, nil
	}
	if isNil(collection) {
		return func(func(any) bool) {}, nil
	}
	rv := reflect.ValueOf(collection)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return func(yield func(any) bool) {
			for i := range rv.Len() {
				if !yield(rv.Index(i).Interface()) {
					return
				}
			}
		}, nil
	default:
		return nil, fmt.Errorf("%w: %T is not a sequence", ErrInvalidArgument, collection)
	}
}

func (c *Collection) element(elem any) (any, error) {
	v := elem
	if c.format != nil {
		var err error
		if v, err = c.format(v); err != nil {
			return nil, err
		}
	}
	if c.typ != nil {
		return c.reg.present(c.typ, v, c.opts), nil
	}
	return c.reg.presentObject(v, c.opts)
}

// Len reports the number of source elements without presenting any.
func (c *Collection) Len() int {
	n := 0
	for range c.source {
		n++
	}
	return n
}

// Pairs yields each presented element with its original source element.
// Iteration stops at the first error, which [Collection.Err] then reports.
// Err is shared by all Pairs and All iterations of c; concurrent consumers
// should use [Collection.Each], [Collection.EachPair] or [Collection.Slice],
// which return their own error.
func (c *Collection) Pairs() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		var err error
		defer func() { c.setErr(err) }()
		c.pairs(&err)(yield)
	}
}

func (c *Collection) pairs(errp *error) iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for elem := range c.source {
			p, err := c.element(elem)
			if err != nil {
				*errp = err
				return
			}
			if !yield(p, elem) {
				return
			}
		}
	}
}

// All yields each presented element.
func (c *Collection) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for p := range c.Pairs() {
			if !yield(p) {
				return
			}
		}
	}
}

// Err returns the error that stopped the most recent Pairs or All
// iteration, if any.
func (c *Collection) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Collection) setErr(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

// Each calls fn with every presented element, stopping at the first error.
func (c *Collection) Each(fn func(presented any) error) error {
	return c.EachPair(func(p, _ any) error { return fn(p) })
}

// EachPair calls fn with every presented element and its original.
func (c *Collection) EachPair(fn func(presented, original any) error) error {
	var err error
	for p, elem := range c.pairs(&err) {
		if fnErr := fn(p, elem); fnErr != nil {
			return fnErr
		}
	}
	return err
}

// Slice presents every element into a new slice.
func (c *Collection) Slice() ([]any, error) {
	var out []any
	err := c.Each(func(p any) error {
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
