package decor

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

// Accessor lets a target answer attribute lookups without reflection.
// Returning ok == false falls through to reflective lookup.
type Accessor interface {
	Access(name string, args ...any) (value any, ok bool, err error)
}

var errorType = reflect.TypeFor[error]()

// conversions are read straight from the target, bypassing overrides and
// format rules.
var conversions = map[string]struct{}{
	"String":  {},
	"Int":     {},
	"Int64":   {},
	"Uint64":  {},
	"Float64": {},
	"Bool":    {},
	"Bytes":   {},
}

// IsConversion reports whether name is a conversion attribute. Conversions
// always reflect the wrapped value's own representation.
func IsConversion(name string) bool {
	_, ok := conversions[name]
	return ok
}

// access reads attribute name from target. Lookup order: Accessor, map
// entry, method, exported struct field.
func access(target any, name string, args []any) (any, error) {
	if a, ok := target.(Accessor); ok {
		v, found, err := a.Access(name, args...)
		if err != nil {
			return nil, err
		}
		if found {
			return v, nil
		}
	}
	if isNil(target) {
		return nil, attributeError(target, name)
	}

	names := []string{name}
	if exported := exportName(name); exported != name && exported != "" {
		names = append(names, exported)
	}

	rv := reflect.ValueOf(target)
	if m, ok := findMethod(rv, names); ok {
		return call(m, name, args)
	}

	base := reflect.Indirect(rv)
	switch base.Kind() {
	case reflect.Map:
		if base.Type().Key().Kind() != reflect.String || len(args) > 0 {
			break
		}
		v := base.MapIndex(reflect.ValueOf(name).Convert(base.Type().Key()))
		if v.IsValid() {
			return v.Interface(), nil
		}
	case reflect.Struct:
		if len(args) > 0 {
			break
		}
		for _, n := range names {
			sf, ok := base.Type().FieldByName(n)
			if !ok || !sf.IsExported() {
				continue
			}
			if f, err := base.FieldByIndexErr(sf.Index); err == nil && f.CanInterface() {
				return f.Interface(), nil
			}
		}
	}
	return nil, attributeError(target, name)
}

func findMethod(rv reflect.Value, names []string) (reflect.Value, bool) {
	for _, n := range names {
		if m := rv.MethodByName(n); m.IsValid() {
			return m, true
		}
	}
	if rv.Kind() == reflect.Pointer {
		return reflect.Value{}, false
	}
	// Pointer receivers on a value target: look them up on a copy.
	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	for _, n := range names {
		if m := ptr.MethodByName(n); m.IsValid() {
			return m, true
		}
	}
	return reflect.Value{}, false
}

func call(m reflect.Value, name string, args []any) (any, error) {
	mt := m.Type()
	in, err := callArgs(mt, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArgument, name, err)
	}
	out := m.Call(in)
	if len(out) == 0 {
		return nil, nil
	}
	last := out[len(out)-1]
	if mt.Out(len(out)-1) == errorType {
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
		if len(out) == 1 {
			return nil, nil
		}
	}
	return out[0].Interface(), nil
}

func callArgs(mt reflect.Type, args []any) ([]reflect.Value, error) {
	n := mt.NumIn()
	if mt.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("want at least %d arguments, got %d", n-1, len(args))
		}
	} else if len(args) != n {
		return nil, fmt.Errorf("want %d arguments, got %d", n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if mt.IsVariadic() && i >= n-1 {
			pt = mt.In(n - 1).Elem()
		} else {
			pt = mt.In(i)
		}
		v, err := argValue(arg, pt)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}
	return in, nil
}

func argValue(arg any, pt reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch pt.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
			return reflect.Zero(pt), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not assignable to %s", pt)
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(pt) {
		return v, nil
	}
	if isNumber(v.Kind()) && isNumber(pt.Kind()) {
		return v.Convert(pt), nil
	}
	return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", v.Type(), pt)
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// convert reads a conversion attribute. A target method of the same name
// wins; otherwise the target's native value is converted directly.
func convert(target any, name string, args []any) (any, error) {
	v, err := access(target, name, args)
	if err == nil || !isNotFound(err) {
		return v, err
	}
	if isNil(target) {
		if name == "String" {
			return fmt.Sprint(target), nil
		}
		return nil, err
	}

	rv := reflect.Indirect(reflect.ValueOf(target))
	k := rv.Kind()
	switch name {
	case "String":
		return fmt.Sprint(target), nil
	case "Int", "Int64":
		if !isNumber(k) {
			return nil, err
		}
		i, rerr := toInt64(rv)
		if rerr != nil {
			return nil, rerr
		}
		if name == "Int" {
			return int(i), nil
		}
		return i, nil
	case "Uint64":
		if !isNumber(k) {
			return nil, err
		}
		u, rerr := toUint64(rv)
		if rerr != nil {
			return nil, rerr
		}
		return u, nil
	case "Float64":
		if !isNumber(k) {
			return nil, err
		}
		return rv.Convert(reflect.TypeFor[float64]()).Float(), nil
	case "Bool":
		if k != reflect.Bool {
			return nil, err
		}
		return rv.Bool(), nil
	case "Bytes":
		if s, ok := stringForm(target); ok {
			return []byte(s), nil
		}
	}
	return nil, err
}

func toInt64(rv reflect.Value) (int64, error) {
	switch {
	case rv.CanUint():
		if u := rv.Uint(); u > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", ErrInvalidArgument, u)
		}
	case rv.CanFloat():
		if f := rv.Float(); math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: %v overflows int64", ErrInvalidArgument, f)
		}
	}
	return rv.Convert(reflect.TypeFor[int64]()).Int(), nil
}

func toUint64(rv reflect.Value) (uint64, error) {
	switch {
	case rv.CanInt():
		if i := rv.Int(); i < 0 {
			return 0, fmt.Errorf("%w: negative value %d for uint64", ErrInvalidArgument, i)
		}
	case rv.CanFloat():
		if f := rv.Float(); math.IsNaN(f) || f < 0 || f >= math.MaxUint64 {
			return 0, fmt.Errorf("%w: %v out of range for uint64", ErrInvalidArgument, f)
		}
	}
	return rv.Convert(reflect.TypeFor[uint64]()).Uint(), nil
}

func isNotFound(err error) bool {
	var attrErr *AttributeError
	return errors.As(err, &attrErr)
}
