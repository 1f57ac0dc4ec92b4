package canonform

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"time"
)

// FromNative builds a Value from plain Go data, such as the output of
// encoding/json or of a previous conversion. nil and nil pointers become null;
// there is no Go counterpart of undefined other than Undefined() itself.
func FromNative(v any) (Value, error) {
	return fromNative(reflect.ValueOf(v), rootPath)
}

func fromNative(rv reflect.Value, path string) (Value, error) {
	if !rv.IsValid() {
		return Null(), nil
	}

	switch val := rv.Interface().(type) {
	case Value:
		return val, nil
	case time.Time:
		return Date(val), nil
	case *regexp.Regexp:
		if val == nil {
			return Null(), nil
		}
		return Regex(val.String()), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", path, err)
		}
		return Number(f), nil
	}

	switch rv.Kind() {
	case reflect.String:
		return Str(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.Func:
		if rv.IsNil() {
			return Null(), nil
		}
		return Func(rv.Type().String()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return fromNative(rv.Elem(), path)
	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		return fromNativeSeq(rv, path)
	case reflect.Array:
		return fromNativeSeq(rv, path)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, errUnsupportedNative(rv, path)
		}
		if rv.IsNil() {
			return Null(), nil
		}
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			el, err := fromNative(iter.Value(), keyPath(path, k))
			if err != nil {
				return Value{}, err
			}
			m[k] = el
		}
		return Map(m), nil
	default:
		return Value{}, errUnsupportedNative(rv, path)
	}
}

func fromNativeSeq(rv reflect.Value, path string) (Value, error) {
	vs := make([]Value, rv.Len())
	for i := range vs {
		el, err := fromNative(rv.Index(i), indexPath(path, i))
		if err != nil {
			return Value{}, err
		}
		vs[i] = el
	}
	return Seq(vs...), nil
}

func errUnsupportedNative(rv reflect.Value, path string) *ConversionError {
	return NewConversionError(CodeUnsupportedType, TagUndefined, path,
		fmt.Sprintf("cannot import Go value of type %s", rv.Type()))
}
