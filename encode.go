package mustache

import (
	"fmt"
	"reflect"
	"strconv"
)

// Encode converts an arbitrary Go value into a Value tree, for callers who
// would rather hand render a native struct/map/slice than build one by
// hand with Map/List/Str. This is strictly a convenience layered on top of
// the core data model described by Value; nothing in the compiler or
// renderer depends on it.
//
// Pointers and interfaces are dereferenced. Structs encode their exported
// fields, keyed by field name, into a Map. Maps with string keys encode the
// same way. Slices and arrays encode to a List. Strings, and values
// implementing the fmt.Stringer interface, encode to Str. Bools encode to
// Bool. Numeric kinds encode to Str via their default formatting. A nil value
// at any level encodes to None(); use Some alongside it for optional fields.
// Any other kind (channels, complex numbers, functions of another shape, maps
// with non-string keys) is an UnsupportedType error.
// Functions matching one of the supported Lambda shapes encode to a
// KindLambda Value.
func Encode(v interface{}) (Value, error) {
	if v == nil {
		return None(), nil
	}
	return encodeReflect(reflect.ValueOf(v))
}

func encodeReflect(v reflect.Value) (Value, error) {
	v = indirectReflect(v)
	if !v.IsValid() {
		return None(), nil
	}

	if lambda, ok := asLambda(v); ok {
		return NewLambda(lambda), nil
	}

	if v.CanInterface() {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return Str(s.String()), nil
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		return Bool(v.Bool()), nil

	case reflect.String:
		return Str(v.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Str(strconv.FormatInt(v.Int(), 10)), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Str(strconv.FormatUint(v.Uint(), 10)), nil

	case reflect.Float32, reflect.Float64:
		return Str(strconv.FormatFloat(v.Float(), 'g', -1, 64)), nil

	case reflect.Slice, reflect.Array:
		items := make([]Value, v.Len())
		for i := range items {
			item, err := encodeReflect(v.Index(i))
			if err != nil {
				return Value{}, err
			}
			items[i] = item
		}
		return ListOf(items), nil

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return Value{}, newError(UnsupportedType, 0, "cannot encode a map with non-string keys")
		}
		bindings := make(map[string]Value, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			val, err := encodeReflect(iter.Value())
			if err != nil {
				return Value{}, err
			}
			bindings[iter.Key().String()] = val
		}
		return Map(bindings), nil

	case reflect.Struct:
		t := v.Type()
		bindings := make(map[string]Value, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.PkgPath != "" {
				continue // unexported
			}
			val, err := encodeReflect(v.Field(i))
			if err != nil {
				return Value{}, err
			}
			bindings[field.Name] = val
		}
		return Map(bindings), nil

	default:
		return Value{}, newError(UnsupportedType, 0, "cannot encode a %s value", v.Kind())
	}
}

func indirectReflect(v reflect.Value) reflect.Value {
	for v.IsValid() {
		switch v.Kind() {
		case reflect.Ptr, reflect.Interface:
			if v.IsNil() {
				return reflect.Value{}
			}
			v = v.Elem()
		default:
			return v
		}
	}
	return v
}

// asLambda recognizes func(string) string, func(string) (string, error), and
// func() string as Lambda-shaped values, adapting each to the Lambda
// signature.
func asLambda(v reflect.Value) (Lambda, bool) {
	if v.Kind() != reflect.Func {
		return nil, false
	}
	t := v.Type()

	switch {
	case t.NumIn() == 1 && t.In(0).Kind() == reflect.String && t.NumOut() == 1 && t.Out(0).Kind() == reflect.String:
		return func(text string) (string, error) {
			out := v.Call([]reflect.Value{reflect.ValueOf(text)})
			return out[0].String(), nil
		}, true

	case t.NumIn() == 1 && t.In(0).Kind() == reflect.String && t.NumOut() == 2 && t.Out(0).Kind() == reflect.String:
		return func(text string) (string, error) {
			out := v.Call([]reflect.Value{reflect.ValueOf(text)})
			if errv := out[1].Interface(); errv != nil {
				return "", errv.(error)
			}
			return out[0].String(), nil
		}, true

	case t.NumIn() == 0 && t.NumOut() == 1 && t.Out(0).Kind() == reflect.String:
		return func(string) (string, error) {
			out := v.Call(nil)
			return out[0].String(), nil
		}, true

	default:
		return nil, false
	}
}
