package jsonype

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// ToJSONFunc converts an object into its JSON representation. Converters
// receive one to recurse into nested elements.
type ToJSONFunc func(o any) (Value, error)

// ToJSONConverter converts objects of a specific type into JSON values.
//
// Dispatch is driven purely by inspecting the object's runtime shape; no
// target type is involved. As with decoding, the first converter in the
// engine's ordered list whose CanConvert returns true wins.
type ToJSONConverter interface {
	// CanConvert reports whether this converter can convert the given
	// object into a JSON value.
	CanConvert(o any) bool
	// Convert converts the given object into a JSON value, using toJSON
	// to convert nested elements.
	Convert(o any, toJSON ToJSONFunc) (Value, error)
}

// FromNull converts nil to JSON null. It comes first in the default
// chain so that nil is never misclassified by a shape probe.
type FromNull struct{}

func (FromNull) CanConvert(o any) bool { return o == nil }

func (FromNull) Convert(_ any, _ ToJSONFunc) (Value, error) { return nil, nil }

// FromPointer converts Go pointers: nil pointers become JSON null,
// everything else encodes the pointee.
type FromPointer struct{}

func (FromPointer) CanConvert(o any) bool {
	return o != nil && reflect.TypeOf(o).Kind() == reflect.Pointer
}

func (FromPointer) Convert(o any, toJSON ToJSONFunc) (Value, error) {
	rv := reflect.ValueOf(o)
	if rv.IsNil() {
		return nil, nil
	}
	return toJSON(rv.Elem().Interface())
}

// FromSimple converts booleans, integers, floats and strings, including
// named types with those underlying kinds, which are normalized to their
// plain representation (bool, int64, float64, string).
type FromSimple struct{}

func (FromSimple) CanConvert(o any) bool {
	if o == nil {
		return false
	}
	switch reflect.TypeOf(o).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	}
	return false
}

func (FromSimple) Convert(o any, _ ToJSONFunc) (Value, error) {
	// json.Number is a string under reflection but must stay a number
	if n, ok := o.(json.Number); ok {
		return n, nil
	}
	rv := reflect.ValueOf(o)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > math.MaxInt64 {
			return n, nil
		}
		return int64(n), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	default:
		return rv.String(), nil
	}
}

// FromSequence converts slices and arrays to a JSON array, encoding every
// element with its respective converter. Byte slices never reach this
// converter; [FromBytes] claims them earlier in the chain.
type FromSequence struct{}

func (FromSequence) CanConvert(o any) bool {
	if o == nil {
		return false
	}
	kind := reflect.TypeOf(o).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

func (FromSequence) Convert(o any, toJSON ToJSONFunc) (Value, error) {
	rv := reflect.ValueOf(o)
	out := make(Array, rv.Len())
	for i := range out {
		v, err := toJSON(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// FromMapping converts maps to a JSON object, encoding every value with
// its respective converter. Only string-kind keys can become JSON object
// keys; a map with any other key type fails naming the offending key.
type FromMapping struct{}

func (FromMapping) CanConvert(o any) bool {
	return o != nil && reflect.TypeOf(o).Kind() == reflect.Map
}

func (FromMapping) Convert(o any, toJSON ToJSONFunc) (Value, error) {
	rv := reflect.ValueOf(o)
	out := make(Object, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key()
		if key.Kind() != reflect.String {
			return nil, NewToJSONConversionError(o,
				fmt.Sprintf("contains non-str key: %v", key.Interface()))
		}
		v, err := toJSON(iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		out[key.String()] = v
	}
	return out, nil
}
