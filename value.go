package jsonype

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

// Value is a generic type to represent any JSON value: nil, a number
// (int, int64, float64 or json.Number), a string, a bool, an Array or
// an Object.
//
// Values are typically produced by decoding a JSON document with
// encoding/json into an untyped interface, or by [TypedJSON.ToJSON].
type Value = any

// Object represents a JSON object, a map of strings to Values.
type Object = map[string]Value

// Array represents a JSON array, a slice of Values.
type Array = []Value

// asArray reports whether js is a JSON array and returns it as an Array.
// Strings and byte slices are sequences too, but never JSON arrays.
func asArray(js Value) (Array, bool) {
	switch v := js.(type) {
	case Array:
		return v, true
	case nil, string, []byte:
		return nil, false
	}
	rv := reflect.ValueOf(js)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make(Array, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asObject reports whether js is a JSON object and returns it as an Object.
func asObject(js Value) (Object, bool) {
	if m, ok := js.(Object); ok {
		return m, true
	}
	if js == nil {
		return nil, false
	}
	rv := reflect.ValueOf(js)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(Object, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// intValue returns the integral value of a JSON number. Numbers with a
// fractional part do not count as ints.
func intValue(js Value) (int64, bool) {
	switch n := js.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case float32:
		return integralFloat(float64(n))
	case float64:
		return integralFloat(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return integralFloat(f)
		}
	}
	return 0, false
}

// uintValue returns the value of a JSON number as a uint64. Unlike
// intValue it keeps magnitudes above MaxInt64, which the encoder emits
// for large unsigned values.
func uintValue(js Value) (uint64, bool) {
	switch n := js.(type) {
	case uint:
		return uint64(n), true
	case uint64:
		return n, true
	case uintptr:
		return uint64(n), true
	case json.Number:
		if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
			return u, true
		}
	}
	if i, ok := intValue(js); ok && i >= 0 {
		return uint64(i), true
	}
	return 0, false
}

func integralFloat(f float64) (int64, bool) {
	if math.Trunc(f) != f || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// floatValue returns the value of a JSON number as a float64.
func floatValue(js Value) (float64, bool) {
	switch n := js.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	if i, ok := intValue(js); ok {
		return float64(i), true
	}
	return 0, false
}

// literalEqual compares a JSON value against a literal constant. Numbers
// compare by value across representations, so the literal 5 matches 5.0
// and json.Number("5") alike.
func literalEqual(js, lit Value) bool {
	jf, jok := floatValue(js)
	lf, lok := floatValue(lit)
	if jok && lok {
		return jf == lf
	}
	if jok != lok {
		return false
	}
	return reflect.DeepEqual(js, lit)
}
