package jsonype

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// FromJSONFunc converts a JSON fragment located at path into the given
// target type. Converters receive one to recurse into nested elements.
type FromJSONFunc func(js Value, target Type, path Path) (any, error)

// FromJSONConverter converts JSON values into objects of a specific type.
//
// The engine walks its ordered converter list and invokes the first one
// whose CanConvert returns true, so the registration order decides which
// converter handles overlapping shapes.
type FromJSONConverter interface {
	// CanConvert reports whether this converter can convert the given
	// JSON value into the given target type.
	CanConvert(js Value, target Type) bool
	// Convert converts the given JSON value into the target type,
	// using fromJSON to convert nested elements. path locates js within
	// the top-level JSON value and must be extended by one step per
	// recursive descent.
	Convert(js Value, target Type, path Path, fromJSON FromJSONFunc) (any, error)
}

// ToAny converts to the target type [Any]. The JSON value is returned
// unchanged.
type ToAny struct{}

func (ToAny) CanConvert(_ Value, target Type) bool { return target.Kind() == KindAny }

func (ToAny) Convert(js Value, _ Type, _ Path, _ FromJSONFunc) (any, error) {
	return js, nil
}

// ToUnion converts to one of the members of a [UnionOf] type.
//
// Members are attempted in declared order and the first successful
// conversion wins, except that string-kind members are always attempted
// first: a string is structurally also a sequence of characters and must
// not be claimed by a sequence member. If every member fails, the error
// lists each attempted member together with its failure.
type ToUnion struct{}

func (ToUnion) CanConvert(_ Value, target Type) bool { return target.Kind() == KindUnion }

func (ToUnion) Convert(js Value, target Type, path Path, fromJSON FromJSONFunc) (any, error) {
	members := target.Args()
	ordered := make([]Type, 0, len(members))
	for _, m := range members {
		if m.Kind() == KindString {
			ordered = append(ordered, m)
		}
	}
	for _, m := range members {
		if m.Kind() != KindString {
			ordered = append(ordered, m)
		}
	}
	if len(ordered) == 0 {
		return nil, NewFromJSONConversionError(js, path, target, "union has no member types")
	}
	failures := make([]string, 0, len(ordered))
	for _, member := range ordered {
		v, err := fromJSON(js, member, path)
		if err == nil {
			return v, nil
		}
		failures = append(failures, fmt.Sprintf("%s: %v", member, err))
	}
	return nil, NewFromJSONConversionError(js, path, target,
		"no union member matched: "+strings.Join(failures, "; "))
}

// ToLiteral converts to a [LiteralOf] type. The JSON value is returned
// unchanged if it equals one of the declared constants.
type ToLiteral struct{}

func (ToLiteral) CanConvert(js Value, target Type) bool {
	if target.Kind() != KindLiteral {
		return false
	}
	for _, lit := range target.Literals() {
		if literalEqual(js, lit) {
			return true
		}
	}
	return false
}

func (ToLiteral) Convert(js Value, _ Type, _ Path, _ FromJSONFunc) (any, error) {
	return js, nil
}

// ToNull converts JSON null to nil for the target type [Null].
type ToNull struct{}

func (ToNull) CanConvert(js Value, target Type) bool {
	return target.Kind() == KindNull && js == nil
}

func (ToNull) Convert(_ Value, _ Type, _ Path, _ FromJSONFunc) (any, error) {
	return nil, nil
}

// ToPointer converts to a Go pointer type: JSON null becomes a nil
// pointer, anything else is converted to the pointee type and its address
// is taken. Pointers are how optional values are expressed in Go, so this
// sits right next to [ToUnion] in the default chain.
type ToPointer struct{}

func (ToPointer) CanConvert(_ Value, target Type) bool { return target.Kind() == KindPointer }

func (ToPointer) Convert(js Value, target Type, path Path, fromJSON FromJSONFunc) (any, error) {
	rt := target.GoType()
	if js == nil {
		if rt == nil {
			return nil, nil
		}
		return reflect.Zero(rt).Interface(), nil
	}
	v, err := fromJSON(js, target.Elem(), path)
	if err != nil {
		return nil, err
	}
	if rt == nil {
		return v, nil
	}
	pv := reflect.New(rt.Elem())
	if v != nil {
		pv.Elem().Set(reflect.ValueOf(v))
	}
	return pv.Interface(), nil
}

// ToSimple converts JSON booleans, numbers and strings to the matching
// simple target type, retaining the target's nominal Go identity, so a
// `type Celsius float64` target yields a Celsius. Numbers only convert
// losslessly: a fractional number never matches an int-kind target.
type ToSimple struct{}

func (ToSimple) CanConvert(js Value, target Type) bool {
	switch target.Kind() {
	case KindBool:
		_, ok := js.(bool)
		return ok
	case KindString:
		_, ok := js.(string)
		return ok
	case KindInt:
		if _, ok := intValue(js); ok {
			return true
		}
		// values above MaxInt64 only carry as uint64
		_, ok := uintValue(js)
		return ok
	case KindFloat:
		_, ok := floatValue(js)
		return ok
	}
	return false
}

func (ToSimple) Convert(js Value, target Type, path Path, _ FromJSONFunc) (any, error) {
	rt := target.GoType()
	rv := reflect.New(rt).Elem()
	switch target.Kind() {
	case KindBool:
		rv.SetBool(js.(bool))
	case KindString:
		rv.SetString(js.(string))
	case KindInt:
		switch rt.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			u, ok := uintValue(js)
			if !ok || rv.OverflowUint(u) {
				return nil, NewFromJSONConversionError(js, path, target, "value out of range")
			}
			rv.SetUint(u)
		default:
			n, ok := intValue(js)
			if !ok || rv.OverflowInt(n) {
				return nil, NewFromJSONConversionError(js, path, target, "value out of range")
			}
			rv.SetInt(n)
		}
	case KindFloat:
		f, _ := floatValue(js)
		rv.SetFloat(f)
	}
	return rv.Interface(), nil
}

// ToTuple converts a JSON array to a fixed-length sequence, converting
// each element at the type declared for its position. The element types
// may contain a single [Rest] which expands to as many [Any] slots as the
// array is longer than the declared positions; more than one Rest is
// ambiguous and not convertible. For Go array targets the result is a
// value of that array type, otherwise an Array.
type ToTuple struct{}

func (ToTuple) CanConvert(js Value, target Type) bool {
	if target.Kind() != KindTuple || restCount(target.Args()) > 1 {
		return false
	}
	_, ok := asArray(js)
	return ok
}

func (ToTuple) Convert(js Value, target Type, path Path, fromJSON FromJSONFunc) (any, error) {
	arr, _ := asArray(js)
	elemTypes := expandRest(target.Args(), len(arr))
	if len(arr) != len(elemTypes) {
		return nil, NewFromJSONConversionError(js, path, target,
			fmt.Sprintf("number of elements: %d not equal to tuple-size %d", len(arr), len(elemTypes)))
	}
	elems := make(Array, len(arr))
	for i, e := range arr {
		v, err := fromJSON(e, elemTypes[i], path.AppendIndex(i))
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	rt := target.GoType()
	if rt == nil || rt.Kind() != reflect.Array {
		return elems, nil
	}
	av := reflect.New(rt).Elem()
	for i, e := range elems {
		if e != nil {
			av.Index(i).Set(reflect.ValueOf(e))
		}
	}
	return av.Interface(), nil
}

func restCount(types []Type) int {
	n := 0
	for _, t := range types {
		if t.Kind() == KindRest {
			n++
		}
	}
	return n
}

func expandRest(types []Type, wantLen int) []Type {
	if restCount(types) == 0 {
		return types
	}
	expanded := make([]Type, 0, wantLen)
	for _, t := range types {
		if t.Kind() != KindRest {
			expanded = append(expanded, t)
			continue
		}
		for i := 0; i < wantLen-len(types)+1; i++ {
			expanded = append(expanded, Any())
		}
	}
	return expanded
}

// ToList converts a JSON array to a homogeneous sequence, converting
// every element at the list's element type ([Any] if unparameterized).
// Go slice targets yield a slice of that type, synthetic [ListOf] targets
// yield an Array.
type ToList struct{}

func (ToList) CanConvert(js Value, target Type) bool {
	if target.Kind() != KindList {
		return false
	}
	_, ok := asArray(js)
	return ok
}

func (ToList) Convert(js Value, target Type, path Path, fromJSON FromJSONFunc) (any, error) {
	arr, _ := asArray(js)
	elemType := target.Elem()
	elems := make(Array, len(arr))
	for i, e := range arr {
		v, err := fromJSON(e, elemType, path.AppendIndex(i))
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	rt := target.GoType()
	if rt == nil || rt.Kind() != reflect.Slice {
		return elems, nil
	}
	sv := reflect.MakeSlice(rt, len(elems), len(elems))
	for i, e := range elems {
		if e != nil {
			sv.Index(i).Set(reflect.ValueOf(e))
		}
	}
	return sv.Interface(), nil
}

// ToTypedMap converts a JSON object to a mapping with the fixed key set
// of a [TypedMapOf] type. All declared keys are required; missing ones
// fail naming the missing set. Unknown keys are dropped, or rejected by
// name when Strict is set.
type ToTypedMap struct {
	Strict bool
}

func (ToTypedMap) CanConvert(js Value, target Type) bool {
	if target.Kind() != KindTypedMap {
		return false
	}
	_, ok := asObject(js)
	return ok
}

func (c ToTypedMap) Convert(js Value, target Type, path Path, fromJSON FromJSONFunc) (any, error) {
	obj, _ := asObject(js)
	declared := make(map[string]Type, len(target.Fields()))
	var missing []string
	for _, f := range target.Fields() {
		declared[f.Name] = f.Type
		if _, ok := obj[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, NewFromJSONConversionError(js, path, target,
			"required keys missing: "+strings.Join(missing, ", "))
	}
	if c.Strict {
		if unknown := undeclaredKeys(obj, declared); len(unknown) > 0 {
			return nil, NewFromJSONConversionError(js, path, target,
				"unknown keys: "+strings.Join(unknown, ", "))
		}
	}
	out := make(Object, len(declared))
	for name, fieldType := range declared {
		v, err := fromJSON(obj[name], fieldType, path.AppendKey(name))
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

func undeclaredKeys[T any](obj Object, declared map[string]T) []string {
	var unknown []string
	for key := range obj {
		if _, ok := declared[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// ToMap converts a JSON object to a string-keyed mapping, converting
// every value at the map's value type ([Any] if unparameterized). Maps
// with a non-string key type are not convertible at all: JSON objects
// only have string keys, so such a target fails with the standard
// no-converter error rather than coercing keys silently.
type ToMap struct{}

func (ToMap) CanConvert(js Value, target Type) bool {
	if target.Kind() != KindMap || target.Key().Kind() != KindString {
		return false
	}
	_, ok := asObject(js)
	return ok
}

func (ToMap) Convert(js Value, target Type, path Path, fromJSON FromJSONFunc) (any, error) {
	obj, _ := asObject(js)
	valueType := target.Elem()
	rt := target.GoType()
	if rt == nil || rt.Kind() != reflect.Map {
		out := make(Object, len(obj))
		for key, value := range obj {
			v, err := fromJSON(value, valueType, path.AppendKey(key))
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil
	}
	mv := reflect.MakeMapWithSize(rt, len(obj))
	for key, value := range obj {
		v, err := fromJSON(value, valueType, path.AppendKey(key))
		if err != nil {
			return nil, err
		}
		kv := reflect.ValueOf(key).Convert(rt.Key())
		if v == nil {
			mv.SetMapIndex(kv, reflect.Zero(rt.Elem()))
		} else {
			mv.SetMapIndex(kv, reflect.ValueOf(v))
		}
	}
	return mv.Interface(), nil
}
