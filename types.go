package jsonype

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind classifies the shape of a [Type] and drives converter dispatch.
type Kind int

const (
	// KindInvalid marks types no built-in converter can handle, for
	// example channels or non-empty interfaces.
	KindInvalid Kind = iota
	// KindAny matches any JSON value and leaves it unconverted.
	KindAny
	// KindNull matches JSON null only.
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	// KindList is a homogeneous sequence with a single element type.
	KindList
	// KindMap is a string-keyed mapping with a single value type.
	KindMap
	// KindTuple is a fixed-length sequence with per-position element types.
	KindTuple
	// KindRest is the tuple placeholder absorbing any number of extra
	// elements, see [Rest].
	KindRest
	// KindUnion matches the first of its member types that converts.
	KindUnion
	// KindLiteral matches a fixed set of constant values.
	KindLiteral
	// KindPointer is an optional value: JSON null or the element type.
	KindPointer
	// KindStruct is a nominal Go struct with named, typed fields.
	KindStruct
	// KindTypedMap is a mapping with a fixed set of required, individually
	// typed keys, see [TypedMapOf].
	KindTypedMap
)

var kindNames = map[Kind]string{
	KindInvalid:  "invalid",
	KindAny:      "any",
	KindNull:     "null",
	KindBool:     "bool",
	KindInt:      "int",
	KindFloat:    "float",
	KindString:   "str",
	KindList:     "list",
	KindMap:      "map",
	KindTuple:    "tuple",
	KindRest:     "...",
	KindUnion:    "union",
	KindLiteral:  "literal",
	KindPointer:  "pointer",
	KindStruct:   "struct",
	KindTypedMap: "typedmap",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Codec is a custom per-type conversion override. A Type carrying a Codec
// bypasses the converter chain entirely, see [Type.WithCodec] and
// [TypedJSON.WithCodec].
type Codec struct {
	Encode func(o any, toJSON ToJSONFunc) (Value, error)
	Decode func(js Value, target Type, path Path, fromJSON FromJSONFunc) (any, error)
}

// Field declares a named, typed entry of a [TypedMapOf] type.
type Field struct {
	Name string
	Type Type
}

// Type describes a conversion target: its shape ([Kind]), its nominal Go
// identity when derived from a Go type, its type parameters, and an
// optional custom [Codec].
//
// Types are plain values derived deterministically from their inputs.
// Element and field types of reflect-derived Types are computed on demand,
// one level at a time, so self-referential struct types describe fine.
type Type struct {
	kind   Kind
	rtype  reflect.Type
	args   []Type
	lits   []Value
	fields []Field
	codec  *Codec
}

// Any returns the type matching any JSON value.
func Any() Type { return Type{kind: KindAny} }

// Null returns the type matching JSON null only.
func Null() Type { return Type{kind: KindNull} }

// Bool returns the type of JSON booleans, converting to Go bool.
func Bool() Type { return Type{kind: KindBool, rtype: reflect.TypeFor[bool]()} }

// Int returns the type of integral JSON numbers, converting to Go int.
func Int() Type { return Type{kind: KindInt, rtype: reflect.TypeFor[int]()} }

// Float returns the type of JSON numbers, converting to Go float64.
func Float() Type { return Type{kind: KindFloat, rtype: reflect.TypeFor[float64]()} }

// Str returns the type of JSON strings, converting to Go string.
func Str() Type { return Type{kind: KindString, rtype: reflect.TypeFor[string]()} }

// ListOf returns a sequence type whose elements all convert to elem.
// Decoding produces an Array of converted elements.
func ListOf(elem Type) Type { return Type{kind: KindList, args: []Type{elem}} }

// MapOf returns a mapping type with the given key and value types.
// Only string-kind keys are convertible; JSON objects cannot carry
// anything else, so a non-string key type makes every conversion fail.
func MapOf(key, value Type) Type { return Type{kind: KindMap, args: []Type{key, value}} }

// TupleOf returns a fixed-length sequence type with one element type per
// position. At most one position may be [Rest].
func TupleOf(elems ...Type) Type { return Type{kind: KindTuple, args: elems} }

// Rest returns the tuple placeholder that expands to as many [Any] slots
// as needed to absorb extra elements, so TupleOf(Int(), Rest(), Str())
// accepts arrays of length two or more.
func Rest() Type { return Type{kind: KindRest} }

// UnionOf returns a type matching the first member that converts.
// Members are attempted in declared order, except that string-kind
// members are always tried first: a string is also a plausible sequence
// of characters and must not be claimed by a sequence member.
func UnionOf(members ...Type) Type { return Type{kind: KindUnion, args: members} }

// LiteralOf returns a type matching exactly the given constant values.
// Numeric constants match across representations, so 5 matches 5.0.
func LiteralOf(values ...Value) Type { return Type{kind: KindLiteral, lits: values} }

// TypedMapOf returns a mapping type with a fixed set of required,
// individually typed keys. Decoding produces an Object containing the
// declared keys; unknown keys are dropped, or rejected in strict mode.
func TypedMapOf(fields ...Field) Type { return Type{kind: KindTypedMap, fields: fields} }

// TypeFor derives the Type describing the Go type T, see [TypeOf].
func TypeFor[T any]() Type { return TypeOf(reflect.TypeFor[T]()) }

// TypeOf derives the Type describing a Go type: primitives map to their
// matching kinds, slices to lists, arrays to tuples, string-keyed maps to
// mappings, pointers to optionals and structs to records. The nominal
// identity is retained, so decoding rebuilds values of exactly that type.
func TypeOf(rt reflect.Type) Type {
	if rt == nil {
		return Null()
	}
	switch rt.Kind() {
	case reflect.Interface:
		if rt.NumMethod() == 0 {
			return Type{kind: KindAny, rtype: rt}
		}
		return Type{kind: KindInvalid, rtype: rt}
	case reflect.Bool:
		return Type{kind: KindBool, rtype: rt}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Type{kind: KindInt, rtype: rt}
	case reflect.Float32, reflect.Float64:
		return Type{kind: KindFloat, rtype: rt}
	case reflect.String:
		return Type{kind: KindString, rtype: rt}
	case reflect.Slice:
		return Type{kind: KindList, rtype: rt}
	case reflect.Array:
		return Type{kind: KindTuple, rtype: rt}
	case reflect.Map:
		return Type{kind: KindMap, rtype: rt}
	case reflect.Pointer:
		return Type{kind: KindPointer, rtype: rt}
	case reflect.Struct:
		return Type{kind: KindStruct, rtype: rt}
	default:
		return Type{kind: KindInvalid, rtype: rt}
	}
}

// Kind returns the shape of the type.
func (t Type) Kind() Kind { return t.kind }

// GoType returns the nominal Go identity of the type, or nil for purely
// synthetic types such as unions and literals.
func (t Type) GoType() reflect.Type { return t.rtype }

// Elem returns the element type of a list, the value type of a map or the
// pointee type of a pointer, defaulting to [Any] when unparameterized.
func (t Type) Elem() Type {
	switch t.kind {
	case KindList, KindPointer:
		if len(t.args) > 0 {
			return t.args[0]
		}
	case KindMap:
		if len(t.args) > 1 {
			return t.args[1]
		}
	}
	if t.rtype != nil {
		switch t.rtype.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.Pointer:
			return TypeOf(t.rtype.Elem())
		}
	}
	return Any()
}

// Key returns the key type of a map, defaulting to [Str].
func (t Type) Key() Type {
	if t.kind == KindMap {
		if len(t.args) > 0 {
			return t.args[0]
		}
		if t.rtype != nil && t.rtype.Kind() == reflect.Map {
			return TypeOf(t.rtype.Key())
		}
	}
	return Str()
}

// Args returns the type parameters of a tuple or union in declared order.
// For Go array types the element type is repeated once per position.
func (t Type) Args() []Type {
	if len(t.args) > 0 {
		return t.args
	}
	if t.rtype != nil && t.rtype.Kind() == reflect.Array {
		elem := TypeOf(t.rtype.Elem())
		args := make([]Type, t.rtype.Len())
		for i := range args {
			args[i] = elem
		}
		return args
	}
	return nil
}

// Literals returns the constant values of a literal type.
func (t Type) Literals() []Value { return t.lits }

// Fields returns the declared entries of a typed-map type.
func (t Type) Fields() []Field { return t.fields }

// Codec returns the custom conversion override attached to the type,
// or nil.
func (t Type) Codec() *Codec { return t.codec }

// WithCodec returns a copy of the type carrying the given conversion
// override. The engine consults it before the converter chain.
func (t Type) WithCodec(codec Codec) Type {
	t.codec = &codec
	return t
}

// String renders the type for diagnostics, for example "list[str]" or
// the Go type name for reflect-derived types.
func (t Type) String() string {
	switch t.kind {
	case KindAny:
		return "any"
	case KindNull:
		return "null"
	case KindRest:
		return "..."
	case KindUnion:
		return "union[" + joinTypes(t.Args()) + "]"
	case KindLiteral:
		parts := make([]string, len(t.lits))
		for i, lit := range t.lits {
			parts[i] = fmt.Sprintf("%#v", lit)
		}
		return "literal[" + strings.Join(parts, ",") + "]"
	case KindTypedMap:
		parts := make([]string, len(t.fields))
		for i, f := range t.fields {
			parts[i] = f.Name + " " + f.Type.String()
		}
		return "typedmap[" + strings.Join(parts, ",") + "]"
	}
	if t.rtype != nil {
		return t.rtype.String()
	}
	switch t.kind {
	case KindList:
		return "list[" + t.Elem().String() + "]"
	case KindMap:
		return "map[" + t.Key().String() + "," + t.Elem().String() + "]"
	case KindTuple:
		return "tuple[" + joinTypes(t.Args()) + "]"
	}
	return t.kind.String()
}

func joinTypes(types []Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}
