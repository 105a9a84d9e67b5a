// Package jsonype converts between a generic JSON representation and
// typed Go values, in both directions, through an ordered and extensible
// chain of converters.
//
// The JSON representation is the untyped tree produced by encoding/json
// (nil, numbers, strings, bools, []any, map[string]any). [TypedJSON.FromJSON]
// converts such a tree into a value of a target [Type], reporting
// failures with the exact [Path] of the offending fragment.
// [TypedJSON.ToJSON] converts a typed Go value back into the tree.
//
//	tj := jsonype.Default()
//	person, err := jsonype.FromJSONAs[Person](tj, js)
//
// Custom converters are registered with [TypedJSON.Prepend] (overriding
// built-ins) or [TypedJSON.Append] (fallback only); per-type overrides
// bypass the chain entirely via [Type.WithCodec] or [TypedJSON.WithCodec].
package jsonype

import (
	"reflect"
)

// Options configures the default converter set.
type Options struct {
	// Strict makes conversions fail on JSON object keys that are not
	// declared on the target record type.
	Strict bool
	// SnakeCaseKeys maps struct field names without a `json` tag to
	// snake_case object keys instead of using them verbatim.
	SnakeCaseKeys bool
}

// TypedJSON converts JSON values to and from typed Go values.
//
// A TypedJSON is immutable: [TypedJSON.Prepend], [TypedJSON.Append] and
// [TypedJSON.WithCodec] return new instances, so one engine can be
// shared freely between goroutines.
type TypedJSON struct {
	fromJSONConverters []FromJSONConverter
	toJSONConverters   []ToJSONConverter
	codecs             map[reflect.Type]Codec
}

// New creates a TypedJSON using exactly the given converter lists. The
// order is load-bearing: the first converter whose CanConvert accepts a
// value handles it.
func New(fromJSON []FromJSONConverter, toJSON []ToJSONConverter) TypedJSON {
	return TypedJSON{
		fromJSONConverters: copySlice(fromJSON),
		toJSONConverters:   copySlice(toJSON),
	}
}

// Default creates a TypedJSON with the full built-in converter set in
// relaxed mode: unknown JSON object keys on record targets are dropped.
func Default() TypedJSON { return DefaultWith(Options{}) }

// DefaultStrict creates a TypedJSON with the full built-in converter set
// in strict mode: unknown JSON object keys on record targets fail.
func DefaultStrict() TypedJSON { return DefaultWith(Options{Strict: true}) }

// DefaultWith creates a TypedJSON with the full built-in converter set
// configured by opts.
func DefaultWith(opts Options) TypedJSON {
	return New(DefaultConverters(opts))
}

// DefaultConverters returns the built-in converter lists in their
// contractual order.
//
// Decoding: ToAny, ToUnion, ToLiteral, ToNull, ToPointer, the value
// objects (bytes, URL, time, duration, UUID), ToSimple, ToRecord,
// ToStruct, ToTuple, ToList, ToTypedMap, ToMap. Value objects come
// before the shape converters so that e.g. a []byte target is matched by
// its base64 converter and not decoded as a list; records come before
// the generic containers because a record is also representable as a
// mapping but must use field semantics.
//
// Encoding: FromNull, FromPointer, the value objects, FromSimple,
// FromRecord, FromStruct, FromSequence, FromMapping.
func DefaultConverters(opts Options) ([]FromJSONConverter, []ToJSONConverter) {
	var namer FieldNamer = JSONTagNamer
	if opts.SnakeCaseKeys {
		namer = SnakeCaseNamer
	}
	fromJSON := []FromJSONConverter{
		ToAny{},
		ToUnion{},
		ToLiteral{},
		ToNull{},
		ToPointer{},
		ToBytes(),
		ToURL(),
		ToTime(),
		ToDuration(),
		ToUUID(),
		ToSimple{},
		ToRecord{Strict: opts.Strict, Namer: namer},
		ToStruct{Strict: opts.Strict, Namer: namer},
		ToTuple{},
		ToList{},
		ToTypedMap{Strict: opts.Strict},
		ToMap{},
	}
	toJSON := []ToJSONConverter{
		FromNull{},
		FromPointer{},
		FromBytes(),
		FromURL(),
		FromTime(),
		FromDuration(),
		FromUUID(),
		FromSimple{},
		FromRecord{Namer: namer},
		FromStruct{Namer: namer},
		FromSequence{},
		FromMapping{},
	}
	return fromJSON, toJSON
}

// FromJSON converts the given JSON value to an object of the given
// target type. The JSON value is typically produced by decoding a JSON
// document with encoding/json into an untyped interface.
//
// It fails with a [FromJSONConversionError] if no converter accepts a
// fragment or an accepting converter cannot complete the conversion.
func (tj TypedJSON) FromJSON(js Value, target Type) (any, error) {
	return tj.fromJSONWithPath(js, target, Path{})
}

// FromJSONAs converts the given JSON value to a value of the Go type T.
func FromJSONAs[T any](tj TypedJSON, js Value) (T, error) {
	var zero T
	v, err := tj.FromJSON(js, TypeFor[T]())
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return zero, NewFromJSONConversionError(js, Path{}, TypeFor[T](),
			"converter produced an incompatible value")
	}
	return out, nil
}

func (tj TypedJSON) fromJSONWithPath(js Value, target Type, path Path) (any, error) {
	if codec := target.Codec(); codec != nil && codec.Decode != nil {
		return codec.Decode(js, target, path, tj.fromJSONWithPath)
	}
	if rt := target.GoType(); rt != nil {
		if codec, ok := tj.codecs[rt]; ok && codec.Decode != nil {
			return codec.Decode(js, target, path, tj.fromJSONWithPath)
		}
	}
	for _, converter := range tj.fromJSONConverters {
		if converter.CanConvert(js, target) {
			return converter.Convert(js, target, path, tj.fromJSONWithPath)
		}
	}
	return nil, NewFromJSONConversionError(js, path, target, noConverterReason)
}

// ToJSON converts the given object to its JSON representation, which can
// afterwards be serialized with encoding/json.
//
// It fails with a [ToJSONConversionError] if no converter accepts the
// object's runtime type or an accepting converter cannot complete the
// conversion.
func (tj TypedJSON) ToJSON(o any) (Value, error) {
	if o != nil {
		if codec, ok := tj.codecs[reflect.TypeOf(o)]; ok && codec.Encode != nil {
			return codec.Encode(o, tj.ToJSON)
		}
	}
	for _, converter := range tj.toJSONConverters {
		if converter.CanConvert(o) {
			return converter.Convert(o, tj.ToJSON)
		}
	}
	return nil, NewToJSONConversionError(o, noConverterReason)
}

// Prepend returns a new TypedJSON with the given converters placed in
// front of the existing ones. Prepended converters take precedence: if
// one accepts the same values as a built-in, the built-in becomes
// ineffective for those values.
func (tj TypedJSON) Prepend(fromJSON []FromJSONConverter, toJSON []ToJSONConverter) TypedJSON {
	return TypedJSON{
		fromJSONConverters: concatSlices(fromJSON, tj.fromJSONConverters),
		toJSONConverters:   concatSlices(toJSON, tj.toJSONConverters),
		codecs:             tj.codecs,
	}
}

// Append returns a new TypedJSON with the given converters placed after
// the existing ones. Existing converters take precedence; appended ones
// only handle values nothing else accepts.
func (tj TypedJSON) Append(fromJSON []FromJSONConverter, toJSON []ToJSONConverter) TypedJSON {
	return TypedJSON{
		fromJSONConverters: concatSlices(tj.fromJSONConverters, fromJSON),
		toJSONConverters:   concatSlices(tj.toJSONConverters, toJSON),
		codecs:             tj.codecs,
	}
}

// WithCodec returns a new TypedJSON in which values of the given Go type
// are converted by the given codec in both directions, bypassing the
// converter chain. [Type.WithCodec] is the per-descriptor equivalent.
func (tj TypedJSON) WithCodec(rt reflect.Type, codec Codec) TypedJSON {
	codecs := make(map[reflect.Type]Codec, len(tj.codecs)+1)
	for key, c := range tj.codecs {
		codecs[key] = c
	}
	codecs[rt] = codec
	return TypedJSON{
		fromJSONConverters: tj.fromJSONConverters,
		toJSONConverters:   tj.toJSONConverters,
		codecs:             codecs,
	}
}

func copySlice[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func concatSlices[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
