package jsonype

import (
	"reflect"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
)

// Defaulter supplies per-field fallback values for a record type. When a
// declared field is absent from the JSON object, its entry in
// DefaultValues is converted instead; a field is only missing if it is
// absent from both. The values are JSON representations and run through
// the regular conversion, exactly like values read from the document.
type Defaulter interface {
	DefaultValues() map[string]Value
}

var defaulterType = reflect.TypeFor[Defaulter]()

// FieldNamer maps a struct field to its JSON object key. Returning the
// empty string excludes the field from conversion.
type FieldNamer func(field reflect.StructField) string

// JSONTagNamer names fields after their `json` tag, falling back to the
// field name. A `json:"-"` tag excludes the field.
func JSONTagNamer(field reflect.StructField) string {
	return tagName(field, field.Name)
}

// SnakeCaseNamer names fields after their `json` tag, falling back to the
// snake_case form of the field name, so AvatarURL becomes "avatar_url".
func SnakeCaseNamer(field reflect.StructField) string {
	return tagName(field, strcase.ToSnake(field.Name))
}

func tagName(field reflect.StructField, fallback string) string {
	tag, ok := field.Tag.Lookup("json")
	if !ok {
		return fallback
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return ""
	case "":
		return fallback
	}
	return name
}

type structField struct {
	name  string
	typ   Type
	index []int
}

// structFieldsOf lists the convertible fields of a struct type in
// declared order: exported, not excluded by the namer.
func structFieldsOf(rt reflect.Type, namer FieldNamer) []structField {
	if namer == nil {
		namer = JSONTagNamer
	}
	fields := make([]structField, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		name := namer(sf)
		if name == "" {
			continue
		}
		fields = append(fields, structField{name: name, typ: TypeOf(sf.Type), index: sf.Index})
	}
	return fields
}

func implementsDefaulter(rt reflect.Type) bool {
	return rt.Implements(defaulterType) || reflect.PointerTo(rt).Implements(defaulterType)
}

func defaultValuesOf(rt reflect.Type) map[string]Value {
	if rt.Implements(defaulterType) {
		return reflect.New(rt).Elem().Interface().(Defaulter).DefaultValues()
	}
	return reflect.New(rt).Interface().(Defaulter).DefaultValues()
}

// ToStruct converts a JSON object to a Go struct. Every field that is
// neither a pointer nor covered by a default is required; missing
// required fields fail naming the missing key set. In strict mode any
// object key that is not a declared field fails naming the unexpected
// keys; otherwise unknown keys are silently dropped.
type ToStruct struct {
	// Strict rejects object keys that are not declared fields.
	Strict bool
	// Namer maps struct fields to object keys, default [JSONTagNamer].
	Namer FieldNamer
}

func (ToStruct) CanConvert(_ Value, target Type) bool {
	return target.Kind() == KindStruct
}

func (c ToStruct) Convert(js Value, target Type, path Path, fromJSON FromJSONFunc) (any, error) {
	return convertStruct(js, target, path, fromJSON, c.Strict, c.Namer, nil)
}

// ToRecord converts a JSON object to a Go struct implementing
// [Defaulter]. It behaves like [ToStruct] except that a field absent
// from the object falls back to its declared default value, and is only
// missing if present in neither.
type ToRecord struct {
	// Strict rejects object keys that are not declared fields.
	Strict bool
	// Namer maps struct fields to object keys, default [JSONTagNamer].
	Namer FieldNamer
}

func (ToRecord) CanConvert(_ Value, target Type) bool {
	return target.Kind() == KindStruct && implementsDefaulter(target.GoType())
}

func (c ToRecord) Convert(js Value, target Type, path Path, fromJSON FromJSONFunc) (any, error) {
	return convertStruct(js, target, path, fromJSON, c.Strict, c.Namer, defaultValuesOf(target.GoType()))
}

func convertStruct(js Value, target Type, path Path, fromJSON FromJSONFunc,
	strict bool, namer FieldNamer, defaults map[string]Value) (any, error) {
	obj, ok := asObject(js)
	if !ok {
		return nil, NewFromJSONConversionError(js, path, target, "")
	}
	rt := target.GoType()
	fields := structFieldsOf(rt, namer)
	declared := make(map[string]structField, len(fields))
	var missing []string
	for _, f := range fields {
		declared[f.name] = f
		if _, ok := obj[f.name]; ok {
			continue
		}
		if _, ok := defaults[f.name]; ok {
			continue
		}
		if f.typ.Kind() == KindPointer {
			// optional, a nil pointer is its default
			continue
		}
		missing = append(missing, f.name)
	}
	if strict {
		if unknown := undeclaredKeys(obj, declared); len(unknown) > 0 {
			return nil, NewFromJSONConversionError(js, path, target,
				"unexpected keys: "+strings.Join(unknown, ", "))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, NewFromJSONConversionError(js, path, target,
			"missing keys: "+strings.Join(missing, ", "))
	}
	sv := reflect.New(rt).Elem()
	for _, f := range fields {
		raw, present := obj[f.name]
		if !present {
			raw, present = defaults[f.name]
		}
		if !present {
			continue
		}
		v, err := fromJSON(raw, f.typ, path.AppendKey(f.name))
		if err != nil {
			return nil, err
		}
		if v != nil {
			sv.FieldByIndex(f.index).Set(reflect.ValueOf(v))
		}
	}
	return sv.Interface(), nil
}

// FromStruct converts a Go struct to a JSON object with one entry per
// convertible field, each value encoded with its respective converter.
type FromStruct struct {
	// Namer maps struct fields to object keys, default [JSONTagNamer].
	Namer FieldNamer
}

func (FromStruct) CanConvert(o any) bool {
	return o != nil && reflect.TypeOf(o).Kind() == reflect.Struct
}

func (c FromStruct) Convert(o any, toJSON ToJSONFunc) (Value, error) {
	return encodeStruct(o, toJSON, c.Namer)
}

// FromRecord converts Go structs implementing [Defaulter], identically
// to [FromStruct]. It exists so that record types keep their own slot in
// the chain and can be overridden independently.
type FromRecord struct {
	// Namer maps struct fields to object keys, default [JSONTagNamer].
	Namer FieldNamer
}

func (FromRecord) CanConvert(o any) bool {
	if o == nil {
		return false
	}
	rt := reflect.TypeOf(o)
	return rt.Kind() == reflect.Struct && implementsDefaulter(rt)
}

func (c FromRecord) Convert(o any, toJSON ToJSONFunc) (Value, error) {
	return encodeStruct(o, toJSON, c.Namer)
}

func encodeStruct(o any, toJSON ToJSONFunc, namer FieldNamer) (Value, error) {
	rv := reflect.ValueOf(o)
	fields := structFieldsOf(rv.Type(), namer)
	out := make(Object, len(fields))
	for _, f := range fields {
		v, err := toJSON(rv.FieldByIndex(f.index).Interface())
		if err != nil {
			return nil, err
		}
		out[f.name] = v
	}
	return out, nil
}
