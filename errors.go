package jsonype

import (
	"fmt"
)

// noConverterReason is the standard classification for a value that no
// registered converter handles. Callers rely on this wording to decide
// whether to register a custom converter.
const noConverterReason = "no suitable converter registered, " +
	"use TypedJSON.Append or TypedJSON.Prepend to register one"

// FromJSONConversionError reports a failed JSON-to-object conversion.
// It carries the offending JSON fragment, the target type it should have
// converted to and the [Path] locating the fragment within the top-level
// JSON value handed to [TypedJSON.FromJSON].
type FromJSONConversionError struct {
	// Value is the JSON fragment that failed to convert.
	Value Value
	// Path locates Value within the top-level JSON value.
	Path Path
	// TargetType is the type Value should have converted to.
	TargetType Type
	// Reason optionally explains why the conversion failed.
	Reason string
	// Err optionally holds the underlying cause.
	Err error
}

// NewFromJSONConversionError creates a FromJSONConversionError for the
// given JSON fragment, location, target type and optional reason.
func NewFromJSONConversionError(js Value, path Path, target Type, reason string) *FromJSONConversionError {
	return &FromJSONConversionError{Value: js, Path: path, TargetType: target, Reason: reason}
}

// Error renders the offending value with its Go type, the JSONPath-style
// location and the target type, so pinpointing a failure in a deeply
// nested structure needs no further tooling.
func (e *FromJSONConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %v (type %T) at %s to %s",
		e.Value, e.Value, e.Path, e.TargetType)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *FromJSONConversionError) Unwrap() error { return e.Err }

// ToJSONConversionError reports a failed object-to-JSON conversion,
// carrying the offending value. No path is needed: encoding is driven by
// inspecting the value itself, never by matching it against an
// expectation.
type ToJSONConversionError struct {
	// Value is the object that failed to convert.
	Value any
	// Reason optionally explains why the conversion failed.
	Reason string
	// Err optionally holds the underlying cause.
	Err error
}

// NewToJSONConversionError creates a ToJSONConversionError for the given
// object and optional reason.
func NewToJSONConversionError(o any, reason string) *ToJSONConversionError {
	return &ToJSONConversionError{Value: o, Reason: reason}
}

func (e *ToJSONConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %v (type %T) to JSON", e.Value, e.Value)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *ToJSONConversionError) Unwrap() error { return e.Err }
