package jsonype

import (
	"encoding/base64"
	"net/url"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Simple constrains the JSON-side type of a function-based converter to
// the simple JSON values: booleans, numbers and strings.
type Simple interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		~string
}

// ToValueObject wraps a unary function into a [FromJSONConverter]: it
// converts when the JSON value is an In and the target is exactly the Go
// type Out, by invoking f. An error from f is reported as a
// path-annotated conversion error carrying f's message as the reason.
//
// The built-in byte-slice, URL, timestamp, duration and UUID converters
// are all instances of this pattern.
func ToValueObject[In Simple, Out any](f func(In) (Out, error)) FromJSONConverter {
	return functionFromJSON[In, Out]{f: f}
}

type functionFromJSON[In Simple, Out any] struct {
	f func(In) (Out, error)
}

func (c functionFromJSON[In, Out]) CanConvert(js Value, target Type) bool {
	if _, ok := js.(In); !ok {
		return false
	}
	return target.GoType() == reflect.TypeFor[Out]()
}

func (c functionFromJSON[In, Out]) Convert(js Value, target Type, path Path, _ FromJSONFunc) (any, error) {
	out, err := c.f(js.(In))
	if err != nil {
		return nil, &FromJSONConversionError{
			Value: js, Path: path, TargetType: target, Reason: err.Error(), Err: err,
		}
	}
	return out, nil
}

// FromValueObject wraps a unary function into a [ToJSONConverter]: it
// converts values of type In by invoking f, which must produce a simple
// JSON value. An error from f is reported as a conversion error carrying
// f's message as the reason.
func FromValueObject[In any, Out Simple](f func(In) (Out, error)) ToJSONConverter {
	return functionToJSON[In, Out]{f: f}
}

type functionToJSON[In any, Out Simple] struct {
	f func(In) (Out, error)
}

func (c functionToJSON[In, Out]) CanConvert(o any) bool {
	_, ok := o.(In)
	return ok
}

func (c functionToJSON[In, Out]) Convert(o any, _ ToJSONFunc) (Value, error) {
	out, err := c.f(o.(In))
	if err != nil {
		return nil, &ToJSONConversionError{Value: o, Reason: err.Error(), Err: err}
	}
	return out, nil
}

// ToBytes returns a converter that converts a base64 JSON string to a
// byte slice.
func ToBytes() FromJSONConverter {
	return ToValueObject(func(s string) ([]byte, error) {
		return base64.StdEncoding.DecodeString(s)
	})
}

// FromBytes returns a converter that converts a byte slice to a base64
// JSON string.
func FromBytes() ToJSONConverter {
	return FromValueObject(func(bs []byte) (string, error) {
		return base64.StdEncoding.EncodeToString(bs), nil
	})
}

// ToURL returns a converter that parses a JSON string into a [url.URL].
// Pointer targets work through the pointer converter.
func ToURL() FromJSONConverter {
	return ToValueObject(func(s string) (url.URL, error) {
		u, err := url.Parse(s)
		if err != nil {
			return url.URL{}, err
		}
		return *u, nil
	})
}

// FromURL returns a converter that converts a [url.URL] to its string
// form.
func FromURL() ToJSONConverter {
	return FromValueObject(func(u url.URL) (string, error) {
		return u.String(), nil
	})
}

// ToTime returns a converter that parses an RFC 3339 JSON string into a
// [time.Time].
func ToTime() FromJSONConverter {
	return ToValueObject(func(s string) (time.Time, error) {
		return time.Parse(time.RFC3339Nano, s)
	})
}

// FromTime returns a converter that converts a [time.Time] to an
// RFC 3339 JSON string.
func FromTime() ToJSONConverter {
	return FromValueObject(func(t time.Time) (string, error) {
		return t.Format(time.RFC3339Nano), nil
	})
}

// ToDuration returns a converter that parses a JSON string such as
// "1h30m" into a [time.Duration].
func ToDuration() FromJSONConverter {
	return ToValueObject(func(s string) (time.Duration, error) {
		return time.ParseDuration(s)
	})
}

// FromDuration returns a converter that converts a [time.Duration] to
// its string form.
func FromDuration() ToJSONConverter {
	return FromValueObject(func(d time.Duration) (string, error) {
		return d.String(), nil
	})
}

// ToUUID returns a converter that parses a JSON string in the canonical
// 8-4-4-4-12 format into a [uuid.UUID].
func ToUUID() FromJSONConverter {
	return ToValueObject(func(s string) (uuid.UUID, error) {
		return uuid.Parse(s)
	})
}

// FromUUID returns a converter that converts a [uuid.UUID] to its
// canonical string form.
func FromUUID() ToJSONConverter {
	return FromValueObject(func(u uuid.UUID) (string, error) {
		return u.String(), nil
	})
}
