package jsonype

import (
	"fmt"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stringToFloat parses JSON strings into float targets, something the
// built-in chain deliberately refuses.
type stringToFloat struct{}

func (stringToFloat) CanConvert(js Value, target Type) bool {
	_, ok := js.(string)
	return ok && target.Kind() == KindFloat
}

func (stringToFloat) Convert(js Value, target Type, path Path, _ FromJSONFunc) (any, error) {
	f, err := strconv.ParseFloat(js.(string), 64)
	if err != nil {
		return nil, NewFromJSONConversionError(js, path, target, err.Error())
	}
	return f, nil
}

// intAsString encodes ints as decimal strings, shadowing FromSimple.
type intAsString struct{}

func (intAsString) CanConvert(o any) bool {
	_, ok := o.(int)
	return ok
}

func (intAsString) Convert(o any, _ ToJSONFunc) (Value, error) {
	return strconv.Itoa(o.(int)), nil
}

func TestAppendHandlesWhatTheChainRefuses(t *testing.T) {
	tj := Default().Append([]FromJSONConverter{stringToFloat{}}, nil)

	t.Run("extension applies", func(t *testing.T) {
		got, err := tj.FromJSON("1.5", Float())
		require.NoError(t, err)
		assert.Equal(t, 1.5, got)
	})

	t.Run("built-ins still win on their values", func(t *testing.T) {
		got, err := tj.FromJSON("1.5", Str())
		require.NoError(t, err)
		assert.Equal(t, "1.5", got)
	})

	t.Run("original engine is unaffected", func(t *testing.T) {
		_, err := Default().FromJSON("1.5", Float())
		decodeError(t, err)
	})
}

func TestPrependOverridesBuiltIns(t *testing.T) {
	tj := Default().Prepend(nil, []ToJSONConverter{intAsString{}})

	got, err := tj.ToJSON(5)

	require.NoError(t, err)
	assert.Equal(t, "5", got)
}

func TestAppendAfterBuiltInsIsIneffectiveForCoveredValues(t *testing.T) {
	tj := Default().Append(nil, []ToJSONConverter{intAsString{}})

	got, err := tj.ToJSON(5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), got)
}

func TestEmptyExtensionIsANoOp(t *testing.T) {
	tj := Default()
	extended := tj.Append(nil, nil).Prepend(nil, nil)

	got, err := extended.FromJSON("x", Str())

	require.NoError(t, err)
	assert.Equal(t, "x", got)
}

type temperature struct {
	Celsius float64
}

var temperatureCodec = Codec{
	Encode: func(o any, _ ToJSONFunc) (Value, error) {
		return fmt.Sprintf("%g°C", o.(temperature).Celsius), nil
	},
	Decode: func(js Value, target Type, path Path, _ FromJSONFunc) (any, error) {
		s, ok := js.(string)
		if !ok {
			return nil, NewFromJSONConversionError(js, path, target, "expected a string")
		}
		var c float64
		if _, err := fmt.Sscanf(s, "%g°C", &c); err != nil {
			return nil, NewFromJSONConversionError(js, path, target, err.Error())
		}
		return temperature{Celsius: c}, nil
	},
}

func TestEngineCodecBypassesTheChain(t *testing.T) {
	tj := Default().WithCodec(reflect.TypeFor[temperature](), temperatureCodec)

	t.Run("encode", func(t *testing.T) {
		got, err := tj.ToJSON(temperature{Celsius: 21.5})
		require.NoError(t, err)
		assert.Equal(t, "21.5°C", got)
	})

	t.Run("decode", func(t *testing.T) {
		got, err := FromJSONAs[temperature](tj, "21.5°C")
		require.NoError(t, err)
		assert.Equal(t, temperature{Celsius: 21.5}, got)
	})

	t.Run("decode inside a struct field", func(t *testing.T) {
		type reading struct {
			Temp temperature `json:"temp"`
		}
		got, err := FromJSONAs[reading](tj, Object{"temp": "3°C"})
		require.NoError(t, err)
		assert.Equal(t, reading{Temp: temperature{Celsius: 3}}, got)
	})

	t.Run("original engine is unaffected", func(t *testing.T) {
		got, err := Default().ToJSON(temperature{Celsius: 21.5})
		require.NoError(t, err)
		assert.Equal(t, Object{"Celsius": 21.5}, got)
	})
}

func TestDescriptorCodecBypassesTheChain(t *testing.T) {
	tj := Default()
	target := TypeFor[temperature]().WithCodec(temperatureCodec)

	got, err := tj.FromJSON("21.5°C", target)

	require.NoError(t, err)
	assert.Equal(t, temperature{Celsius: 21.5}, got)
}

func TestFromJSONAsTypeMismatch(t *testing.T) {
	// stringToFloat produces a plain float64 even for float32 targets.
	tj := New([]FromJSONConverter{stringToFloat{}}, nil)

	_, err := FromJSONAs[float32](tj, "1.5")

	convErr := decodeError(t, err)
	assert.Contains(t, convErr.Reason, "incompatible value")
}

func TestNewCopiesConverterLists(t *testing.T) {
	fromJSON := []FromJSONConverter{ToAny{}}
	tj := New(fromJSON, nil)
	fromJSON[0] = nil

	got, err := tj.FromJSON(5, Any())

	require.NoError(t, err)
	assert.Equal(t, 5, got)
}
