package jsonype

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeError(t *testing.T, err error) *ToJSONConversionError {
	t.Helper()
	var convErr *ToJSONConversionError
	require.ErrorAs(t, err, &convErr)
	return convErr
}

func TestToJSONSimple(t *testing.T) {
	tj := Default()

	tests := []struct {
		name string
		in   any
		want Value
	}{
		{name: "string", in: "hello", want: "hello"},
		{name: "bool", in: true, want: true},
		{name: "int", in: 5, want: int64(5)},
		{name: "negative int", in: -5, want: int64(-5)},
		{name: "int8", in: int8(5), want: int64(5)},
		{name: "uint", in: uint(5), want: int64(5)},
		{name: "large uint keeps its value", in: uint64(1 << 63), want: uint64(1 << 63)},
		{name: "float", in: 1.5, want: 1.5},
		{name: "float32", in: float32(0.5), want: 0.5},
		{name: "named type", in: celsius(21.5), want: 21.5},
		{name: "json number passthrough", in: json.Number("5"), want: json.Number("5")},
		{name: "nil", in: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tj.ToJSON(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToJSONSequence(t *testing.T) {
	tj := Default()

	t.Run("slice", func(t *testing.T) {
		got, err := tj.ToJSON([]string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, Array{"a", "b"}, got)
	})

	t.Run("array", func(t *testing.T) {
		got, err := tj.ToJSON([2]int{1, 2})
		require.NoError(t, err)
		assert.Equal(t, Array{int64(1), int64(2)}, got)
	})

	t.Run("nested", func(t *testing.T) {
		got, err := tj.ToJSON([][]bool{{true}, {}})
		require.NoError(t, err)
		assert.Equal(t, Array{Array{true}, Array{}}, got)
	})

	t.Run("element error propagates", func(t *testing.T) {
		_, err := tj.ToJSON([]any{func() {}})
		encodeError(t, err)
	})
}

func TestToJSONMapping(t *testing.T) {
	tj := Default()

	t.Run("string keys", func(t *testing.T) {
		got, err := tj.ToJSON(map[string]int{"a": 1, "b": 2})
		require.NoError(t, err)
		assert.Equal(t, Object{"a": int64(1), "b": int64(2)}, got)
	})

	t.Run("named string keys", func(t *testing.T) {
		type key string
		got, err := tj.ToJSON(map[key]bool{"on": true})
		require.NoError(t, err)
		assert.Equal(t, Object{"on": true}, got)
	})

	t.Run("non-string key fails", func(t *testing.T) {
		_, err := tj.ToJSON(map[int]int{1: 1})
		convErr := encodeError(t, err)
		assert.Contains(t, convErr.Reason, "contains non-str key")
	})

	t.Run("value error propagates", func(t *testing.T) {
		_, err := tj.ToJSON(map[string]any{"f": func() {}})
		encodeError(t, err)
	})
}

func TestToJSONPointer(t *testing.T) {
	tj := Default()

	t.Run("dereferences", func(t *testing.T) {
		n := 5
		got, err := tj.ToJSON(&n)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got)
	})

	t.Run("nil pointer becomes null", func(t *testing.T) {
		var n *int
		got, err := tj.ToJSON(n)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestToJSONUnsupportedType(t *testing.T) {
	tj := Default()

	_, err := tj.ToJSON(make(chan int))

	convErr := encodeError(t, err)
	assert.Contains(t, convErr.Reason, "no suitable converter registered")
}
