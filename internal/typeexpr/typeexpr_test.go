package typeexpr

import (
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volkerstampa/jsonype"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  jsonype.Type
	}{
		{input: "any", want: jsonype.Any()},
		{input: "null", want: jsonype.Null()},
		{input: "bool", want: jsonype.Bool()},
		{input: "int", want: jsonype.Int()},
		{input: "float", want: jsonype.Float()},
		{input: "str", want: jsonype.Str()},
		{input: "string", want: jsonype.Str()},
		{input: "bytes", want: jsonype.TypeFor[[]byte]()},
		{input: "time", want: jsonype.TypeFor[time.Time]()},
		{input: "duration", want: jsonype.TypeFor[time.Duration]()},
		{input: "uuid", want: jsonype.TypeFor[uuid.UUID]()},
		{input: "url", want: jsonype.TypeFor[url.URL]()},
		{input: "list[int]", want: jsonype.ListOf(jsonype.Int())},
		{input: "map[str,list[int]]", want: jsonype.MapOf(jsonype.Str(), jsonype.ListOf(jsonype.Int()))},
		{input: "optional[str]", want: jsonype.UnionOf(jsonype.Null(), jsonype.Str())},
		{input: "tuple[int,str]", want: jsonype.TupleOf(jsonype.Int(), jsonype.Str())},
		{input: "tuple[int,...,str]", want: jsonype.TupleOf(jsonype.Int(), jsonype.Rest(), jsonype.Str())},
		{input: "tuple[]", want: jsonype.TupleOf()},
		{input: "union[int,str]", want: jsonype.UnionOf(jsonype.Int(), jsonype.Str())},
		{input: `literal["on","off"]`, want: jsonype.LiteralOf("on", "off")},
		{input: "literal[5,-1,2.5]", want: jsonype.LiteralOf(int64(5), int64(-1), 2.5)},
		{input: "literal[null,true,false]", want: jsonype.LiteralOf(nil, true, false)},
		{input: `literal["a\"b"]`, want: jsonype.LiteralOf(`a"b`)},
		{input: `literal["a\\"]`, want: jsonype.LiteralOf(`a\`)},
		{input: " map[ str , int ] ", want: jsonype.MapOf(jsonype.Str(), jsonype.Int())},
		{input: "union[null,map[str,any]]", want: jsonype.UnionOf(jsonype.Null(), jsonype.MapOf(jsonype.Str(), jsonype.Any()))},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "unknown name", input: "integer"},
		{name: "missing bracket", input: "list int]"},
		{name: "unterminated args", input: "list[int"},
		{name: "missing comma", input: "map[str int]"},
		{name: "wrong arity", input: "map[str]"},
		{name: "trailing input", input: "int]"},
		{name: "empty literal", input: "literal[]"},
		{name: "unterminated string", input: `literal["on]`},
		{name: "unterminated string after escape", input: `literal["a\"]`},
		{name: "malformed number", input: "literal[1.2.3]"},
		{name: "bad constant", input: "literal[maybe]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}
