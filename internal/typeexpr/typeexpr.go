// Package typeexpr parses textual type expressions such as
// "map[str,list[int]]" or "tuple[int,...,str]" into jsonype type
// descriptors. It backs the jsonype command line tool; programs using
// the library directly build descriptors with the jsonype constructors
// or derive them from Go types.
package typeexpr

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/volkerstampa/jsonype"
)

// ErrSyntax reports a malformed type expression.
var ErrSyntax = errors.New("invalid type expression")

// Parse converts a type expression into a jsonype.Type.
//
// Grammar:
//
//	expr     := name | name "[" items "]"
//	items    := item ("," item)*
//	item     := expr | "..." | constant
//
// Names: any, null, bool, int, float, str, bytes, time, duration, uuid,
// url, list[T], map[K,V], tuple[T1,...,Tn], union[T1,...,Tn],
// optional[T] and literal[c1,...,cn] where constants are JSON scalars
// (null, true, false, numbers, double-quoted strings).
func Parse(input string) (jsonype.Type, error) {
	p := &parser{input: input}
	t, err := p.parseType()
	if err != nil {
		return jsonype.Type{}, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return jsonype.Type{}, p.errorf("trailing input %q", p.input[p.pos:])
	}
	return t, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at position %d", ErrSyntax, detail, p.pos)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

func (p *parser) ident() string {
	start := p.pos
	for p.pos < len(p.input) && (isAlphaNum(p.input[p.pos]) || p.input[p.pos] == '_') {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isAlphaNum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func (p *parser) parseType() (jsonype.Type, error) {
	p.skipSpace()
	name := p.ident()
	if name == "" {
		return jsonype.Type{}, p.errorf("expected a type name")
	}
	switch name {
	case "any":
		return jsonype.Any(), nil
	case "null":
		return jsonype.Null(), nil
	case "bool":
		return jsonype.Bool(), nil
	case "int":
		return jsonype.Int(), nil
	case "float":
		return jsonype.Float(), nil
	case "str", "string":
		return jsonype.Str(), nil
	case "bytes":
		return jsonype.TypeFor[[]byte](), nil
	case "time":
		return jsonype.TypeFor[time.Time](), nil
	case "duration":
		return jsonype.TypeFor[time.Duration](), nil
	case "uuid":
		return jsonype.TypeFor[uuid.UUID](), nil
	case "url":
		return jsonype.TypeFor[url.URL](), nil
	case "list":
		args, err := p.parseArgs(name, 1)
		if err != nil {
			return jsonype.Type{}, err
		}
		return jsonype.ListOf(args[0]), nil
	case "map":
		args, err := p.parseArgs(name, 2)
		if err != nil {
			return jsonype.Type{}, err
		}
		return jsonype.MapOf(args[0], args[1]), nil
	case "optional":
		args, err := p.parseArgs(name, 1)
		if err != nil {
			return jsonype.Type{}, err
		}
		return jsonype.UnionOf(jsonype.Null(), args[0]), nil
	case "tuple":
		args, err := p.parseArgs(name, 0)
		if err != nil {
			return jsonype.Type{}, err
		}
		return jsonype.TupleOf(args...), nil
	case "union":
		args, err := p.parseArgs(name, 0)
		if err != nil {
			return jsonype.Type{}, err
		}
		return jsonype.UnionOf(args...), nil
	case "literal":
		return p.parseLiteral()
	}
	return jsonype.Type{}, p.errorf("unknown type name %q", name)
}

// parseArgs parses "[T1,...,Tn]". want is the expected argument count,
// 0 meaning any number including none.
func (p *parser) parseArgs(name string, want int) ([]jsonype.Type, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	var args []jsonype.Type
	p.skipSpace()
	for p.peek() != ']' {
		if len(args) > 0 {
			if err := p.expect(','); err != nil {
				return nil, err
			}
		}
		p.skipSpace()
		if strings.HasPrefix(p.input[p.pos:], "...") {
			p.pos += len("...")
			args = append(args, jsonype.Rest())
		} else {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		p.skipSpace()
	}
	p.pos++ // consume ']'
	if want > 0 && len(args) != want {
		return nil, p.errorf("%s takes %d type parameter(s), got %d", name, want, len(args))
	}
	return args, nil
}

func (p *parser) parseLiteral() (jsonype.Type, error) {
	if err := p.expect('['); err != nil {
		return jsonype.Type{}, err
	}
	var values []jsonype.Value
	p.skipSpace()
	for p.peek() != ']' {
		if len(values) > 0 {
			if err := p.expect(','); err != nil {
				return jsonype.Type{}, err
			}
		}
		v, err := p.parseConstant()
		if err != nil {
			return jsonype.Type{}, err
		}
		values = append(values, v)
		p.skipSpace()
	}
	p.pos++ // consume ']'
	if len(values) == 0 {
		return jsonype.Type{}, p.errorf("literal needs at least one constant")
	}
	return jsonype.LiteralOf(values...), nil
}

func (p *parser) parseConstant() (jsonype.Value, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '"':
		start := p.pos
		p.pos++
		for p.pos < len(p.input) && p.input[p.pos] != '"' {
			if p.input[p.pos] == '\\' {
				// consume the escape pair whole so "a\\" terminates
				p.pos++
			}
			p.pos++
		}
		if p.pos >= len(p.input) {
			return nil, p.errorf("unterminated string")
		}
		p.pos++
		s, err := strconv.Unquote(p.input[start:p.pos])
		if err != nil {
			return nil, p.errorf("malformed string %s", p.input[start:p.pos])
		}
		return s, nil
	case c == '-' || c >= '0' && c <= '9':
		start := p.pos
		for p.pos < len(p.input) && strings.ContainsRune("-+.eE0123456789", rune(p.input[p.pos])) {
			p.pos++
		}
		text := p.input[start:p.pos]
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf("malformed number %q", text)
		}
		return f, nil
	default:
		switch name := p.ident(); name {
		case "null":
			return nil, nil
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, p.errorf("expected a constant, got %q", name)
		}
	}
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return p.errorf("expected %q", string(c))
	}
	p.pos++
	return nil
}
