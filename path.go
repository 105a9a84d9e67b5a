package jsonype

import (
	"strconv"
	"strings"
)

type pathStep struct {
	key   string
	index int
	isKey bool
}

// Path locates an element in a nested JSON structure as a sequence of
// object-key and array-index steps. The zero value denotes the root.
//
// A Path is immutable: [Path.AppendKey] and [Path.AppendIndex] return a
// new Path and never modify the receiver, so paths handed to recursive
// conversions of sibling elements cannot interfere with each other.
//
// The string representation follows the ideas of JSONPath
// (https://goessner.net/articles/JsonPath/).
type Path struct {
	steps []pathStep
}

// AppendKey returns a new Path with an object-key step appended.
func (p Path) AppendKey(key string) Path {
	return p.append(pathStep{key: key, isKey: true})
}

// AppendIndex returns a new Path with an array-index step appended.
func (p Path) AppendIndex(index int) Path {
	return p.append(pathStep{index: index})
}

func (p Path) append(step pathStep) Path {
	steps := make([]pathStep, len(p.steps)+1)
	copy(steps, p.steps)
	steps[len(p.steps)] = step
	return Path{steps: steps}
}

// Equal reports whether both paths consist of the same steps.
func (p Path) Equal(other Path) bool {
	if len(p.steps) != len(other.steps) {
		return false
	}
	for i, step := range p.steps {
		if step != other.steps[i] {
			return false
		}
	}
	return true
}

// String renders the path JSONPath-style: `$` for the root, `.key` for
// object keys and `[idx]` for array indices, for example `$.a[0].b`.
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, step := range p.steps {
		if step.isKey {
			b.WriteByte('.')
			b.WriteString(step.key)
		} else {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(step.index))
			b.WriteByte(']')
		}
	}
	return b.String()
}
