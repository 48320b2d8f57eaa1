package model

import (
	"strings"
	"sync"
)

// DocletTag is one `@name value` entry of a documentation comment.
//
// The value may carry whitespace-separated parameters, some of them named
// (`key=value` or `key="quoted value"`). Parameters are split on first
// access and cached.
type DocletTag struct {
	name  string
	value string
	line  int

	once   sync.Once
	params []string
	named  []namedParameter
}

type namedParameter struct {
	key   string
	value string
}

// NewDocletTag creates a tag with the given name and value text.
func NewDocletTag(name, value string) *DocletTag {
	return &DocletTag{name: name, value: value}
}

// NewDocletTagAt creates a tag found on the given source line.
func NewDocletTagAt(name, value string, line int) *DocletTag {
	return &DocletTag{name: name, value: value, line: line}
}

// Name returns the tag name without the leading '@'.
func (t *DocletTag) Name() string {
	return t.name
}

// Value returns the raw value text.
func (t *DocletTag) Value() string {
	return t.value
}

// Line returns the 1-based source line of the tag, or 0 when unknown.
func (t *DocletTag) Line() int {
	return t.line
}

// Parameters returns the whitespace-separated tokens of the value. Quoted
// tokens keep their quotes.
func (t *DocletTag) Parameters() []string {
	t.parse()
	return t.params
}

// NamedParameter returns the value of the first `key=...` parameter, with
// surrounding quotes removed.
func (t *DocletTag) NamedParameter(key string) (string, bool) {
	t.parse()
	for _, p := range t.named {
		if p.key == key {
			return p.value, true
		}
	}
	return "", false
}

// NamedParameterKeys returns the keys of all named parameters in order.
func (t *DocletTag) NamedParameterKeys() []string {
	t.parse()
	keys := make([]string, 0, len(t.named))
	for _, p := range t.named {
		keys = append(keys, p.key)
	}
	return keys
}

func (t *DocletTag) parse() {
	t.once.Do(func() {
		t.params = splitParameters(t.value)
		for _, p := range t.params {
			eq := strings.IndexByte(p, '=')
			if eq <= 0 {
				continue
			}
			t.named = append(t.named, namedParameter{
				key:   p[:eq],
				value: unquote(p[eq+1:]),
			})
		}
	})
}

// splitParameters splits on whitespace outside single or double quotes.
func splitParameters(value string) []string {
	params := []string{}
	var cur strings.Builder
	var quote byte
	inToken := false

	flush := func() {
		if inToken {
			params = append(params, cur.String())
			cur.Reset()
			inToken = false
		}
	}

	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
			inToken = true
			cur.WriteByte(c)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		default:
			inToken = true
			cur.WriteByte(c)
		}
	}
	flush()
	return params
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
