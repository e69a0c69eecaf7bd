package placeholder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/tinylru"
)

// A Replacer replaces the placeholders of a template by arguments, each implementation defines the format
// of its placeholders.
type Replacer interface {
	Replace(template string, args ...any) string
}

var (
	_ Replacer = Indexed{}
	_ Replacer = (*CachedIndexed)(nil)
	_ Replacer = Named{}
)

// Indexed replaces {0}, {1}, ... by the argument at the given position. Text between single quotes is
// copied verbatim and '' produces a single quote. A placeholder without matching argument is left unchanged.
type Indexed struct{}

func (Indexed) Replace(template string, args ...any) string {
	return renderIndexed(compileIndexed(template), args)
}

// CachedIndexed is an Indexed replacer that keeps the parsed form of the most recently used templates.
// CachedIndexed is safe for concurrent use.
type CachedIndexed struct {
	templates *tinylru.LRU
}

// NewCachedIndexed creates a CachedIndexed keeping at most size templates, a non-positive size selects
// the default size of the cache.
func NewCachedIndexed(size int) *CachedIndexed {
	c := &CachedIndexed{templates: &tinylru.LRU{}}
	c.templates.Resize(size)
	return c
}

func (c *CachedIndexed) Replace(template string, args ...any) string {
	cached, ok := c.templates.Get(template)
	if !ok {
		cached = compileIndexed(template)
		c.templates.Set(template, cached)
	}
	return renderIndexed(cached.([]indexedPart), args)
}

// an indexedPart is either literal text (index < 0) or a placeholder, text is then the placeholder itself.
type indexedPart struct {
	text  string
	index int
}

func compileIndexed(template string) []indexedPart {
	var (
		parts   []indexedPart
		literal strings.Builder
		quoted  bool
	)

	flush := func() {
		if literal.Len() > 0 {
			parts = append(parts, indexedPart{text: literal.String(), index: -1})
			literal.Reset()
		}
	}

loop:
	for i := 0; i < len(template); i++ {
		c := template[i]

		switch {
		case c == '\'':
			if i+1 < len(template) && template[i+1] == '\'' {
				literal.WriteByte('\'')
				i++
			} else {
				quoted = !quoted
			}
		case c == '{' && !quoted:
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				literal.WriteString(template[i:])
				break loop
			}
			end += i + 1

			index, err := strconv.Atoi(template[i+1 : end])
			if err != nil || index < 0 {
				literal.WriteString(template[i : end+1])
			} else {
				flush()
				parts = append(parts, indexedPart{text: template[i : end+1], index: index})
			}
			i = end
		default:
			literal.WriteByte(c)
		}
	}

	flush()
	return parts
}

func renderIndexed(parts []indexedPart, args []any) string {
	var b strings.Builder

	for _, part := range parts {
		if part.index < 0 || part.index >= len(args) {
			b.WriteString(part.text)
		} else {
			b.WriteString(fmt.Sprint(args[part.index]))
		}
	}
	return b.String()
}

// Named replaces ${name} by the value associated with name, $$ produces a single dollar sign.
// Values passed to Replace as key-value pairs take precedence over Values. A placeholder without
// value is left unchanged.
type Named struct {
	Values map[string]any
}

func (n Named) Replace(template string, args ...any) string {
	values := n.Values
	if len(args) > 0 {
		values = make(map[string]any, len(n.Values)+len(args)/2)
		for k, v := range n.Values {
			values[k] = v
		}
		for i := 0; i+1 < len(args); i += 2 {
			values[fmt.Sprint(args[i])] = args[i+1]
		}
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); i++ {
		c := template[i]

		if c != '$' || i+1 >= len(template) {
			b.WriteByte(c)
			continue
		}

		switch template[i+1] {
		case '$':
			b.WriteByte('$')
			i++
		case '{':
			end := strings.IndexByte(template[i+2:], '}')
			if end < 0 {
				b.WriteString(template[i:])
				return b.String()
			}
			end += i + 2

			value, ok := values[template[i+2:end]]
			if ok {
				b.WriteString(fmt.Sprint(value))
			} else {
				b.WriteString(template[i : end+1])
			}
			i = end
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}
