// Package tags extracts the <key:value> metadata tags embedded in
// Supernote blocks.
package tags

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/akeil/sntool/internal/errors"
	"github.com/akeil/sntool/pkg/block"
)

var tagRe = regexp.MustCompile(`<([^:<>]+):([^:<>]+)>`)

// Map holds the values for each tag key in the order the keys were first
// seen. Repeated keys collect all their values in encounter order.
type Map = orderedmap.OrderedMap[string, []string]

// NewMap creates an empty Map.
func NewMap() *Map {
	return orderedmap.New[string, []string]()
}

// Extract scans text for tags.
// Text between tags that does not match the tag syntax is ignored.
func Extract(text string) *Map {
	m := NewMap()
	for _, match := range tagRe.FindAllStringSubmatch(text, -1) {
		key, value := match[1], match[2]
		values, _ := m.Get(key)
		m.Set(key, append(values, value))
	}
	return m
}

// Parse reads the block at address and extracts its tags.
//
// An empty Map is returned for address 0.
// If the block is not valid UTF-8 text, an encoding error is returned.
func Parse(r *block.Reader, address uint64) (*Map, error) {
	content, err := r.Content(address)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return NewMap(), nil
	}

	if !utf8.Valid(content) {
		return nil, errors.NewEncodingError(address, errInvalidUTF8)
	}

	return Extract(string(content)), nil
}

var errInvalidUTF8 = invalidUTF8{}

type invalidUTF8 struct{}

func (invalidUTF8) Error() string {
	return "invalid UTF-8"
}

// Fields is a read-only view on a Map that applies defaults for missing
// tags.
type Fields struct {
	m *Map
}

// Of creates a Fields view for m. A nil Map behaves like an empty one.
func Of(m *Map) Fields {
	return Fields{m}
}

// All returns every value for key.
func (f Fields) All(key string) []string {
	if f.m == nil {
		return nil
	}
	v, _ := f.m.Get(key)
	return v
}

// Has tells if key occurs at least once.
func (f Fields) Has(key string) bool {
	return len(f.All(key)) > 0
}

// String returns the first value for key or an empty string.
func (f Fields) String(key string) string {
	return f.StringOr(key, "")
}

// StringOr returns the first value for key or def if key is missing.
func (f Fields) StringOr(key, def string) string {
	v := f.All(key)
	if len(v) == 0 {
		return def
	}
	return v[0]
}

// Uint returns the first value for key as an unsigned integer.
// Missing or non-numeric values yield 0.
func (f Fields) Uint(key string) uint64 {
	n, err := strconv.ParseUint(f.String(key), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Flatten returns the first value for each key, in key order.
func (f Fields) Flatten() *orderedmap.OrderedMap[string, string] {
	out := orderedmap.New[string, string]()
	if f.m == nil {
		return out
	}
	for p := f.m.Oldest(); p != nil; p = p.Next() {
		if len(p.Value) > 0 {
			out.Set(p.Key, p.Value[0])
		}
	}
	return out
}
