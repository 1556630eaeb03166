package tags

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Group maps sub keys to values for one main key.
type Group = orderedmap.OrderedMap[string, string]

// Nested is the two-level form of a Map: main key -> sub key -> value.
type Nested = orderedmap.OrderedMap[string, *Group]

// Prefix maps keys that start with Prefix to the main key Main.
type Prefix struct {
	Prefix string
	Main   string
}

// PrefixTable is an ordered list of known key prefixes.
// The first matching entry wins.
type PrefixTable []Prefix

// Match finds the first prefix that key starts with and returns the main
// key and the remainder of key.
func (t PrefixTable) Match(key string) (main, sub string, ok bool) {
	for _, p := range t {
		if strings.HasPrefix(key, p.Prefix) {
			return p.Main, key[len(p.Prefix):], true
		}
	}
	return "", "", false
}

// Split splits a flat key into main and sub key.
// Keys containing delim are split at the first occurrence,
// other keys are matched against the prefix table.
func Split(key, delim string, prefixes PrefixTable) (main, sub string, ok bool) {
	if delim != "" {
		if idx := strings.Index(key, delim); idx >= 0 {
			return key[:idx], key[idx+len(delim):], true
		}
	}
	return prefixes.Match(key)
}

// Nest regroups a flat Map into a two-level map, e.g. "PAGE_WIDTH" with
// delimiter "_" becomes PAGE -> WIDTH.
//
// Keys with more than one value cannot be placed unambiguously and are
// skipped, as are keys that match neither the delimiter nor a prefix.
// When two keys end up as the same pair, the later value wins.
func Nest(flat *Map, delim string, prefixes PrefixTable) *Nested {
	out := orderedmap.New[string, *Group]()
	if flat == nil {
		return out
	}

	for p := flat.Oldest(); p != nil; p = p.Next() {
		// Multi-valued keys are dropped here; this may lose data
		// for fields that legitimately repeat.
		if len(p.Value) != 1 {
			continue
		}

		main, sub, ok := Split(p.Key, delim, prefixes)
		if !ok {
			continue
		}

		g, present := out.Get(main)
		if !present {
			g = orderedmap.New[string, string]()
			out.Set(main, g)
		}
		g.Set(sub, p.Value[0])
	}

	return out
}

// Lookup returns the value for main and sub key.
func Lookup(n *Nested, main, sub string) (string, bool) {
	if n == nil {
		return "", false
	}
	g, ok := n.Get(main)
	if !ok {
		return "", false
	}
	return g.Get(sub)
}

// GroupOf returns the group for main, or an empty group.
func GroupOf(n *Nested, main string) *Group {
	if n != nil {
		if g, ok := n.Get(main); ok {
			return g
		}
	}
	return orderedmap.New[string, string]()
}
