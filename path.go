package hxbind

import (
	"fmt"
	"strings"
)

// Record is the nested value tree a Set keeps in sync with its controls.
// Nested records are map[string]any values.
type Record = map[string]any

// Path is the sequence of keys leading from a record's root to a leaf.
//
//	hxbind.Path{"address", "city"}     // record["address"]["city"]
//	hxbind.MustParsePath("address.city")
type Path []string

// ParsePath parses a dotted path such as "address.city".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	p := Path(strings.Split(s, "."))
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// MustParsePath is like ParsePath but panics on error.
// Use it for paths fixed at compile time.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate reports whether p can address a leaf.
func (p Path) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	for i, key := range p {
		if !isValidKey(key) {
			return fmt.Errorf("%w: %q: invalid key %q at segment %d", ErrInvalidPath, p.String(), key, i)
		}
	}
	return nil
}

// String returns the dotted form of p.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Get reads the leaf p addresses in rec. It reports false when an
// intermediate record is missing or the leaf key is absent.
func (p Path) Get(rec Record) (any, bool) {
	parent, ok := p.parent(rec)
	if !ok {
		return nil, false
	}
	v, ok := parent[p[len(p)-1]]
	return v, ok
}

// parent walks rec to the container holding the leaf.
func (p Path) parent(rec Record) (Record, bool) {
	if rec == nil || len(p) == 0 {
		return nil, false
	}
	cur := rec
	for _, key := range p[:len(p)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok || next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// isValidKey accepts letters, digits, '_' and '-'.
func isValidKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
