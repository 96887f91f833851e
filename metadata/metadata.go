// Package metadata implements the ordered key/value metadata map attached
// to object and property headers, its `;`-separated URL-escaped wire
// serialization, and the archive-level deduplicated metadata string table.
package metadata

import (
	"net/url"
	"strings"
)

// pair is one ordered key/value entry.
type pair struct {
	key   string
	value string
}

// MetaData is an insertion-ordered string/string map. Order is preserved on
// both Set and Serialize so headers round-trip byte-for-byte.
type MetaData struct {
	pairs []pair
	index map[string]int // key -> position in pairs
}

// New returns an empty MetaData map.
func New() *MetaData {
	return &MetaData{index: make(map[string]int)}
}

// Set inserts or updates key. Updating an existing key preserves its
// original position.
func (m *MetaData) Set(key, value string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}

	if i, ok := m.index[key]; ok {
		m.pairs[i].value = value
		return
	}

	m.index[key] = len(m.pairs)
	m.pairs = append(m.pairs, pair{key: key, value: value})
}

// Get returns key's value and whether it is present.
func (m *MetaData) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	i, ok := m.index[key]
	if !ok {
		return "", false
	}

	return m.pairs[i].value, true
}

// Len returns the number of entries.
func (m *MetaData) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// IsEmpty reports whether the map has no entries.
func (m *MetaData) IsEmpty() bool { return m.Len() == 0 }

// Keys returns the keys in insertion order.
func (m *MetaData) Keys() []string {
	keys := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.key
	}
	return keys
}

// Serialize renders the map as `;`-separated `k=v` pairs with keys and
// values URL-escaped so that literal `;` and `=` bytes never appear
// unescaped in the wire form.
func (m *MetaData) Serialize() string {
	if m.IsEmpty() {
		return ""
	}

	parts := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		parts[i] = url.QueryEscape(p.key) + "=" + url.QueryEscape(p.value)
	}

	return strings.Join(parts, ";")
}

// Parse decodes a Serialize-produced string back into a MetaData map. An
// empty string parses to an empty map.
func Parse(s string) (*MetaData, error) {
	m := New()
	if s == "" {
		return m, nil
	}

	for _, part := range strings.Split(s, ";") {
		if part == "" {
			continue
		}

		eq := strings.IndexByte(part, '=')
		if eq < 0 {
			key, err := url.QueryUnescape(part)
			if err != nil {
				return nil, err
			}
			m.Set(key, "")
			continue
		}

		key, err := url.QueryUnescape(part[:eq])
		if err != nil {
			return nil, err
		}
		value, err := url.QueryUnescape(part[eq+1:])
		if err != nil {
			return nil, err
		}

		m.Set(key, value)
	}

	return m, nil
}

// Equal reports whether m and other hold the same key/value pairs in the
// same order. This is also the structural "matches" comparison used for
// header metadata; there is no looser notion of equality for metadata.
func (m *MetaData) Equal(other *MetaData) bool {
	if m == nil || other == nil {
		return m.Len() == other.Len()
	}
	if m.Len() != other.Len() {
		return false
	}

	for i, p := range m.pairs {
		if other.pairs[i] != p {
			return false
		}
	}

	return true
}

// Matches is an alias for Equal, named for parity with the reference
// implementation's API surface.
func (m *MetaData) Matches(other *MetaData) bool { return m.Equal(other) }
