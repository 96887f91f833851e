package metadata

// InlineEmptyIndex is the reserved index a header stores when its metadata
// serializes to the empty string: "inline empty", never a table lookup.
const InlineEmptyIndex = 0xFF

// MaxTableEntries is the maximum number of distinct non-empty serialized
// metadata strings the table holds before new strings fall back to inline
// storage in the header itself.
const MaxTableEntries = 254

// Table is the archive-level deduplicated table of serialized metadata
// strings referenced by 1-byte indices in object/property headers.
type Table struct {
	entries []string
	index   map[string]uint8
}

// NewTable returns an empty metadata table.
func NewTable() *Table {
	return &Table{index: make(map[string]uint8)}
}

// Assign resolves how a header should reference serialized metadata s:
// as the reserved inline-empty index, as a table index (adding a new
// entry if s is new and the table has room), or inline (table full).
//
// Returns (index, inline). When inline is true, the header must carry the
// serialized string itself; index is meaningless in that case.
func (t *Table) Assign(s string) (index uint8, inline bool) {
	if s == "" {
		return InlineEmptyIndex, false
	}

	if i, ok := t.index[s]; ok {
		return i, false
	}

	if len(t.entries) >= MaxTableEntries {
		return 0, true
	}

	idx := uint8(len(t.entries))
	t.entries = append(t.entries, s)
	t.index[s] = idx

	return idx, false
}

// Len returns the number of distinct entries currently in the table.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns the table's entries in insertion (and therefore index)
// order, as written to the archive trailer.
func (t *Table) Entries() []string {
	out := make([]string, len(t.entries))
	copy(out, t.entries)
	return out
}

// At returns the serialized metadata string stored at index i.
func (t *Table) At(i uint8) (string, bool) {
	if int(i) >= len(t.entries) {
		return "", false
	}
	return t.entries[int(i)], true
}

// LoadTable reconstructs a Table from its on-disk entry order, as read
// back from the archive trailer.
func LoadTable(entries []string) *Table {
	t := NewTable()
	for _, e := range entries {
		t.entries = append(t.entries, e)
		t.index[e] = uint8(len(t.entries) - 1)
	}
	return t
}
