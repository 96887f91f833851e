package metadata

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetaData_SetGetOrder(t *testing.T) {
	m := New()
	m.Set("b", "2")
	m.Set("a", "1")
	m.Set("b", "20") // update preserves position

	require.Equal(t, []string{"b", "a"}, m.Keys())

	v, ok := m.Get("b")
	require.True(t, ok)
	require.Equal(t, "20", v)

	_, ok = m.Get("missing")
	require.False(t, ok)
}

func TestMetaData_SerializeParseRoundTrip(t *testing.T) {
	m := New()
	m.Set("schema", "Xform_v1")
	m.Set("note", "has;semicolon=and=equals")

	s := m.Serialize()

	parsed, err := Parse(s)
	require.NoError(t, err)
	require.True(t, m.Equal(parsed))
}

func TestMetaData_EmptySerializesEmpty(t *testing.T) {
	m := New()
	require.Equal(t, "", m.Serialize())

	parsed, err := Parse("")
	require.NoError(t, err)
	require.True(t, parsed.IsEmpty())
}

func TestMetaData_Equal(t *testing.T) {
	a := New()
	a.Set("k", "v")
	b := New()
	b.Set("k", "v")
	c := New()
	c.Set("k", "different")

	require.True(t, a.Equal(b))
	require.True(t, a.Matches(b))
	require.False(t, a.Equal(c))
}

func TestTable_AssignEmptyString(t *testing.T) {
	tbl := NewTable()
	idx, inline := tbl.Assign("")
	require.Equal(t, uint8(InlineEmptyIndex), idx)
	require.False(t, inline)
	require.Equal(t, 0, tbl.Len())
}

func TestTable_AssignDedup(t *testing.T) {
	tbl := NewTable()
	i1, inline1 := tbl.Assign("schema=Xform")
	i2, inline2 := tbl.Assign("schema=Xform")

	require.False(t, inline1)
	require.False(t, inline2)
	require.Equal(t, i1, i2, "identical strings must share one table entry")
	require.Equal(t, 1, tbl.Len())
}

func TestTable_FallsBackToInlineWhenFull(t *testing.T) {
	tbl := NewTable()
	for i := 0; i < MaxTableEntries; i++ {
		_, inline := tbl.Assign(fmt.Sprintf("entry-%d", i))
		require.False(t, inline)
	}
	require.Equal(t, MaxTableEntries, tbl.Len())

	_, inline := tbl.Assign("one-too-many")
	require.True(t, inline, "table beyond capacity must fall back to inline")
}

func TestTable_LoadRoundTrip(t *testing.T) {
	tbl := NewTable()
	tbl.Assign("a=1")
	tbl.Assign("b=2")

	loaded := LoadTable(tbl.Entries())
	require.Equal(t, tbl.Entries(), loaded.Entries())

	s, ok := loaded.At(1)
	require.True(t, ok)
	require.Equal(t, "b=2", s)
}
