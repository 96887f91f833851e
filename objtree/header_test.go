package objtree

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ogawa-go/ogawa/format"
	"github.com/ogawa-go/ogawa/metadata"
)

func TestObjectHeader_RoundTrip(t *testing.T) {
	table := metadata.NewTable()

	md := metadata.New()
	md.Set("kind", "mesh")

	h := ObjectHeader{Name: "geom1", MetaData: md}
	buf := h.encode(table)

	decoded, err := decodeObjectHeader(buf, table)
	require.NoError(t, err)
	require.Equal(t, "geom1", decoded.Name)
	v, ok := decoded.MetaData.Get("kind")
	require.True(t, ok)
	require.Equal(t, "mesh", v)
}

func TestObjectHeader_EmptyMetaDataRoundTrip(t *testing.T) {
	table := metadata.NewTable()

	h := ObjectHeader{Name: "root", MetaData: metadata.New()}
	buf := h.encode(table)

	decoded, err := decodeObjectHeader(buf, table)
	require.NoError(t, err)
	require.True(t, decoded.MetaData.IsEmpty())
}

func TestPropertyHeader_ScalarRoundTrip(t *testing.T) {
	table := metadata.NewTable()

	h := PropertyHeader{
		Name:              "visible",
		Type:              format.PropertyScalar,
		DataType:          format.DataType{Pod: format.PodBool, Extent: 1},
		MetaData:          metadata.New(),
		TimeSamplingIndex: 1,
		FirstChangedIndex: 0,
		LastChangedIndex:  0,
		IsScalarLike:      true,
	}
	buf := h.encode(table)

	decoded, err := decodePropertyHeader(buf, table)
	require.NoError(t, err)
	require.Equal(t, h.Name, decoded.Name)
	require.Equal(t, h.Type, decoded.Type)
	require.Equal(t, h.DataType, decoded.DataType)
	require.EqualValues(t, 1, decoded.TimeSamplingIndex)
	require.True(t, decoded.IsConstant())
}

func TestPropertyHeader_CompoundOmitsDataTypeFields(t *testing.T) {
	table := metadata.NewTable()

	h := PropertyHeader{Name: "xform", Type: format.PropertyCompound, MetaData: metadata.New()}
	buf := h.encode(table)

	decoded, err := decodePropertyHeader(buf, table)
	require.NoError(t, err)
	require.Equal(t, format.PropertyCompound, decoded.Type)
	require.Equal(t, format.DataType{}, decoded.DataType)
}

func TestMetaRef_InlineWhenTableFull(t *testing.T) {
	table := metadata.NewTable()
	for i := 0; i < metadata.MaxTableEntries; i++ {
		md := metadata.New()
		md.Set("i", strconv.Itoa(i))
		_ = encodeMetaRef(nil, md, table)
	}
	require.Equal(t, metadata.MaxTableEntries, table.Len())

	md := metadata.New()
	md.Set("overflow", "value")
	buf := encodeMetaRef(nil, md, table)

	decoded, off, err := decodeMetaRef(buf, 0, table)
	require.NoError(t, err)
	require.Equal(t, len(buf), off)
	v, ok := decoded.Get("overflow")
	require.True(t, ok)
	require.Equal(t, "value", v)
}
