// Package objtree implements the typed property/object tree layered on
// top of the raw Ogawa container: object and compound
// property hierarchies, scalar/array/compound property readers and
// writers, and the archive finalization algorithm that emits them with
// the exact intermixed hash accumulation byte-parity with reference
// Alembic archives requires.
package objtree

import (
	"github.com/ogawa-go/ogawa/errs"
	"github.com/ogawa-go/ogawa/format"
	"github.com/ogawa-go/ogawa/metadata"
)

// metaRef markers, disambiguating a header's metadata byte from a real
// table index. Valid table indices run 0..253
// (metadata.MaxTableEntries); 0xFE/0xFF are reserved and can never collide
// with a real index.
const (
	metaRefInline uint8 = 0xFE
	metaRefEmpty  uint8 = 0xFF // == metadata.InlineEmptyIndex
)

func encodeMetaRef(buf []byte, md *metadata.MetaData, table *metadata.Table) []byte {
	serialized := md.Serialize()

	idx, inline := table.Assign(serialized)
	switch {
	case inline && serialized != "":
		buf = append(buf, metaRefInline)
		buf = putUint32(buf, uint32(len(serialized)))
		buf = append(buf, serialized...)
	case idx == metadata.InlineEmptyIndex:
		buf = append(buf, metaRefEmpty)
	default:
		buf = append(buf, idx)
	}

	return buf
}

func decodeMetaRef(data []byte, off int, table *metadata.Table) (*metadata.MetaData, int, error) {
	if len(data) < off+1 {
		return nil, 0, errs.InvalidWrap("truncated metadata reference", errs.ErrTruncated)
	}

	marker := data[off]
	off++

	switch marker {
	case metaRefEmpty:
		return metadata.New(), off, nil
	case metaRefInline:
		n, next, err := getUint32(data, off)
		if err != nil {
			return nil, 0, err
		}
		off = next
		if len(data) < off+int(n) {
			return nil, 0, errs.InvalidWrap("truncated inline metadata", errs.ErrTruncated)
		}
		md, err := metadata.Parse(string(data[off : off+int(n)]))
		if err != nil {
			return nil, 0, errs.InvalidWrap("malformed inline metadata", err)
		}
		return md, off + int(n), nil
	default:
		s, ok := table.At(marker)
		if !ok {
			return nil, 0, errs.Invalid("metadata table index out of range")
		}
		md, err := metadata.Parse(s)
		if err != nil {
			return nil, 0, errs.InvalidWrap("malformed table metadata", err)
		}
		return md, off, nil
	}
}

// ObjectHeader is the on-disk identity of one object: its name and
// metadata. FullName is never serialized; it is reconstructed from
// traversal context; the tree stores no back references.
type ObjectHeader struct {
	Name     string
	FullName string
	MetaData *metadata.MetaData
}

func (h ObjectHeader) encode(table *metadata.Table) []byte {
	var buf []byte
	buf = putString(buf, h.Name)
	buf = encodeMetaRef(buf, h.MetaData, table)
	return buf
}

func decodeObjectHeader(data []byte, table *metadata.Table) (ObjectHeader, error) {
	name, off, err := getString(data, 0)
	if err != nil {
		return ObjectHeader{}, err
	}

	md, _, err := decodeMetaRef(data, off, table)
	if err != nil {
		return ObjectHeader{}, err
	}

	return ObjectHeader{Name: name, MetaData: md}, nil
}

// PropertyHeader is the on-disk identity of one property: its name, shape
// (scalar/array/compound), DataType (absent for compound), time-sampling
// slot, metadata, and the writer-side change-tracking bookkeeping
// (first/last changed index, homogeneity, scalar-like
// flags). Readers populate these same fields from what was written.
type PropertyHeader struct {
	Name              string
	Type              format.PropertyType
	DataType          format.DataType // zero value when Type == PropertyCompound
	MetaData          *metadata.MetaData
	TimeSamplingIndex uint32

	// Writer/reader bookkeeping, not an object the caller constructs by hand.
	FirstChangedIndex int
	LastChangedIndex  int
	IsHomogenous      bool
	IsScalarLike      bool
}

const (
	flagHomogenous uint8 = 1 << 0
	flagScalarLike uint8 = 1 << 1
)

func (h PropertyHeader) encode(table *metadata.Table) []byte {
	var buf []byte
	buf = putString(buf, h.Name)
	buf = append(buf, byte(h.Type))

	if h.Type != format.PropertyCompound {
		buf = append(buf, byte(h.DataType.Pod), h.DataType.Extent)
	}

	buf = putUint32(buf, h.TimeSamplingIndex)
	buf = encodeMetaRef(buf, h.MetaData, table)

	if h.Type != format.PropertyCompound {
		buf = putUint32(buf, uint32(h.FirstChangedIndex))
		buf = putUint32(buf, uint32(h.LastChangedIndex))

		var flags uint8
		if h.IsHomogenous {
			flags |= flagHomogenous
		}
		if h.IsScalarLike {
			flags |= flagScalarLike
		}
		buf = append(buf, flags)
	}

	return buf
}

func decodePropertyHeader(data []byte, table *metadata.Table) (PropertyHeader, error) {
	name, off, err := getString(data, 0)
	if err != nil {
		return PropertyHeader{}, err
	}

	if len(data) < off+1 {
		return PropertyHeader{}, errs.InvalidWrap("truncated property type", errs.ErrTruncated)
	}
	ptype := format.PropertyType(data[off])
	off++

	h := PropertyHeader{Name: name, Type: ptype}

	if ptype != format.PropertyCompound {
		if len(data) < off+2 {
			return PropertyHeader{}, errs.InvalidWrap("truncated data type", errs.ErrTruncated)
		}
		h.DataType = format.DataType{Pod: format.Pod(data[off]), Extent: data[off+1]}
		off += 2
	}

	ts, off2, err := getUint32(data, off)
	if err != nil {
		return PropertyHeader{}, err
	}
	h.TimeSamplingIndex = ts
	off = off2

	md, off3, err := decodeMetaRef(data, off, table)
	if err != nil {
		return PropertyHeader{}, err
	}
	h.MetaData = md
	off = off3

	if ptype != format.PropertyCompound {
		first, off4, err := getUint32(data, off)
		if err != nil {
			return PropertyHeader{}, err
		}
		last, off5, err := getUint32(data, off4)
		if err != nil {
			return PropertyHeader{}, err
		}
		if len(data) < off5+1 {
			return PropertyHeader{}, errs.InvalidWrap("truncated property flags", errs.ErrTruncated)
		}
		flags := data[off5]

		h.FirstChangedIndex = int(first)
		h.LastChangedIndex = int(last)
		h.IsHomogenous = flags&flagHomogenous != 0
		h.IsScalarLike = flags&flagScalarLike != 0
	}

	return h, nil
}

// IsConstant reports whether a scalar/array property's writer only ever
// observed one distinct SampleKey.
func (h PropertyHeader) IsConstant() bool {
	return h.FirstChangedIndex == 0 && h.LastChangedIndex == 0
}
