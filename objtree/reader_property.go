package objtree

import (
	"github.com/ogawa-go/ogawa/cache"
	"github.com/ogawa-go/ogawa/container"
	"github.com/ogawa-go/ogawa/errs"
	"github.com/ogawa-go/ogawa/format"
	"github.com/ogawa-go/ogawa/internal/hash"
	"github.com/ogawa-go/ogawa/internal/pool"
	"github.com/ogawa-go/ogawa/sample"
)

// PropertyReader is the common interface satisfied by every reader-side
// property shape. Callers type-assert to Scalar/Array/CompoundPropertyReader
// (via header.Type) to call the shape-specific sample accessors.
type PropertyReader interface {
	Header() PropertyHeader
	Name() string
}

func propertyFullName(parentFullName, name string) string {
	if name == "" {
		return parentFullName
	}
	return parentFullName + "/" + name
}

// --- dispatch ---

// newPropertyReader decodes childGroup's header and wraps it in the
// matching concrete reader type.
func newPropertyReader(archive *ArchiveReader, childGroup container.Group, parentFullName string) (PropertyReader, error) {
	headerBytes, err := readAllChildData(childGroup, 0)
	if err != nil {
		return nil, err
	}

	header, err := decodePropertyHeader(headerBytes, archive.table)
	if err != nil {
		return nil, err
	}

	fullName := propertyFullName(parentFullName, header.Name)

	switch header.Type {
	case format.PropertyScalar:
		return &ScalarPropertyReader{archive: archive, group: childGroup, header: header, fullName: fullName, numSamples: childGroup.NumChildren() - 1}, nil
	case format.PropertyArray:
		return &ArrayPropertyReader{archive: archive, group: childGroup, header: header, fullName: fullName, numSamples: (childGroup.NumChildren() - 1) / 2}, nil
	case format.PropertyCompound:
		return newCompoundPropertyReader(archive, childGroup, parentFullName)
	default:
		return nil, errs.Invalid("unknown property type in header")
	}
}

// --- Compound ---

// CompoundPropertyReader lists an ordered set of child properties in
// on-disk order.
type CompoundPropertyReader struct {
	archive  *ArchiveReader
	group    container.Group
	header   PropertyHeader
	fullName string

	numProperties int
}

func newCompoundPropertyReader(archive *ArchiveReader, group container.Group, parentFullName string) (*CompoundPropertyReader, error) {
	n := group.NumChildren()
	if n < 1 {
		return nil, errs.Invalid("compound property group must have at least a header")
	}

	headerBytes, err := readAllChildData(group, 0)
	if err != nil {
		return nil, err
	}
	header, err := decodePropertyHeader(headerBytes, archive.table)
	if err != nil {
		return nil, err
	}

	return &CompoundPropertyReader{
		archive:       archive,
		group:         group,
		header:        header,
		fullName:      propertyFullName(parentFullName, header.Name),
		numProperties: n - 1,
	}, nil
}

func (c *CompoundPropertyReader) Header() PropertyHeader { return c.header }
func (c *CompoundPropertyReader) Name() string           { return c.header.Name }

// NumProperties returns the number of direct child properties.
func (c *CompoundPropertyReader) NumProperties() int { return c.numProperties }

// Property returns child property i, dispatched to its concrete shape.
func (c *CompoundPropertyReader) Property(i int) (PropertyReader, error) {
	if i < 0 || i >= c.numProperties {
		return nil, errs.Invalid("property index out of range")
	}
	childGroup, err := c.group.ChildGroup(i + 1)
	if err != nil {
		return nil, err
	}
	return newPropertyReader(c.archive, childGroup, c.fullName)
}

// PropertyHeader returns child i's header without retaining a full reader.
func (c *CompoundPropertyReader) PropertyHeader(i int) (PropertyHeader, error) {
	p, err := c.Property(i)
	if err != nil {
		return PropertyHeader{}, err
	}
	return p.Header(), nil
}

// PropertyByName returns the direct child property with the given name.
func (c *CompoundPropertyReader) PropertyByName(name string) (PropertyReader, error) {
	for i := 0; i < c.numProperties; i++ {
		p, err := c.Property(i)
		if err != nil {
			return nil, err
		}
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, errs.NotFound(propertyFullName(c.fullName, name))
}

// FindProperty descends "a/b/c"-style nested compound paths.
func (c *CompoundPropertyReader) FindProperty(path string) (PropertyReader, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, errs.Invalid("empty property path")
	}

	var cur PropertyReader = c
	for _, seg := range segments {
		compound, ok := cur.(*CompoundPropertyReader)
		if !ok {
			return nil, errs.Invalid("path descends through a non-compound property")
		}
		cur, err = compound.PropertyByName(seg)
		if err != nil {
			return nil, err
		}
	}

	return cur, nil
}

// --- Scalar ---

// ScalarPropertyReader reads samples of a scalar property: one DataType
// value per sample.
type ScalarPropertyReader struct {
	archive    *ArchiveReader
	group      container.Group
	header     PropertyHeader
	fullName   string
	numSamples int
}

func (p *ScalarPropertyReader) Header() PropertyHeader { return p.header }
func (p *ScalarPropertyReader) Name() string           { return p.header.Name }

// NumSamples returns the number of samples the writer appended.
func (p *ScalarPropertyReader) NumSamples() int { return p.numSamples }

// IsConstant reports whether the writer only ever observed one distinct
// SampleKey.
func (p *ScalarPropertyReader) IsConstant() bool { return p.header.IsConstant() }

// TimeSamplingIndex returns the property's registry slot.
func (p *ScalarPropertyReader) TimeSamplingIndex() uint32 { return p.header.TimeSamplingIndex }

// ReadSample decodes sample i's value into out, which must have length
// DataType.NumBytes().
func (p *ScalarPropertyReader) ReadSample(i int, out []byte) error {
	if i < 0 || i >= p.numSamples {
		return errs.Invalid("sample index out of range")
	}

	if cached, ok := p.archive.cache.Get(cache.Key(p.archive.path, p.fullName, int64(i))); ok {
		copy(out, cached)
		return nil
	}

	raw, err := readAllChildData(p.group, i+1)
	if err != nil {
		return err
	}
	if len(raw) < 16 {
		return errs.InvalidWrap("truncated keyed data block", errs.ErrTruncated)
	}
	payload := raw[16:]

	copy(out, payload)
	p.archive.cache.Put(cache.Key(p.archive.path, p.fullName, int64(i)), append([]byte(nil), payload...))

	return nil
}

// GetKey returns the SampleKey stored for sample i.
func (p *ScalarPropertyReader) GetKey(i int) (sample.Key, error) {
	raw, err := readAllChildData(p.group, i+1)
	if err != nil {
		return sample.Key{}, err
	}
	if len(raw) < 16 {
		return sample.Key{}, errs.InvalidWrap("truncated keyed data block", errs.ErrTruncated)
	}

	h1, h2 := hash.DecodeDigest(raw[:16])
	return sample.Key{Digest: hash.EncodeDigest(h1, h2), NumBytes: uint64(len(raw) - 16), NumPoints: 1}, nil
}

// --- Array ---

// ArrayPropertyReader reads samples of an array property: a variable
// length array of DataType elements, plus per-sample Dimensions.
type ArrayPropertyReader struct {
	archive    *ArchiveReader
	group      container.Group
	header     PropertyHeader
	fullName   string
	numSamples int
}

func (p *ArrayPropertyReader) Header() PropertyHeader { return p.header }
func (p *ArrayPropertyReader) Name() string           { return p.header.Name }

// NumSamples returns the number of samples the writer appended.
func (p *ArrayPropertyReader) NumSamples() int { return p.numSamples }

// IsConstant reports whether the writer only ever observed one distinct
// SampleKey.
func (p *ArrayPropertyReader) IsConstant() bool { return p.header.IsConstant() }

// IsScalarLike reports whether every sample had exactly one point.
func (p *ArrayPropertyReader) IsScalarLike() bool { return p.header.IsScalarLike }

// TimeSamplingIndex returns the property's registry slot.
func (p *ArrayPropertyReader) TimeSamplingIndex() uint32 { return p.header.TimeSamplingIndex }

func (p *ArrayPropertyReader) dataChildIndex(i int) int { return 1 + 2*i }
func (p *ArrayPropertyReader) dimsChildIndex(i int) int { return 2 + 2*i }

// GetDimensions decodes sample i's Dimensions, reconstructing num_points
// from the payload length when the writer collapsed the dimensions block
// to a zero-length node.
func (p *ArrayPropertyReader) GetDimensions(i int) (format.Dimensions, error) {
	if i < 0 || i >= p.numSamples {
		return nil, errs.Invalid("sample index out of range")
	}

	dimsData, err := p.group.ChildData(p.dimsChildIndex(i))
	if err != nil {
		return nil, err
	}

	if dimsData.Size() == 0 {
		payload, err := p.readPayload(i)
		if err != nil {
			return nil, err
		}
		elemSize := p.header.DataType.NumBytes()
		if elemSize == 0 {
			return format.Dimensions{0}, nil
		}
		return format.Dimensions{uint64(len(payload)) / uint64(elemSize)}, nil
	}

	raw, err := dimsData.ReadAll()
	if err != nil {
		return nil, err
	}
	return decodeDims(raw)
}

// GetKey returns the SampleKey stored for sample i.
func (p *ArrayPropertyReader) GetKey(i int) (sample.Key, error) {
	raw, err := readAllChildData(p.group, p.dataChildIndex(i))
	if err != nil {
		return sample.Key{}, err
	}
	if len(raw) < 16 {
		return sample.Key{}, errs.InvalidWrap("truncated keyed data block", errs.ErrTruncated)
	}

	h1, h2 := hash.DecodeDigest(raw[:16])
	dims, err := p.GetDimensions(i)
	if err != nil {
		return sample.Key{}, err
	}

	payload, err := p.readPayload(i)
	if err != nil {
		return sample.Key{}, err
	}

	return sample.Key{
		Digest:    hash.EncodeDigest(h1, h2),
		NumBytes:  uint64(len(payload)),
		NumPoints: dims.NumPoints(),
	}, nil
}

func (p *ArrayPropertyReader) readPayload(i int) ([]byte, error) {
	raw, err := readAllChildData(p.group, p.dataChildIndex(i))
	if err != nil {
		return nil, err
	}
	if len(raw) < 16 {
		return nil, errs.InvalidWrap("truncated keyed data block", errs.ErrTruncated)
	}
	return decompressArrayPayload(raw[16:], p.archive.compressionHint)
}

// decompressArrayPayload consults the archive's tagged compression_hint
// rather than guessing from the bytes: hint -1 means the payload is
// stored raw, any other hint means every array payload went through
// ZlibCodec and must decode cleanly.
func decompressArrayPayload(data []byte, compressionHint int) ([]byte, error) {
	if compressionHint < 0 {
		return data, nil
	}
	out, err := sample.NewZlibCodec(0).Decompress(data)
	if err != nil {
		return nil, errs.OtherWrap("array payload decompression failed", errs.ErrDecompressFailed)
	}
	return out, nil
}

// ReadSampleVec decodes and returns a copy of sample i's decompressed
// payload bytes, consulting the bounded read cache.
func (p *ArrayPropertyReader) ReadSampleVec(i int) ([]byte, error) {
	if i < 0 || i >= p.numSamples {
		return nil, errs.Invalid("sample index out of range")
	}

	key := cache.Key(p.archive.path, p.fullName, int64(i))
	if cached, ok := p.archive.cache.Get(key); ok {
		return append([]byte(nil), cached...), nil
	}

	payload, err := p.readPayload(i)
	if err != nil {
		return nil, err
	}

	p.archive.cache.Put(key, append([]byte(nil), payload...))

	return payload, nil
}

// GetAsFloat64 decodes sample i and converts every element to float64,
// for any fixed-width numeric POD. This is the Go-idiomatic stand-in for
// the reference API's generic get_as<Src,Dst>: a small set of named
// conversion targets (Float64/Float32/Int64) rather than a fully generic
// pair of type parameters, since Go generics cannot switch on a POD byte
// size the way the reference template does (see DESIGN.md).
func (p *ArrayPropertyReader) GetAsFloat64(i int) ([]float64, error) {
	raw, err := p.ReadSampleVec(i)
	if err != nil {
		return nil, err
	}
	return decodeNumericAsFloat64(raw, p.header.DataType.Pod)
}

// GetAsFloat32 decodes sample i and converts every element to float32.
// The intermediate float64 column is pooled; only the converted result
// escapes to the caller.
func (p *ArrayPropertyReader) GetAsFloat32(i int) ([]float32, error) {
	f64, release, err := p.decodePooledFloat64(i)
	if err != nil {
		return nil, err
	}
	defer release()

	out := make([]float32, len(f64))
	for j, v := range f64 {
		out[j] = float32(v)
	}
	return out, nil
}

// GetAsInt64 decodes sample i and converts every element to int64,
// truncating any fractional part for floating-point source PODs.
func (p *ArrayPropertyReader) GetAsInt64(i int) ([]int64, error) {
	f64, release, err := p.decodePooledFloat64(i)
	if err != nil {
		return nil, err
	}
	defer release()

	out := make([]int64, len(f64))
	for j, v := range f64 {
		out[j] = int64(v)
	}
	return out, nil
}

func (p *ArrayPropertyReader) decodePooledFloat64(i int) ([]float64, func(), error) {
	raw, err := p.ReadSampleVec(i)
	if err != nil {
		return nil, nil, err
	}

	pod := p.header.DataType.Pod
	n, err := numericElemCount(raw, pod)
	if err != nil {
		return nil, nil, err
	}

	f64, release := pool.GetFloat64Slice(n)
	if err := decodeNumericInto(f64, raw, pod); err != nil {
		release()
		return nil, nil, err
	}

	return f64, release, nil
}
