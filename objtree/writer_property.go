package objtree

import (
	"github.com/ogawa-go/ogawa/container"
	"github.com/ogawa-go/ogawa/errs"
	"github.com/ogawa-go/ogawa/format"
	"github.com/ogawa-go/ogawa/internal/hash"
	"github.com/ogawa-go/ogawa/internal/pool"
	"github.com/ogawa-go/ogawa/metadata"
	"github.com/ogawa-go/ogawa/sample"
)

// writeContext threads the shared writer-side state (the container writer,
// the dedup map, the active compression codec, and the metadata table)
// through the recursive property/object finalize traversal, plus a
// callback into the owning ArchiveWriter to record each
// time-sampling slot's observed max_num_samples.
type writeContext struct {
	writer             *container.Writer
	dedup              *sample.DedupMap
	codec              sample.Codec
	table              *metadata.Table
	observeTimeSampling func(idx uint32, maxSamples int)
}

// propertyWriterNode is the common shape every writer-side property
// (scalar, array, compound) implements so a CompoundPropertyWriter can
// hold a heterogeneous ordered list of children. PropertyWriter is the
// exported alias callers build against.
type propertyWriterNode interface {
	Name() string
	finalize(ctx *writeContext) (groupOffset uint64, h1, h2 uint64, err error)
}

// PropertyWriter is the common interface satisfied by every writer-side
// property shape. Callers type-assert to the concrete
// scalar/array/compound type to call its shape-specific Add* methods.
type PropertyWriter interface {
	Name() string
}

// writeKeyedDataBlock emits (or reuses, via dedup) a keyed data block:
// `[u64 size][16 bytes digest][payload]`. payload is the already-compressed
// bytes for arrays (form PayloadCompressed when a zlib codec is active), or
// the raw encoded bytes for scalars, which are never compressed.
func writeKeyedDataBlock(ctx *writeContext, key sample.Key, form sample.PayloadForm, payload []byte) (uint64, error) {
	if off, ok := ctx.dedup.Lookup(key, form); ok {
		return off, nil
	}

	block := pool.GetSampleBuffer()
	defer pool.PutSampleBuffer(block)
	block.MustWrite(key.Digest[:])
	block.MustWrite(payload)

	off, err := ctx.writer.WriteData(block.Bytes())
	if err != nil {
		return 0, err
	}

	ctx.dedup.Insert(key, form, off)

	return off, nil
}

// --- Scalar ---

type scalarPending struct {
	key sample.Key
	raw []byte
}

// ScalarPropertyWriter accumulates samples for a scalar property: one
// DataType-shaped value per sample, written as its own keyed data block.
type ScalarPropertyWriter struct {
	header  PropertyHeader
	tracker sample.ChangeTracker
	pending []scalarPending
}

var _ PropertyWriter = (*ScalarPropertyWriter)(nil)

// NewScalarPropertyWriter creates a scalar property of the given DataType.
func NewScalarPropertyWriter(name string, dt format.DataType) *ScalarPropertyWriter {
	return &ScalarPropertyWriter{
		header: PropertyHeader{Name: name, Type: format.PropertyScalar, DataType: dt, MetaData: metadata.New()},
	}
}

func (p *ScalarPropertyWriter) Name() string { return p.header.Name }

// WithTimeSampling sets the property's time-sampling registry index.
func (p *ScalarPropertyWriter) WithTimeSampling(idx uint32) *ScalarPropertyWriter {
	p.header.TimeSamplingIndex = idx
	return p
}

// WithMetaData replaces the property's metadata map.
func (p *ScalarPropertyWriter) WithMetaData(md *metadata.MetaData) *ScalarPropertyWriter {
	p.header.MetaData = md
	return p
}

// AddSample appends one sample's raw little-endian bytes; len(raw) must
// equal the property's DataType.NumBytes().
func (p *ScalarPropertyWriter) AddSample(raw []byte) error {
	if len(raw) != p.header.DataType.NumBytes() {
		return errs.Invalid("scalar sample length does not match DataType.NumBytes()")
	}

	key := sample.KeyOf(raw, p.header.DataType.Pod.Size(), 1)
	p.tracker.Observe(key)
	p.pending = append(p.pending, scalarPending{key: key, raw: append([]byte(nil), raw...)})

	return nil
}

func (p *ScalarPropertyWriter) finalize(ctx *writeContext) (uint64, uint64, uint64, error) {
	p.header.FirstChangedIndex = p.tracker.FirstChangedIndex()
	p.header.LastChangedIndex = p.tracker.LastChangedIndex()

	headerBytes := p.header.encode(ctx.table)

	h := hash.NewSpooky(0, 0)
	h.Update(headerBytes)
	ph1, ph2 := h.Finalize()

	headerDataOffset, err := ctx.writer.WriteData(headerBytes)
	if err != nil {
		return 0, 0, 0, err
	}

	children := []uint64{container.EncodeChildOffset(headerDataOffset, container.KindData)}

	for _, s := range p.pending {
		off, err := writeKeyedDataBlock(ctx, s.key, sample.PayloadRaw, s.raw)
		if err != nil {
			return 0, 0, 0, err
		}
		children = append(children, container.EncodeChildOffset(off, container.KindData))
		ph1, ph2 = hash.ShortEndMix(ph1, ph2, s.key.Digest[:])
	}

	groupOffset, err := ctx.writer.WriteGroup(children)
	if err != nil {
		return 0, 0, 0, err
	}

	ctx.observeTimeSampling(p.header.TimeSamplingIndex, p.tracker.MaxNumSamples())

	return groupOffset, ph1, ph2, nil
}

// --- Array ---

type arrayPending struct {
	key  sample.Key
	raw  []byte
	dims format.Dimensions
}

// ArrayPropertyWriter accumulates samples for an array property: a
// variable-length array of DataType elements plus per-sample Dimensions,
// each written as a keyed data block (optionally zlib-compressed) paired
// with a dimensions block.
type ArrayPropertyWriter struct {
	header  PropertyHeader
	tracker sample.ChangeTracker
	pending []arrayPending

	isScalarLike       bool
	homogenousCandidate bool
	haveFirstNumPoints  bool
	firstNumPoints      uint64
}

var _ PropertyWriter = (*ArrayPropertyWriter)(nil)

// NewArrayPropertyWriter creates an array property of the given element
// DataType. IsScalarLike starts true and is cleared on
// the first sample whose NumPoints != 1.
func NewArrayPropertyWriter(name string, dt format.DataType) *ArrayPropertyWriter {
	return &ArrayPropertyWriter{
		header:              PropertyHeader{Name: name, Type: format.PropertyArray, DataType: dt, MetaData: metadata.New()},
		isScalarLike:        true,
		homogenousCandidate: true,
	}
}

func (p *ArrayPropertyWriter) Name() string { return p.header.Name }

// WithTimeSampling sets the property's time-sampling registry index.
func (p *ArrayPropertyWriter) WithTimeSampling(idx uint32) *ArrayPropertyWriter {
	p.header.TimeSamplingIndex = idx
	return p
}

// WithMetaData replaces the property's metadata map.
func (p *ArrayPropertyWriter) WithMetaData(md *metadata.MetaData) *ArrayPropertyWriter {
	p.header.MetaData = md
	return p
}

// AddSample appends one array sample: raw is the encoded element bytes
// (native little-endian for numeric PODs, sample.EncodeString/EncodeWString
// output for string/wstring PODs); dims describes its shape.
func (p *ArrayPropertyWriter) AddSample(raw []byte, dims format.Dimensions) error {
	pod := p.header.DataType.Pod
	numPoints := dims.NumPoints()

	if pod != format.PodString && pod != format.PodWString {
		want := p.header.DataType.NumBytes() * int(numPoints)
		if len(raw) != want {
			return errs.Invalid("array sample length does not match DataType.NumBytes() * num_points")
		}
	}

	key := sample.KeyOf(raw, pod.Size(), numPoints)
	p.tracker.Observe(key)
	p.pending = append(p.pending, arrayPending{key: key, raw: append([]byte(nil), raw...), dims: dims.Clone()})

	if numPoints != 1 {
		p.isScalarLike = false
	}

	p.updateHomogenous(pod, dims, numPoints)

	return nil
}

// AddStringSample is a convenience wrapper for PodString/PodWString array
// properties: it applies the per-element null-terminator encoding and
// sets dims to the element count.
func (p *ArrayPropertyWriter) AddStringSample(values []string) error {
	var raw []byte
	switch p.header.DataType.Pod {
	case format.PodString:
		raw = sample.EncodeString(values)
	case format.PodWString:
		raw = sample.EncodeWString(values)
	default:
		return errs.Invalid("AddStringSample requires a string or wstring property")
	}

	return p.AddSample(raw, format.Dimensions{uint64(len(values))})
}

func (p *ArrayPropertyWriter) updateHomogenous(pod format.Pod, dims format.Dimensions, numPoints uint64) {
	if p.header.DataType.Extent > 1 {
		p.homogenousCandidate = false
		return
	}
	if pod == format.PodString || pod == format.PodWString {
		p.homogenousCandidate = false
		return
	}
	if dims.Rank() > 1 {
		p.homogenousCandidate = false
		return
	}

	if !p.haveFirstNumPoints {
		p.firstNumPoints = numPoints
		p.haveFirstNumPoints = true
		return
	}
	if numPoints != p.firstNumPoints {
		p.homogenousCandidate = false
	}
}

func (p *ArrayPropertyWriter) finalize(ctx *writeContext) (uint64, uint64, uint64, error) {
	p.header.FirstChangedIndex = p.tracker.FirstChangedIndex()
	p.header.LastChangedIndex = p.tracker.LastChangedIndex()
	p.header.IsScalarLike = p.isScalarLike
	p.header.IsHomogenous = p.homogenousCandidate && p.tracker.NumSamples() > 0

	headerBytes := p.header.encode(ctx.table)

	h := hash.NewSpooky(0, 0)
	h.Update(headerBytes)
	ph1, ph2 := h.Finalize()

	headerDataOffset, err := ctx.writer.WriteData(headerBytes)
	if err != nil {
		return 0, 0, 0, err
	}

	children := []uint64{container.EncodeChildOffset(headerDataOffset, container.KindData)}

	pod := p.header.DataType.Pod
	for _, s := range p.pending {
		payload := s.raw
		form := sample.PayloadRaw
		if ctx.codec != nil {
			payload, err = ctx.codec.Compress(s.raw)
			if err != nil {
				return 0, 0, 0, err
			}
			if _, zlib := ctx.codec.(sample.ZlibCodec); zlib {
				form = sample.PayloadCompressed
			}
		}

		dataOffset, err := writeKeyedDataBlock(ctx, s.key, form, payload)
		if err != nil {
			return 0, 0, 0, err
		}

		var dimsOffset uint64
		if dimsOptimized(pod, s.dims) {
			dimsOffset, err = ctx.writer.WriteEmptyData()
		} else {
			dimsOffset, err = ctx.writer.WriteData(encodeDims(s.dims))
		}
		if err != nil {
			return 0, 0, 0, err
		}

		children = append(children,
			container.EncodeChildOffset(dataOffset, container.KindData),
			container.EncodeChildOffset(dimsOffset, container.KindData),
		)

		ph1, ph2 = hash.ShortEndMix(ph1, ph2, s.key.Digest[:])
	}

	groupOffset, err := ctx.writer.WriteGroup(children)
	if err != nil {
		return 0, 0, 0, err
	}

	ctx.observeTimeSampling(p.header.TimeSamplingIndex, p.tracker.MaxNumSamples())

	return groupOffset, ph1, ph2, nil
}

// --- Compound ---

// CompoundPropertyWriter owns an ordered list of child properties
// (scalar, array, or nested compound). Property-group headers are emitted
// to disk in reverse creation order; their subtree
// hashes are folded into this compound's own hash in creation order.
type CompoundPropertyWriter struct {
	header   PropertyHeader
	children []propertyWriterNode
}

var _ PropertyWriter = (*CompoundPropertyWriter)(nil)

// NewCompoundPropertyWriter creates an empty compound property.
func NewCompoundPropertyWriter(name string) *CompoundPropertyWriter {
	return &CompoundPropertyWriter{
		header: PropertyHeader{Name: name, Type: format.PropertyCompound, MetaData: metadata.New()},
	}
}

func (p *CompoundPropertyWriter) Name() string { return p.header.Name }

// WithMetaData replaces the property's metadata map.
func (p *CompoundPropertyWriter) WithMetaData(md *metadata.MetaData) *CompoundPropertyWriter {
	p.header.MetaData = md
	return p
}

// AddChild appends a scalar, array, or nested compound property.
func (p *CompoundPropertyWriter) AddChild(child PropertyWriter) {
	p.children = append(p.children, child.(propertyWriterNode))
}

func (p *CompoundPropertyWriter) finalize(ctx *writeContext) (uint64, uint64, uint64, error) {
	type childResult struct {
		groupOffset uint64
		h1, h2      uint64
	}

	results := make([]childResult, len(p.children))
	for i, c := range p.children {
		gOff, h1, h2, err := c.finalize(ctx)
		if err != nil {
			return 0, 0, 0, err
		}
		results[i] = childResult{groupOffset: gOff, h1: h1, h2: h2}
	}

	headerBytes := p.header.encode(ctx.table)

	h := hash.NewSpooky(0, 0)
	h.Update(headerBytes)
	ph1, ph2 := h.Finalize()

	for _, r := range results {
		ph1, ph2 = hash.ShortEndMix(ph1, ph2, encode128(r.h1, r.h2))
	}

	headerDataOffset, err := ctx.writer.WriteData(headerBytes)
	if err != nil {
		return 0, 0, 0, err
	}

	children := []uint64{container.EncodeChildOffset(headerDataOffset, container.KindData)}
	for i := len(results) - 1; i >= 0; i-- {
		children = append(children, container.EncodeChildOffset(results[i].groupOffset, container.KindGroup))
	}

	groupOffset, err := ctx.writer.WriteGroup(children)
	if err != nil {
		return 0, 0, 0, err
	}

	return groupOffset, ph1, ph2, nil
}
