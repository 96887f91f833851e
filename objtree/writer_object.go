package objtree

import (
	"github.com/ogawa-go/ogawa/container"
	"github.com/ogawa-go/ogawa/internal/hash"
	"github.com/ogawa-go/ogawa/metadata"
)

// ObjectWriter builds one node of the in-memory object tree: an ordered
// list of child objects plus a root compound property.
// The tree is frozen once passed to ArchiveWriter.WriteArchive.
type ObjectWriter struct {
	header   ObjectHeader
	children []*ObjectWriter
	root     *CompoundPropertyWriter
}

// NewObjectWriter creates an object with the given name and an empty root
// compound property ready to receive AddProperty calls.
func NewObjectWriter(name string) *ObjectWriter {
	return &ObjectWriter{
		header: ObjectHeader{Name: name, MetaData: metadata.New()},
		root:   NewCompoundPropertyWriter(""),
	}
}

// AddChild appends a child object.
func (o *ObjectWriter) AddChild(child *ObjectWriter) {
	o.children = append(o.children, child)
}

// AddProperty appends a property to the object's root compound.
func (o *ObjectWriter) AddProperty(p PropertyWriter) {
	o.root.AddChild(p)
}

// MetaDataMut returns the object's metadata map for in-place mutation.
func (o *ObjectWriter) MetaDataMut() *metadata.MetaData {
	return o.header.MetaData
}

// Name returns the object's name.
func (o *ObjectWriter) Name() string { return o.header.Name }

// finalizeObject emits one object's property data, headers, and group,
// recursing into children first. It returns the object's on-disk group
// offset and its 128-bit object hash, which
// the caller folds into its own ioHash.
func (o *ObjectWriter) finalizeObject(ctx *writeContext) (uint64, uint64, uint64, error) {
	propGroupOffset, ph1, ph2, err := o.root.finalize(ctx)
	if err != nil {
		return 0, 0, 0, err
	}

	dataHash := hash.NewSpooky(0, 0)
	dataHash.Update(encode128(ph1, ph2))
	dh1, dh2 := dataHash.Finalize()

	ioHash := hash.NewSpooky(0, 0)
	childGroupOffsets := make([]uint64, 0, len(o.children))

	for _, c := range o.children {
		cGroupOffset, ch1, ch2, err := c.finalizeObject(ctx)
		if err != nil {
			return 0, 0, 0, err
		}
		ioHash.Update(encode128(ch1, ch2))
		childGroupOffsets = append(childGroupOffsets, container.EncodeChildOffset(cGroupOffset, container.KindGroup))
	}
	ih1, ih2 := ioHash.Finalize()

	combined := hash.NewSpooky(0, 0)
	combined.Update(encode128(dh1, dh2))
	combined.Update(encode128(ih1, ih2))
	if !o.header.MetaData.IsEmpty() {
		combined.Update([]byte(o.header.MetaData.Serialize()))
	}
	combined.Update([]byte(o.header.Name))
	oh1, oh2 := combined.Finalize()

	headerBytes := o.header.encode(ctx.table)
	headerBytes = append(headerBytes, encode128(dh1, dh2)...)
	headerBytes = append(headerBytes, encode128(ih1, ih2)...)

	headerDataOffset, err := ctx.writer.WriteData(headerBytes)
	if err != nil {
		return 0, 0, 0, err
	}

	children := make([]uint64, 0, 2+len(childGroupOffsets))
	children = append(children, container.EncodeChildOffset(propGroupOffset, container.KindGroup))
	children = append(children, childGroupOffsets...)
	children = append(children, container.EncodeChildOffset(headerDataOffset, container.KindData))

	groupOffset, err := ctx.writer.WriteGroup(children)
	if err != nil {
		return 0, 0, 0, err
	}

	return groupOffset, oh1, oh2, nil
}
