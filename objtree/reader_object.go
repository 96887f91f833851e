package objtree

import (
	"github.com/ogawa-go/ogawa/container"
	"github.com/ogawa-go/ogawa/errs"
)

// ObjectReader is a lazy handle to one object in the tree: walking
// children or listing properties does not decode any sample data; headers
// materialize on demand.
type ObjectReader struct {
	archive  *ArchiveReader
	group    container.Group
	propGroup container.Group
	header   ObjectHeader
	fullName string

	numChildren int

	dataHash1, dataHash2 uint64
	ioHash1, ioHash2     uint64
}

// newObjectReader decodes the object header at the tail of group and
// wraps it; parentFullName == "" designates this as the archive root.
func newObjectReader(archive *ArchiveReader, group container.Group, parentFullName string) (*ObjectReader, error) {
	n := group.NumChildren()
	if n < 2 {
		return nil, errs.Invalid("object group must have at least a property group and a header")
	}

	headerBytes, err := readAllChildData(group, n-1)
	if err != nil {
		return nil, err
	}
	if len(headerBytes) < 32 {
		return nil, errs.InvalidWrap("truncated object header tail", errs.ErrTruncated)
	}

	fieldsPart := headerBytes[:len(headerBytes)-32]
	tailPart := headerBytes[len(headerBytes)-32:]

	header, err := decodeObjectHeader(fieldsPart, archive.table)
	if err != nil {
		return nil, err
	}

	dh1, dh2, off, err := decode128(tailPart, 0)
	if err != nil {
		return nil, err
	}
	ih1, ih2, _, err := decode128(tailPart, off)
	if err != nil {
		return nil, err
	}

	fullName := "/"
	if parentFullName != "" {
		fullName = joinFullName(parentFullName, header.Name)
	}
	header.FullName = fullName

	propGroup, err := group.ChildGroup(0)
	if err != nil {
		return nil, err
	}

	return &ObjectReader{
		archive:     archive,
		group:       group,
		propGroup:   propGroup,
		header:      header,
		fullName:    fullName,
		numChildren: n - 2, // exclude the property group and the header data block
		dataHash1:   dh1,
		dataHash2:   dh2,
		ioHash1:     ih1,
		ioHash2:     ih2,
	}, nil
}

// Header returns the object's header (Name, FullName, MetaData).
func (o *ObjectReader) Header() ObjectHeader { return o.header }

// NumChildren returns the number of child objects.
func (o *ObjectReader) NumChildren() int { return o.numChildren }

// Child returns child object i.
func (o *ObjectReader) Child(i int) (*ObjectReader, error) {
	if i < 0 || i >= o.numChildren {
		return nil, errs.Invalid("child object index out of range")
	}

	childGroup, err := o.group.ChildGroup(i + 1)
	if err != nil {
		return nil, err
	}

	return newObjectReader(o.archive, childGroup, o.fullName)
}

// ChildHeader returns child i's header without retaining a full
// ObjectReader.
func (o *ObjectReader) ChildHeader(i int) (ObjectHeader, error) {
	c, err := o.Child(i)
	if err != nil {
		return ObjectHeader{}, err
	}
	return c.Header(), nil
}

// ChildByName returns the child object with the given name.
func (o *ObjectReader) ChildByName(name string) (*ObjectReader, error) {
	for i := 0; i < o.numChildren; i++ {
		c, err := o.Child(i)
		if err != nil {
			return nil, err
		}
		if c.header.Name == name {
			return c, nil
		}
	}

	return nil, errs.NotFound(joinFullName(o.fullName, name))
}

// Properties returns the object's root compound property reader.
func (o *ObjectReader) Properties() (*CompoundPropertyReader, error) {
	return newCompoundPropertyReader(o.archive, o.propGroup, o.fullName)
}

// PropertiesHash returns the object's dataHash (the folded subtree hash
// of its property tree), as stored in the header tail.
func (o *ObjectReader) PropertiesHash() (uint64, uint64) { return o.dataHash1, o.dataHash2 }

// ChildrenHash returns the object's ioHash (the folded hash of its child
// objects), as stored in the header tail.
func (o *ObjectReader) ChildrenHash() (uint64, uint64) { return o.ioHash1, o.ioHash2 }

// Instanced reports whether this object is an instance of another (stub:
// the core reader never materializes instances).
func (o *ObjectReader) Instanced() bool { return false }

// IsChildInstance reports whether child i is an instance (stub, always false).
func (o *ObjectReader) IsChildInstance(int) bool { return false }
