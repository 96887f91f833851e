// Package ogawa implements the Ogawa binary container format and the
// property/object tree layered on top of it, as used by Alembic to store
// time-sampled 3D scene data: a write-once, memory-mappable file format
// with content-addressed sample deduplication and per-property
// time-sampling.
//
// CreateArchive and OpenArchive are thin convenience wrappers around
// objtree.Create/objtree.Open; the objtree package holds the full writer
// and reader API (ArchiveWriter, ArchiveReader, ObjectWriter, ObjectReader,
// and the scalar/array/compound property readers and writers).
package ogawa

import "github.com/ogawa-go/ogawa/objtree"

// ArchiveWriter is the write side of an Ogawa archive.
type ArchiveWriter = objtree.ArchiveWriter

// ArchiveReader is the read side of an Ogawa archive.
type ArchiveReader = objtree.ArchiveReader

// ObjectWriter builds one node of the writer-side object tree.
type ObjectWriter = objtree.ObjectWriter

// ObjectReader is a lazy handle to one object in the reader-side tree.
type ObjectReader = objtree.ObjectReader

// PropertyWriter is the common interface satisfied by every writer-side
// property shape.
type PropertyWriter = objtree.PropertyWriter

// PropertyReader is the common interface satisfied by every reader-side
// property shape.
type PropertyReader = objtree.PropertyReader

// ScalarPropertyWriter, ArrayPropertyWriter, and CompoundPropertyWriter are
// the concrete writer-side property shapes.
type (
	ScalarPropertyWriter   = objtree.ScalarPropertyWriter
	ArrayPropertyWriter    = objtree.ArrayPropertyWriter
	CompoundPropertyWriter = objtree.CompoundPropertyWriter
)

// ScalarPropertyReader, ArrayPropertyReader, and CompoundPropertyReader are
// the concrete reader-side property shapes.
type (
	ScalarPropertyReader   = objtree.ScalarPropertyReader
	ArrayPropertyReader    = objtree.ArrayPropertyReader
	CompoundPropertyReader = objtree.CompoundPropertyReader
)

// ArchiveWriterOption and ArchiveReaderOption configure Create/Open.
type (
	ArchiveWriterOption = objtree.ArchiveWriterOption
	ArchiveReaderOption = objtree.ArchiveReaderOption
)

// CreateArchive opens path for writing and returns a ready-to-use
// ArchiveWriter with an empty root object. Call WriteArchive once the
// caller has finished building the object tree under Root().
func CreateArchive(path string, opts ...ArchiveWriterOption) (*ArchiveWriter, error) {
	return objtree.Create(path, opts...)
}

// OpenArchive validates and opens an existing Ogawa archive for reading.
func OpenArchive(path string, opts ...ArchiveReaderOption) (*ArchiveReader, error) {
	return objtree.Open(path, opts...)
}

// NewObjectWriter creates a named object with an empty root compound
// property, ready to receive AddChild/AddProperty calls.
func NewObjectWriter(name string) *ObjectWriter {
	return objtree.NewObjectWriter(name)
}

// NewScalarPropertyWriter, NewArrayPropertyWriter, and
// NewCompoundPropertyWriter construct the three writer-side property
// shapes.
var (
	NewScalarPropertyWriter   = objtree.NewScalarPropertyWriter
	NewArrayPropertyWriter    = objtree.NewArrayPropertyWriter
	NewCompoundPropertyWriter = objtree.NewCompoundPropertyWriter
)

// Option constructors re-exported for convenience; see objtree for their
// documentation.
var (
	WithCompressionHint        = objtree.WithCompressionHint
	WithDedupEnabled           = objtree.WithDedupEnabled
	WithAppName                = objtree.WithAppName
	WithUserDescription        = objtree.WithUserDescription
	WithDateWritten            = objtree.WithDateWritten
	WithDCCFPS                 = objtree.WithDCCFPS
	WithMmap                   = objtree.WithMmap
	WithReadCacheCapacityBytes = objtree.WithReadCacheCapacityBytes
)
