// Package container implements the Ogawa binary container codec: a fixed
// header, data blocks, and groups of typed child offsets, read via
// memory-mapped or buffered random access and written via deferred,
// write-once emission.
package container

import (
	"encoding/binary"

	"github.com/ogawa-go/ogawa/errs"
)

// HeaderSize is the fixed size, in bytes, of the container header.
const HeaderSize = 16

// magic is the fixed 5-byte ASCII signature at the start of every archive.
var magic = [5]byte{'O', 'g', 'a', 'w', 'a'}

const (
	flagOffset            = 5
	versionOffset         = 6
	rootOffsetFieldOffset = 8

	// flagNotFrozen marks a file still being written; readers must reject it.
	flagNotFrozen byte = 0x00
	// flagFrozen marks a complete, immutable archive.
	flagFrozen byte = 0xFF

	// Version1 is the only container version a conforming reader accepts.
	Version1 uint16 = 1
)

// Header is the decoded form of an archive's fixed 16-byte prefix.
type Header struct {
	Frozen     bool
	Version    uint16
	RootOffset uint64
}

// decodeHeader validates and decodes the first HeaderSize bytes of an archive.
func decodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, errs.InvalidWrap("header truncated", errs.ErrTruncated)
	}
	if [5]byte(b[:5]) != magic {
		return Header{}, errs.InvalidWrap("bad magic", errs.ErrInvalidMagic)
	}

	version := binary.LittleEndian.Uint16(b[versionOffset : versionOffset+2])
	if version != Version1 {
		return Header{}, errs.InvalidWrap("unsupported version", errs.ErrUnsupportedVersion)
	}

	frozen := b[flagOffset] == flagFrozen
	if !frozen && b[flagOffset] != flagNotFrozen {
		return Header{}, errs.Invalid("malformed frozen flag")
	}

	root := binary.LittleEndian.Uint64(b[rootOffsetFieldOffset : rootOffsetFieldOffset+8])

	return Header{Frozen: frozen, Version: version, RootOffset: root}, nil
}

// encodeInitialHeader writes the 16-byte header a writer emits on Create:
// frozen=0x00, version=1, root offset=0 (rewritten by Finalize).
func encodeInitialHeader() [HeaderSize]byte {
	var b [HeaderSize]byte
	copy(b[:5], magic[:])
	b[flagOffset] = flagNotFrozen
	binary.LittleEndian.PutUint16(b[versionOffset:versionOffset+2], Version1)
	binary.LittleEndian.PutUint64(b[rootOffsetFieldOffset:rootOffsetFieldOffset+8], 0)

	return b
}
