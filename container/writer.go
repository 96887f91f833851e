package container

import (
	"encoding/binary"
	"os"

	"github.com/ogawa-go/ogawa/errs"
	"github.com/ogawa-go/ogawa/internal/pool"
)

// Writer is the append-only, deferred-emission write side of the Ogawa
// container. It writes the placeholder header on Create, appends data and
// group nodes as the caller builds the property/object tree, and commits
// the archive as a single atomic step in Finalize: the frozen byte is the
// only thing that makes a file observable as complete to Open.
type Writer struct {
	f      *os.File
	offset uint64 // next byte offset to be written
	done   bool
}

// Create truncates (or creates) path and writes the 16-byte placeholder
// header: frozen=0x00, version=1, root offset=0.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errs.IO(err)
	}

	hdr := encodeInitialHeader()
	if _, err := f.Write(hdr[:]); err != nil {
		f.Close()
		return nil, errs.IO(err)
	}

	return &Writer{f: f, offset: HeaderSize}, nil
}

// WriteData emits `[u64 size][payload]` and returns the absolute offset at
// which the size prefix begins, the value a caller stores (with the Data
// kind bit set) in a parent group's child list.
func (w *Writer) WriteData(payload []byte) (uint64, error) {
	if w.done {
		return 0, errs.OtherWrap("write after finalize", errs.ErrFrozenArchive)
	}

	offset := w.offset

	var sizeBuf [8]byte
	binary.LittleEndian.PutUint64(sizeBuf[:], uint64(len(payload)))

	if _, err := w.f.Write(sizeBuf[:]); err != nil {
		return 0, errs.IO(err)
	}
	if len(payload) > 0 {
		if _, err := w.f.Write(payload); err != nil {
			return 0, errs.IO(err)
		}
	}

	w.offset += 8 + uint64(len(payload))

	return offset, nil
}

// WriteEmptyData emits a zero-length data block, used by the dimensions
// optimization for 1-D non-string arrays.
func (w *Writer) WriteEmptyData() (uint64, error) {
	return w.WriteData(nil)
}

// WriteGroup emits `[u64 num_children][num_children x u64 child]`. Each
// entry in children must already carry its kind bit (set via
// EncodeChildOffset) and returns the absolute offset of the group's size
// prefix.
func (w *Writer) WriteGroup(children []uint64) (uint64, error) {
	if w.done {
		return 0, errs.OtherWrap("write after finalize", errs.ErrFrozenArchive)
	}

	offset := w.offset

	buf := pool.GetGroupBuffer()
	defer pool.PutGroupBuffer(buf)
	buf.ExtendOrGrow(8 + 8*len(children))

	b := buf.Bytes()
	binary.LittleEndian.PutUint64(b[:8], uint64(len(children)))
	for i, c := range children {
		binary.LittleEndian.PutUint64(b[8+i*8:16+i*8], c)
	}

	if _, err := w.f.Write(b); err != nil {
		return 0, errs.IO(err)
	}

	w.offset += uint64(len(b))

	return offset, nil
}

// Finalize seeks back to the header, writes the root group's absolute
// offset, and sets the frozen byte to 0xFF last. After Finalize no further
// writes are accepted.
func (w *Writer) Finalize(rootOffset uint64) error {
	if w.done {
		return errs.OtherWrap("already finalized", errs.ErrFrozenArchive)
	}

	var rootBuf [8]byte
	binary.LittleEndian.PutUint64(rootBuf[:], rootOffset)
	if _, err := w.f.WriteAt(rootBuf[:], int64(rootOffsetFieldOffset)); err != nil {
		return errs.IO(err)
	}

	// Everything except the frozen byte must be durable before the flag
	// flips; the flag is the single commit point a reader trusts.
	if err := w.f.Sync(); err != nil {
		return errs.IO(err)
	}

	if _, err := w.f.WriteAt([]byte{flagFrozen}, int64(flagOffset)); err != nil {
		return errs.IO(err)
	}

	if err := w.f.Sync(); err != nil {
		return errs.IO(err)
	}

	w.done = true

	return errs.IO(w.f.Close())
}
