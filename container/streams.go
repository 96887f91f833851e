package container

import (
	"encoding/binary"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/ogawa-go/ogawa/errs"
)

// streams is the read-side random-access abstraction a Reader is built on.
// The mmap-backed implementation returns zero-copy slices; the buffered one
// allocates a fresh copy per read. Both report the total file size so group
// and data parsing can bounds-check offsets before trusting declared lengths.
type streams interface {
	// readAt returns the n bytes starting at offset, or an error if the
	// read would run past the end of the file.
	readAt(offset uint64, n uint64) ([]byte, error)
	size() uint64
	close() error
}

// mmapStreams serves reads directly out of a memory-mapped file.
type mmapStreams struct {
	f    *os.File
	data mmap.MMap
}

func openMmapStreams(path string) (*mmapStreams, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO(err)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, errs.MmapFailed(err.Error())
	}

	return &mmapStreams{f: f, data: data}, nil
}

func (s *mmapStreams) readAt(offset, n uint64) ([]byte, error) {
	end := offset + n
	if end < offset || end > uint64(len(s.data)) {
		return nil, errs.InvalidWrap("offset out of range", errs.ErrOffsetOutOfRange)
	}

	return s.data[offset:end], nil
}

func (s *mmapStreams) size() uint64 { return uint64(len(s.data)) }

func (s *mmapStreams) close() error {
	if err := s.data.Unmap(); err != nil {
		return errs.IO(err)
	}

	return errs.IO(s.f.Close())
}

// bufferedStreams serves reads via ordinary positioned reads, copying each
// requested range into a freshly allocated slice. Used when use_mmap is
// false, or as the MmapFailed fallback path.
type bufferedStreams struct {
	f        *os.File
	fileSize uint64
}

func openBufferedStreams(path string) (*bufferedStreams, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO(err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errs.IO(err)
	}

	return &bufferedStreams{f: f, fileSize: uint64(info.Size())}, nil
}

func (s *bufferedStreams) readAt(offset, n uint64) ([]byte, error) {
	end := offset + n
	if end < offset || end > s.fileSize {
		return nil, errs.InvalidWrap("offset out of range", errs.ErrOffsetOutOfRange)
	}

	buf := make([]byte, n)
	if _, err := s.f.ReadAt(buf, int64(offset)); err != nil && err != io.EOF {
		return nil, errs.IO(err)
	}

	return buf, nil
}

func (s *bufferedStreams) size() uint64 { return s.fileSize }

func (s *bufferedStreams) close() error { return errs.IO(s.f.Close()) }

// readU64 decodes a little-endian u64 at the start of b.
func readU64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b[:8])
}
