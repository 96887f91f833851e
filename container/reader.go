package container

import "github.com/ogawa-go/ogawa/errs"

// Reader opens an existing Ogawa archive for random-access reads. It
// validates the header eagerly; the root group and everything beneath it is
// parsed lazily as callers descend into it.
type Reader struct {
	s      streams
	header Header
}

// Open validates and opens path. If useMmap is true the file is memory
// mapped; on mmap failure the caller may retry with useMmap=false. Open
// itself does not fall back silently.
func Open(path string, useMmap bool) (*Reader, error) {
	var s streams
	var err error

	if useMmap {
		s, err = openMmapStreams(path)
	} else {
		s, err = openBufferedStreams(path)
	}
	if err != nil {
		return nil, err
	}

	if s.size() < HeaderSize {
		s.close()
		return nil, errs.InvalidWrap("file smaller than header", errs.ErrTruncated)
	}

	hdr, err := s.readAt(0, HeaderSize)
	if err != nil {
		s.close()
		return nil, err
	}

	header, err := decodeHeader(hdr)
	if err != nil {
		s.close()
		return nil, err
	}

	if !header.Frozen {
		s.close()
		return nil, errs.InvalidWrap("archive not frozen", errs.ErrNotFrozen)
	}

	if header.RootOffset < HeaderSize || header.RootOffset >= s.size() {
		s.close()
		return nil, errs.InvalidWrap("root offset out of range", errs.ErrOffsetOutOfRange)
	}

	return &Reader{s: s, header: header}, nil
}

// Header returns the archive's decoded fixed header.
func (r *Reader) Header() Header { return r.header }

// Root returns the root group, the entry point for the property/object
// tree layered on top of this container.
func (r *Reader) Root() (Group, error) {
	return newGroup(r.s, r.header.RootOffset)
}

// Close releases the underlying file handle (and unmaps it, in mmap mode).
func (r *Reader) Close() error {
	return r.s.close()
}
