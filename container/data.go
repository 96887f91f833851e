package container

import "github.com/ogawa-go/ogawa/errs"

// Data is a handle to a `[u64 size][size bytes payload]` node. It does not
// eagerly read the payload; Size is known from the header read but the
// bytes are fetched lazily by ReadAll/ReadInto/Slice.
type Data struct {
	s      streams
	offset uint64 // offset of the u64 size prefix
	n      uint64 // payload size in bytes
}

func newData(s streams, offset uint64) (Data, error) {
	hdr, err := s.readAt(offset, 8)
	if err != nil {
		return Data{}, err
	}

	return Data{s: s, offset: offset, n: readU64(hdr)}, nil
}

// Size returns the payload length in bytes.
func (d Data) Size() uint64 { return d.n }

// ReadAll returns the full payload. In mmap mode this is a zero-copy slice
// into the mapped file; callers that retain it across the archive's
// lifetime must keep the archive open.
func (d Data) ReadAll() ([]byte, error) {
	if d.n == 0 {
		return nil, nil
	}

	return d.s.readAt(d.offset+8, d.n)
}

// ReadInto copies the payload into buf, which must have length >= Size().
func (d Data) ReadInto(buf []byte) error {
	payload, err := d.ReadAll()
	if err != nil {
		return err
	}

	copy(buf, payload)

	return nil
}

// Slice returns a zero-copy view of [start, end) within the payload. Only
// meaningful (and only zero-copy) when the underlying streams is mmap
// backed; buffered streams still honor it by copying the requested range.
func (d Data) Slice(start, end uint64) ([]byte, error) {
	if end < start || end > d.n {
		return nil, errs.InvalidWrap("slice range out of bounds", errs.ErrOffsetOutOfRange)
	}

	return d.s.readAt(d.offset+8+start, end-start)
}
