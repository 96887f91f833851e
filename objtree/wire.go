package objtree

import (
	"encoding/binary"

	"github.com/ogawa-go/ogawa/errs"
)

// putString appends a uint16-length-prefixed UTF-8 string to buf. Names in
// this tree (object/property names, inline metadata) are short identifiers,
// never large payloads, so a 16-bit length is ample and keeps headers small.
func putString(buf []byte, s string) []byte {
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(s)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, s...)

	return buf
}

// getString reads a putString-encoded string starting at data[off], and
// returns the string plus the offset immediately following it.
func getString(data []byte, off int) (string, int, error) {
	if len(data) < off+2 {
		return "", 0, errs.InvalidWrap("truncated string length", errs.ErrTruncated)
	}

	n := int(binary.LittleEndian.Uint16(data[off:]))
	off += 2

	if len(data) < off+n {
		return "", 0, errs.InvalidWrap("truncated string bytes", errs.ErrTruncated)
	}

	return string(data[off : off+n]), off + n, nil
}

func putUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func getUint32(data []byte, off int) (uint32, int, error) {
	if len(data) < off+4 {
		return 0, 0, errs.InvalidWrap("truncated uint32", errs.ErrTruncated)
	}
	return binary.LittleEndian.Uint32(data[off:]), off + 4, nil
}

func putUint64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func getUint64(data []byte, off int) (uint64, int, error) {
	if len(data) < off+8 {
		return 0, 0, errs.InvalidWrap("truncated uint64", errs.ErrTruncated)
	}
	return binary.LittleEndian.Uint64(data[off:]), off + 8, nil
}

// encode128 packs a SpookyHash/combined-hash pair as 16 little-endian
// bytes, the representation fed forward between running hashes and stored
// in object header tails.
func encode128(h1, h2 uint64) []byte {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], h1)
	binary.LittleEndian.PutUint64(b[8:16], h2)
	return b[:]
}

func decode128(data []byte, off int) (uint64, uint64, int, error) {
	if len(data) < off+16 {
		return 0, 0, 0, errs.InvalidWrap("truncated 128-bit hash", errs.ErrTruncated)
	}
	h1 := binary.LittleEndian.Uint64(data[off:])
	h2 := binary.LittleEndian.Uint64(data[off+8:])
	return h1, h2, off + 16, nil
}
