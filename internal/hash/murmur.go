package hash

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"

	"github.com/ogawa-go/ogawa/endian"
)

// Hash128 computes the MurmurHash3 x64_128 digest of data, the
// fingerprint used for sample digests. There is no seed parameter;
// podSize controls a per-element endian swap applied before hashing so
// the digest is host-neutral: for podSize 2, 4, or 8 the bytes of each
// element are reversed on a big-endian host before the hash runs.
// podSize 1 (or any other value) disables the swap.
func Hash128(data []byte, podSize int) (uint64, uint64) {
	if endian.IsNativeBigEndian() && (podSize == 2 || podSize == 4 || podSize == 8) {
		data = swapElements(data, podSize)
	}

	return murmur3.Sum128(data)
}

// swapElements returns a copy of data with the bytes of every podSize-sized
// element reversed. Trailing bytes that don't form a full element are left
// untouched (callers always pass exact multiples in practice).
func swapElements(data []byte, podSize int) []byte {
	out := make([]byte, len(data))
	copy(out, data)

	for off := 0; off+podSize <= len(out); off += podSize {
		elem := out[off : off+podSize]
		for i, j := 0, len(elem)-1; i < j; i, j = i+1, j-1 {
			elem[i], elem[j] = elem[j], elem[i]
		}
	}

	return out
}

// EncodeDigest writes a SampleKey digest's two 64-bit halves as 16
// little-endian bytes, the on-disk representation used by keyed data
// blocks.
func EncodeDigest(h1, h2 uint64) [16]byte {
	var out [16]byte
	binary.LittleEndian.PutUint64(out[0:8], h1)
	binary.LittleEndian.PutUint64(out[8:16], h2)

	return out
}

// DecodeDigest parses a 16-byte little-endian digest back into its two
// 64-bit halves.
func DecodeDigest(b []byte) (uint64, uint64) {
	return binary.LittleEndian.Uint64(b[0:8]), binary.LittleEndian.Uint64(b[8:16])
}
