// Package sample implements per-property sample encoding, content-keyed
// deduplication, constant-folding/change tracking, and zlib compression of
// array payloads.
package sample

import (
	"encoding/hex"

	"github.com/ogawa-go/ogawa/internal/hash"
)

// Key is the dedup key for one encoded sample: two samples are identical
// iff all three fields match.
type Key struct {
	Digest    [16]byte
	NumBytes  uint64
	NumPoints uint64
}

// KeyOf computes the Key for an already-encoded sample payload, podSize
// being the byte width passed to the endian swap in MurmurHash3 (1 for
// string/wstring).
func KeyOf(encoded []byte, podSize int, numPoints uint64) Key {
	h1, h2 := hash.Hash128(encoded, podSize)
	return Key{
		Digest:    hash.EncodeDigest(h1, h2),
		NumBytes:  uint64(len(encoded)),
		NumPoints: numPoints,
	}
}

// Equal reports whether k and other reference the same logical sample.
func (k Key) Equal(other Key) bool {
	return k.Digest == other.Digest && k.NumBytes == other.NumBytes && k.NumPoints == other.NumPoints
}

// String renders the digest as hex, for logging and debugging.
func (k Key) String() string {
	return hex.EncodeToString(k.Digest[:])
}
