package hash

import "github.com/cespare/xxhash/v2"

// CacheKey computes the xxHash64 of a composite (path, property, sample
// index) triple, used by the bounded sample read cache to key its entries
// with a single uint64 instead of comparing the full tuple on every
// lookup.
func CacheKey(path, property string, sampleIndex int64) uint64 {
	var d xxhash.Digest
	d.Reset()
	_, _ = d.WriteString(path)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(property)
	_, _ = d.WriteString("\x00")

	var buf [8]byte
	u := uint64(sampleIndex)
	for i := 0; i < 8; i++ {
		buf[i] = byte(u >> (8 * i))
	}
	_, _ = d.Write(buf[:])

	return d.Sum64()
}
