package hash

import (
	"fmt"
	"testing"
)

// BenchmarkHash128 benchmarks sample digest computation across payload sizes.
func BenchmarkHash128(b *testing.B) {
	sizes := []struct {
		name  string
		bytes int
	}{
		{"64B", 64},
		{"4KB", 4 * 1024},
		{"256KB", 256 * 1024},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			data := make([]byte, size.bytes)
			for i := range data {
				data[i] = byte(i)
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				Hash128(data, 4)
			}
		})
	}
}

// BenchmarkSpooky_Update benchmarks incremental header hashing, the hot
// path of archive finalization.
func BenchmarkSpooky_Update(b *testing.B) {
	chunkSizes := []int{16, 192, 4096}

	for _, n := range chunkSizes {
		b.Run(fmt.Sprintf("%d_bytes", n), func(b *testing.B) {
			chunk := make([]byte, n)
			for i := range chunk {
				chunk[i] = byte(i)
			}

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				h := NewSpooky(0, 0)
				h.Update(chunk)
				h.Finalize()
			}
		})
	}
}

// BenchmarkShortEndMix benchmarks the per-sample digest fold.
func BenchmarkShortEndMix(b *testing.B) {
	digest := make([]byte, 16)
	for i := range digest {
		digest[i] = byte(i)
	}

	h1, h2 := uint64(1), uint64(2)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		h1, h2 = ShortEndMix(h1, h2, digest)
	}
}
