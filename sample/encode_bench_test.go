package sample

import (
	"fmt"
	"strings"
	"testing"
)

// BenchmarkEncodeString benchmarks string sample encoding across element
// counts.
func BenchmarkEncodeString(b *testing.B) {
	sizes := []struct {
		name  string
		count int
	}{
		{"10_elements", 10},
		{"100_elements", 100},
		{"1000_elements", 1000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			values := make([]string, size.count)
			for i := range values {
				values[i] = fmt.Sprintf("element_%d", i)
			}

			b.ResetTimer()
			b.ReportAllocs()

			for benchI := 0; benchI < b.N; benchI++ {
				EncodeString(values)
			}
		})
	}
}

// BenchmarkKeyOf benchmarks sample key computation, which runs once per
// appended sample.
func BenchmarkKeyOf(b *testing.B) {
	payload := []byte(strings.Repeat("abcd", 1024))

	b.ResetTimer()
	b.ReportAllocs()

	for benchI := 0; benchI < b.N; benchI++ {
		KeyOf(payload, 4, 1024)
	}
}

// BenchmarkZlibCodec_Compress benchmarks array payload compression at
// hint 6.
func BenchmarkZlibCodec_Compress(b *testing.B) {
	payload := []byte(strings.Repeat("abcdefgh", 4096))
	codec := NewZlibCodec(6)

	b.ResetTimer()
	b.ReportAllocs()

	for benchI := 0; benchI < b.N; benchI++ {
		if _, err := codec.Compress(payload); err != nil {
			b.Fatal(err)
		}
	}
}
