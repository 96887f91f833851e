package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpooky_EmptyIsNonZero(t *testing.T) {
	s := NewSpooky(0, 0)
	h1, h2 := s.Finalize()
	require.True(t, h1 != 0 || h2 != 0, "empty SpookyHash digest must be well-defined and non-zero")
}

func TestSpooky_Deterministic(t *testing.T) {
	msg := []byte("deterministic input for spooky hash")
	s1 := NewSpooky(1, 2)
	s1.Update(msg)
	a1, a2 := s1.Finalize()

	s2 := NewSpooky(1, 2)
	s2.Update(msg)
	b1, b2 := s2.Finalize()

	require.Equal(t, a1, b1)
	require.Equal(t, a2, b2)
}

func TestSpooky_ChunkingIndependence(t *testing.T) {
	msg := make([]byte, 500)
	for i := range msg {
		msg[i] = byte(i * 7)
	}

	whole := NewSpooky(5, 9)
	whole.Update(msg)
	h1, h2 := whole.Finalize()

	chunked := NewSpooky(5, 9)
	chunked.Update(msg[:17])
	chunked.Update(msg[17:200])
	chunked.Update(msg[200:201])
	chunked.Update(msg[201:])
	c1, c2 := chunked.Finalize()

	require.Equal(t, h1, c1, "hash1 must not depend on chunk boundaries")
	require.Equal(t, h2, c2, "hash2 must not depend on chunk boundaries")
}

func TestSpooky_MatchesOneShot(t *testing.T) {
	lengths := []int{0, 1, 15, 16, 31, 32, 95, 96, 191, 192, 193, 500, 1000}
	for _, n := range lengths {
		msg := make([]byte, n)
		for i := range msg {
			msg[i] = byte(i*13 + 1)
		}

		s := NewSpooky(42, 7)
		s.Update(msg)
		incH1, incH2 := s.Finalize()

		oneH1, oneH2 := SpookyHash128(42, 7, msg)

		require.Equalf(t, oneH1, incH1, "hash1 mismatch at length %d", n)
		require.Equalf(t, oneH2, incH2, "hash2 mismatch at length %d", n)
	}
}

func TestSpooky_DifferentSeedsDiffer(t *testing.T) {
	msg := []byte("some payload bytes")
	a1, a2 := SpookyHash128(0, 0, msg)
	b1, b2 := SpookyHash128(1, 0, msg)
	require.False(t, a1 == b1 && a2 == b2)
}

func TestShortEndMix_FoldsDistinctly(t *testing.T) {
	base1, base2 := uint64(11), uint64(22)
	r1, r2 := ShortEndMix(base1, base2, []byte{1, 2, 3, 4})
	s1, s2 := ShortEndMix(base1, base2, []byte{1, 2, 3, 5})
	require.False(t, r1 == s1 && r2 == s2)
}

func TestShortEndMix_Deterministic(t *testing.T) {
	a1, a2 := ShortEndMix(3, 4, []byte("digest-bytes-of-a-child-hash!!!"))
	b1, b2 := ShortEndMix(3, 4, []byte("digest-bytes-of-a-child-hash!!!"))
	require.Equal(t, a1, b1)
	require.Equal(t, a2, b2)
}
