package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHash128_Deterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	h1a, h2a := Hash128(data, 4)
	h1b, h2b := Hash128(data, 4)
	require.Equal(t, h1a, h1b)
	require.Equal(t, h2a, h2b)
}

func TestHash128_DistinguishesPayload(t *testing.T) {
	a1, a2 := Hash128([]byte{1, 2, 3, 4}, 4)
	b1, b2 := Hash128([]byte{1, 2, 3, 5}, 4)
	require.False(t, a1 == b1 && a2 == b2)
}

func TestHash128_EmptyInput(t *testing.T) {
	h1, h2 := Hash128(nil, 1)
	// Unseeded MurmurHash3 x64_128 maps empty input to the all-zero digest.
	require.True(t, h1 == 0 && h2 == 0)
}

func TestDigestRoundTrip(t *testing.T) {
	h1, h2 := Hash128([]byte("payload"), 1)
	enc := EncodeDigest(h1, h2)
	require.Len(t, enc, 16)

	d1, d2 := DecodeDigest(enc[:])
	require.Equal(t, h1, d1)
	require.Equal(t, h2, d2)
}

func TestSwapElements(t *testing.T) {
	in := []byte{0x01, 0x02, 0x03, 0x04}
	out := swapElements(in, 4)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, out)
	// original untouched
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, in)
}
