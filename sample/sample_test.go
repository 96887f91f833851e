package sample

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeString_EmptyElementIsSingleNull(t *testing.T) {
	buf := EncodeString([]string{""})
	require.Equal(t, []byte{0}, buf)
}

func TestEncodeString_RoundTrip(t *testing.T) {
	values := []string{"alpha", "", "beta gamma"}
	buf := EncodeString(values)

	decoded, err := DecodeString(buf, len(values))
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestDecodeString_TruncatedFails(t *testing.T) {
	_, err := DecodeString([]byte("no-terminator"), 1)
	require.Error(t, err)
}

func TestEncodeWString_RoundTrip(t *testing.T) {
	values := []string{"héllo", "", "日本語"}
	buf := EncodeWString(values)

	decoded, err := DecodeWString(buf, len(values))
	require.NoError(t, err)
	require.Equal(t, values, decoded)
}

func TestKeyOf_DeterministicAndDistinguishes(t *testing.T) {
	a := KeyOf([]byte{1, 2, 3, 4}, 4, 1)
	b := KeyOf([]byte{1, 2, 3, 4}, 4, 1)
	c := KeyOf([]byte{1, 2, 3, 5}, 4, 1)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestDedupMap_ReusesOffsetWhenEnabled(t *testing.T) {
	d := NewDedupMap(true)
	key := KeyOf([]byte{9, 9, 9, 9}, 4, 1)

	_, ok := d.Lookup(key, PayloadRaw)
	require.False(t, ok)

	d.Insert(key, PayloadRaw, 128)

	off, ok := d.Lookup(key, PayloadRaw)
	require.True(t, ok)
	require.EqualValues(t, 128, off)

	_, ok = d.Lookup(key, PayloadCompressed)
	require.False(t, ok, "forms must not dedup against each other")
}

func TestDedupMap_DisabledNeverReuses(t *testing.T) {
	d := NewDedupMap(false)
	key := KeyOf([]byte{1, 1, 1, 1}, 4, 1)

	d.Insert(key, PayloadRaw, 64)

	_, ok := d.Lookup(key, PayloadRaw)
	require.False(t, ok, "disabled dedup must never report a hit")
}

func TestChangeTracker_ConstantProperty(t *testing.T) {
	c := &ChangeTracker{}
	key := KeyOf([]byte{1, 2, 3, 4}, 4, 1)

	c.Observe(key)
	c.Observe(key)
	c.Observe(key)

	require.True(t, c.IsConstant())
	require.Equal(t, 1, c.MaxNumSamples())
	require.Equal(t, 3, c.NumSamples())
}

func TestChangeTracker_VaryingProperty(t *testing.T) {
	c := &ChangeTracker{}
	k1 := KeyOf([]byte{1}, 1, 1)
	k2 := KeyOf([]byte{2}, 1, 1)

	c.Observe(k1)
	c.Observe(k1)
	c.Observe(k2)
	c.Observe(k2)

	require.False(t, c.IsConstant())
	require.Equal(t, 0, c.FirstChangedIndex())
	require.Equal(t, 2, c.LastChangedIndex())
	require.Equal(t, 4, c.MaxNumSamples())
}

func TestCodecForHint_NoCompression(t *testing.T) {
	codec, err := CodecForHint(-1)
	require.NoError(t, err)

	data := []byte("round trip me")
	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, data, compressed, "hint -1 must be byte-identical to the encoded form")
}

func TestCodecForHint_ZlibRoundTrip(t *testing.T) {
	for hint := 0; hint <= 9; hint++ {
		codec, err := CodecForHint(hint)
		require.NoError(t, err)

		data := []byte("some reasonably compressible payload data data data data")
		compressed, err := codec.Compress(data)
		require.NoError(t, err)

		decompressed, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Equal(t, data, decompressed)
	}
}

func TestCodecForHint_InvalidHint(t *testing.T) {
	_, err := CodecForHint(10)
	require.Error(t, err)
}

func TestZlibCodec_DecompressGarbageFails(t *testing.T) {
	codec := NewZlibCodec(6)
	_, err := codec.Decompress([]byte("not zlib data at all"))
	require.Error(t, err)
}
