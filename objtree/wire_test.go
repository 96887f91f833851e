package objtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutGetString_RoundTrip(t *testing.T) {
	buf := putString(nil, "hello")
	buf = putString(buf, "")
	buf = putString(buf, "world")

	s1, off, err := getString(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "hello", s1)

	s2, off, err := getString(buf, off)
	require.NoError(t, err)
	require.Equal(t, "", s2)

	s3, _, err := getString(buf, off)
	require.NoError(t, err)
	require.Equal(t, "world", s3)
}

func TestGetString_TruncatedFails(t *testing.T) {
	_, _, err := getString([]byte{5, 0, 'a', 'b'}, 0)
	require.Error(t, err)
}

func TestPutGetUint32_RoundTrip(t *testing.T) {
	buf := putUint32(nil, 0xdeadbeef)
	v, off, err := getUint32(buf, 0)
	require.NoError(t, err)
	require.EqualValues(t, 0xdeadbeef, v)
	require.Equal(t, 4, off)
}

func TestPutGetUint64_RoundTrip(t *testing.T) {
	buf := putUint64(nil, 0x0123456789abcdef)
	v, off, err := getUint64(buf, 0)
	require.NoError(t, err)
	require.EqualValues(t, 0x0123456789abcdef, v)
	require.Equal(t, 8, off)
}

func TestEncodeDecode128_RoundTrip(t *testing.T) {
	buf := encode128(11, 22)
	h1, h2, off, err := decode128(buf, 0)
	require.NoError(t, err)
	require.EqualValues(t, 11, h1)
	require.EqualValues(t, 22, h2)
	require.Equal(t, 16, off)
}
