package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempArchivePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "archive.ogawa")
}

func TestWriter_MinimalArchive(t *testing.T) {
	path := tempArchivePath(t)

	w, err := Create(path)
	require.NoError(t, err)

	rootOff, err := w.WriteGroup(nil)
	require.NoError(t, err)

	require.NoError(t, w.Finalize(rootOff))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, info.Size(), int64(HeaderSize))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("Ogawa"), raw[:5])
	require.Equal(t, byte(0xFF), raw[5])
	require.Equal(t, uint16(1), uint16(raw[6])|uint16(raw[7])<<8)
	require.GreaterOrEqual(t, rootOff, uint64(HeaderSize))
}

func TestReader_OpenAndWalkGroup(t *testing.T) {
	for _, useMmap := range []bool{true, false} {
		path := tempArchivePath(t)

		w, err := Create(path)
		require.NoError(t, err)

		dataOff, err := w.WriteData([]byte("hello ogawa"))
		require.NoError(t, err)

		childGroupOff, err := w.WriteGroup(nil)
		require.NoError(t, err)

		rootOff, err := w.WriteGroup([]uint64{
			EncodeChildOffset(dataOff, KindData),
			EncodeChildOffset(childGroupOff, KindGroup),
		})
		require.NoError(t, err)
		require.NoError(t, w.Finalize(rootOff))

		r, err := Open(path, useMmap)
		require.NoError(t, err)
		defer r.Close()

		require.True(t, r.Header().Frozen)
		require.Equal(t, Version1, r.Header().Version)

		root, err := r.Root()
		require.NoError(t, err)
		require.Equal(t, 2, root.NumChildren())
		require.True(t, root.IsChildData(0))
		require.True(t, root.IsChildGroup(1))

		d, err := root.ChildData(0)
		require.NoError(t, err)
		payload, err := d.ReadAll()
		require.NoError(t, err)
		require.Equal(t, "hello ogawa", string(payload))

		g, err := root.ChildGroup(1)
		require.NoError(t, err)
		require.Equal(t, 0, g.NumChildren())
	}
}

func TestReader_RejectsUnfrozenArchive(t *testing.T) {
	path := tempArchivePath(t)

	w, err := Create(path)
	require.NoError(t, err)
	_, err = w.WriteGroup(nil)
	require.NoError(t, err)
	// Deliberately never call Finalize: the file stays frozen=0x00.
	require.NoError(t, w.f.Close())

	_, err = Open(path, false)
	require.Error(t, err)
}

func TestReader_RejectsBadMagic(t *testing.T) {
	path := tempArchivePath(t)
	require.NoError(t, os.WriteFile(path, make([]byte, HeaderSize), 0o644))

	_, err := Open(path, false)
	require.Error(t, err)
}

func TestReader_RejectsTruncatedFile(t *testing.T) {
	path := tempArchivePath(t)
	require.NoError(t, os.WriteFile(path, []byte("Oga"), 0o644))

	_, err := Open(path, false)
	require.Error(t, err)
}

func TestChildOffset_RoundTrip(t *testing.T) {
	packed := EncodeChildOffset(1234, KindData)
	off, kind := DecodeChildOffset(packed)
	require.Equal(t, uint64(1234), off)
	require.Equal(t, KindData, kind)

	packed = EncodeChildOffset(5678, KindGroup)
	off, kind = DecodeChildOffset(packed)
	require.Equal(t, uint64(5678), off)
	require.Equal(t, KindGroup, kind)
}

func TestWriter_WriteEmptyData(t *testing.T) {
	path := tempArchivePath(t)

	w, err := Create(path)
	require.NoError(t, err)

	emptyOff, err := w.WriteEmptyData()
	require.NoError(t, err)

	rootOff, err := w.WriteGroup([]uint64{EncodeChildOffset(emptyOff, KindData)})
	require.NoError(t, err)
	require.NoError(t, w.Finalize(rootOff))

	r, err := Open(path, false)
	require.NoError(t, err)
	defer r.Close()

	root, err := r.Root()
	require.NoError(t, err)

	d, err := root.ChildData(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0), d.Size())
}

func TestWriter_WriteAfterFinalizeFails(t *testing.T) {
	path := tempArchivePath(t)

	w, err := Create(path)
	require.NoError(t, err)
	rootOff, err := w.WriteGroup(nil)
	require.NoError(t, err)
	require.NoError(t, w.Finalize(rootOff))

	_, err = w.WriteData([]byte("too late"))
	require.Error(t, err)

	_, err = w.WriteGroup(nil)
	require.Error(t, err)

	require.Error(t, w.Finalize(rootOff))
}
