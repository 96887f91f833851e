package sample

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/ogawa-go/ogawa/errs"
)

// Compressor and Decompressor are distinct interfaces so an
// implementation can have asymmetric performance characteristics, combined
// into Codec where one type serves both directions.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

type Codec interface {
	Compressor
	Decompressor
}

// NoOpCodec bypasses compression entirely, used when compression_hint is
// -1: the on-disk payload is byte-identical to the encoded sample.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

func (NoOpCodec) Compress(data []byte) ([]byte, error)   { return data, nil }
func (NoOpCodec) Decompress(data []byte) ([]byte, error) { return data, nil }

// ZlibCodec compresses array payload bytes with zlib at a fixed level
// (0 = store, 1..9 = deflate levels). compression_hint=-1 never reaches a
// ZlibCodec; it is handled by the caller selecting NoOpCodec instead.
type ZlibCodec struct {
	level int
}

var _ Codec = ZlibCodec{}

// NewZlibCodec builds a Codec for hint in [0,9]. Panics if hint is out of
// that range; callers are expected to validate compression_hint at
// configuration time (see internal/options usage in the writer).
func NewZlibCodec(hint int) ZlibCodec {
	if hint < 0 || hint > 9 {
		panic("sample: zlib hint out of range")
	}
	return ZlibCodec{level: hint}
}

func (c ZlibCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, errs.OtherWrap("zlib writer init failed", err)
	}

	if _, err := w.Write(data); err != nil {
		return nil, errs.OtherWrap("zlib compress failed", err)
	}
	if err := w.Close(); err != nil {
		return nil, errs.OtherWrap("zlib compress failed", err)
	}

	return buf.Bytes(), nil
}

func (c ZlibCodec) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errs.OtherWrap("zlib decompress failed", errs.ErrDecompressFailed)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.OtherWrap("zlib decompress failed", errs.ErrDecompressFailed)
	}

	return out, nil
}

// CodecForHint selects the Codec matching an archive's compression_hint
// configuration value: -1 disables compression outright,
// 0..9 selects zlib at that level.
func CodecForHint(hint int) (Codec, error) {
	if hint == -1 {
		return NoOpCodec{}, nil
	}
	if hint < 0 || hint > 9 {
		return nil, errs.Invalid("compression hint must be -1 or in 0..9")
	}

	return NewZlibCodec(hint), nil
}
