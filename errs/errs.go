// Package errs defines the closed error taxonomy surfaced at every boundary
// of the ogawa core: container I/O, property/object lookups, and sample
// decoding. Every fallible operation returns one of these kinds (wrapped
// with context via fmt.Errorf's %w), never a panic, for well-formed input.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the taxonomy's five buckets.
type Kind int

const (
	// KindUnknown is returned for errors outside the closed taxonomy.
	KindUnknown Kind = iota
	// KindIO marks an underlying system I/O failure.
	KindIO
	// KindInvalid marks a format/structural error (bad magic, truncation, ...).
	KindInvalid
	// KindNotFound marks a missing object, property, or path segment.
	KindNotFound
	// KindMmapFailed marks a failed memory-mapping attempt.
	KindMmapFailed
	// KindOther marks a logic error (decompression failure, hash mismatch, ...).
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindMmapFailed:
		return "mmap_failed"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// taggedError pairs an error with its taxonomy Kind so GetKind(err) can
// recover it after wrapping.
type taggedError struct {
	kind Kind
	err  error
}

func (e *taggedError) Error() string { return e.err.Error() }
func (e *taggedError) Unwrap() error { return e.err }

// Sentinel errors. Use errors.Is against these after classifying with
// GetKind, or compare GetKind(err) directly.
var (
	ErrInvalidMagic       = errors.New("ogawa: invalid magic")
	ErrUnsupportedVersion = errors.New("ogawa: unsupported container version")
	ErrNotFrozen          = errors.New("ogawa: archive is not frozen")
	ErrTruncated          = errors.New("ogawa: truncated data block")
	ErrOffsetOutOfRange   = errors.New("ogawa: offset out of range")
	ErrNotFound           = errors.New("ogawa: not found")
	ErrMmapFailed         = errors.New("ogawa: mmap failed")
	ErrDecompressFailed   = errors.New("ogawa: decompression failed")
	ErrHashMismatch       = errors.New("ogawa: hash mismatch")
	ErrFrozenArchive      = errors.New("ogawa: writer already finalized")
	ErrInvalidTimeSampling = errors.New("ogawa: invalid time sampling index")
)

// IO wraps an underlying system error as a KindIO error.
func IO(err error) error {
	if err == nil {
		return nil
	}

	return &taggedError{kind: KindIO, err: fmt.Errorf("ogawa: io error: %w", err)}
}

// Invalid builds a KindInvalid error from a reason string.
func Invalid(reason string) error {
	return &taggedError{kind: KindInvalid, err: fmt.Errorf("ogawa: invalid: %s", reason)}
}

// InvalidWrap builds a KindInvalid error wrapping a sentinel or other error.
func InvalidWrap(reason string, err error) error {
	return &taggedError{kind: KindInvalid, err: fmt.Errorf("ogawa: invalid: %s: %w", reason, err)}
}

// NotFound builds a KindNotFound error for a missing path/name.
func NotFound(path string) error {
	return &taggedError{kind: KindNotFound, err: fmt.Errorf("ogawa: not found: %s: %w", path, ErrNotFound)}
}

// MmapFailed builds a KindMmapFailed error from a reason string.
func MmapFailed(reason string) error {
	return &taggedError{kind: KindMmapFailed, err: fmt.Errorf("ogawa: mmap failed: %s: %w", reason, ErrMmapFailed)}
}

// Other builds a KindOther error from a reason string.
func Other(reason string) error {
	return &taggedError{kind: KindOther, err: fmt.Errorf("ogawa: %s", reason)}
}

// OtherWrap builds a KindOther error wrapping another error.
func OtherWrap(reason string, err error) error {
	return &taggedError{kind: KindOther, err: fmt.Errorf("ogawa: %s: %w", reason, err)}
}

// GetKind classifies err into its taxonomy Kind. Errors not produced by this
// package classify as KindUnknown.
func GetKind(err error) Kind {
	var te *taggedError
	if errors.As(err, &te) {
		return te.kind
	}

	return KindUnknown
}
