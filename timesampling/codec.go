package timesampling

import (
	"encoding/binary"
	"math"

	"github.com/ogawa-go/ogawa/errs"
)

// Encode serializes every non-identity registry entry (index 0 is never
// written; readers reconstruct it) as, per entry: max_samples (u32) then
// the sampling's stored times. A Uniform entry stores exactly one time
// (its StartTime); Cyclic and Acyclic entries store their full Times list,
// length-prefixed.
//
// maxSamples must have one entry per non-identity registry slot, index i
// corresponding to registry index i+1.
func Encode(entries []Sampling, maxSamples []uint32) ([]byte, error) {
	if len(maxSamples) != len(entries) {
		return nil, errs.Invalid("max-samples slice length must match entry count")
	}

	var buf []byte
	for i, s := range entries {
		var hdr [4]byte
		binary.LittleEndian.PutUint32(hdr[:], maxSamples[i])
		buf = append(buf, hdr[:]...)

		switch s.Kind {
		case KindUniform:
			buf = append(buf, encodeKind(KindUniform)...)
			buf = append(buf, encodeChrono(s.TimePerCycle)...)
			buf = append(buf, encodeChrono(s.StartTime)...)
		case KindCyclic:
			buf = append(buf, encodeKind(KindCyclic)...)
			buf = append(buf, encodeChrono(s.TimePerCycle)...)
			buf = append(buf, encodeTimes(s.Times)...)
		case KindAcyclic:
			buf = append(buf, encodeKind(KindAcyclic)...)
			buf = append(buf, encodeTimes(s.Times)...)
		default:
			return nil, errs.Invalid("unknown time sampling kind")
		}
	}

	return buf, nil
}

// Decode parses the byte stream Encode produced for numEntries
// non-identity registry slots.
func Decode(data []byte, numEntries int) ([]Sampling, []uint32, error) {
	entries := make([]Sampling, 0, numEntries)
	maxSamples := make([]uint32, 0, numEntries)

	off := 0
	for i := 0; i < numEntries; i++ {
		if len(data) < off+5 {
			return nil, nil, errs.InvalidWrap("truncated time sampling entry", errs.ErrTruncated)
		}

		ms := binary.LittleEndian.Uint32(data[off:])
		off += 4

		kind := Kind(data[off])
		off++

		var s Sampling
		switch kind {
		case KindUniform:
			if len(data) < off+16 {
				return nil, nil, errs.InvalidWrap("truncated uniform sampling", errs.ErrTruncated)
			}
			s = Uniform(decodeChrono(data[off:]), decodeChrono(data[off+8:]))
			off += 16
		case KindCyclic:
			if len(data) < off+8 {
				return nil, nil, errs.InvalidWrap("truncated cyclic sampling", errs.ErrTruncated)
			}
			tpc := decodeChrono(data[off:])
			off += 8
			times, n, err := decodeTimes(data[off:])
			if err != nil {
				return nil, nil, err
			}
			off += n
			s = Cyclic(tpc, times)
		case KindAcyclic:
			times, n, err := decodeTimes(data[off:])
			if err != nil {
				return nil, nil, err
			}
			off += n
			s = Acyclic(times)
		default:
			return nil, nil, errs.Invalid("unknown time sampling kind byte")
		}

		entries = append(entries, s)
		maxSamples = append(maxSamples, ms)
	}

	return entries, maxSamples, nil
}

func encodeKind(k Kind) []byte { return []byte{byte(k)} }

func encodeChrono(c Chrono) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(c))
	return b[:]
}

func decodeChrono(b []byte) Chrono {
	return math.Float64frombits(binary.LittleEndian.Uint64(b[:8]))
}

func encodeTimes(times []Chrono) []byte {
	buf := make([]byte, 4, 4+8*len(times))
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(times)))
	for _, t := range times {
		buf = append(buf, encodeChrono(t)...)
	}
	return buf
}

func decodeTimes(data []byte) ([]Chrono, int, error) {
	if len(data) < 4 {
		return nil, 0, errs.InvalidWrap("truncated times count", errs.ErrTruncated)
	}
	count := int(binary.LittleEndian.Uint32(data[:4]))
	off := 4
	if len(data) < off+8*count {
		return nil, 0, errs.InvalidWrap("truncated times array", errs.ErrTruncated)
	}

	times := make([]Chrono, count)
	for i := 0; i < count; i++ {
		times[i] = decodeChrono(data[off:])
		off += 8
	}

	return times, off, nil
}
