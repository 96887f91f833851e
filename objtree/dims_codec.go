package objtree

import (
	"github.com/ogawa-go/ogawa/format"
)

// dimsOptimized reports whether an array sample's dimensions block can be
// collapsed to a zero-length Data node: the POD must be neither string
// nor wstring, and the shape must be rank <= 1. Readers
// reconstruct num_points from the payload length in that case.
func dimsOptimized(pod format.Pod, dims format.Dimensions) bool {
	return pod != format.PodString && pod != format.PodWString && dims.Rank() <= 1
}

// encodeDims renders a non-optimized dimensions block: rank (u32) followed
// by each axis extent (u64). This generalizes the single-u64 num_points
// record of the common rank-1 case to arbitrary rank, so multi-axis
// arrays (not just the rank<=1 numeric fast path) round trip exactly.
func encodeDims(dims format.Dimensions) []byte {
	buf := putUint32(nil, uint32(dims.Rank()))
	for _, v := range dims {
		buf = putUint64(buf, v)
	}
	return buf
}

// decodeDims parses an encodeDims block.
func decodeDims(data []byte) (format.Dimensions, error) {
	rank, off, err := getUint32(data, 0)
	if err != nil {
		return nil, err
	}

	dims := make(format.Dimensions, rank)
	for i := range dims {
		v, next, err := getUint64(data, off)
		if err != nil {
			return nil, err
		}
		dims[i] = v
		off = next
	}

	return dims, nil
}
