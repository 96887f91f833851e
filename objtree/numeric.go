package objtree

import (
	"math"

	"github.com/ogawa-go/ogawa/endian"
	"github.com/ogawa-go/ogawa/errs"
	"github.com/ogawa-go/ogawa/format"
)

// numericElemCount validates that raw holds whole pod elements and returns
// how many.
func numericElemCount(raw []byte, pod format.Pod) (int, error) {
	size := pod.Size()
	if pod == format.PodString || pod == format.PodWString || size == 0 {
		return 0, errs.Invalid("pod has no numeric representation")
	}
	if len(raw)%size != 0 {
		return 0, errs.InvalidWrap("payload length is not a multiple of the pod size", errs.ErrTruncated)
	}
	return len(raw) / size, nil
}

// decodeNumericAsFloat64 reinterprets raw as a little-endian array of pod
// elements and widens each to float64. string/wstring PODs have no numeric
// representation and are rejected.
func decodeNumericAsFloat64(raw []byte, pod format.Pod) ([]float64, error) {
	n, err := numericElemCount(raw, pod)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	if err := decodeNumericInto(out, raw, pod); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeNumericInto fills out, which must have length len(raw)/pod.Size(),
// letting callers reuse a pooled slice for transient conversions.
func decodeNumericInto(out []float64, raw []byte, pod format.Pod) error {
	size := pod.Size()
	eng := endian.GetLittleEndianEngine()
	n := len(out)

	for i := 0; i < n; i++ {
		elem := raw[i*size : (i+1)*size]
		switch pod {
		case format.PodBool, format.PodUint8:
			out[i] = float64(elem[0])
		case format.PodInt8:
			out[i] = float64(int8(elem[0]))
		case format.PodUint16:
			out[i] = float64(eng.Uint16(elem))
		case format.PodInt16:
			out[i] = float64(int16(eng.Uint16(elem)))
		case format.PodUint32:
			out[i] = float64(eng.Uint32(elem))
		case format.PodInt32:
			out[i] = float64(int32(eng.Uint32(elem)))
		case format.PodUint64:
			out[i] = float64(eng.Uint64(elem))
		case format.PodInt64:
			out[i] = float64(int64(eng.Uint64(elem)))
		case format.PodFloat16:
			out[i] = float64(decodeFloat16(eng.Uint16(elem)))
		case format.PodFloat32:
			out[i] = float64(math.Float32frombits(eng.Uint32(elem)))
		case format.PodFloat64:
			out[i] = math.Float64frombits(eng.Uint64(elem))
		default:
			return errs.Invalid("unsupported pod for numeric conversion")
		}
	}

	return nil
}

// decodeFloat16 widens an IEEE 754 half-precision bit pattern to float32.
// The standard library has no float16 type; this is a direct bit-layout
// conversion (1 sign, 5 exponent, 10 mantissa bits), including subnormals.
func decodeFloat16(bits uint16) float32 {
	sign := uint32(bits&0x8000) << 16
	exp := uint32(bits&0x7c00) >> 10
	frac := uint32(bits & 0x03ff)

	switch exp {
	case 0:
		if frac == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal: normalize by shifting the fraction left until the
		// implicit leading bit appears, adjusting the exponent to match.
		e := int32(0)
		for frac&0x0400 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x03ff
		exp32 := uint32(int32(127-15) + 1 + e)
		return math.Float32frombits(sign | exp32<<23 | frac<<13)
	case 0x1f:
		return math.Float32frombits(sign | 0xff<<23 | frac<<13)
	default:
		exp32 := exp - 15 + 127
		return math.Float32frombits(sign | exp32<<23 | frac<<13)
	}
}
