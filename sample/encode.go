package sample

import (
	"unicode/utf16"

	"github.com/ogawa-go/ogawa/errs"
)

// EncodeString encodes a string array sample: each
// element's UTF-8 bytes followed by a single null terminator, even when
// the element is empty (a scalar empty-string sample is exactly one \0
// byte). Numeric samples need no equivalent helper; their caller already
// holds native little-endian bytes and passes them straight through.
func EncodeString(values []string) []byte {
	size := 0
	for _, v := range values {
		size += len(v) + 1
	}

	buf := make([]byte, 0, size)
	for _, v := range values {
		buf = append(buf, v...)
		buf = append(buf, 0)
	}

	return buf
}

// DecodeString splits a string array payload produced by EncodeString back
// into numElements null-terminated UTF-8 strings.
func DecodeString(data []byte, numElements int) ([]string, error) {
	out := make([]string, 0, numElements)

	start := 0
	for i := 0; i < numElements; i++ {
		end := start
		for end < len(data) && data[end] != 0 {
			end++
		}
		if end >= len(data) {
			return nil, errs.InvalidWrap("unterminated string element", errs.ErrTruncated)
		}

		out = append(out, string(data[start:end]))
		start = end + 1
	}

	return out, nil
}

// EncodeWString encodes a wstring array sample: each element's UTF-16LE
// code units followed by a single null (0x0000) terminator code unit.
func EncodeWString(values []string) []byte {
	var units []uint16
	for _, v := range values {
		units = append(units, utf16.Encode([]rune(v))...)
		units = append(units, 0)
	}

	buf := make([]byte, len(units)*2)
	for i, u := range units {
		buf[2*i] = byte(u)
		buf[2*i+1] = byte(u >> 8)
	}

	return buf
}

// DecodeWString splits a wstring array payload produced by EncodeWString
// back into numElements null-terminated UTF-16LE strings.
func DecodeWString(data []byte, numElements int) ([]string, error) {
	out := make([]string, 0, numElements)

	pos := 0 // index into data, in 2-byte units
	for i := 0; i < numElements; i++ {
		var units []uint16
		for {
			if pos*2+2 > len(data) {
				return nil, errs.InvalidWrap("unterminated wstring element", errs.ErrTruncated)
			}
			u := uint16(data[pos*2]) | uint16(data[pos*2+1])<<8
			pos++
			if u == 0 {
				break
			}
			units = append(units, u)
		}

		out = append(out, string(utf16.Decode(units)))
	}

	return out, nil
}
