// Package format defines the plain-old-data type system shared by every
// layer of the ogawa core: the POD tag, the (pod, extent) DataType pair,
// array Dimensions, and the PropertyType discriminator. These are pure
// value types: no I/O, no allocation beyond the occasional slice.
package format

import "fmt"

// Pod is a stable numeric tag identifying one of the 14 plain-old-data
// element kinds the core understands. Each tag carries a fixed byte size
// used for both on-disk encoding and hash-swap decisions.
type Pod uint8

const (
	// PodBool represents a single-byte boolean (0/1).
	PodBool Pod = iota + 1
	// PodUint8 represents an unsigned 8-bit integer.
	PodUint8
	// PodInt8 represents a signed 8-bit integer.
	PodInt8
	// PodUint16 represents an unsigned 16-bit integer.
	PodUint16
	// PodInt16 represents a signed 16-bit integer.
	PodInt16
	// PodUint32 represents an unsigned 32-bit integer.
	PodUint32
	// PodInt32 represents a signed 32-bit integer.
	PodInt32
	// PodUint64 represents an unsigned 64-bit integer.
	PodUint64
	// PodInt64 represents a signed 64-bit integer.
	PodInt64
	// PodFloat16 represents an IEEE 754 half-precision float.
	PodFloat16
	// PodFloat32 represents an IEEE 754 single-precision float.
	PodFloat32
	// PodFloat64 represents an IEEE 754 double-precision float.
	PodFloat64
	// PodString represents a UTF-8 encoded string element.
	PodString
	// PodWString represents a UTF-16LE encoded string element.
	PodWString
)

// podSizes gives the byte size of a single element of each POD. string and
// wstring report size 1, which only matters for digest computation; their
// actual encoded byte length is variable and computed separately.
var podSizes = map[Pod]int{
	PodBool:    1,
	PodUint8:   1,
	PodInt8:    1,
	PodUint16:  2,
	PodInt16:   2,
	PodUint32:  4,
	PodInt32:   4,
	PodUint64:  8,
	PodInt64:   8,
	PodFloat16: 2,
	PodFloat32: 4,
	PodFloat64: 8,
	PodString:  1,
	PodWString: 1,
}

var podNames = map[Pod]string{
	PodBool:    "bool",
	PodUint8:   "uint8",
	PodInt8:    "int8",
	PodUint16:  "uint16",
	PodInt16:   "int16",
	PodUint32:  "uint32",
	PodInt32:   "int32",
	PodUint64:  "uint64",
	PodInt64:   "int64",
	PodFloat16: "float16",
	PodFloat32: "float32",
	PodFloat64: "float64",
	PodString:  "string",
	PodWString: "wstring",
}

// Size returns the byte size of one element of the POD (1-8; string and
// wstring report 1).
func (p Pod) Size() int {
	return podSizes[p]
}

// Name returns the stable lowercase name for the POD tag.
func (p Pod) Name() string {
	if n, ok := podNames[p]; ok {
		return n
	}

	return "unknown"
}

func (p Pod) String() string { return p.Name() }

// Valid reports whether p is one of the 14 known POD tags.
func (p Pod) Valid() bool {
	_, ok := podSizes[p]
	return ok
}

// FromName resolves a POD tag from its stable name. Returns ok=false for
// unrecognized names.
func FromName(name string) (Pod, bool) {
	for p, n := range podNames {
		if n == name {
			return p, true
		}
	}

	return 0, false
}

// DataType pairs a POD tag with an extent (the number of POD elements per
// logical value: scalar = 1, vec3 = 3, mat4 = 16, ...).
type DataType struct {
	Pod    Pod
	Extent uint8
}

// NumBytes returns pod.Size() * extent, the byte footprint of one logical
// value of this DataType.
func (d DataType) NumBytes() int {
	return d.Pod.Size() * int(d.Extent)
}

func (d DataType) String() string {
	if d.Extent == 1 {
		return d.Pod.Name()
	}

	return fmt.Sprintf("%s[%d]", d.Pod.Name(), d.Extent)
}

// Valid reports whether the DataType has a known POD and a positive extent.
func (d DataType) Valid() bool {
	return d.Pod.Valid() && d.Extent > 0
}

// Common constructors for frequently used pod/extent pairs.
func Float32x1() DataType  { return DataType{Pod: PodFloat32, Extent: 1} }
func Float32x3() DataType  { return DataType{Pod: PodFloat32, Extent: 3} }
func Float32x16() DataType { return DataType{Pod: PodFloat32, Extent: 16} }
func Float64x1() DataType  { return DataType{Pod: PodFloat64, Extent: 1} }
func Int32x1() DataType    { return DataType{Pod: PodInt32, Extent: 1} }
func Uint32x1() DataType   { return DataType{Pod: PodUint32, Extent: 1} }
func Stringx1() DataType   { return DataType{Pod: PodString, Extent: 1} }
func Boolx1() DataType     { return DataType{Pod: PodBool, Extent: 1} }

// Chrono is a point in time expressed as float64 seconds.
type Chrono = float64

// PropertyType discriminates the three property shapes of the tree.
type PropertyType uint8

const (
	// PropertyScalar holds one value of DataType per sample.
	PropertyScalar PropertyType = iota + 1
	// PropertyArray holds a variable-length array of DataType elements
	// plus per-sample Dimensions.
	PropertyArray
	// PropertyCompound holds an ordered list of child properties and no
	// DataType of its own.
	PropertyCompound
)

func (t PropertyType) String() string {
	switch t {
	case PropertyScalar:
		return "scalar"
	case PropertyArray:
		return "array"
	case PropertyCompound:
		return "compound"
	default:
		return "unknown"
	}
}
