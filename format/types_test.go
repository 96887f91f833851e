package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPod_SizeAndName(t *testing.T) {
	tests := []struct {
		pod  Pod
		size int
		name string
	}{
		{PodBool, 1, "bool"},
		{PodUint8, 1, "uint8"},
		{PodInt16, 2, "int16"},
		{PodFloat32, 4, "float32"},
		{PodFloat64, 8, "float64"},
		{PodString, 1, "string"},
		{PodWString, 1, "wstring"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.size, tt.pod.Size())
			require.Equal(t, tt.name, tt.pod.Name())
			require.True(t, tt.pod.Valid())
		})
	}
}

func TestPod_FromName(t *testing.T) {
	p, ok := FromName("float32")
	require.True(t, ok)
	require.Equal(t, PodFloat32, p)

	_, ok = FromName("nope")
	require.False(t, ok)
}

func TestPod_Invalid(t *testing.T) {
	var p Pod = 200
	require.False(t, p.Valid())
	require.Equal(t, "unknown", p.Name())
}

func TestDataType_NumBytes(t *testing.T) {
	require.Equal(t, 4, Float32x1().NumBytes())
	require.Equal(t, 12, Float32x3().NumBytes())
	require.Equal(t, 64, Float32x16().NumBytes())
	require.Equal(t, 1, Stringx1().NumBytes())
}

func TestDataType_Valid(t *testing.T) {
	require.True(t, Float32x1().Valid())
	require.False(t, DataType{Pod: PodFloat32, Extent: 0}.Valid())
	require.False(t, DataType{Pod: 0, Extent: 1}.Valid())
}

func TestDataType_String(t *testing.T) {
	require.Equal(t, "float32", Float32x1().String())
	require.Equal(t, "float32[3]", Float32x3().String())
}

func TestPropertyType_String(t *testing.T) {
	require.Equal(t, "scalar", PropertyScalar.String())
	require.Equal(t, "array", PropertyArray.String())
	require.Equal(t, "compound", PropertyCompound.String())
}
