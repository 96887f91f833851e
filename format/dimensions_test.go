package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDimensions_NumPoints(t *testing.T) {
	require.Equal(t, uint64(1), Dimensions{}.NumPoints())
	require.Equal(t, uint64(3), Dimensions{3}.NumPoints())
	require.Equal(t, uint64(12), Dimensions{3, 4}.NumPoints())
}

func TestDimensions_IsScalarLike(t *testing.T) {
	require.True(t, Dimensions{}.IsScalarLike())
	require.True(t, Dimensions{1}.IsScalarLike())
	require.False(t, Dimensions{3}.IsScalarLike())
	require.False(t, Dimensions{2, 2}.IsScalarLike())
}

func TestDimensions_Equal(t *testing.T) {
	require.True(t, Dimensions{1, 2}.Equal(Dimensions{1, 2}))
	require.False(t, Dimensions{1, 2}.Equal(Dimensions{1, 3}))
	require.False(t, Dimensions{1}.Equal(Dimensions{1, 2}))
}

func TestDimensions_Clone(t *testing.T) {
	d := Dimensions{1, 2, 3}
	c := d.Clone()
	c[0] = 99
	require.Equal(t, uint64(1), d[0])
}
