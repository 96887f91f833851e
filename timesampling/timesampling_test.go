package timesampling

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentity_SingleSampleAtZero(t *testing.T) {
	s := Identity()
	require.Equal(t, Chrono(0), s.SampleTime(0))
}

func TestUniform_SampleTime(t *testing.T) {
	s := Uniform(1.0/24.0, 0)
	require.InDelta(t, 0.0, s.SampleTime(0), 1e-12)
	require.InDelta(t, 47.0/24.0, s.SampleTime(47), 1e-9)
}

func TestUniform_FloorIndex(t *testing.T) {
	s := Uniform(1.0/24.0, 0)
	require.Equal(t, 25, s.FloorIndex(25.0/24.0, 48))
}

func TestUniform_CeilIndex(t *testing.T) {
	s := Uniform(1.0, 0)
	require.Equal(t, 3, s.CeilIndex(2.5, 10))
	require.Equal(t, 0, s.CeilIndex(-5, 10))
}

func TestUniform_NearIndex(t *testing.T) {
	s := Uniform(1.0, 0)
	require.Equal(t, 3, s.NearIndex(3.4, 10))
	require.Equal(t, 4, s.NearIndex(3.6, 10))
}

func TestCyclic_SampleTime(t *testing.T) {
	s := Cyclic(10.0, []Chrono{0, 1, 2})
	require.Equal(t, Chrono(0), s.SampleTime(0))
	require.Equal(t, Chrono(1), s.SampleTime(1))
	require.Equal(t, Chrono(2), s.SampleTime(2))
	require.Equal(t, Chrono(10), s.SampleTime(3))
	require.Equal(t, Chrono(11), s.SampleTime(4))
}

func TestAcyclic_SampleTime(t *testing.T) {
	s := Acyclic([]Chrono{0.1, 0.3, 0.9})
	require.Equal(t, Chrono(0.3), s.SampleTime(1))
}

func TestRegistry_IdentityAtZero(t *testing.T) {
	r := NewRegistry()
	require.Equal(t, 1, r.Len())

	sampling, err := r.At(0)
	require.NoError(t, err)
	require.Equal(t, Identity(), sampling)
}

func TestRegistry_AddAndLookup(t *testing.T) {
	r := NewRegistry()
	idx := r.Add(Uniform(1.0/24.0, 0))
	require.Equal(t, uint32(1), idx)

	sampling, err := r.At(idx)
	require.NoError(t, err)
	require.Equal(t, KindUniform, sampling.Kind)

	_, err = r.At(99)
	require.Error(t, err)
}

func TestRegistry_EncodeDecodeRoundTrip(t *testing.T) {
	r := NewRegistry()
	r.Add(Uniform(1.0/24.0, 0.5))
	r.Add(Cyclic(10.0, []Chrono{0, 1, 2}))
	r.Add(Acyclic([]Chrono{0.1, 0.4, 1.2}))

	all := r.All()
	nonIdentity := all[1:]
	maxSamples := []uint32{48, 9, 3}

	encoded, err := Encode(nonIdentity, maxSamples)
	require.NoError(t, err)

	decoded, decodedMax, err := Decode(encoded, len(nonIdentity))
	require.NoError(t, err)
	require.Equal(t, nonIdentity, decoded)
	require.Equal(t, maxSamples, decodedMax)
}

func TestLoadRegistry_RejectsEmpty(t *testing.T) {
	_, err := LoadRegistry(nil)
	require.Error(t, err)
}

func TestLoadRegistry_RoundTrip(t *testing.T) {
	original := []Sampling{Identity(), Uniform(1.0, 0)}
	r, err := LoadRegistry(original)
	require.NoError(t, err)
	require.Equal(t, original, r.All())
}
