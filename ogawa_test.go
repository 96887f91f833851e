package ogawa

import (
	"encoding/binary"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ogawa-go/ogawa/format"
	"github.com/ogawa-go/ogawa/timesampling"
)

// TestCreateArchive verifies the facade produces a ready-to-use writer.
func TestCreateArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facade.abc")

	aw, err := CreateArchive(path)
	require.NoError(t, err)
	require.NotNil(t, aw)
	require.NotNil(t, aw.Root())

	require.NoError(t, aw.WriteArchive())
}

// TestCreateArchive_WithOptions verifies option constructors pass through.
func TestCreateArchive_WithOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facade_opts.abc")

	aw, err := CreateArchive(path,
		WithCompressionHint(-1),
		WithDedupEnabled(false),
		WithAppName("facade_test"),
	)
	require.NoError(t, err)
	require.NoError(t, aw.WriteArchive())

	ar, err := OpenArchive(path)
	require.NoError(t, err)
	defer ar.Close()

	require.Equal(t, -1, ar.CompressionHint())

	app, ok := ar.Metadata().Get("_ai_Application")
	require.True(t, ok)
	require.Equal(t, "facade_test", app)
}

// TestCreateArchive_InvalidHintFails verifies option validation surfaces
// at Create.
func TestCreateArchive_InvalidHintFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facade_bad.abc")

	_, err := CreateArchive(path, WithCompressionHint(10))
	require.Error(t, err)
}

// TestFacadeRoundTrip writes a small tree through the facade and reads it
// back through the facade.
func TestFacadeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facade_rt.abc")

	aw, err := CreateArchive(path)
	require.NoError(t, err)

	ts := aw.AddTimeSampling(timesampling.Uniform(1.0/30.0, 0))

	obj := NewObjectWriter("cube")
	prop := NewScalarPropertyWriter("size", format.Float32x1()).WithTimeSampling(ts)

	raw := make([]byte, 4)
	binary.LittleEndian.PutUint32(raw, math.Float32bits(2.5))
	require.NoError(t, prop.AddSample(raw))

	obj.AddProperty(prop)
	aw.Root().AddChild(obj)
	require.NoError(t, aw.WriteArchive())

	ar, err := OpenArchive(path, WithMmap(false))
	require.NoError(t, err)
	defer ar.Close()

	cube, err := ar.FindObject("/cube")
	require.NoError(t, err)

	props, err := cube.Properties()
	require.NoError(t, err)

	p, err := props.PropertyByName("size")
	require.NoError(t, err)

	scalar, ok := p.(*ScalarPropertyReader)
	require.True(t, ok)
	require.EqualValues(t, ts, scalar.TimeSamplingIndex())

	out := make([]byte, 4)
	require.NoError(t, scalar.ReadSample(0, out))
	require.Equal(t, float32(2.5), math.Float32frombits(binary.LittleEndian.Uint32(out)))
}
