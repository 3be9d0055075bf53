package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 50, cfg.Field.MaxCount)
	assert.Equal(t, 20000.0, cfg.Field.DensityDivisor)
	assert.Equal(t, 0.25, cfg.Field.Drift)
	assert.Equal(t, 100.0, cfg.Pointer.Radius)
	assert.Equal(t, 0.1, cfg.Pointer.ForceScale)
	assert.Equal(t, 100.0, cfg.Connections.Distance)
	assert.Equal(t, 0.2, cfg.Connections.MaxOpacity)
	assert.Equal(t, FalloffClamp, cfg.Connections.Falloff)

	require.Len(t, cfg.Derived.Palette, 4)
	assert.Equal(t, color.RGBA{R: 212, G: 175, B: 55, A: 255}, cfg.Derived.Palette[0])
	assert.Equal(t, 600, cfg.Derived.StatsWindowFrames)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
field:
  max_count: 80
  palette:
    - {r: 1, g: 2, b: 3}
pointer:
  continuous: true
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.Field.MaxCount)
	assert.True(t, cfg.Pointer.Continuous)
	// Untouched fields keep their defaults
	assert.Equal(t, 20000.0, cfg.Field.DensityDivisor)
	assert.Equal(t, 100.0, cfg.Pointer.Radius)
	// Lists replace rather than merge
	require.Len(t, cfg.Derived.Palette, 1)
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, cfg.Derived.Palette[0])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"zero divisor", "field: {density_divisor: 0}", "field.density_divisor"},
		{"inverted radius", "field: {radius_min: 4, radius_max: 2}", "radius range"},
		{"opacity above one", "field: {opacity_max: 1.5}", "opacity range"},
		{"empty palette", "field: {palette: []}", "field.palette"},
		{"unknown falloff", "connections: {falloff: cubic}", "connections.falloff"},
		{"zero fps", "screen: {target_fps: 0}", "screen.target_fps"},
		{"bad follow", "cursor: {follow: 0}", "cursor.follow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseReportsEveryProblem(t *testing.T) {
	_, err := Parse([]byte("field: {density_divisor: -1, drift: -2}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "density_divisor")
	assert.Contains(t, err.Error(), "drift")
}

func TestSameShape(t *testing.T) {
	base := Defaults().Field

	same := Defaults().Field
	same.GlowFactor = 9 // Appearance-only change
	assert.True(t, base.SameShape(same))

	more := Defaults().Field
	more.MaxCount = 10
	assert.False(t, base.SameShape(more))

	recolored := Defaults().Field
	recolored.Palette[0].R = 0
	assert.False(t, base.SameShape(recolored))
}

func TestCloneIsDeep(t *testing.T) {
	cfg := Defaults()
	clone := cfg.Clone()
	clone.Field.Palette[0].R = 7
	clone.Derived.Palette[0].R = 7

	assert.Equal(t, uint8(212), cfg.Field.Palette[0].R)
	assert.Equal(t, uint8(212), cfg.Derived.Palette[0].R)
}

func TestWriteYAMLLoadsBack(t *testing.T) {
	cfg := Defaults()
	cfg.Field.MaxCount = 33
	path := filepath.Join(t.TempDir(), "snapshot.yaml")

	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 33, loaded.Field.MaxCount)
	assert.Equal(t, cfg.Field.Palette, loaded.Field.Palette)
}

func TestColorConfigRGBA(t *testing.T) {
	c := ColorConfig{R: 10, G: 20, B: 30}
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 0}, c.RGBA(-1))
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 128}, c.RGBA(0.5))
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, c.RGBA(2))
}
