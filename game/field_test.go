package game

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/driftfield/components"
	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/systems"
)

func TestFieldPopulate(t *testing.T) {
	cfg := config.Defaults().Field
	f := NewField()
	rng := rand.New(rand.NewSource(3))

	tests := []struct {
		name string
		v    Viewport
		want int
	}{
		{"full hd", Viewport{Width: 1920, Height: 1080}, 50},
		{"small", Viewport{Width: 400, Height: 300}, 6},
		{"empty", Viewport{}, 0},
		{"negative", Viewport{Width: -5, Height: 300}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Populate(tt.v, rng, cfg))
			assert.Equal(t, tt.want, f.Len())

			count := 0
			f.Each(func(pos components.Position, _ components.Velocity, app components.Appearance) {
				count++
				assert.True(t, pos.X >= 0 && pos.X <= float64(tt.v.Width))
				assert.True(t, pos.Y >= 0 && pos.Y <= float64(tt.v.Height))
				assert.Less(t, int(app.Color), len(cfg.Palette))
			})
			assert.Equal(t, tt.want, count, "removed entities must not be iterated")
		})
	}
}

func TestFieldStaysInBounds(t *testing.T) {
	cfg := config.Defaults().Field
	cfg.Drift = 8
	f := NewField()
	f.Populate(Viewport{Width: 300, Height: 200}, rand.New(rand.NewSource(11)), cfg)

	for step := 0; step < 1000; step++ {
		f.Move()
		f.Push(r2.Vec{X: 150, Y: 100}, 100, 2, 0)
	}
	f.Move()

	f.Each(func(pos components.Position, _ components.Velocity, _ components.Appearance) {
		require.True(t, pos.X >= 0 && pos.X <= 300, "x out of bounds: %v", pos.X)
		require.True(t, pos.Y >= 0 && pos.Y <= 200, "y out of bounds: %v", pos.Y)
	})
}

func TestFieldEdgeScenario(t *testing.T) {
	f := NewField()
	f.SetBounds(100, 100)
	f.Spawn(components.Position{X: 100, Y: 100}, components.Velocity{X: 5}, components.Appearance{Radius: 1})

	f.Move()

	f.Each(func(pos components.Position, vel components.Velocity, _ components.Appearance) {
		assert.Equal(t, 0.0, pos.X)
		assert.Equal(t, -5.0, vel.X)
		assert.Equal(t, 100.0, pos.Y)
	})
}

func TestFieldPushCounts(t *testing.T) {
	f := NewField()
	f.SetBounds(500, 500)
	f.Spawn(components.Position{X: 50, Y: 0}, components.Velocity{}, components.Appearance{})
	f.Spawn(components.Position{X: 400, Y: 400}, components.Velocity{}, components.Appearance{})

	assert.Equal(t, 1, f.Push(r2.Vec{}, 100, 0.1, 0))
	assert.Equal(t, 0, f.Push(r2.Vec{X: 250, Y: 250}, 0, 0.1, 0))
}

func TestFieldDrawAndConnect(t *testing.T) {
	f := NewField()
	f.SetBounds(500, 500)
	app := components.Appearance{Radius: 2, Opacity: 0.5, Color: 1}
	f.Spawn(components.Position{X: 0, Y: 0}, components.Velocity{}, app)
	f.Spawn(components.Position{X: 90, Y: 0}, components.Velocity{}, app)

	rec := &recordingSurface{}
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	f.Draw(rec, palette, 2, 0.8)

	require.Len(t, rec.circles, 2)
	c := rec.circles[0]
	assert.Equal(t, color.RGBA{G: 2, A: 128}, c.fill)
	assert.Equal(t, 4.0, c.glowRadius)
	assert.Equal(t, color.RGBA{G: 2, A: 102}, c.glow)

	edges := f.Connect(100, 0.2, systems.FalloffClamp)
	require.Len(t, edges, 1)
	assert.InDelta(t, 0.1, edges[0].Opacity, 1e-9)

	f.DrawConnections(rec, edges, 0.5, config.ColorConfig{R: 212, G: 175, B: 55})
	require.Len(t, rec.lines, 1)
	assert.Equal(t, uint8(26), rec.lines[0].A)
}

func TestFieldDrawEmptyPalette(t *testing.T) {
	f := NewField()
	f.SetBounds(500, 500)
	app := components.Appearance{Radius: 2, Opacity: 0.5, Color: 3}
	f.Spawn(components.Position{X: 0, Y: 0}, components.Velocity{}, app)
	f.Spawn(components.Position{X: 50, Y: 0}, components.Velocity{}, app)

	rec := &recordingSurface{}
	require.NotPanics(t, func() { f.Draw(rec, nil, 2, 0.8) })
	assert.Empty(t, rec.circles)
	assert.Len(t, f.Connect(100, 0.2, systems.FalloffClamp), 1, "positions are still collected")
}

func TestFieldSpeeds(t *testing.T) {
	f := NewField()
	f.Spawn(components.Position{}, components.Velocity{X: 3, Y: 4}, components.Appearance{})

	speeds := f.Speeds(nil)
	assert.Equal(t, []float64{5}, speeds)

	f.Reset()
	assert.Empty(t, f.Speeds(speeds))
	assert.Equal(t, 0, f.Len())
}

type drawnCircle struct {
	fill, glow color.RGBA
	glowRadius float64
}

type recordingSurface struct {
	NullSurface
	circles []drawnCircle
	lines   []color.RGBA
}

func (s *recordingSurface) FillCircle(_, _, _ float64, fill color.RGBA, glowRadius float64, glow color.RGBA) {
	s.circles = append(s.circles, drawnCircle{fill: fill, glow: glow, glowRadius: glowRadius})
}

func (s *recordingSurface) StrokeLine(_, _, _, _, _ float64, c color.RGBA) {
	s.lines = append(s.lines, c)
}
