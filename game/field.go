package game

import (
	"image/color"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/driftfield/components"
	"github.com/pthm-cable/driftfield/config"
	"github.com/pthm-cable/driftfield/systems"
)

// Field holds the particle set as ECS entities.
type Field struct {
	world *ecs.World

	mapper *ecs.Map3[components.Position, components.Velocity, components.Appearance]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Appearance]

	entities []ecs.Entity
	width    float64
	height   float64

	// Scratch buffers reused across frames
	points []r2.Vec
	edges  []systems.Edge
}

// NewField creates an empty field.
func NewField() *Field {
	world := ecs.NewWorld()
	return &Field{
		world:  world,
		mapper: ecs.NewMap3[components.Position, components.Velocity, components.Appearance](world),
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Appearance](world),
	}
}

// Reset removes every particle.
func (f *Field) Reset() {
	for _, e := range f.entities {
		f.world.RemoveEntity(e)
	}
	f.entities = f.entities[:0]
	f.points = f.points[:0]
	f.edges = f.edges[:0]
}

// Populate discards the current set and samples a fresh one for viewport v.
// It returns the new particle count, which is zero for a degenerate viewport.
func (f *Field) Populate(v Viewport, rng *rand.Rand, cfg config.FieldConfig) int {
	f.Reset()
	f.width = float64(max(v.Width, 0))
	f.height = float64(max(v.Height, 0))

	n := systems.ParticleCount(f.width, f.height, cfg.MaxCount, cfg.DensityDivisor)
	params := systems.SpawnParams{
		Drift:       cfg.Drift,
		RadiusMin:   cfg.RadiusMin,
		RadiusMax:   cfg.RadiusMax,
		OpacityMin:  cfg.OpacityMin,
		OpacityMax:  cfg.OpacityMax,
		PaletteSize: len(cfg.Palette),
	}
	for i := 0; i < n; i++ {
		pos, vel, app := systems.SampleParticle(rng, f.width, f.height, params)
		f.Spawn(pos, vel, app)
	}
	return n
}

// Spawn adds one particle.
func (f *Field) Spawn(pos components.Position, vel components.Velocity, app components.Appearance) ecs.Entity {
	e := f.mapper.NewEntity(&pos, &vel, &app)
	f.entities = append(f.entities, e)
	return e
}

// SetBounds sets the area particles are kept in without touching the particle set.
func (f *Field) SetBounds(width, height float64) {
	f.width, f.height = width, height
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return len(f.entities)
}

// Move advances every particle by its velocity and applies the bounce and wrap edge policy.
func (f *Field) Move() {
	query := f.filter.Query()
	for query.Next() {
		pos, vel, _ := query.Get()
		systems.Advance(pos, *vel)
		systems.ApplyEdges(pos, vel, f.width, f.height)
	}
}

// Push applies the pointer repulsion at ptr and returns how many particles it reached.
func (f *Field) Push(ptr r2.Vec, radius, scale, maxSpeed float64) int {
	pushed := 0
	query := f.filter.Query()
	for query.Next() {
		pos, vel, _ := query.Get()
		dv := systems.PointerImpulse(*pos, ptr, radius, scale)
		if dv == (r2.Vec{}) {
			continue
		}
		vel.X += dv.X
		vel.Y += dv.Y
		systems.ClampSpeed(vel, maxSpeed)
		pushed++
	}
	return pushed
}

// Draw paints every particle with its glow and collects positions for Connect.
// With an empty palette nothing is painted, but positions are still collected.
func (f *Field) Draw(s Surface, palette []color.RGBA, glowFactor, glowAlpha float64) {
	f.points = f.points[:0]
	query := f.filter.Query()
	for query.Next() {
		pos, _, app := query.Get()
		f.points = append(f.points, r2.Vec{X: pos.X, Y: pos.Y})
		if len(palette) == 0 {
			continue
		}

		base := palette[int(app.Color)%len(palette)]
		s.FillCircle(pos.X, pos.Y, app.Radius,
			withAlpha(base, app.Opacity),
			app.Radius*glowFactor,
			withAlpha(base, glowAlpha*app.Opacity))
	}
}

// Connect finds the proximity lines between the positions collected by the last Draw.
func (f *Field) Connect(distance, maxOpacity float64, falloff systems.Falloff) []systems.Edge {
	f.edges = systems.Connect(f.edges, f.points, distance, maxOpacity, falloff)
	return f.edges
}

// DrawConnections strokes the lines returned by Connect.
func (f *Field) DrawConnections(s Surface, edges []systems.Edge, width float64, c config.ColorConfig) {
	for _, e := range edges {
		a, b := f.points[e.A], f.points[e.B]
		s.StrokeLine(a.X, a.Y, b.X, b.Y, width, c.RGBA(e.Opacity))
	}
}

// Each calls fn with a copy of every particle.
func (f *Field) Each(fn func(pos components.Position, vel components.Velocity, app components.Appearance)) {
	query := f.filter.Query()
	for query.Next() {
		pos, vel, app := query.Get()
		fn(*pos, *vel, *app)
	}
}

// Speeds appends the speed of every particle to dst[:0].
func (f *Field) Speeds(dst []float64) []float64 {
	dst = dst[:0]
	query := f.filter.Query()
	for query.Next() {
		_, vel, _ := query.Get()
		dst = append(dst, vel.Speed())
	}
	return dst
}
