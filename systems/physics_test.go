package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/driftfield/components"
)

const eps = 1e-9

func TestApplyEdges(t *testing.T) {
	tests := []struct {
		name    string
		pos     components.Position
		vel     components.Velocity
		wantPos components.Position
		wantVel components.Velocity
	}{
		{
			name:    "inside untouched",
			pos:     components.Position{X: 50, Y: 50},
			vel:     components.Velocity{X: 0.2, Y: -0.1},
			wantPos: components.Position{X: 50, Y: 50},
			wantVel: components.Velocity{X: 0.2, Y: -0.1},
		},
		{
			name:    "exactly on edge stays",
			pos:     components.Position{X: 100, Y: 0},
			vel:     components.Velocity{X: 0.2, Y: -0.1},
			wantPos: components.Position{X: 100, Y: 0},
			wantVel: components.Velocity{X: 0.2, Y: -0.1},
		},
		{
			name:    "past right wraps to left",
			pos:     components.Position{X: 105, Y: 50},
			vel:     components.Velocity{X: 5, Y: 0},
			wantPos: components.Position{X: 0, Y: 50},
			wantVel: components.Velocity{X: -5, Y: 0},
		},
		{
			name:    "past top wraps to bottom",
			pos:     components.Position{X: 50, Y: -0.3},
			vel:     components.Velocity{X: 0, Y: -0.3},
			wantPos: components.Position{X: 50, Y: 100},
			wantVel: components.Velocity{X: 0, Y: 0.3},
		},
		{
			name:    "both axes",
			pos:     components.Position{X: -1, Y: 101},
			vel:     components.Velocity{X: -1, Y: 1},
			wantPos: components.Position{X: 100, Y: 0},
			wantVel: components.Velocity{X: 1, Y: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, vel := tt.pos, tt.vel
			ApplyEdges(&pos, &vel, 100, 100)
			if pos != tt.wantPos {
				t.Errorf("pos = %+v, want %+v", pos, tt.wantPos)
			}
			if vel != tt.wantVel {
				t.Errorf("vel = %+v, want %+v", vel, tt.wantVel)
			}
		})
	}
}

func TestAdvanceThenEdgesStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const w, h = 320.0, 180.0
	params := SpawnParams{Drift: 3, RadiusMin: 1, RadiusMax: 3, OpacityMin: 0.1, OpacityMax: 0.6, PaletteSize: 4}

	for i := 0; i < 200; i++ {
		pos, vel, _ := SampleParticle(rng, w, h, params)
		for step := 0; step < 500; step++ {
			Advance(&pos, vel)
			ApplyEdges(&pos, &vel, w, h)
			if pos.X < 0 || pos.X > w || pos.Y < 0 || pos.Y > h {
				t.Fatalf("particle %d left bounds at step %d: %+v", i, step, pos)
			}
		}
	}
}

func TestPointerImpulse(t *testing.T) {
	ptr := r2.Vec{X: 100, Y: 100}

	t.Run("outside radius", func(t *testing.T) {
		got := PointerImpulse(components.Position{X: 250, Y: 100}, ptr, 100, 0.1)
		if got != (r2.Vec{}) {
			t.Errorf("impulse = %+v, want zero", got)
		}
	})

	t.Run("exactly at radius", func(t *testing.T) {
		got := PointerImpulse(components.Position{X: 200, Y: 100}, ptr, 100, 0.1)
		if got != (r2.Vec{}) {
			t.Errorf("impulse = %+v, want zero", got)
		}
	})

	t.Run("half radius pushes away", func(t *testing.T) {
		got := PointerImpulse(components.Position{X: 150, Y: 100}, ptr, 100, 0.1)
		if math.Abs(got.X-0.05) > eps || math.Abs(got.Y) > eps {
			t.Errorf("impulse = %+v, want {0.05 0}", got)
		}
	})

	t.Run("direction is away from pointer", func(t *testing.T) {
		got := PointerImpulse(components.Position{X: 80, Y: 70}, ptr, 100, 1)
		if got.X >= 0 || got.Y >= 0 {
			t.Errorf("impulse = %+v, want both components negative", got)
		}
	})

	t.Run("zero radius disabled", func(t *testing.T) {
		got := PointerImpulse(components.Position{X: 100, Y: 100}, ptr, 0, 1)
		if got != (r2.Vec{}) {
			t.Errorf("impulse = %+v, want zero", got)
		}
	})
}

func TestClampSpeed(t *testing.T) {
	vel := components.Velocity{X: 3, Y: 4}
	ClampSpeed(&vel, 0)
	if vel.Speed() != 5 {
		t.Errorf("unbounded clamp changed speed to %v", vel.Speed())
	}

	ClampSpeed(&vel, 1)
	if math.Abs(vel.Speed()-1) > eps {
		t.Errorf("speed = %v, want 1", vel.Speed())
	}
	if math.Abs(vel.X-0.6) > eps || math.Abs(vel.Y-0.8) > eps {
		t.Errorf("direction changed: %+v", vel)
	}
}
