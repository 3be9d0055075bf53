// Package systems contains the per-particle math of the field.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/driftfield/components"
)

// Advance moves a particle by one frame of its velocity.
func Advance(pos *components.Position, vel components.Velocity) {
	pos.X += vel.X
	pos.Y += vel.Y
}

// ApplyEdges keeps a particle inside [0, width] x [0, height].
// Per axis: a particle past either bound has that velocity component inverted,
// then a coordinate still out of range wraps to the opposite edge.
func ApplyEdges(pos *components.Position, vel *components.Velocity, width, height float64) {
	pos.X, vel.X = bounceWrap(pos.X, vel.X, width)
	pos.Y, vel.Y = bounceWrap(pos.Y, vel.Y, height)
}

func bounceWrap(p, v, limit float64) (float64, float64) {
	if p < 0 || p > limit {
		v = -v
	}
	// Inversion never moves the particle, so anything out of range here overshot
	if p < 0 {
		p = limit
	} else if p > limit {
		p = 0
	}
	return p, v
}

// PointerImpulse returns the velocity change a pointer at ptr applies to a particle at pos.
// Particles within radius are pushed directly away from the pointer with a linear falloff
// force = (radius - distance) / radius, scaled by scale. Particles at or beyond radius get zero.
func PointerImpulse(pos components.Position, ptr r2.Vec, radius, scale float64) r2.Vec {
	if radius <= 0 {
		return r2.Vec{}
	}

	d := r2.Sub(r2.Vec{X: pos.X, Y: pos.Y}, ptr)
	dist := r2.Norm(d)
	if dist >= radius {
		return r2.Vec{}
	}

	force := (radius - dist) / radius
	angle := math.Atan2(d.Y, d.X)
	return r2.Vec{
		X: math.Cos(angle) * force * scale,
		Y: math.Sin(angle) * force * scale,
	}
}

// ClampSpeed limits the velocity magnitude to maxSpeed. A maxSpeed of 0 leaves it unbounded.
func ClampSpeed(vel *components.Velocity, maxSpeed float64) {
	if maxSpeed <= 0 {
		return
	}
	speed := vel.Speed()
	if speed > maxSpeed {
		scale := maxSpeed / speed
		vel.X *= scale
		vel.Y *= scale
	}
}
