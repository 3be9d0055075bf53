// Package components defines ECS components for the particle field.
package components

import "math"

// Position is a particle's location in viewport coordinates.
type Position struct {
	X, Y float64
}

// Velocity is a particle's displacement per frame.
type Velocity struct {
	X, Y float64
}

// Speed returns the velocity magnitude.
func (v Velocity) Speed() float64 {
	return math.Hypot(v.X, v.Y)
}
