package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/driftfield/components"
)

// SpawnParams bounds the random attributes of new particles.
type SpawnParams struct {
	Drift       float64 // Each velocity axis in [-Drift, Drift)
	RadiusMin   float64
	RadiusMax   float64
	OpacityMin  float64
	OpacityMax  float64
	PaletteSize int
}

// ParticleCount returns how many particles a viewport holds:
// min(maxCount, floor(width*height / densityDivisor)).
// Degenerate inputs (empty viewport, non-positive divisor or cap) yield zero.
func ParticleCount(width, height float64, maxCount int, densityDivisor float64) int {
	if width <= 0 || height <= 0 || maxCount <= 0 || densityDivisor <= 0 {
		return 0
	}
	n := math.Floor(width * height / densityDivisor)
	if n >= float64(maxCount) {
		return maxCount
	}
	return int(n)
}

// SampleParticle draws a fresh particle uniformly inside the viewport.
func SampleParticle(rng *rand.Rand, width, height float64, p SpawnParams) (components.Position, components.Velocity, components.Appearance) {
	pos := components.Position{
		X: rng.Float64() * width,
		Y: rng.Float64() * height,
	}
	vel := components.Velocity{
		X: (rng.Float64() - 0.5) * 2 * p.Drift,
		Y: (rng.Float64() - 0.5) * 2 * p.Drift,
	}

	var colorIdx uint8
	if p.PaletteSize > 1 {
		colorIdx = uint8(rng.Intn(p.PaletteSize))
	}
	app := components.Appearance{
		Radius:  randRange(rng, p.RadiusMin, p.RadiusMax),
		Opacity: randRange(rng, p.OpacityMin, p.OpacityMax),
		Color:   colorIdx,
	}

	return pos, vel, app
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
