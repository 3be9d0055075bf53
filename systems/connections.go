package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Falloff selects how line opacity follows pair distance.
type Falloff uint8

const (
	FalloffClamp Falloff = iota // min((D-d)/D, maxOpacity)
	FalloffScale                // (D-d)/D * maxOpacity
)

// ParseFalloff maps a config name to a Falloff. Unknown names fall back to FalloffClamp.
func ParseFalloff(name string) Falloff {
	if name == "scale" {
		return FalloffScale
	}
	return FalloffClamp
}

// Edge is a line between two particles, indexed into the point slice it was built from.
type Edge struct {
	A, B    int
	Opacity float64
}

// ConnectionOpacity returns the line opacity for two particles dist apart.
// ok is false when the pair is not connected (dist >= maxDist).
func ConnectionOpacity(dist, maxDist, maxOpacity float64, falloff Falloff) (opacity float64, ok bool) {
	if maxDist <= 0 || dist >= maxDist {
		return 0, false
	}
	t := (maxDist - dist) / maxDist
	if falloff == FalloffScale {
		return t * maxOpacity, true
	}
	return math.Min(t, maxOpacity), true
}

// Connect appends an Edge to dst[:0] for every unordered pair of points closer than maxDist.
// The scan is O(n^2); callers keep n small.
func Connect(dst []Edge, points []r2.Vec, maxDist, maxOpacity float64, falloff Falloff) []Edge {
	dst = dst[:0]
	if maxDist <= 0 {
		return dst
	}
	maxDistSq := maxDist * maxDist

	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := r2.Sub(points[i], points[j])
			distSq := r2.Norm2(d)
			if distSq >= maxDistSq {
				continue
			}
			if opacity, ok := ConnectionOpacity(math.Sqrt(distSq), maxDist, maxOpacity, falloff); ok {
				dst = append(dst, Edge{A: i, B: j, Opacity: opacity})
			}
		}
	}
	return dst
}
