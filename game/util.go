package game

import (
	"image/color"
	"math"
)

// withAlpha returns c with its alpha replaced by a in [0, 1].
func withAlpha(c color.RGBA, a float64) color.RGBA {
	c.A = uint8(math.Round(clamp01(a) * 255))
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
