// Package renderer draws the particle field with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/game"
)

// Canvas is a game.Surface backed by the raylib framebuffer.
// Calls must happen between rl.BeginDrawing and rl.EndDrawing.
type Canvas struct {
	background rl.Color
	viewport   game.Viewport
	released   bool
}

// NewCanvas creates a canvas clearing to background. A transparent canvas clears to rl.Blank.
func NewCanvas(background color.RGBA, transparent bool) *Canvas {
	bg := rl.Color(background)
	if transparent {
		bg = rl.Blank
	}
	return &Canvas{background: bg}
}

// Resize records the drawable area. The framebuffer itself follows the window.
func (c *Canvas) Resize(v game.Viewport) {
	c.viewport = v
}

// Clear fills the framebuffer with the background.
func (c *Canvas) Clear() {
	if c.released {
		return
	}
	rl.ClearBackground(c.background)
}

// FillCircle draws the glow additively, then the body on top.
func (c *Canvas) FillCircle(x, y, r float64, fill color.RGBA, glowRadius float64, glow color.RGBA) {
	if c.released {
		return
	}
	if glowRadius > r && glow.A > 0 {
		outer := glow
		outer.A = 0
		rl.BeginBlendMode(rl.BlendAdditive)
		rl.DrawCircleGradient(int32(x), int32(y), float32(glowRadius), rl.Color(glow), rl.Color(outer))
		rl.EndBlendMode()
	}
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), rl.Color(fill))
}

// StrokeLine draws a line segment.
func (c *Canvas) StrokeLine(x1, y1, x2, y2, width float64, col color.RGBA) {
	if c.released {
		return
	}
	rl.DrawLineEx(
		rl.NewVector2(float32(x1), float32(y1)),
		rl.NewVector2(float32(x2), float32(y2)),
		float32(width), rl.Color(col))
}

// StrokeCircle draws a ring of the given line width centred on radius r.
func (c *Canvas) StrokeCircle(x, y, r, width float64, col color.RGBA) {
	if c.released {
		return
	}
	half := float32(width / 2)
	inner := max(float32(r)-half, 0)
	rl.DrawRing(rl.NewVector2(float32(x), float32(y)), inner, float32(r)+half, 0, 360, 48, rl.Color(col))
}

// Release stops all further drawing.
func (c *Canvas) Release() {
	c.released = true
}

// Viewport returns the last size passed to Resize.
func (c *Canvas) Viewport() game.Viewport {
	return c.viewport
}
