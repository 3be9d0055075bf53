package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/config"
)

// Overlay is the F1 tuning panel. Edits are returned as a new config so the
// caller can route them through the same path as a hot reload.
type Overlay struct {
	visible  bool
	tunables []Tunable
	renderer *Renderer
	hud      *HUD
	x, y     int32
	width    int32
}

// NewOverlay creates a hidden overlay.
func NewOverlay() *Overlay {
	return &Overlay{
		tunables: DefaultTunables(),
		renderer: NewRenderer(),
		hud:      NewHUD(),
		x:        10,
		y:        10,
		width:    340,
	}
}

// HandleInput toggles the overlay on F1 and reports whether visibility changed.
func (o *Overlay) HandleInput() bool {
	if rl.IsKeyPressed(rl.KeyF1) {
		o.visible = !o.visible
		return true
	}
	return false
}

// Visible reports whether the overlay is shown.
func (o *Overlay) Visible() bool {
	return o.visible
}

// Draw renders the panel. It returns a modified copy of cfg when a control changed
// (nil otherwise), and whether the user asked for a regeneration.
func (o *Overlay) Draw(cfg *config.Config, data HUDData) (next *config.Config, regenerate bool) {
	if !o.visible {
		return nil, false
	}

	r := o.renderer
	pad := r.Theme.Padding
	height := int32(140 + len(o.tunables)*int(r.Theme.SliderHeight+6) + 70)
	r.DrawPanel(o.x, o.y, o.width, height)

	x := o.x + pad
	y := r.DrawSectionHeader(x, o.y+pad, "driftfield")
	y = o.hud.Draw(x, y, data) + 6

	y = r.DrawSectionHeader(x, y, "Tuning")
	inner := o.width - 2*pad
	for _, t := range o.tunables {
		cur := t.Get(cfg)
		v, ny := r.DrawSlider(x, y, inner, t, cur)
		y = ny
		if v != cur {
			if next == nil {
				next = cfg.Clone()
			}
			t.Set(next, v)
		}
	}

	mode := "Pointer: once per move"
	if cfg.Pointer.Continuous {
		mode = "Pointer: continuous"
	}
	if r.DrawButton(x, y+4, inner/2-4, mode) {
		if next == nil {
			next = cfg.Clone()
		}
		next.Pointer.Continuous = !cfg.Pointer.Continuous
	}
	if r.DrawButton(x+inner/2+4, y+4, inner/2-4, "Regenerate") {
		regenerate = true
	}

	return next, regenerate
}

// DrawHint draws the toggle hint while the overlay is hidden.
func (o *Overlay) DrawHint(screenHeight int32) {
	if o.visible {
		return
	}
	o.hud.DrawHint(screenHeight, "F1: tuning")
}
