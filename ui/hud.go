package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/telemetry"
)

// HUDData holds what the HUD shows.
type HUDData struct {
	Particles int
	Edges     int
	Frames    uint64
	FPS       int32
	Width     int
	Height    int
	Perf      telemetry.PerfStats
}

// HUD renders a compact status block.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD at (x, y) and returns the Y position below it.
func (h *HUD) Draw(x, y int32, data HUDData) int32 {
	r := h.renderer
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", data.Particles))
	y = r.DrawLabelValue(x, y, "Links", fmt.Sprintf("%d", data.Edges))
	y = r.DrawLabelValue(x, y, "Viewport", fmt.Sprintf("%dx%d", data.Width, data.Height))
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%d | %d fps", data.Frames, data.FPS))
	y = r.DrawLabelValue(x, y, "Frame cost", fmt.Sprintf("%dus", data.Perf.AvgFrameDuration.Microseconds()))
	return y
}

// DrawHint renders the toggle hint in the bottom-left corner.
func (h *HUD) DrawHint(screenHeight int32, text string) {
	rl.DrawText(text, 10, screenHeight-20, 12, rl.Gray)
}
