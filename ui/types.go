// Package ui draws the tuning overlay and HUD on top of the particle field.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftfield/config"
)

// Tunable describes one live-editable config value shown as a slider.
type Tunable struct {
	ID       string
	Label    string
	Format   string  // Printf format for the value
	Min, Max float32 // Slider range
	Get      func(*config.Config) float64
	Set      func(*config.Config, float64)
}

// DefaultTunables returns the sliders shown in the overlay.
func DefaultTunables() []Tunable {
	return []Tunable{
		{
			ID: "pointer.radius", Label: "Pointer radius", Format: "%.0f", Min: 0, Max: 400,
			Get: func(c *config.Config) float64 { return c.Pointer.Radius },
			Set: func(c *config.Config, v float64) { c.Pointer.Radius = v },
		},
		{
			ID: "pointer.force_scale", Label: "Pointer force", Format: "%.3f", Min: 0, Max: 1,
			Get: func(c *config.Config) float64 { return c.Pointer.ForceScale },
			Set: func(c *config.Config, v float64) { c.Pointer.ForceScale = v },
		},
		{
			ID: "pointer.max_speed", Label: "Max speed", Format: "%.1f", Min: 0, Max: 10,
			Get: func(c *config.Config) float64 { return c.Pointer.MaxSpeed },
			Set: func(c *config.Config, v float64) { c.Pointer.MaxSpeed = v },
		},
		{
			ID: "connections.distance", Label: "Link distance", Format: "%.0f", Min: 0, Max: 300,
			Get: func(c *config.Config) float64 { return c.Connections.Distance },
			Set: func(c *config.Config, v float64) { c.Connections.Distance = v },
		},
		{
			ID: "connections.max_opacity", Label: "Link opacity", Format: "%.2f", Min: 0, Max: 1,
			Get: func(c *config.Config) float64 { return c.Connections.MaxOpacity },
			Set: func(c *config.Config, v float64) { c.Connections.MaxOpacity = v },
		},
		{
			ID: "field.glow_factor", Label: "Glow", Format: "%.1f", Min: 0, Max: 8,
			Get: func(c *config.Config) float64 { return c.Field.GlowFactor },
			Set: func(c *config.Config, v float64) { c.Field.GlowFactor = v },
		},
		{
			ID: "field.max_count", Label: "Max particles", Format: "%.0f", Min: 0, Max: 200,
			Get: func(c *config.Config) float64 { return float64(c.Field.MaxCount) },
			Set: func(c *config.Config, v float64) { c.Field.MaxCount = int(v) },
		},
		{
			ID: "field.drift", Label: "Drift", Format: "%.2f", Min: 0, Max: 2,
			Get: func(c *config.Config) float64 { return c.Field.Drift },
			Set: func(c *config.Config, v float64) { c.Field.Drift = v },
		},
	}
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	Padding       int32
	LineHeight    int32
	LabelWidth    int32
	SliderHeight  int32
	FontSize      int32
	HeaderSize    int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:   rl.Color{R: 212, G: 175, B: 55, A: 255},
		SectionHeader: rl.Color{R: 212, G: 175, B: 55, A: 255},
		LabelColor:    rl.LightGray,
		ValueColor:    rl.RayWhite,
		Padding:       10,
		LineHeight:    16,
		LabelWidth:    110,
		SliderHeight:  16,
		FontSize:      12,
		HeaderSize:    16,
	}
}
