package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderSize, r.Theme.SectionHeader)
	return y + r.Theme.HeaderSize + 4
}

// DrawLabelValue draws a label and value on the same line and returns the new Y position.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawSlider draws a labelled raygui slider and returns the edited value and the new Y position.
func (r *Renderer) DrawSlider(x, y, width int32, t Tunable, value float64) (float64, int32) {
	rl.DrawText(t.Label, x, y+2, r.Theme.FontSize, r.Theme.LabelColor)

	sliderX := x + r.Theme.LabelWidth
	sliderW := width - r.Theme.LabelWidth - 50
	next := gui.SliderBar(
		rl.Rectangle{X: float32(sliderX), Y: float32(y), Width: float32(sliderW), Height: float32(r.Theme.SliderHeight)},
		"", "",
		float32(value), t.Min, t.Max,
	)
	rl.DrawText(fmt.Sprintf(t.Format, value), sliderX+sliderW+6, y+2, r.Theme.FontSize, r.Theme.ValueColor)

	out := value
	if next != float32(value) {
		out = float64(next)
	}
	return out, y + r.Theme.SliderHeight + 6
}

// DrawButton draws a raygui button and reports whether it was clicked.
func (r *Renderer) DrawButton(x, y, width int32, text string) bool {
	return gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: 22}, text)
}
