package game

import "image/color"

// Surface is the 2D raster the renderer draws into.
// Colors carry straight (non-premultiplied) alpha.
type Surface interface {
	Resize(v Viewport)
	Clear()
	// FillCircle draws a filled disc with a radial glow of glowRadius fading out from glow.
	// A glowRadius no larger than r draws no glow.
	FillCircle(x, y, r float64, fill color.RGBA, glowRadius float64, glow color.RGBA)
	StrokeLine(x1, y1, x2, y2, width float64, c color.RGBA)
	StrokeCircle(x, y, r, width float64, c color.RGBA)
	Release()
}

// NullSurface discards drawing and counts the calls. Headless runs draw into it.
type NullSurface struct {
	Viewport Viewport
	Clears   int
	Circles  int
	Lines    int
	Rings    int
	Released bool
}

func (s *NullSurface) Resize(v Viewport) { s.Viewport = v }
func (s *NullSurface) Clear()            { s.Clears++ }

func (s *NullSurface) FillCircle(_, _, _ float64, _ color.RGBA, _ float64, _ color.RGBA) {
	s.Circles++
}

func (s *NullSurface) StrokeLine(_, _, _, _, _ float64, _ color.RGBA) { s.Lines++ }
func (s *NullSurface) StrokeCircle(_, _, _, _ float64, _ color.RGBA)  { s.Rings++ }
func (s *NullSurface) Release()                                       { s.Released = true }

// Draws returns the number of draw calls of any kind, Clear included.
func (s *NullSurface) Draws() int {
	return s.Clears + s.Circles + s.Lines + s.Rings
}
