package game

import "gonum.org/v1/gonum/spatial/r2"

// Cursor is a ring that eases toward the pointer.
type Cursor struct {
	pos     r2.Vec
	target  r2.Vec
	seen    bool
	pressed bool
}

// MoveTo sets the point the ring eases toward. The first call places the ring directly.
func (c *Cursor) MoveTo(p r2.Vec) {
	c.target = p
	if !c.seen {
		c.pos = p
		c.seen = true
	}
}

// SetPressed records the primary button state.
func (c *Cursor) SetPressed(down bool) {
	c.pressed = down
}

// Update moves the ring by follow (in (0, 1]) of the remaining distance.
func (c *Cursor) Update(follow float64) {
	c.pos = r2.Add(c.pos, r2.Scale(follow, r2.Sub(c.target, c.pos)))
}

// Position returns the ring centre.
func (c *Cursor) Position() r2.Vec {
	return c.pos
}

// Visible reports whether the pointer has been seen.
func (c *Cursor) Visible() bool {
	return c.seen
}

// Radius returns the ring radius for the current button state.
func (c *Cursor) Radius(base, pressedScale float64) float64 {
	if c.pressed {
		return base * pressedScale
	}
	return base
}
