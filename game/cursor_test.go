package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestCursorEasesTowardPointer(t *testing.T) {
	var c Cursor
	assert.False(t, c.Visible())

	c.MoveTo(r2.Vec{X: 10, Y: 10})
	assert.True(t, c.Visible())
	assert.Equal(t, r2.Vec{X: 10, Y: 10}, c.Position(), "first move places the ring")

	c.MoveTo(r2.Vec{X: 20, Y: 30})
	c.Update(0.5)
	assert.Equal(t, r2.Vec{X: 15, Y: 20}, c.Position())

	c.Update(1)
	assert.Equal(t, r2.Vec{X: 20, Y: 30}, c.Position())
}

func TestCursorPressedRadius(t *testing.T) {
	var c Cursor
	assert.Equal(t, 10.0, c.Radius(10, 0.5))

	c.SetPressed(true)
	assert.Equal(t, 5.0, c.Radius(10, 0.5))

	c.SetPressed(false)
	assert.Equal(t, 10.0, c.Radius(10, 0.5))
}
