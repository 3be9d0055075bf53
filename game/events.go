package game

import "slices"

// Viewport is the drawing area in device-independent pixels.
type Viewport struct {
	Width, Height int
}

// Empty reports whether the viewport has no drawable area.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// EventSource delivers host input to listeners. Each On* call returns a function removing that listener.
type EventSource interface {
	OnPointerMove(fn func(x, y float64)) (remove func())
	OnPointerButton(fn func(down bool)) (remove func())
	OnResize(fn func(Viewport)) (remove func())
}

type listener[T any] struct {
	id uint64
	fn T
}

type registry[T any] struct {
	next uint64
	list []listener[T]
}

func (r *registry[T]) add(fn T) func() {
	r.next++
	id := r.next
	r.list = append(r.list, listener[T]{id: id, fn: fn})
	return func() {
		// Copy so an Emit ranging over the old list is unaffected
		r.list = slices.DeleteFunc(slices.Clone(r.list), func(l listener[T]) bool {
			return l.id == id
		})
	}
}

// Events is an EventSource fed by the host through its Emit methods.
// Like FrameLoop it is confined to the UI thread.
type Events struct {
	pointer registry[func(x, y float64)]
	button  registry[func(bool)]
	resize  registry[func(Viewport)]
}

// NewEvents creates an event dispatcher with no listeners.
func NewEvents() *Events {
	return &Events{}
}

func (e *Events) OnPointerMove(fn func(x, y float64)) func() { return e.pointer.add(fn) }
func (e *Events) OnPointerButton(fn func(bool)) func()       { return e.button.add(fn) }
func (e *Events) OnResize(fn func(Viewport)) func()          { return e.resize.add(fn) }

// EmitPointer notifies pointer listeners of a move to (x, y).
func (e *Events) EmitPointer(x, y float64) {
	for _, l := range e.pointer.list {
		l.fn(x, y)
	}
}

// EmitButton notifies listeners of a primary button change.
func (e *Events) EmitButton(down bool) {
	for _, l := range e.button.list {
		l.fn(down)
	}
}

// EmitResize notifies resize listeners.
func (e *Events) EmitResize(v Viewport) {
	for _, l := range e.resize.list {
		l.fn(v)
	}
}

// Listeners returns the total number of registered listeners.
func (e *Events) Listeners() int {
	return len(e.pointer.list) + len(e.button.list) + len(e.resize.list)
}
