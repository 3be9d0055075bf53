package game

import "time"

// FrameID identifies a scheduled frame callback. The zero FrameID is never issued.
type FrameID uint64

// Scheduler delivers one-shot callbacks on the next animation frame.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn func(time.Time)
}

// FrameLoop is a Scheduler driven by an outer loop calling Pump once per presented frame.
// It is not safe for concurrent use; everything runs on the thread that calls Pump.
type FrameLoop struct {
	next    FrameID
	pending []frameRequest
	running []frameRequest // Batch being pumped
	fired   uint64
}

// NewFrameLoop creates an empty frame loop.
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{}
}

// RequestFrame queues fn for the next Pump.
func (l *FrameLoop) RequestFrame(fn func(time.Time)) FrameID {
	l.next++
	l.pending = append(l.pending, frameRequest{id: l.next, fn: fn})
	return l.next
}

// CancelFrame drops a queued callback. Unknown or already fired ids are ignored.
func (l *FrameLoop) CancelFrame(id FrameID) {
	for i := range l.running {
		if l.running[i].id == id {
			l.running[i].fn = nil
			return
		}
	}
	for i, req := range l.pending {
		if req.id == id {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
}

// Pump runs the callbacks queued before the call and returns how many ran.
// Callbacks requested during the pump wait for the next one.
func (l *FrameLoop) Pump(now time.Time) int {
	l.running, l.pending = l.pending, nil

	ran := 0
	for i := range l.running {
		fn := l.running[i].fn
		if fn == nil {
			continue
		}
		l.running[i].fn = nil
		fn(now)
		ran++
		l.fired++
	}
	l.running = nil
	return ran
}

// Pending returns the number of queued callbacks.
func (l *FrameLoop) Pending() int {
	return len(l.pending)
}

// Fired returns the total number of callbacks run.
func (l *FrameLoop) Fired() uint64 {
	return l.fired
}
