package lol

// Event is deferred work run at the safe point of a tick, after the physics
// step and before rendering.
type Event interface {
	Run()
}

// EventFunc adapts a plain function to Event.
type EventFunc func()

// Run calls f.
func (f EventFunc) Run() {
	if f != nil {
		f()
	}
}

// EventQueue is a FIFO of one-time events. Events pushed while the queue is
// draining run on the next drain.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(e Event) {
	if q == nil || e == nil {
		return
	}
	q.items = append(q.items, e)
}

// PushFunc adds fn as an event.
func (q *EventQueue) PushFunc(fn func()) {
	if fn == nil {
		return
	}
	q.Push(EventFunc(fn))
}

// Pending returns a copy of the queued events.
func (q *EventQueue) Pending() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := make([]Event, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain runs every queued event in push order and returns how many ran.
func (q *EventQueue) Drain() int {
	if q == nil || len(q.items) == 0 {
		return 0
	}
	batch := q.items
	q.items = nil
	for _, e := range batch {
		e.Run()
	}
	return len(batch)
}

// Clear drops every queued event.
func (q *EventQueue) Clear() {
	if q == nil {
		return
	}
	q.items = nil
}
