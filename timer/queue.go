// Package timer holds deferred one-shot actions keyed by absolute fire time.
package timer

import (
	"container/heap"
	"time"
)

type task struct {
	at  time.Duration
	seq uint64
	do  func()
}

type taskHeap struct {
	q []task
}

func (t *taskHeap) Len() int {
	return len(t.q)
}

func (t *taskHeap) Less(i, j int) bool {
	if t.q[i].at == t.q[j].at {
		return t.q[i].seq < t.q[j].seq
	}
	return t.q[i].at < t.q[j].at
}

func (t *taskHeap) Swap(i, j int) {
	t.q[i], t.q[j] = t.q[j], t.q[i]
}

func (t *taskHeap) Push(x any) {
	t.q = append(t.q, x.(task))
}

func (t *taskHeap) Pop() any {
	last := len(t.q) - 1
	v := t.q[last]
	t.q[last] = task{}
	t.q = t.q[:last]
	return v
}

// Queue is a priority-ordered set of pending actions. It is not safe for
// concurrent use; the game loop owns it.
type Queue struct {
	clock   Clock
	inner   taskHeap
	seq     uint64
	stopped bool
}

// NewQueue creates a running queue reading time from clock. A nil clock
// selects a MonotonicClock.
func NewQueue(clock Clock) *Queue {
	if clock == nil {
		clock = NewMonotonicClock()
	}
	return &Queue{clock: clock}
}

// Clock returns the time source of the queue.
func (q *Queue) Clock() Clock {
	if q == nil {
		return nil
	}
	return q.clock
}

// SetClock replaces the time source. Pending tasks keep their fire times.
func (q *Queue) SetClock(c Clock) {
	if q == nil || c == nil {
		return
	}
	q.clock = c
}

// Schedule registers action to fire delaySeconds from now.
func (q *Queue) Schedule(action func(), delaySeconds float64) {
	if q == nil || action == nil {
		return
	}
	q.seq++
	at := q.clock.Now() + time.Duration(delaySeconds*float64(time.Second))
	heap.Push(&q.inner, task{at: at, seq: q.seq, do: action})
}

// Poll removes every task whose fire time has passed and returns the
// actions in fire order. A stopped queue returns nothing.
func (q *Queue) Poll() []func() {
	if q == nil || q.stopped || q.inner.Len() == 0 {
		return nil
	}
	now := q.clock.Now()
	var out []func()
	for q.inner.Len() > 0 && q.inner.q[0].at <= now {
		t := heap.Pop(&q.inner).(task)
		out = append(out, t.do)
	}
	return out
}

// Clear discards every pending task.
func (q *Queue) Clear() {
	if q == nil {
		return
	}
	q.inner.q = nil
}

// Stop pauses the driver; tasks are kept.
func (q *Queue) Stop() {
	if q == nil {
		return
	}
	q.stopped = true
}

// Start resumes a stopped driver.
func (q *Queue) Start() {
	if q == nil {
		return
	}
	q.stopped = false
}

// Stopped reports whether the driver is paused.
func (q *Queue) Stopped() bool {
	return q != nil && q.stopped
}

// Delay pushes every pending task ms milliseconds into the future. A uniform
// shift keeps heap order intact.
func (q *Queue) Delay(ms int64) {
	if q == nil || ms == 0 {
		return
	}
	d := time.Duration(ms) * time.Millisecond
	for i := range q.inner.q {
		q.inner.q[i].at += d
	}
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return q.inner.Len()
}

// NextAt returns the fire time of the earliest task.
func (q *Queue) NextAt() (time.Duration, bool) {
	if q == nil || q.inner.Len() == 0 {
		return 0, false
	}
	return q.inner.q[0].at, true
}
