package timer

import (
	"testing"
	"time"
)

func TestQueuePollOrder(t *testing.T) {
	clock := NewManualClock()
	q := NewQueue(clock)

	var got []int
	q.Schedule(func() { got = append(got, 3) }, 3)
	q.Schedule(func() { got = append(got, 1) }, 1)
	q.Schedule(func() { got = append(got, 2) }, 2)
	q.Schedule(func() { got = append(got, 22) }, 2)

	cases := []struct {
		name    string
		advance time.Duration
		want    []int
	}{
		{"nothing_due", 500 * time.Millisecond, nil},
		{"first", 500 * time.Millisecond, []int{1}},
		{"ties_keep_insertion_order", time.Second, []int{1, 2, 22}},
		{"last", 5 * time.Second, []int{1, 2, 22, 3}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clock.Advance(c.advance)
			for _, fn := range q.Poll() {
				fn()
			}
			if len(got) != len(c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("expected %v, got %v", c.want, got)
				}
			}
		})
	}

	if q.Len() != 0 {
		t.Fatalf("expected empty queue, got %d", q.Len())
	}
}

func TestQueueDelayShiftsFireTime(t *testing.T) {
	clock := NewManualClock()
	q := NewQueue(clock)

	fired := false
	q.Schedule(func() { fired = true }, 5)
	q.Delay(2000)

	clock.Set(5 * time.Second)
	for _, fn := range q.Poll() {
		fn()
	}
	if fired {
		t.Fatalf("task fired at t+5s after a 2s delay")
	}

	clock.Set(7*time.Second - time.Millisecond)
	for _, fn := range q.Poll() {
		fn()
	}
	if fired {
		t.Fatalf("task fired before t+7s")
	}

	clock.Set(7 * time.Second)
	for _, fn := range q.Poll() {
		fn()
	}
	if !fired {
		t.Fatalf("task did not fire at t+7s")
	}
}

func TestQueueStopStartClear(t *testing.T) {
	clock := NewManualClock()
	q := NewQueue(clock)

	count := 0
	q.Schedule(func() { count++ }, 1)
	q.Stop()
	clock.Advance(2 * time.Second)
	if acts := q.Poll(); len(acts) != 0 {
		t.Fatalf("stopped queue returned %d actions", len(acts))
	}
	if q.Len() != 1 {
		t.Fatalf("stop should keep tasks, got %d", q.Len())
	}

	q.Start()
	for _, fn := range q.Poll() {
		fn()
	}
	if count != 1 {
		t.Fatalf("expected 1 firing after start, got %d", count)
	}

	q.Schedule(func() { count++ }, 1)
	q.Schedule(func() { count++ }, 2)
	q.Clear()
	clock.Advance(10 * time.Second)
	for _, fn := range q.Poll() {
		fn()
	}
	if count != 1 {
		t.Fatalf("cleared tasks fired, count=%d", count)
	}
}

func TestNilQueueIsInert(t *testing.T) {
	var q *Queue
	q.Schedule(func() {}, 1)
	q.Delay(10)
	q.Clear()
	if q.Poll() != nil || q.Len() != 0 {
		t.Fatalf("nil queue should be inert")
	}
}
