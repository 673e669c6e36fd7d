package lol

import "testing"

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	var order []int

	q.PushFunc(func() { order = append(order, 1) })
	q.PushFunc(func() {
		order = append(order, 2)
		q.PushFunc(func() { order = append(order, 4) })
	})
	q.Push(EventFunc(func() { order = append(order, 3) }))
	q.PushFunc(nil)
	q.Push(nil)

	if n := q.Drain(); n != 3 {
		t.Fatalf("expected 3 events run, got %d", n)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("unexpected order %v", order)
	}
	if q.Len() != 1 {
		t.Fatalf("event pushed during drain should wait for the next drain")
	}
	q.Drain()
	if len(order) != 4 || order[3] != 4 {
		t.Fatalf("unexpected order after second drain %v", order)
	}

	q.PushFunc(func() { t.Fatalf("cleared event ran") })
	q.Clear()
	if q.Drain() != 0 {
		t.Fatalf("cleared queue should be empty")
	}
}
