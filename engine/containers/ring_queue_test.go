package containers

import (
	"errors"
	"testing"
)

func TestRingQueue(t *testing.T) {
	rq := NewRingQueue[int](3)
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("Dequeue on empty = %v", err)
	}
	for i := 1; i <= 3; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	if err := rq.Enqueue(4); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Enqueue on full = %v", err)
	}
	if v, _ := rq.Peek(); v != 1 {
		t.Errorf("Peek = %d", v)
	}
	if v, _ := rq.Dequeue(); v != 1 {
		t.Errorf("Dequeue = %d", v)
	}
	if rq.Len() != 2 {
		t.Errorf("Len = %d", rq.Len())
	}
}

func TestRingQueuePushEvictsOldest(t *testing.T) {
	rq := NewRingQueue[int](3)
	for i := 1; i <= 5; i++ {
		rq.Push(i)
	}
	var got []int
	rq.Each(func(v int) { got = append(got, v) })
	want := []int{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Each = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Each = %v, want %v", got, want)
		}
	}
}

func TestRingQueueMinimumSize(t *testing.T) {
	rq := NewRingQueue[string](0)
	rq.Push("a")
	rq.Push("b")
	if v, _ := rq.Peek(); v != "b" || rq.Len() != 1 {
		t.Errorf("Peek = %q, Len = %d", v, rq.Len())
	}
}
