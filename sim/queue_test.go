package sim

import (
	"testing"
)

func TestTickQueue_FIFOOrder(t *testing.T) {
	// GIVEN a queue with ticks [1, 2, 3]
	tq := &TickQueue{}
	for id := uint64(1); id <= 3; id++ {
		tq.Enqueue(TickContext{TickID: id})
	}

	// WHEN dequeuing all of them
	// THEN they come back in enqueue order
	for want := uint64(1); want <= 3; want++ {
		ctx, ok := tq.Dequeue()
		if !ok {
			t.Fatalf("Dequeue: queue unexpectedly empty at tick %d", want)
		}
		if ctx.TickID != want {
			t.Errorf("Dequeue order: got tick %d, want %d", ctx.TickID, want)
		}
	}
	if tq.Len() != 0 {
		t.Errorf("Len after draining: got %d, want 0", tq.Len())
	}
}

func TestTickQueue_PeekDoesNotRemove(t *testing.T) {
	tq := &TickQueue{}
	tq.Enqueue(TickContext{TickID: 7})

	ctx, ok := tq.Peek()
	if !ok || ctx.TickID != 7 {
		t.Fatalf("Peek: got (%v, %v), want tick 7", ctx.TickID, ok)
	}
	if tq.Len() != 1 {
		t.Errorf("Peek modified queue length: got %d, want 1", tq.Len())
	}
}

func TestTickQueue_EmptyBehavior(t *testing.T) {
	tq := &TickQueue{}
	if _, ok := tq.Peek(); ok {
		t.Error("Peek on empty queue must report not-ok")
	}
	if _, ok := tq.Dequeue(); ok {
		t.Error("Dequeue on empty queue must report not-ok")
	}
}

func TestTickQueue_DropOldest(t *testing.T) {
	tq := &TickQueue{}
	tq.Enqueue(TickContext{TickID: 1})
	tq.Enqueue(TickContext{TickID: 2})

	dropped, ok := tq.DropOldest()
	if !ok || dropped.TickID != 1 {
		t.Fatalf("DropOldest: got (%v, %v), want tick 1", dropped.TickID, ok)
	}
	if head, _ := tq.Peek(); head.TickID != 2 {
		t.Errorf("head after drop: got %d, want 2", head.TickID)
	}
}

func TestTickQueue_String(t *testing.T) {
	tq := &TickQueue{}
	tq.Enqueue(TickContext{TickID: 4})
	tq.Enqueue(TickContext{TickID: 5})
	if got := tq.String(); got != "[#4 #5]" {
		t.Errorf("String: got %q, want %q", got, "[#4 #5]")
	}
}
