// Implements the TickQueue, which holds tick requests that arrived while a
// computation was already in flight. Requests are enqueued in tick order.

package sim

import (
	"fmt"
	"strings"
)

// TickContext is the ephemeral record created when a tick is requested. It
// lives until its tick's result returns, is consumed exactly once, and is
// never persisted beyond that.
type TickContext struct {
	TickID         uint64  // monotonically increasing dispatch tag
	DeltaTimeS     float64 // simulated seconds this tick covers
	HeatInputW     float64 // burner power applied during this tick
	PrevLiquidMass float64 // liquid mass when the tick was dispatched (stamped at dispatch)
}

// TickQueue is a FIFO queue of tick requests waiting for the worker. The
// scheduler keeps at most one tick in flight; everything else waits here.
type TickQueue struct {
	queue []TickContext
}

// Enqueue adds a tick request to the back of the queue.
func (tq *TickQueue) Enqueue(ctx TickContext) {
	tq.queue = append(tq.queue, ctx)
}

// Len returns the number of queued tick requests.
func (tq *TickQueue) Len() int {
	return len(tq.queue)
}

// Peek returns the request at the front of the queue without removing it.
// ok is false when the queue is empty.
func (tq *TickQueue) Peek() (ctx TickContext, ok bool) {
	if len(tq.queue) == 0 {
		return TickContext{}, false
	}
	return tq.queue[0], true
}

// Dequeue removes and returns the request at the front of the queue.
func (tq *TickQueue) Dequeue() (ctx TickContext, ok bool) {
	if len(tq.queue) == 0 {
		return TickContext{}, false
	}
	ctx = tq.queue[0]
	tq.queue = tq.queue[1:]
	return ctx, true
}

// DropOldest discards the front request, returning the dropped context.
// Used when a bounded backlog overflows.
func (tq *TickQueue) DropOldest() (ctx TickContext, ok bool) {
	return tq.Dequeue()
}

func (tq *TickQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, ctx := range tq.queue {
		sb.WriteString(fmt.Sprintf("#%d", ctx.TickID))
		if i < len(tq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
