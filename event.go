package railrl

// event.go holds the tagged-union Event type and the min-priority
// queue that orders pending events by (time, sequence).  The heap
// itself follows the shape of a task-scheduling heap: a slice of
// pointers implementing container/heap.Interface, ordered on a single
// numeric key with a secondary tie-break field.

import (
	"container/heap"

	"github.com/iti/evt/vrtime"
)

// EventKind discriminates the Event tagged union.
type EventKind int

const (
	// EvArrival: the referenced train has reached its next station.
	EvArrival EventKind = iota
	// EvNewOd: inject a full origin/destination matrix of passengers.
	EvNewOd
	// EvTransfer: inject a single deferred-transfer cohort.
	EvTransfer
	// EvSuspend: yield control to the caller and return a Report.
	EvSuspend
)

// ODEntry is one nonzero cell of an origin/destination matrix carried
// by an EvNewOd event.
type ODEntry struct {
	From, To, Count int
}

// Event is the tagged union scheduled and dispatched by the run loop.
// Only the fields relevant to Kind are meaningful.
type Event struct {
	Time vrtime.Time
	Kind EventKind

	Train *Train // EvArrival

	OD []ODEntry // EvNewOd

	From, To, Count int // EvTransfer

	seq int64 // insertion order, breaks ties among equal Time
}

// eventHeap implements a min-heap over Events ordered by (Time, seq),
// giving strict FIFO among events scheduled for the same instant.
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	ti, tj := h[i].Time.Ticks(), h[j].Time.Ticks()
	if ti != tj {
		return ti < tj
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// eventQueue is the Simulation's pending-event set: a heap plus an
// insertion counter for tie-breaking.
type eventQueue struct {
	h      eventHeap
	nextSeq int64
}

func newEventQueue() *eventQueue {
	eq := &eventQueue{h: eventHeap{}}
	heap.Init(&eq.h)
	return eq
}

func (eq *eventQueue) push(e *Event) {
	e.seq = eq.nextSeq
	eq.nextSeq++
	heap.Push(&eq.h, e)
}

func (eq *eventQueue) pop() (*Event, bool) {
	if eq.h.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&eq.h).(*Event), true
}

func (eq *eventQueue) empty() bool {
	return eq.h.Len() == 0
}

func (eq *eventQueue) reset() {
	eq.h = eventHeap{}
	eq.nextSeq = 0
}
