package railrl

import "testing"

// Invariant 8: a cohort that exactly matches remaining capacity boards
// fully in one step.
func TestBoardExactCapacityFullyBoards(t *testing.T) {
	s := newStation(0, 1, false, false, false)
	s.enqueue(0, 7, 30, 0)

	train := newTrain(1, 1, 0, 30, 0, 8, 0)
	s.board(0, train)

	if train.Passengers != 30 || train.Capacity != 0 {
		t.Fatalf("expected full boarding, got passengers=%d capacity=%d", train.Passengers, train.Capacity)
	}
	if s.QueueSize(0) != 0 {
		t.Fatalf("expected queue drained, got size=%d", s.QueueSize(0))
	}
}

// Invariant 9: a cohort larger than capacity splits, leaving the
// remainder at the head of the queue with its count decremented.
func TestBoardOverCapacitySplits(t *testing.T) {
	s := newStation(0, 1, false, false, false)
	s.enqueue(0, 7, 50, 0)

	train := newTrain(1, 1, 0, 30, 0, 8, 0)
	s.board(0, train)

	if train.Passengers != 30 || train.Capacity != 0 {
		t.Fatalf("expected train filled to capacity, got passengers=%d capacity=%d", train.Passengers, train.Capacity)
	}
	if s.QueueSize(0) != 20 {
		t.Fatalf("expected 20 passengers left queued, got %d", s.QueueSize(0))
	}
	if len(s.queue[0]) != 1 || s.queue[0][0].Count != 20 {
		t.Fatalf("expected head cohort decremented to 20, got %+v", s.queue[0])
	}
}

func TestEnqueueWeightedMeanArrivalTime(t *testing.T) {
	s := newStation(0, 1, false, false, false)
	s.enqueue(0, 1, 10, 0)
	s.enqueue(0, 2, 10, 20)

	want := 10.0
	if !approxEqual(s.avgInTime[0], want) {
		t.Fatalf("expected weighted mean %v, got %v", want, s.avgInTime[0])
	}
	if s.QueueSize(0) != 20 {
		t.Fatalf("expected queue size 20, got %d", s.QueueSize(0))
	}
}
