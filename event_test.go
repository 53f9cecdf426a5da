package railrl

import "testing"

func TestEventQueueOrdersByTimeThenInsertion(t *testing.T) {
	eq := newEventQueue()
	eq.push(&Event{Time: secondsToTime(5), Kind: EvSuspend})
	eq.push(&Event{Time: secondsToTime(1), Kind: EvArrival})
	eq.push(&Event{Time: secondsToTime(1), Kind: EvNewOd})
	eq.push(&Event{Time: secondsToTime(3), Kind: EvTransfer})

	order := []EventKind{}
	for {
		e, ok := eq.pop()
		if !ok {
			break
		}
		order = append(order, e.Kind)
	}

	want := []EventKind{EvArrival, EvNewOd, EvTransfer, EvSuspend}
	if len(order) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("position %d: expected kind %v, got %v", i, want[i], order[i])
		}
	}
}

func TestEventQueueResetClearsPendingEvents(t *testing.T) {
	eq := newEventQueue()
	eq.push(&Event{Time: secondsToTime(1), Kind: EvArrival})
	eq.reset()

	if !eq.empty() {
		t.Fatalf("expected empty queue after reset")
	}
	if _, ok := eq.pop(); ok {
		t.Fatalf("expected pop to fail on reset queue")
	}
}
