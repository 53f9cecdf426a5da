package railrl

import "testing"

// buildTransferTables constructs two lines meeting at a transfer pair
// (stations 1 and 2): line 1 runs 0 -> 1, line 2 runs 2 -> 3. walk is
// the transferTime between 1 and 2 (0 for same-platform, >0 for a
// walked transfer producing a deferred Transfer event). train2Start is
// when the second train begins its own run at station 2.
func buildTransferTables(walk, train2Start, train2ArriveAt float64) *staticTables {
	n := 4
	t := &staticTables{totalStations: n, maxPolicyNum: 1}

	t.stations = []*Station{
		newStation(0, 1, false, false, false),
		newStation(1, 1, true, false, true),
		newStation(2, 2, false, false, true),
		newStation(3, 2, true, false, false),
	}
	t.lineIDOfStation = []int{1, 1, 2, 2}

	t.directions = [][]int{
		{-1, 0, -1, -1},
		{-1, -1, -1, -1},
		{-1, -1, -1, 0},
		{-1, -1, -1, -1},
	}
	t.transferTime = [][]float64{
		{-1, -1, -1, -1},
		{-1, -1, walk, -1},
		{-1, walk, -1, -1},
		{-1, -1, -1, -1},
	}
	t.policy = [][][]int{
		{nil, {1}, nil, {1}},
		{nil, nil, nil, {2}},
		{nil, nil, nil, {3}},
		{nil, nil, nil, nil},
	}

	t.startTrain = []startTrainRow{
		{TrainID: 1, StartingStation: 0, LineID: 1, Direction: 0, Capacity: 300, StartTime: 0},
		{TrainID: 2, StartingStation: 2, LineID: 2, Direction: 0, Capacity: 300, StartTime: train2Start},
	}
	t.arrivalTime = [][]float64{
		{60},
		{train2Start + train2ArriveAt},
	}
	t.arrivalStationID = [][]int{
		{1},
		{3},
	}

	return t
}

// S4: same-platform transfer (walk == 0): passengers alighting at the
// transfer station are immediately re-queued on the other line.
func TestScenarioS4SamePlatformTransfer(t *testing.T) {
	tables := buildTransferTables(0, 90, 60)
	sim := newTestSim(tables, 300)

	sim.AddPassengers(0, 3, 10)
	report := sim.Run()

	if report.NumDeparted != 10 || report.NumArrived != 10 {
		t.Fatalf("expected 10 departed/arrived, got %d/%d", report.NumDeparted, report.NumArrived)
	}
	if !approxEqual(report.TotalTravelTime, 1500) {
		t.Fatalf("expected travel time 1500, got %v", report.TotalTravelTime)
	}
	if !approxEqual(report.TotalDelay, 300) {
		t.Fatalf("expected delay 300, got %v", report.TotalDelay)
	}
}

// S5: walked transfer (walk > 0): alighting schedules a deferred
// Transfer event after the walk completes.
func TestScenarioS5WalkedTransfer(t *testing.T) {
	tables := buildTransferTables(30, 95, 60)
	sim := newTestSim(tables, 300)

	sim.AddPassengers(0, 3, 10)
	report := sim.Run()

	if report.NumDeparted != 10 || report.NumArrived != 10 {
		t.Fatalf("expected 10 departed/arrived, got %d/%d", report.NumDeparted, report.NumArrived)
	}
	if !approxEqual(report.TotalTravelTime, 1550) {
		t.Fatalf("expected travel time 1550, got %v", report.TotalTravelTime)
	}
	if !approxEqual(report.TotalDelay, 50) {
		t.Fatalf("expected delay 50, got %v", report.TotalDelay)
	}
}
