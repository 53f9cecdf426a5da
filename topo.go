package railrl

// topo.go holds the static and mutable data model: stations, trains,
// and the precomputed policy/direction/transfer tables that the loader
// populates and the engine consults but never recomputes.

// Cohort is a batch of passengers sharing a destination, queued
// atomically at a station.
type Cohort struct {
	Destination int
	Count       int
}

// Station is one logical station: a physical platform dedicated to a
// single line.  A physical interchange is represented as several
// Stations, one per incident line, linked through transferTime.
type Station struct {
	StationID int
	LineID    int
	IsTransfer bool

	isTerminal [2]bool
	queue      [2][]Cohort
	queueSize  [2]int
	avgInTime  [2]float64
	delay      [2]float64
	numPass    [2]int
}

func newStation(id, lineID int, terminal0, terminal1, isTransfer bool) *Station {
	s := &Station{StationID: id, LineID: lineID, IsTransfer: isTransfer}
	s.isTerminal[0] = terminal0
	s.isTerminal[1] = terminal1
	return s
}

// QueueSize reports the number of passengers currently waiting at the
// station in the given direction.
func (s *Station) QueueSize(dir int) int {
	return s.queueSize[dir]
}

// Train is the mutable state of one train run, from its starting
// station to the terminal of its direction.
type Train struct {
	TrainID     int
	LineID      int
	Direction   int
	Capacity    int // remaining seats
	nominal     int // capacity at creation; Capacity + Passengers stays equal to it
	Passengers  int
	destination []int // histogram indexed by station id

	arrivingStation int
	lastTime        float64
	cursor          int // index into per-train arrivalTime/arrivalStationID streams
	rowIndex        int // index into staticTables.startTrain / arrivalTime / arrivalStationID
}

func newTrain(id, lineID, direction, capacity, startStation, totalStations int, startTime float64) *Train {
	return &Train{
		TrainID:         id,
		LineID:          lineID,
		Direction:       direction,
		Capacity:        capacity,
		nominal:         capacity,
		destination:     make([]int, totalStations),
		arrivingStation: startStation,
		lastTime:        startTime,
	}
}

// startTrainRow is one row of the startTrainInfo static table.
type startTrainRow struct {
	TrainID         int
	StartingStation int
	LineID          int
	Direction       int
	Capacity        int
	StartTime       float64
}

// staticTables holds every table produced by the loader.  After Init
// completes, only the per-station queue state inside the Station
// records in stations is mutated (by enqueue, board, drainOnArrival
// and Reset); the other tables are read-only.
type staticTables struct {
	totalStations int
	maxPolicyNum  int

	stations []*Station // index == StationID, shared across resets

	// policy[i][j] lists candidate next-hop stations from i to j.
	policy [][][]int

	// directions[i][j] is the direction from i to reach adjacent j, or -1.
	directions [][]int

	// transferTime[i][j] is walking time between i and j, or -1 if unrelated.
	transferTime [][]float64

	lineIDOfStation []int

	startTrain []startTrainRow

	// arrivalTime[t] / arrivalStationID[t] are the remaining-stop streams
	// for train row t, consumed by a per-train cursor during Run.
	arrivalTime      [][]float64
	arrivalStationID [][]int
}
