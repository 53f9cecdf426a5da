package railrl

// simulation.go is the top-level orchestration: it loads static
// tables, builds the mutable station/train state, and runs the
// event loop described by the dispatch state machine.  The overall
// shape -- a constructor that loads every input table, validates it,
// and panics on any internal inconsistency discovered afterward --
// follows the same discipline as the network-topology builder this
// package grew out of.

import (
	"github.com/iti/rngstream"
	log "github.com/sirupsen/logrus"
)

// runState names where the Simulation sits in the dispatch state
// machine of section 4.6: idle, running, suspended, finished.
type runState int

const (
	stateIdle runState = iota
	stateRunning
	stateSuspended
	stateFinished
)

// Simulation is one instance of the engine.  The station queues live in
// the Station records of its tables, so two instances built on the same
// tables share and mutate the same queues; the tables are not safe to
// share between instances.
type Simulation struct {
	cfg    *Config
	tables *staticTables
	rng    *rngstream.RngStream
	trace  *TraceManager

	state runState
	time  float64

	totalTravelTime float64
	totalDelay      float64
	numDeparted     int
	numArrived      int

	events *eventQueue
	trains map[int]*Train
}

// NewSimulation constructs a Simulation against an already-loaded set
// of static tables, seeding its RNG stream by name so that two
// instances seeded with the same name reproduce identical episodes.
func NewSimulation(cfg *Config, tables *staticTables, rngName string) *Simulation {
	sim := &Simulation{
		cfg:    cfg,
		tables: tables,
		rng:    rngstream.New(rngName),
		trace:  CreateTraceManager(rngName, cfg.TracePath != ""),
	}
	sim.Reset()
	return sim
}

// Init loads the static tables from topoDir using cfg and returns a
// ready-to-run Simulation, or a *LoadError if the topology fails
// validation.
func Init(topoDir string, cfg *Config, rngName string) (*Simulation, error) {
	tables, err := LoadTopology(topoDir, cfg)
	if err != nil {
		log.WithError(err).Error("topology load failed")
		return nil, err
	}
	return NewSimulation(cfg, tables, rngName), nil
}

// Reset clears all mutable state and re-seeds the event queue with one
// Arrival event per row of the static start-train table.  It clears the
// queue state held in the tables' Station records and leaves the rest
// of the static tables and the RNG stream untouched.
func (sim *Simulation) Reset() {
	sim.state = stateIdle
	sim.time = 0
	sim.totalTravelTime = 0
	sim.totalDelay = 0
	sim.numDeparted = 0
	sim.numArrived = 0
	sim.events = newEventQueue()
	sim.trains = make(map[int]*Train)

	for _, s := range sim.tables.stations {
		for d := 0; d < 2; d++ {
			s.queue[d] = nil
			s.queueSize[d] = 0
			s.avgInTime[d] = 0
			s.delay[d] = 0
			s.numPass[d] = 0
		}
	}

	for idx, row := range sim.tables.startTrain {
		train := newTrain(row.TrainID, row.LineID, row.Direction, row.Capacity,
			row.StartingStation, sim.tables.totalStations, row.StartTime)
		train.rowIndex = idx
		sim.trains[row.TrainID] = train
		sim.scheduleArrival(train, row.StartTime)
	}

	log.WithField("trains", len(sim.trains)).Info("simulation reset")
}

func (sim *Simulation) scheduleArrival(train *Train, when float64) {
	sim.events.push(&Event{Time: secondsToTime(when), Kind: EvArrival, Train: train})
}

// AddEvent enqueues a caller-built event, used to schedule a Suspend
// at the next decision point or a NewOd injection at a future time.
func (sim *Simulation) AddEvent(when float64, kind EventKind, od []ODEntry) {
	sim.events.push(&Event{Time: secondsToTime(when), Kind: kind, OD: od})
}

// GetTime returns the current simulation clock, in seconds.
func (sim *Simulation) GetTime() float64 { return sim.time }

// GetStationDelay returns the accumulated delay integral recorded for
// a station in a direction.
func (sim *Simulation) GetStationDelay(station, direction int) float64 {
	return sim.tables.stations[station].delay[direction]
}

// GetStationPass returns the count of passengers who have passed
// through a station's queue in a direction.
func (sim *Simulation) GetStationPass(station, direction int) int {
	return sim.tables.stations[station].numPass[direction]
}

// GetStationWaitingPassengers returns the number of passengers
// currently queued at a station in a direction.
func (sim *Simulation) GetStationWaitingPassengers(station, direction int) int {
	return sim.tables.stations[station].QueueSize(direction)
}

// AddPassengers injects a single origin/destination cohort newly
// entering the system at the current simulation time, following the
// routing decision of section 4.1 and section 4.5's immediate-injection
// semantics.  This is the only place a departure is counted: passengers
// re-routed mid-journey at a transfer station are not new departures.
func (sim *Simulation) AddPassengers(from, to, count int) {
	if count <= 0 {
		return
	}
	sim.numDeparted += count
	sim.injectAt(from, to, count)
}

// injectAt performs the routing decision and enqueue/transfer-walk
// accounting for a cohort that has already been counted as departed.
// It is used both by AddPassengers (true origin injection) and to
// re-route a transferred cohort from its transfer station, so that a
// passenger who transfers twice is still counted as one departure.
func (sim *Simulation) injectAt(from, to, count int) {
	decision := sim.route(from, to, -1)
	if decision.Transfer {
		walk := sim.tables.transferTime[from][decision.Via]
		sim.totalTravelTime += walk * float64(count)
		sim.injectAt(decision.Via, to, count)
		return
	}
	sim.enqueueAt(from, decision.Direction, to, count)
}

func (sim *Simulation) enqueueAt(station, direction, destination, count int) {
	s := sim.tables.stations[station]
	s.enqueue(direction, destination, count, sim.time)
	s.numPass[direction] += count
}

// WriteTrace flushes any gathered event trace to filename.  It is a
// no-op if tracing was never activated.
func (sim *Simulation) WriteTrace(filename string) error {
	return sim.trace.WriteToFile(filename)
}

// Run advances the event loop until a Suspend event, the simulation
// horizon, or an empty queue, then returns a Report snapshot.
func (sim *Simulation) Run() Report {
	sim.state = stateRunning
	for {
		if sim.time >= sim.cfg.SimulationEndTime {
			sim.state = stateFinished
			return sim.report(true)
		}

		ev, ok := sim.events.pop()
		if !ok {
			log.Warn("event queue emptied before simulation horizon")
			return sim.report(sim.time >= sim.cfg.SimulationEndTime)
		}

		sim.time = ev.Time.Seconds()

		switch ev.Kind {
		case EvArrival:
			sim.dispatchArrival(ev.Train)
		case EvNewOd:
			for _, entry := range ev.OD {
				sim.AddPassengers(entry.From, entry.To, entry.Count)
			}
		case EvTransfer:
			sim.injectAt(ev.From, ev.To, ev.Count)
		case EvSuspend:
			sim.state = stateSuspended
			return sim.report(sim.time >= sim.cfg.SimulationEndTime)
		}
	}
}

func (sim *Simulation) report(finished bool) Report {
	return Report{
		IsFinished:      finished,
		TotalTravelTime: sim.totalTravelTime,
		TotalDelay:      sim.totalDelay,
		NumDeparted:     sim.numDeparted,
		NumArrived:      sim.numArrived,
	}
}
