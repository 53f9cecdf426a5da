package railrl

// dispatch.go implements the Arrival event: alighting, transfer
// injection, boarding, follow-on scheduling, and terminal retirement,
// in the order fixed by the dispatch state machine.

import (
	"github.com/iti/evt/vrtime"
	log "github.com/sirupsen/logrus"
)

func secondsToTime(seconds float64) vrtime.Time {
	return vrtime.SecondsToTime(seconds)
}

func (sim *Simulation) dispatchArrival(train *Train) {
	station := sim.tables.stations[train.arrivingStation]
	dir := train.Direction
	now := sim.time

	if sim.trace.Active() {
		AddEventTrace(sim.trace, secondsToTime(now), &EventTrace{
			Time:    now,
			Kind:    "arrival",
			Station: station.StationID,
			Train:   train.TrainID,
			QueueA:  station.QueueSize(0),
			QueueB:  station.QueueSize(1),
		}, station.StationID)
	}

	sim.alightDirect(train, station)
	if station.IsTransfer {
		sim.alightTransfers(train, station, train.LineID, now)
	}

	terminal := station.isTerminal[dir]
	if !terminal {
		station.drainOnArrival(dir, now, &sim.totalDelay, &sim.totalTravelTime)
		station.board(dir, train)
	}

	if terminal {
		if train.Passengers != 0 {
			invariantPanic("dispatchArrival", "train %d has %d passengers remaining at terminal station %d",
				train.TrainID, train.Passengers, station.StationID)
		}
		delete(sim.trains, train.TrainID)
		log.WithFields(log.Fields{"train": train.TrainID, "station": station.StationID}).Debug("train retired at terminal")
		return
	}

	sim.scheduleFollowOn(train, now)
}

// alightDirect handles passengers whose logical destination is this
// station: the travel-time integral for the segment just completed is
// charged once, against the train's full onboard count before any
// alighting, matching the single-integral accounting of section 4.4.
func (sim *Simulation) alightDirect(train *Train, station *Station) {
	delta := sim.time - train.lastTime
	if train.Passengers > 0 && delta > 0 {
		sim.totalTravelTime += float64(train.Passengers) * delta
	}

	m := train.destination[station.StationID]
	if m == 0 {
		return
	}
	train.Capacity += m
	train.Passengers -= m
	sim.numArrived += m
	train.destination[station.StationID] = 0
}

// alightTransfers walks every nonzero destination histogram entry at
// a transfer station and either treats the arrival as equivalent to
// reaching the destination (transferTime[s][d] >= 0), or routes the
// cohort onward, either immediately (same-platform transfer) or via a
// deferred Transfer event (walked transfer).
func (sim *Simulation) alightTransfers(train *Train, station *Station, line int, now float64) {
	s := station.StationID
	for d := 0; d < sim.tables.totalStations; d++ {
		m := train.destination[d]
		if m == 0 {
			continue
		}

		if sim.tables.transferTime[s][d] >= 0 {
			sim.totalTravelTime += float64(m) * sim.tables.transferTime[s][d]
			sim.numArrived += m
			train.Capacity += m
			train.Passengers -= m
			train.destination[d] = 0
			continue
		}

		decision := sim.route(s, d, line)
		if !decision.Transfer {
			continue
		}

		train.Capacity += m
		train.Passengers -= m
		train.destination[d] = 0

		walk := sim.tables.transferTime[s][decision.Via]
		if walk == 0 {
			sim.injectAt(decision.Via, d, m)
			continue
		}
		sim.totalTravelTime += walk * float64(m)
		sim.events.push(&Event{
			Time:  secondsToTime(now + walk),
			Kind:  EvTransfer,
			From:  decision.Via,
			To:    d,
			Count: m,
		})
	}
}

func (sim *Simulation) scheduleFollowOn(train *Train, now float64) {
	times := sim.tables.arrivalTime[train.rowIndex]
	stations := sim.tables.arrivalStationID[train.rowIndex]

	if train.cursor >= len(times) {
		invariantPanic("scheduleFollowOn", "train %d has no remaining stops but is not at a terminal", train.TrainID)
	}

	nextTime := times[train.cursor]
	nextStation := stations[train.cursor]
	train.cursor++

	train.lastTime = now
	train.arrivingStation = nextStation
	sim.scheduleArrival(train, nextTime)
}
