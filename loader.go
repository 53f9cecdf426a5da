package railrl

// loader.go reads the static topology, policy, and schedule tables
// from a directory of CSV files and validates them eagerly, before
// any event is scheduled.  Validation failures are returned as
// *LoadError rather than panicking, so a caller can retry against a
// different topology directory.

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"
	"slices"
)

const (
	stationsFile         = "stations.csv"
	directionsFile       = "directions.csv"
	policyFile           = "policy.csv"
	policyNumFile        = "policyNum.csv"
	transferTimeFile     = "transferTime.csv"
	startTrainInfoFile   = "startTrainInfo.csv"
	arrivalTimeFile      = "arrivalTime.csv"
	arrivalStationIDFile = "arrivalStationID.csv"
)

func readCSV(dir, name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, loadErrf(name, "%v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1 // row widths are checked by each table's loader
	records, err := r.ReadAll()
	if err != nil {
		return nil, loadErrf(name, "%v", err)
	}
	return records, nil
}

func atoiCell(name string, row, col int, cell string) (int, error) {
	v, err := strconv.Atoi(cell)
	if err != nil {
		return 0, loadErrf(name, "row %d col %d: %q is not an integer", row, col, cell)
	}
	return v, nil
}

func atofCell(name string, row, col int, cell string) (float64, error) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, loadErrf(name, "row %d col %d: %q is not a float", row, col, cell)
	}
	return v, nil
}

// LoadTopology reads every static table out of dir and validates their
// shapes against cfg before returning.  An N x N table is required to
// have exactly cfg.TotalStations rows and columns.
func LoadTopology(dir string, cfg *Config) (*staticTables, error) {
	t := &staticTables{totalStations: cfg.TotalStations, maxPolicyNum: cfg.MaxPolicyNum}

	if err := loadStations(dir, t); err != nil {
		return nil, err
	}
	if err := loadDirections(dir, t); err != nil {
		return nil, err
	}
	if err := loadPolicy(dir, t); err != nil {
		return nil, err
	}
	if err := loadTransferTime(dir, t); err != nil {
		return nil, err
	}
	if err := loadStartTrainInfo(dir, t); err != nil {
		return nil, err
	}
	if err := loadArrivalStreams(dir, t); err != nil {
		return nil, err
	}
	if err := checkConnectivity(t); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"stations": t.totalStations,
		"trains":   len(t.startTrain),
	}).Info("topology loaded")

	return t, nil
}

// stations.csv: stationId, lineId, isTerminalDir0, isTerminalDir1, isTransfer
func loadStations(dir string, t *staticTables) error {
	rows, err := readCSV(dir, stationsFile)
	if err != nil {
		return err
	}
	if len(rows) != t.totalStations {
		return loadErrf(stationsFile, "expected %d rows, got %d", t.totalStations, len(rows))
	}

	t.stations = make([]*Station, t.totalStations)
	t.lineIDOfStation = make([]int, t.totalStations)

	for i, row := range rows {
		if len(row) != 5 {
			return loadErrf(stationsFile, "row %d: expected 5 columns, got %d", i, len(row))
		}
		id, err := atoiCell(stationsFile, i, 0, row[0])
		if err != nil {
			return err
		}
		lineID, err := atoiCell(stationsFile, i, 1, row[1])
		if err != nil {
			return err
		}
		term0, err := atoiCell(stationsFile, i, 2, row[2])
		if err != nil {
			return err
		}
		term1, err := atoiCell(stationsFile, i, 3, row[3])
		if err != nil {
			return err
		}
		isTransfer, err := atoiCell(stationsFile, i, 4, row[4])
		if err != nil {
			return err
		}
		if id < 0 || id >= t.totalStations {
			return loadErrf(stationsFile, "row %d: station id %d out of range", i, id)
		}
		t.stations[id] = newStation(id, lineID, term0 != 0, term1 != 0, isTransfer != 0)
		t.lineIDOfStation[id] = lineID
	}
	for id, s := range t.stations {
		if s == nil {
			return loadErrf(stationsFile, "station id %d never defined", id)
		}
	}
	return nil
}

func loadSquareIntTable(dir, name string, n int) ([][]int, error) {
	rows, err := readCSV(dir, name)
	if err != nil {
		return nil, err
	}
	if len(rows) != n {
		return nil, loadErrf(name, "expected %d rows, got %d", n, len(rows))
	}
	table := make([][]int, n)
	for i, row := range rows {
		if len(row) != n {
			return nil, loadErrf(name, "row %d: expected %d columns, got %d", i, n, len(row))
		}
		table[i] = make([]int, n)
		for j, cell := range row {
			v, err := atoiCell(name, i, j, cell)
			if err != nil {
				return nil, err
			}
			table[i][j] = v
		}
	}
	return table, nil
}

func loadDirections(dir string, t *staticTables) error {
	table, err := loadSquareIntTable(dir, directionsFile, t.totalStations)
	if err != nil {
		return err
	}
	for i, row := range table {
		for j, v := range row {
			if v != -1 && v != 0 && v != 1 {
				return loadErrf(directionsFile, "row %d col %d: direction %d not in {-1,0,1}", i, j, v)
			}
		}
	}
	t.directions = table
	return nil
}

func loadTransferTime(dir string, t *staticTables) error {
	rows, err := readCSV(dir, transferTimeFile)
	if err != nil {
		return err
	}
	if len(rows) != t.totalStations {
		return loadErrf(transferTimeFile, "expected %d rows, got %d", t.totalStations, len(rows))
	}
	table := make([][]float64, t.totalStations)
	for i, row := range rows {
		if len(row) != t.totalStations {
			return loadErrf(transferTimeFile, "row %d: expected %d columns, got %d", i, t.totalStations, len(row))
		}
		table[i] = make([]float64, t.totalStations)
		for j, cell := range row {
			v, err := atofCell(transferTimeFile, i, j, cell)
			if err != nil {
				return err
			}
			table[i][j] = v
		}
	}
	t.transferTime = table
	return nil
}

// policy.csv holds one row per (from,to) pair that has at least one
// candidate: from, to, candidate0, candidate1, ...
// policyNum.csv is an N x N table redundantly recording the candidate
// count per (from,to), validated against policy.csv's row lengths.
func loadPolicy(dir string, t *staticTables) error {
	policyNum, err := loadSquareIntTable(dir, policyNumFile, t.totalStations)
	if err != nil {
		return err
	}
	for i, row := range policyNum {
		for j, v := range row {
			if v > t.maxPolicyNum {
				return loadErrf(policyNumFile, "row %d col %d: policyNum %d exceeds MaxPolicyNum %d", i, j, v, t.maxPolicyNum)
			}
			if v < 0 {
				return loadErrf(policyNumFile, "row %d col %d: negative policyNum %d", i, j, v)
			}
		}
	}

	t.policy = make([][][]int, t.totalStations)
	for i := range t.policy {
		t.policy[i] = make([][]int, t.totalStations)
	}

	rows, err := readCSV(dir, policyFile)
	if err != nil {
		return err
	}
	for r, row := range rows {
		if len(row) < 2 {
			return loadErrf(policyFile, "row %d: expected at least 2 columns", r)
		}
		from, err := atoiCell(policyFile, r, 0, row[0])
		if err != nil {
			return err
		}
		to, err := atoiCell(policyFile, r, 1, row[1])
		if err != nil {
			return err
		}
		if from < 0 || from >= t.totalStations || to < 0 || to >= t.totalStations {
			return loadErrf(policyFile, "row %d: (%d,%d) out of range", r, from, to)
		}
		candidates := make([]int, 0, len(row)-2)
		for k := 2; k < len(row); k++ {
			c, err := atoiCell(policyFile, r, k, row[k])
			if err != nil {
				return err
			}
			if c < 0 || c >= t.totalStations {
				return loadErrf(policyFile, "row %d: candidate station %d out of range", r, c)
			}
			if slices.Contains(candidates, c) {
				return loadErrf(policyFile, "row %d: duplicate candidate station %d", r, c)
			}
			candidates = append(candidates, c)
		}
		if policyNum[from][to] != len(candidates) {
			return loadErrf(policyFile, "row %d: policyNum table says %d candidates from %d to %d, got %d",
				r, policyNum[from][to], from, to, len(candidates))
		}
		t.policy[from][to] = candidates
	}
	return nil
}

// startTrainInfo.csv: trainId, startingStationId, lineId, direction, capacity, startTime
func loadStartTrainInfo(dir string, t *staticTables) error {
	rows, err := readCSV(dir, startTrainInfoFile)
	if err != nil {
		return err
	}
	t.startTrain = make([]startTrainRow, 0, len(rows))
	for i, row := range rows {
		if len(row) != 6 {
			return loadErrf(startTrainInfoFile, "row %d: expected 6 columns, got %d", i, len(row))
		}
		trainID, err := atoiCell(startTrainInfoFile, i, 0, row[0])
		if err != nil {
			return err
		}
		startStation, err := atoiCell(startTrainInfoFile, i, 1, row[1])
		if err != nil {
			return err
		}
		lineID, err := atoiCell(startTrainInfoFile, i, 2, row[2])
		if err != nil {
			return err
		}
		direction, err := atoiCell(startTrainInfoFile, i, 3, row[3])
		if err != nil {
			return err
		}
		if direction != 0 && direction != 1 {
			return loadErrf(startTrainInfoFile, "row %d: direction %d not in {0,1}", i, direction)
		}
		capacity, err := atoiCell(startTrainInfoFile, i, 4, row[4])
		if err != nil {
			return err
		}
		startTime, err := atofCell(startTrainInfoFile, i, 5, row[5])
		if err != nil {
			return err
		}
		if startStation < 0 || startStation >= t.totalStations {
			return loadErrf(startTrainInfoFile, "row %d: starting station %d out of range", i, startStation)
		}
		t.startTrain = append(t.startTrain, startTrainRow{
			TrainID:         trainID,
			StartingStation: startStation,
			LineID:          lineID,
			Direction:       direction,
			Capacity:        capacity,
			StartTime:       startTime,
		})
	}
	return nil
}

// arrivalTime.csv / arrivalStationID.csv: one row per train (matching
// startTrainInfo.csv's row order), each a variable-length list of the
// remaining stops after the train's starting station.
func loadArrivalStreams(dir string, t *staticTables) error {
	timeRows, err := readCSV(dir, arrivalTimeFile)
	if err != nil {
		return err
	}
	stationRows, err := readCSV(dir, arrivalStationIDFile)
	if err != nil {
		return err
	}
	if len(timeRows) != len(t.startTrain) {
		return loadErrf(arrivalTimeFile, "expected %d rows (one per train), got %d", len(t.startTrain), len(timeRows))
	}
	if len(stationRows) != len(t.startTrain) {
		return loadErrf(arrivalStationIDFile, "expected %d rows (one per train), got %d", len(t.startTrain), len(stationRows))
	}

	t.arrivalTime = make([][]float64, len(t.startTrain))
	t.arrivalStationID = make([][]int, len(t.startTrain))

	for i := range t.startTrain {
		tRow := timeRows[i]
		sRow := stationRows[i]
		if len(tRow) != len(sRow) {
			return loadErrf(arrivalTimeFile, "row %d: length %d does not match %s row length %d",
				i, len(tRow), arrivalStationIDFile, len(sRow))
		}
		times := make([]float64, len(tRow))
		stations := make([]int, len(sRow))
		for k, cell := range tRow {
			v, err := atofCell(arrivalTimeFile, i, k, cell)
			if err != nil {
				return err
			}
			times[k] = v
		}
		for k, cell := range sRow {
			v, err := atoiCell(arrivalStationIDFile, i, k, cell)
			if err != nil {
				return err
			}
			if v < 0 || v >= t.totalStations {
				return loadErrf(arrivalStationIDFile, "row %d col %d: station %d out of range", i, k, v)
			}
			stations[k] = v
		}
		t.arrivalTime[i] = times
		t.arrivalStationID[i] = stations
	}
	return nil
}
