package railrl

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// writeValidTwoStationTopology writes a minimal, internally consistent
// two-station, one-line, one-train topology.
func writeValidTwoStationTopology(t *testing.T, dir string) {
	writeCSV(t, dir, stationsFile, "0,1,0,0,0\n1,1,1,0,0\n")
	writeCSV(t, dir, directionsFile, "-1,0\n-1,-1\n")
	writeCSV(t, dir, policyNumFile, "0,1\n0,0\n")
	writeCSV(t, dir, policyFile, "0,1,1\n")
	writeCSV(t, dir, transferTimeFile, "-1,-1\n-1,-1\n")
	writeCSV(t, dir, startTrainInfoFile, "1,0,1,0,300,0\n")
	writeCSV(t, dir, arrivalTimeFile, "60\n")
	writeCSV(t, dir, arrivalStationIDFile, "1\n")
}

func TestLoadTopologyValid(t *testing.T) {
	dir := t.TempDir()
	writeValidTwoStationTopology(t, dir)

	cfg := &Config{TotalStations: 2, MaxPolicyNum: 1}
	tables, err := LoadTopology(dir, cfg)
	if err != nil {
		t.Fatalf("expected successful load, got %v", err)
	}
	if len(tables.stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(tables.stations))
	}
	if len(tables.startTrain) != 1 {
		t.Fatalf("expected 1 train, got %d", len(tables.startTrain))
	}
}

func TestLoadTopologyRejectsBadDirection(t *testing.T) {
	dir := t.TempDir()
	writeValidTwoStationTopology(t, dir)
	writeCSV(t, dir, directionsFile, "-1,5\n-1,-1\n")

	cfg := &Config{TotalStations: 2, MaxPolicyNum: 1}
	_, err := LoadTopology(dir, cfg)
	if err == nil {
		t.Fatalf("expected a load error for an out-of-range direction value")
	}
	if _, ok := err.(*LoadError); !ok {
		t.Fatalf("expected *LoadError, got %T", err)
	}
}

func TestLoadTopologyRejectsPolicyNumExceedingMax(t *testing.T) {
	dir := t.TempDir()
	writeValidTwoStationTopology(t, dir)
	writeCSV(t, dir, policyNumFile, "0,5\n0,0\n")

	cfg := &Config{TotalStations: 2, MaxPolicyNum: 1}
	_, err := LoadTopology(dir, cfg)
	if err == nil {
		t.Fatalf("expected a load error for policyNum exceeding MaxPolicyNum")
	}
}

func TestLoadTopologyRejectsWrongRowCount(t *testing.T) {
	dir := t.TempDir()
	writeValidTwoStationTopology(t, dir)
	writeCSV(t, dir, stationsFile, "0,1,0,0,0\n")

	cfg := &Config{TotalStations: 2, MaxPolicyNum: 1}
	_, err := LoadTopology(dir, cfg)
	if err == nil {
		t.Fatalf("expected a load error for a row-count mismatch")
	}
}

func TestLoadTopologyRejectsDisconnectedDestination(t *testing.T) {
	dir := t.TempDir()
	// three stations; station 2 has a policy entry claiming it is
	// reachable from 0 but shares no direction or transfer edge with
	// anything reachable from the train's starting station.
	writeCSV(t, dir, stationsFile, "0,1,0,0,0\n1,1,1,0,0\n2,2,1,0,0\n")
	writeCSV(t, dir, directionsFile, "-1,0,-1\n-1,-1,-1\n-1,-1,-1\n")
	writeCSV(t, dir, policyNumFile, "0,1,1\n0,0,0\n0,0,0\n")
	writeCSV(t, dir, policyFile, "0,1,1\n0,2,2\n")
	writeCSV(t, dir, transferTimeFile, "-1,-1,-1\n-1,-1,-1\n-1,-1,-1\n")
	writeCSV(t, dir, startTrainInfoFile, "1,0,1,0,300,0\n")
	writeCSV(t, dir, arrivalTimeFile, "60\n")
	writeCSV(t, dir, arrivalStationIDFile, "1\n")

	cfg := &Config{TotalStations: 3, MaxPolicyNum: 1}
	_, err := LoadTopology(dir, cfg)
	if err == nil {
		t.Fatalf("expected a load error for an unreachable policy destination")
	}
}
