package railrl

// trace.go adapts a generic named-trace manager to record diagnostic
// entries about the dispatch loop: one record per train arrival (other
// event kinds are not traced), grouped by station id under a manager
// named for the run, serializable to YAML or JSON for offline analysis
// distinct from the reward-bearing Report.

import (
	"encoding/json"
	"os"
	"path"
	"strconv"

	"github.com/iti/evt/vrtime"
	"gopkg.in/yaml.v3"
)

// TraceInst is one recorded diagnostic line.
type TraceInst struct {
	TraceTime string
	TraceType string
	TraceStr  string
}

// TraceManager gathers TraceInst records for one simulation run.
// Testing InUse lets call sites embed tracing calls everywhere they
// might be useful while paying almost nothing when tracing is off.
type TraceManager struct {
	InUse   bool                `json:"inuse" yaml:"inuse"`
	ExpName string              `json:"expname" yaml:"expname"`
	Traces  map[int][]TraceInst `json:"traces" yaml:"traces"`
}

// CreateTraceManager is a constructor.  active controls whether
// AddTrace actually records anything.
func CreateTraceManager(expName string, active bool) *TraceManager {
	tm := new(TraceManager)
	tm.InUse = active
	tm.ExpName = expName
	tm.Traces = make(map[int][]TraceInst)
	return tm
}

// Active tells the caller whether the Trace Manager is actively being used.
func (tm *TraceManager) Active() bool {
	return tm.InUse
}

// AddTrace records trace under execID, a no-op if tracing is off.
func (tm *TraceManager) AddTrace(vrt vrtime.Time, execID int, trace TraceInst) {
	if !tm.InUse {
		return
	}
	tm.Traces[execID] = append(tm.Traces[execID], trace)
}

// WriteToFile stores the Traces struct to the file whose name is
// given.  Serialization to json or to yaml is selected based on the
// extension of this name.
func (tm *TraceManager) WriteToFile(filename string) error {
	if !tm.InUse {
		return nil
	}
	pathExt := path.Ext(filename)
	var bytes []byte
	var merr error

	if pathExt == ".yaml" || pathExt == ".YAML" || pathExt == ".yml" {
		bytes, merr = yaml.Marshal(*tm)
	} else {
		bytes, merr = json.MarshalIndent(*tm, "", "\t")
	}
	if merr != nil {
		return merr
	}

	f, cerr := os.Create(filename)
	if cerr != nil {
		return cerr
	}
	defer f.Close()
	_, werr := f.WriteString(string(bytes))
	return werr
}

// EventTrace records one dispatched event for post-run analysis.
type EventTrace struct {
	Time    float64
	Kind    string
	Station int
	Train   int
	QueueA  int
	QueueB  int
}

func (et *EventTrace) Serialize() string {
	bytes, merr := yaml.Marshal(*et)
	if merr != nil {
		panic(merr)
	}
	return string(bytes)
}

// AddEventTrace records a dispatched event against the station it
// concerns, keyed by station id, in the same (vrt, execID, TraceInst)
// shape as a generic trace record.
func AddEventTrace(tm *TraceManager, vrt vrtime.Time, et *EventTrace, stationID int) {
	traceTime := strconv.FormatFloat(vrt.Seconds(), 'f', -1, 64)
	trcInst := TraceInst{TraceTime: traceTime, TraceType: "event", TraceStr: et.Serialize()}
	tm.AddTrace(vrt, stationID, trcInst)
}
