package railrl

import "fmt"

// Report is the snapshot returned by Run: a summary of accumulated
// travel-time and delay statistics, consumed by the caller as a
// reward signal.
type Report struct {
	IsFinished      bool
	TotalTravelTime float64
	TotalDelay      float64
	NumDeparted     int
	NumArrived      int
}

// String renders the report for diagnostic logging, in the manner of
// the original system's show() method.
func (r Report) String() string {
	status := "running"
	if r.IsFinished {
		status = "finished"
	}
	return fmt.Sprintf("%s: departed=%d arrived=%d travelTime=%.2f delay=%.2f",
		status, r.NumDeparted, r.NumArrived, r.TotalTravelTime, r.TotalDelay)
}
