package models

import "time"

// RunResult summarises one fetch run for the CLI report.
type RunResult struct {
	StartTime    time.Time
	EndTime      time.Time
	RequestCount int
	RecordCount  int
	Anomalies    int
	Skipped      []VendorID
	ErrorsByType map[string]int
}

// Duration is the wall time of the run.
func (r *RunResult) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}
