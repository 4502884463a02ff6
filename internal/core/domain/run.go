package domain

import "time"

// RunStatus is the lifecycle state of a pipeline run.
type RunStatus string

// Run statuses.
const (
	RunRunning   RunStatus = "running"
	RunSucceeded RunStatus = "succeeded"
	RunPartial   RunStatus = "partial"
	RunFailed    RunStatus = "failed"
)

// Run is one pipeline execution recorded in the ledger.
type Run struct {
	ID         string
	ConfigPath string
	OutputDir  string
	Filters    []string
	Objects    int
	TMin       float64
	SNRModel   SNRModel
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// RunSummary is what the pipeline reports back to its caller.
type RunSummary struct {
	Run          Run
	Uncompressed *WriteReport
	Compressed   *WriteReport
}

// Failures returns every per-object failure across both writer paths.
func (s *RunSummary) Failures() []ObjectFailure {
	var out []ObjectFailure
	if s.Uncompressed != nil {
		out = append(out, s.Uncompressed.Failures...)
	}
	if s.Compressed != nil {
		out = append(out, s.Compressed.Failures...)
	}
	return out
}
