package model

import "time"

// RunStatus describes how a run ended.
type RunStatus string

// Run status values.
const (
	RunStatusRunning     RunStatus = "running"
	RunStatusCompleted   RunStatus = "completed"
	RunStatusAborted     RunStatus = "aborted"
	RunStatusInterrupted RunStatus = "interrupted"
)

// Run is the summary of one execution of the sorting pipeline.
type Run struct {
	StartedAt  time.Time
	FinishedAt time.Time
	ID         string
	SourceDir  string
	OutputDir  string
	Mode       string
	LogPath    string
	Status     RunStatus
	Processed  int
	Matched    int
	Unmatched  int
	Errored    int
	Skipped    int
}

// Count folds one result into the run totals.
func (r *Run) Count(result ClassificationResult) {
	r.Processed++
	switch result.Outcome {
	case OutcomeMatched:
		r.Matched++
	case OutcomeUnmatched:
		r.Unmatched++
	case OutcomeErrored:
		r.Errored++
	}
}

// Duration returns how long the run took, or zero if it has not finished.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
