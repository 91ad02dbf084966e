// Package model defines the core domain models used throughout picsort.
package model

import "time"

// Outcome is the terminal state of one processed image.
type Outcome string

// Outcome values.
const (
	OutcomeMatched   Outcome = "matched"
	OutcomeUnmatched Outcome = "unmatched"
	OutcomeErrored   Outcome = "errored"
)

// ClassificationResult is produced once per processed image.
type ClassificationResult struct {
	ClassifiedAt time.Time
	// Category is nil when the answer matched no registered category.
	Category *string
	// Reasoning is only set by the structured mode.
	Reasoning   *string
	ImageName   string
	SourcePath  string
	Answer      string
	Destination string
	Outcome     Outcome
	Error       string
}

// Matched reports whether the image was routed to a category folder.
func (r ClassificationResult) Matched() bool {
	return r.Category != nil
}

// CategoryLabel is the category name, or FailedFolder when unmatched.
func (r ClassificationResult) CategoryLabel() string {
	if r.Category == nil {
		return FailedFolder
	}
	return *r.Category
}
