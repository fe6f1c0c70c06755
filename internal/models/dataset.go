package models

import "time"

// Dataset is the full set of rows the dashboard aggregates over.
// It is replaced wholesale, never patched.
type Dataset struct {
	Cars        []Car            `json:"cars"`
	Completions []TaskCompletion `json:"completions"`
	Timestamp   time.Time        `json:"timestamp"`

	// Partial is set when a page fetch failed and the rows are incomplete.
	Partial bool `json:"-"`
}

// Age returns how long ago the dataset was fetched.
func (d *Dataset) Age(now time.Time) time.Duration {
	if d == nil || d.Timestamp.IsZero() {
		return 0
	}
	return now.Sub(d.Timestamp)
}
