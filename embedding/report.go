package embedding

import (
	"errors"
	"time"
)

// Report summarizes one Embed call.
type Report struct {
	// Batches holds one result per batch, in input order.
	Batches []BatchResult
	// Total is the number of chunks given to Embed.
	Total int
	// Embedded counts chunks that received a vector.
	Embedded int
	// Bare counts chunks left without a vector.
	Bare     int
	Duration time.Duration
}

// Failures returns the failed batches in order.
func (r *Report) Failures() []*BatchFailure {
	var out []*BatchFailure
	for _, b := range r.Batches {
		if b.Failure != nil {
			out = append(out, b.Failure)
		}
	}
	return out
}

// Err joins every batch failure, or returns nil when all batches succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, f := range r.Failures() {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}
