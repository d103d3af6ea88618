// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Reason classifies why a batch produced no vectors.
type Reason int

const (
	// ReasonService means the embedding call returned an error.
	ReasonService Reason = iota + 1
	// ReasonRateLimited means the service refused the call for quota or rate reasons.
	ReasonRateLimited
	// ReasonMalformed means the call succeeded but its vectors could not be used.
	ReasonMalformed
	// ReasonCanceled means the context ended before or during the call.
	ReasonCanceled
)

func (r Reason) String() string {
	switch r {
	case ReasonService:
		return "service error"
	case ReasonRateLimited:
		return "rate limited"
	case ReasonMalformed:
		return "malformed response"
	case ReasonCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// BatchFailure describes a batch whose chunks were left without embeddings.
type BatchFailure struct {
	// Batch is the zero-based index of the batch.
	Batch int
	// Offset is the index of the batch's first chunk in the input.
	Offset int
	// Size is the number of chunks in the batch.
	Size   int
	Reason Reason
	Err    error
}

func (f *BatchFailure) Error() string {
	return fmt.Sprintf("embedding batch %d (chunks %d-%d): %s: %v",
		f.Batch, f.Offset, f.Offset+f.Size-1, f.Reason, f.Err)
}

// Unwrap exposes both ErrBatchFailed and the underlying cause to errors.Is.
func (f *BatchFailure) Unwrap() []error {
	return []error{ErrBatchFailed, f.Err}
}

// BatchResult is the outcome of one batch: vectors on success, a failure otherwise.
type BatchResult struct {
	Batch   int
	Offset  int
	Size    int
	Vectors [][]float32
	Failure *BatchFailure
}

// OK reports whether the batch produced vectors.
func (r BatchResult) OK() bool {
	return r.Failure == nil
}

func succeeded(batch int, s span, vectors [][]float32) BatchResult {
	return BatchResult{Batch: batch, Offset: s.start, Size: s.len(), Vectors: vectors}
}

func failed(batch int, s span, reason Reason, err error) BatchResult {
	return BatchResult{
		Batch:  batch,
		Offset: s.start,
		Size:   s.len(),
		Failure: &BatchFailure{
			Batch:  batch,
			Offset: s.start,
			Size:   s.len(),
			Reason: reason,
			Err:    err,
		},
	}
}

// classify maps an embedding call error to a failure reason.
func classify(ctx context.Context, err error) Reason {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ReasonCanceled
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "rate limit", "quota", "resource_exhausted", "resource exhausted", "too many requests"} {
		if strings.Contains(msg, marker) {
			return ReasonRateLimited
		}
	}
	return ReasonService
}
