// Package embedding attaches vector embeddings to chunks in fixed-size batches.
//
// Batches are sent one at a time with a fixed pause after each success. A
// batch that fails is reported as a typed BatchFailure and its chunks are
// kept without embeddings; the rest of the run continues. The output always
// has the same length and order as the input.
package embedding
