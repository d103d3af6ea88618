// Package ingestion drives the indexing run.
//
// A Pipeline reads each configured document, splits it with the chunking
// package, embeds the combined chunk sequence with the embedding package in
// a single pass, and writes the result to one or more storage writers.
//
// A missing document is logged and skipped. A failed embedding batch leaves
// its chunks without vectors. Neither stops the run; only a failing writer
// makes Run return an error.
package ingestion
