// Package chunking splits regulatory documents into overlapping text chunks.
//
// Chunks follow line boundaries. Each chunk after the first begins with the
// tail of its predecessor so that a sentence cut at a boundary is still seen
// whole by at least one chunk's embedding.
//
//	chunker, err := chunking.New(chunking.WithMaxChars(1200), chunking.WithOverlap(200))
//	chunks := chunker.Chunk(text, "GDPR")
package chunking
