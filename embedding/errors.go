package embedding

import "errors"

var (
	// ErrEmbedderRequired is returned when a Batcher is built without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")

	// ErrInvalidPause is returned when the inter-batch pause is negative.
	ErrInvalidPause = errors.New("pause cannot be negative")

	// ErrBatchFailed is wrapped by every BatchFailure.
	ErrBatchFailed = errors.New("embedding batch failed")

	// ErrVectorCountMismatch is reported when the service returns a different
	// number of vectors than texts it was sent.
	ErrVectorCountMismatch = errors.New("embedding count mismatch")

	// ErrEmptyVector is reported when the service returns a zero-length vector.
	ErrEmptyVector = errors.New("empty embedding vector")
)
