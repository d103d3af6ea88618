package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrSourceNotFound marks a configured document that does not exist.
	ErrSourceNotFound = errors.New("source document not found")

	// ErrSourceUnreadable marks a document that exists but could not be read.
	ErrSourceUnreadable = errors.New("source document unreadable")

	// ErrInvalidManifest is returned when a manifest fails validation.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// SourceError records a document the pipeline skipped.
type SourceError struct {
	Path  string
	Label string
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %q (%s): %v", e.Label, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
