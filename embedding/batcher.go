package embedding

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/regindex/ai"
	"github.com/poiesic/regindex/core"
)

const (
	// DefaultBatchSize is the number of chunks sent per embedding call.
	DefaultBatchSize = 100

	// DefaultPause is the fixed wait after a successful batch.
	DefaultPause = 500 * time.Millisecond
)

// Batcher attaches embeddings to chunks, one service call per batch.
// A failed batch leaves its chunks bare and never stops the run.
type Batcher struct {
	embedder       ai.Embedder
	batchSize      int
	pause          time.Duration
	task           ai.TaskType
	progress       io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Batcher.
type Option func(*Batcher) error

// WithBatchSize sets the number of chunks per call. Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(b *Batcher) error {
		if size <= 0 {
			return ErrInvalidBatchSize
		}
		b.batchSize = size
		return nil
	}
}

// WithPause sets the wait after each successful batch. Default is DefaultPause.
func WithPause(d time.Duration) Option {
	return func(b *Batcher) error {
		if d < 0 {
			return ErrInvalidPause
		}
		b.pause = d
		return nil
	}
}

// WithTaskType sets the task hint sent with every call.
// Default is ai.TaskRetrievalDocument.
func WithTaskType(task ai.TaskType) Option {
	return func(b *Batcher) error {
		b.task = task
		return nil
	}
}

// WithProgress writes a progress line to w every reportInterval chunks.
func WithProgress(w io.Writer, reportInterval int) Option {
	return func(b *Batcher) error {
		b.progress = w
		b.reportInterval = reportInterval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Batcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBatcher creates a Batcher that embeds through embedder.
func NewBatcher(embedder ai.Embedder, opts ...Option) (*Batcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	b := &Batcher{
		embedder:  embedder,
		batchSize: DefaultBatchSize,
		pause:     DefaultPause,
		task:      ai.TaskRetrievalDocument,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	b.logger = b.logger.With("component", "embedding-batcher")
	return b, nil
}

// Embed sends chunks to the embedding service in consecutive batches and
// attaches vector j of a batch to chunk j of that batch. It returns the same
// slice, in the same order, along with a per-batch report.
//
// A batch whose call fails, or whose response cannot be matched to its
// chunks, is logged and skipped; its chunks keep a nil Embedding. Each batch
// is attempted exactly once. After a successful batch Embed waits for the
// configured pause before sending the next one. Cancelling ctx fails the
// remaining batches without sending them.
func (b *Batcher) Embed(ctx context.Context, chunks []*core.Chunk) ([]*core.Chunk, *Report) {
	spans := partition(len(chunks), b.batchSize)
	report := &Report{
		Batches: make([]BatchResult, 0, len(spans)),
		Total:   len(chunks),
	}

	var tracker *ProgressTracker
	if b.progress != nil {
		tracker = NewProgressTracker(b.progress, len(chunks), b.reportInterval)
		tracker.Start()
	}

	start := time.Now()
	b.logger.Info("embedding chunks", "chunks", len(chunks), "batches", len(spans), "batchSize", b.batchSize)

	for i, s := range spans {
		result := b.embedBatch(ctx, i, s, chunks[s.start:s.end])
		report.Batches = append(report.Batches, result)

		if result.OK() {
			for j, vec := range result.Vectors {
				chunks[s.start+j].Embedding = vec
			}
			report.Embedded += s.len()
		} else {
			report.Bare += s.len()
			b.logger.Error("embedding batch failed",
				"batch", i,
				"offset", s.start,
				"size", s.len(),
				"reason", result.Failure.Reason.String(),
				"err", result.Failure.Err)
		}

		if tracker != nil {
			tracker.Processed(s.len(), result.OK())
		}

		if result.OK() && i < len(spans)-1 {
			b.wait(ctx)
		}
	}

	if tracker != nil {
		tracker.Finish()
	}

	report.Duration = time.Since(start)
	b.logger.Info("embedding complete",
		"embedded", report.Embedded,
		"bare", report.Bare,
		"failedBatches", len(report.Failures()),
		"duration", report.Duration)

	return chunks, report
}

func (b *Batcher) embedBatch(ctx context.Context, index int, s span, batch []*core.Chunk) BatchResult {
	if err := ctx.Err(); err != nil {
		return failed(index, s, ReasonCanceled, err)
	}

	texts := make([]string, len(batch))
	for i, c := range batch {
		texts[i] = c.Content
	}

	vectors, err := b.embedder.EmbedTexts(ctx, texts, b.task)
	if err != nil {
		return failed(index, s, classify(ctx, err), err)
	}

	if len(vectors) != len(batch) {
		return failed(index, s, ReasonMalformed,
			fmt.Errorf("%w: expected %d, got %d", ErrVectorCountMismatch, len(batch), len(vectors)))
	}
	for j, vec := range vectors {
		if len(vec) == 0 {
			return failed(index, s, ReasonMalformed, fmt.Errorf("%w at position %d", ErrEmptyVector, j))
		}
	}

	b.logger.Debug("embedded batch", "batch", index, "offset", s.start, "size", s.len())
	return succeeded(index, s, vectors)
}

// wait sleeps for the configured pause, returning early if ctx ends.
func (b *Batcher) wait(ctx context.Context) {
	if b.pause <= 0 {
		return
	}
	timer := time.NewTimer(b.pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
