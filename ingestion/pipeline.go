package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/regindex/ai"
	"github.com/poiesic/regindex/chunking"
	"github.com/poiesic/regindex/core"
	"github.com/poiesic/regindex/embedding"
	"github.com/poiesic/regindex/storage"
	"github.com/spf13/afero"
)

// Pipeline reads source documents, chunks them, embeds the chunks and hands
// the collection to its writers. Documents are processed one after another
// and the embedding stage runs once over all of them.
type Pipeline struct {
	fs          afero.Fs
	baseDir     string
	chunker     *chunking.Chunker
	batcher     *embedding.Batcher
	batcherOpts []embedding.Option
	writers     []storage.ChunkWriter
	logger      *slog.Logger
}

// Result describes one pipeline run.
type Result struct {
	// Chunks is the full collection in document order.
	Chunks []*core.Chunk
	// Skipped lists documents that were missing or unreadable.
	Skipped []*SourceError
	// PerSource counts chunks by source label.
	PerSource map[string]int
	// Embedding reports per-batch outcomes.
	Embedding *embedding.Report
	Duration  time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithFilesystem sets the filesystem documents are read from.
// Default is the OS filesystem.
func WithFilesystem(fs afero.Fs) Option {
	return func(p *Pipeline) error {
		if fs != nil {
			p.fs = fs
		}
		return nil
	}
}

// WithBaseDir resolves relative document paths against dir.
func WithBaseDir(dir string) Option {
	return func(p *Pipeline) error {
		p.baseDir = dir
		return nil
	}
}

// WithChunker replaces the default chunker.
func WithChunker(c *chunking.Chunker) Option {
	return func(p *Pipeline) error {
		if c != nil {
			p.chunker = c
		}
		return nil
	}
}

// WithBatcherOptions passes options through to the embedding batcher.
func WithBatcherOptions(opts ...embedding.Option) Option {
	return func(p *Pipeline) error {
		p.batcherOpts = append(p.batcherOpts, opts...)
		return nil
	}
}

// WithWriter adds a destination for the finished collection. May be given
// more than once; every writer receives the collection.
func WithWriter(w storage.ChunkWriter) Option {
	return func(p *Pipeline) error {
		if w == nil {
			return storage.ErrWriterRequired
		}
		p.writers = append(p.writers, w)
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a pipeline that embeds through provider's embedder.
func NewPipeline(provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	chunker, err := chunking.New()
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		fs:      afero.NewOsFs(),
		chunker: chunker,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "ingestion")

	batcherOpts := append([]embedding.Option{embedding.WithLogger(p.logger)}, p.batcherOpts...)
	batcher, err := embedding.NewBatcher(provider.Embedder(), batcherOpts...)
	if err != nil {
		return nil, err
	}
	p.batcher = batcher

	return p, nil
}

// Run indexes sources in order. Missing or unreadable documents are logged
// and skipped. The returned error is non-nil only when a writer fails; the
// Result is populated either way.
func (p *Pipeline) Run(ctx context.Context, sources []core.Source) (*Result, error) {
	start := time.Now()
	result := &Result{PerSource: make(map[string]int, len(sources))}

	var all []*core.Chunk
	for _, src := range sources {
		text, srcErr := p.readSource(src)
		if srcErr != nil {
			p.logger.Warn("skipping source", "label", src.Label, "path", srcErr.Path, "err", srcErr.Err)
			result.Skipped = append(result.Skipped, srcErr)
			continue
		}

		chunks := p.chunker.Chunk(text, src.Label)
		p.logger.Info("chunked source", "label", src.Label, "path", src.Path, "chunks", len(chunks))
		result.PerSource[src.Label] += len(chunks)
		all = append(all, chunks...)
	}

	all, report := p.batcher.Embed(ctx, all)
	result.Chunks = all
	result.Embedding = report

	if len(p.writers) > 0 {
		var w storage.ChunkWriter = p.writers[0]
		if len(p.writers) > 1 {
			w = storage.MultiWriter(p.writers...)
		}
		if err := w.WriteChunks(ctx, all); err != nil {
			result.Duration = time.Since(start)
			return result, fmt.Errorf("persisting chunks: %w", err)
		}
	}

	result.Duration = time.Since(start)
	p.logger.Info("pipeline complete",
		"chunks", len(all),
		"embedded", report.Embedded,
		"bare", report.Bare,
		"skipped", len(result.Skipped),
		"duration", result.Duration)
	return result, nil
}

func (p *Pipeline) resolve(path string) string {
	if p.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.baseDir, path)
}

// readSource returns the document text with line endings normalized to "\n".
func (p *Pipeline) readSource(src core.Source) (string, *SourceError) {
	path := p.resolve(src.Path)
	if err := core.ValidateSource(src); err != nil {
		return "", &SourceError{Path: path, Label: src.Label, Err: err}
	}

	exists, err := afero.Exists(p.fs, path)
	if err != nil {
		return "", &SourceError{Path: path, Label: src.Label, Err: fmt.Errorf("%w: %w", ErrSourceUnreadable, err)}
	}
	if !exists {
		return "", &SourceError{Path: path, Label: src.Label, Err: ErrSourceNotFound}
	}

	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return "", &SourceError{Path: path, Label: src.Label, Err: fmt.Errorf("%w: %w", ErrSourceUnreadable, err)}
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}
