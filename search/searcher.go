package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/regindex/ai"
	"github.com/poiesic/regindex/core"
	"github.com/poiesic/regindex/storage"
)

const (
	// DefaultLimit is the number of results returned when no limit is set.
	DefaultLimit = 5

	// DefaultMinScore admits every chunk with an embedding.
	DefaultMinScore float32 = -1

	// minSegment is the smallest slice of the collection scored by one task.
	minSegment = 64
)

// Searcher ranks the chunks of a collection against a query.
type Searcher struct {
	embedder     ai.Embedder
	reader       storage.ChunkReader
	pool         *ants.Pool
	limit        int
	minScore     float32
	keywordBoost float32
	logger       *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLimit sets the maximum number of results. Default is DefaultLimit.
func WithLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit <= 0 {
			return ErrInvalidLimit
		}
		s.limit = limit
		return nil
	}
}

// WithMinScore drops results whose cosine similarity is below minScore.
// Default is DefaultMinScore.
func WithMinScore(minScore float32) Option {
	return func(s *Searcher) error {
		s.minScore = minScore
		return nil
	}
}

// WithKeywordBoost adds boost to the score of results whose content contains
// every significant query word. Default is 0 (pure similarity ranking).
func WithKeywordBoost(boost float32) Option {
	return func(s *Searcher) error {
		s.keywordBoost = boost
		return nil
	}
}

// WithPoolSize sets the number of workers that score chunks.
// Default is runtime.NumCPU() / 2 (minimum 1).
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size <= 0 {
			return ErrInvalidPoolSize
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if s.pool != nil {
			s.pool.Release()
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a searcher over the collection reader returns.
// Call Release when done.
func NewSearcher(embedder ai.Embedder, reader storage.ChunkReader, opts ...Option) (*Searcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if reader == nil {
		return nil, ErrReaderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		embedder: embedder,
		reader:   reader,
		pool:     pool,
		limit:    DefaultLimit,
		minScore: DefaultMinScore,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.Release()
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "searcher")

	return s, nil
}

// Release stops the scoring workers.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Search returns up to the configured limit of chunks most similar to query,
// highest score first. Chunks with equal scores keep collection order.
func (s *Searcher) Search(ctx context.Context, query string) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor is Search with callbacks at each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	monitor.Start(query)

	vector, err := s.embedder.EmbedText(ctx, query, ai.TaskRetrievalQuery)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	monitor.AfterQueryEmbedding(len(vector))

	var results []*core.SearchResult
	if vs, ok := s.reader.(storage.VectorSearcher); ok {
		// The boost can lift any candidate into the top results
		limit := s.limit
		if s.keywordBoost != 0 {
			limit = math.MaxInt
		}
		results, err = vs.FindSimilar(ctx, vector, s.minScore, limit)
	} else {
		results, err = s.scan(ctx, vector)
	}
	if err != nil {
		s.logger.Error("error querying for similar chunks", "err", err)
		return nil, err
	}
	monitor.AfterCandidateRetrieval(len(results))

	if s.keywordBoost != 0 {
		terms := newQueryTerms(query)
		for _, r := range results {
			if terms.matchedBy(r.Chunk.Content) {
				r.Score += s.keywordBoost
				monitor.KeywordHit(r.Chunk)
			}
		}
		sortByScore(results)
	}

	if len(results) > s.limit {
		results = results[:s.limit]
	}
	monitor.Finish(results)

	return results, nil
}

// scan loads the whole collection and scores it on the worker pool.
func (s *Searcher) scan(ctx context.Context, vector []float32) ([]*core.SearchResult, error) {
	chunks, err := s.reader.LoadChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}

	scores := make([]float32, len(chunks))
	segment := max(minSegment, (len(chunks)+s.pool.Cap()-1)/max(s.pool.Cap(), 1))

	var wg sync.WaitGroup
	for start := 0; start < len(chunks); start += segment {
		end := min(start+segment, len(chunks))
		task := func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				if chunks[i] != nil && chunks[i].HasEmbedding() {
					scores[i] = core.CosineSimilarity(vector, chunks[i].Embedding)
				}
			}
		}
		wg.Add(1)
		if err := s.pool.Submit(task); err != nil {
			s.logger.Warn("pool rejected scoring task, running inline", "err", err)
			task()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]*core.SearchResult, 0, len(chunks))
	for i, c := range chunks {
		if c == nil || !c.HasEmbedding() || scores[i] < s.minScore {
			continue
		}
		results = append(results, &core.SearchResult{Chunk: c, Score: scores[i]})
	}
	sortByScore(results)

	s.logger.Debug("scored collection", "chunks", len(chunks), "candidates", len(results))
	return results, nil
}

func sortByScore(results []*core.SearchResult) {
	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
}
