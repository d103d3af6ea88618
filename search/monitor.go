package search

import (
	"log/slog"

	"github.com/poiesic/regindex/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterQueryEmbedding(dimensions int)
	AfterCandidateRetrieval(candidates int)
	KeywordHit(chunk *core.Chunk)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                {}
func (n *noopMonitor) AfterQueryEmbedding(_ int)     {}
func (n *noopMonitor) AfterCandidateRetrieval(_ int) {}
func (n *noopMonitor) KeywordHit(_ *core.Chunk)      {}
func (n *noopMonitor) Finish(_ []*core.SearchResult) {}

// LogMonitor returns a SearchMonitor that reports each step at debug level.
func LogMonitor(logger *slog.Logger) SearchMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &logMonitor{logger: logger.With("component", "search-monitor")}
}

type logMonitor struct {
	logger *slog.Logger
}

func (m *logMonitor) Start(query string) {
	m.logger.Debug("search started", "query", query)
}

func (m *logMonitor) AfterQueryEmbedding(dimensions int) {
	m.logger.Debug("query embedded", "dimensions", dimensions)
}

func (m *logMonitor) AfterCandidateRetrieval(candidates int) {
	m.logger.Debug("candidates scored", "count", candidates)
}

func (m *logMonitor) KeywordHit(chunk *core.Chunk) {
	m.logger.Debug("keyword boost", "id", chunk.ID, "source", chunk.Source)
}

func (m *logMonitor) Finish(results []*core.SearchResult) {
	m.logger.Debug("search finished", "results", len(results))
}
