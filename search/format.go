package search

import (
	"strings"

	"github.com/poiesic/regindex/core"
)

// ContextSeparator separates consecutive chunks in a formatted context.
const ContextSeparator = "\n\n---\n\n"

// FormatContext renders results as "[Source: <label>]\n<content>" blocks
// joined by ContextSeparator. No results yields "".
func FormatContext(results []*core.SearchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		if r == nil || r.Chunk == nil {
			continue
		}
		parts = append(parts, "[Source: "+r.Chunk.Source+"]\n"+r.Chunk.Content)
	}
	return strings.Join(parts, ContextSeparator)
}
