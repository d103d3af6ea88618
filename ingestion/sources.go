package ingestion

import "github.com/poiesic/regindex/core"

// DefaultSources returns the regulation documents indexed when no manifest
// is given, relative to the documents directory.
func DefaultSources() []core.Source {
	return []core.Source{
		{Path: "GDPR.md", Label: "GDPR"},
		{Path: "PDPA_2025.md", Label: "PDPA 2025"},
		{Path: "PDPA_SL.md", Label: "PDPA SL"},
	}
}
