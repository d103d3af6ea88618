package search

import "strings"

// Stop words to filter out when checking for keyword matches
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "or": true, "any": true, "under": true, "shall": true,
	"what": true, "which": true, "does": true, "how": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation, and removes stop words
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}§"))
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// queryTerms is the filtered query, computed once per search.
type queryTerms []string

func newQueryTerms(query string) queryTerms {
	return queryTerms(tokenizeAndFilter(query))
}

// matchedBy reports whether every query term appears in content.
// A query with no terms left after filtering matches nothing.
func (q queryTerms) matchedBy(content string) bool {
	if len(q) == 0 {
		return false
	}

	docWords := tokenizeAndFilter(content)
	docWordSet := make(map[string]bool, len(docWords))
	for _, word := range docWords {
		docWordSet[word] = true
	}

	for _, term := range q {
		if !docWordSet[term] {
			return false
		}
	}
	return true
}
