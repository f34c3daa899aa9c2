// Package fuzzy scores approximate string matches. It backs the
// "did you mean" suggestions attached to unresolved card names.
package fuzzy

import (
	"sort"
	"strings"
)

// SearchResult represents a fuzzy search match with its score.
type SearchResult struct {
	Item  string
	Score int
	Index int
}

// SearchOptions configures fuzzy search behavior.
type SearchOptions struct {
	// CaseSensitive enables case-sensitive matching
	CaseSensitive bool
	// MaxResults limits the number of results returned (0 = unlimited)
	MaxResults int
	// MinScore sets minimum score threshold (0-100)
	MinScore int
}

// DefaultSearchOptions returns sensible default search options.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		CaseSensitive: false,
		MaxResults:    100,
		MinScore:      30,
	}
}

// SuggestionOptions are the options used for "did you mean" hints: few,
// close matches only.
func SuggestionOptions() SearchOptions {
	return SearchOptions{
		CaseSensitive: false,
		MaxResults:    3,
		MinScore:      60,
	}
}

// Search performs fuzzy search on a list of strings.
// Returns results sorted by score (highest first).
func Search(query string, items []string, options SearchOptions) []SearchResult {
	if !options.CaseSensitive {
		query = strings.ToLower(query)
	}

	results := make([]SearchResult, 0)

	for i, item := range items {
		compareItem := item
		if !options.CaseSensitive {
			compareItem = strings.ToLower(item)
		}

		score := calculateScore(query, compareItem)
		if score >= options.MinScore {
			results = append(results, SearchResult{
				Item:  item,
				Score: score,
				Index: i,
			})
		}
	}

	// Sort by score descending, then by original index ascending
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})

	if options.MaxResults > 0 && len(results) > options.MaxResults {
		results = results[:options.MaxResults]
	}

	return results
}

// calculateScore calculates a similarity score between query and target (0-100).
// Uses a combination of exact match, prefix match, substring match and
// Levenshtein distance.
func calculateScore(query, target string) int {
	if query == target {
		return 100
	}

	q, t := []rune(query), []rune(target)
	if len(q) == 0 || len(t) == 0 {
		return 0
	}

	if strings.HasPrefix(target, query) {
		return 85 + (len(q) * 14 / len(t))
	}

	if strings.Contains(target, query) {
		return 80 + (len(q) * 19 / len(t))
	}

	distance := levenshteinDistance(q, t)
	maxLen := max(len(q), len(t))

	return 100 - (distance * 100 / maxLen)
}

// levenshteinDistance calculates the Levenshtein distance between two rune
// slices: the minimum number of single-character edits required to change
// one into the other.
func levenshteinDistance(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}

			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
