package checker

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

const (
	maxSuggestions      = 3
	suggestionThreshold = 0.6
)

// similarity maps edit distance onto [0,1]: 1 is an exact match, 0 shares
// nothing with the failing identifier.
func similarity(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}

// suggestNames ranks candidates by similarity to name and returns the top
// matches at or above the threshold. Candidates must be pre-sorted so that
// equal-similarity ties break deterministically.
func suggestNames(name string, candidates []string) []string {
	type scored struct {
		name  string
		score float64
	}

	var matches []scored
	for _, cand := range candidates {
		if cand == name {
			continue
		}
		if s := similarity(name, cand); s >= suggestionThreshold {
			matches = append(matches, scored{cand, s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}
