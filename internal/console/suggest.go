package console

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// minSimilarity is the Levenshtein similarity below which no suggestion is
// offered.
const minSimilarity = 0.5

// suggest returns the candidate most similar to input, or "".
func suggest(input string, candidates []string) string {
	if input == "" {
		return ""
	}
	lev := metrics.NewLevenshtein()
	best, bestScore := "", minSimilarity
	for _, candidate := range candidates {
		if candidate == input {
			continue
		}
		if score := strutil.Similarity(input, candidate, lev); score >= bestScore && (best == "" || score > bestScore) {
			best, bestScore = candidate, score
		}
	}
	return best
}
