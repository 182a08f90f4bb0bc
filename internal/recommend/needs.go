package recommend

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

const (
	exactNeedScore = 2
	fuzzyNeedScore = 1
	// Jaro-Winkler rewards shared prefixes, so the cutoff sits higher than
	// a plain edit-distance threshold would. 0.9 admits inflection pairs
	// like hydrating/hydration but rejects dryness/redness.
	fuzzyCutoff = 0.9
)

// ScoredReview pairs a review body with its needs-match score.
type ScoredReview struct {
	Review string `json:"review"`
	Score  int    `json:"score"`
}

// ScoreReviewForNeeds scores one review against the requested needs: an exact
// substring match of a need scores 2, a fuzzy near-match of a need against any
// single word of the review scores 1.
func ScoreReviewForNeeds(review string, needs []string) int {
	lowered := strings.ToLower(review)
	words := strings.Fields(lowered)
	jw := metrics.NewJaroWinkler()

	score := 0
	for _, need := range needs {
		needLower := strings.ToLower(strings.TrimSpace(need))
		if needLower == "" {
			continue
		}
		if strings.Contains(lowered, needLower) {
			score += exactNeedScore
			continue
		}
		for _, word := range words {
			if strutil.Similarity(word, needLower, jw) >= fuzzyCutoff {
				score += fuzzyNeedScore
				break
			}
		}
	}
	return score
}

// ScoreReviews scores every review and returns them sorted by score
// descending, preserving input order between equal scores.
func ScoreReviews(reviews []string, needs []string) []ScoredReview {
	scored := make([]ScoredReview, 0, len(reviews))
	for _, review := range reviews {
		scored = append(scored, ScoredReview{
			Review: review,
			Score:  ScoreReviewForNeeds(review, needs),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
