package engine

import (
	"math"
	"sort"
	"strings"
)

const (
	maxExcerpts       = 3
	excerptMaxLen     = 200
	ratingBonusWeight = 0.2
	reviewBonusCap    = 0.1
)

// Rank applies the recommendation pipeline: keep positive reviews, intersect
// concern tags, group by product, rank by matching positive-review count
// descending. A product with zero matching positive reviews never appears.
func Rank(q Query, products []Product, reviews []Review) []Result {
	concerns := normalizeSet(q.Concerns)

	eligible := make(map[string]Product, len(products))
	for _, p := range products {
		if productMatches(q, p) {
			eligible[p.ID] = p
		}
	}
	if len(eligible) == 0 {
		return []Result{}
	}

	stats := reviewStats(reviews)

	type group struct {
		matching int
		excerpts []string
	}
	groups := make(map[string]*group)
	for _, r := range reviews {
		if !r.Positive {
			continue
		}
		if _, ok := eligible[r.ProductID]; !ok {
			continue
		}
		if len(concerns) > 0 && !tagsOverlap(r.Tags, concerns) {
			continue
		}
		g, ok := groups[r.ProductID]
		if !ok {
			g = &group{}
			groups[r.ProductID] = g
		}
		g.matching++
		if len(g.excerpts) < maxExcerpts {
			g.excerpts = append(g.excerpts, truncate(r.Body, excerptMaxLen))
		}
	}

	results := make([]Result, 0, len(groups))
	for productID, g := range groups {
		product := eligible[productID]
		st := stats[productID]
		avgRating := product.Rating
		if st.rated > 0 {
			avgRating = st.ratingSum / float64(st.rated)
		}
		score := float64(g.matching) +
			(avgRating/5.0)*ratingBonusWeight +
			math.Min(math.Log1p(float64(st.total))/10.0, reviewBonusCap)
		results = append(results, Result{
			Product:         product,
			MatchingReviews: g.matching,
			ReviewCount:     st.total,
			AvgRating:       avgRating,
			Score:           score,
			Excerpts:        g.excerpts,
		})
	}

	sortResults(results)
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results
}

// Trending ranks products by sustained signal: high average rating, many
// reviews, large positive share.
func Trending(q TrendingQuery, products []Product, reviews []Review) []TrendingResult {
	stats := reviewStats(reviews)

	results := make([]TrendingResult, 0, len(products))
	for _, p := range products {
		st := stats[p.ID]
		if st.total < q.MinReviews {
			continue
		}
		avgRating := p.Rating
		if st.rated > 0 {
			avgRating = st.ratingSum / float64(st.rated)
		}
		if avgRating < q.MinRating {
			continue
		}
		share := 0.0
		if st.total > 0 {
			share = float64(st.positive) / float64(st.total)
		}
		score := avgRating*0.4 + math.Log1p(float64(st.total))*0.4 + share*0.2
		results = append(results, TrendingResult{
			Product:       p,
			ReviewCount:   st.total,
			AvgRating:     avgRating,
			PositiveShare: share,
			Score:         score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Product.ID < results[j].Product.ID
	})
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results
}

type stats struct {
	total     int
	positive  int
	rated     int
	ratingSum float64
}

func reviewStats(reviews []Review) map[string]stats {
	out := make(map[string]stats)
	for _, r := range reviews {
		st := out[r.ProductID]
		st.total++
		if r.Positive {
			st.positive++
		}
		if r.Rating > 0 {
			st.rated++
			st.ratingSum += float64(r.Rating)
		}
		out[r.ProductID] = st
	}
	return out
}

func productMatches(q Query, p Product) bool {
	if q.Category != "" && !strings.EqualFold(q.Category, p.Category) {
		return false
	}
	if q.Brand != "" && !containsFold(p.Brand, q.Brand) {
		return false
	}
	if q.PriceMin > 0 && p.PriceUSD < q.PriceMin {
		return false
	}
	if q.PriceMax > 0 && p.PriceUSD > q.PriceMax {
		return false
	}
	if term := strings.TrimSpace(q.Term); term != "" {
		if !containsFold(p.Name, term) &&
			!containsFold(p.Brand, term) &&
			!containsFold(p.Category, term) &&
			!containsFold(p.Subcategory, term) {
			return false
		}
	}
	return true
}

func tagsOverlap(tags []string, wanted map[string]struct{}) bool {
	for _, tag := range tags {
		if _, ok := wanted[strings.ToLower(strings.TrimSpace(tag))]; ok {
			return true
		}
	}
	return false
}

func normalizeSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		if trimmed := strings.ToLower(strings.TrimSpace(v)); trimmed != "" {
			out[trimmed] = struct{}{}
		}
	}
	return out
}

// sortResults orders by score descending. Bonuses are strictly below 1, so
// score order never disagrees with matching-review count; remaining ties
// break on name then ID to keep identical requests identical.
func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.MatchingReviews != b.MatchingReviews {
			return a.MatchingReviews > b.MatchingReviews
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !strings.EqualFold(a.Product.Name, b.Product.Name) {
			return strings.ToLower(a.Product.Name) < strings.ToLower(b.Product.Name)
		}
		return a.Product.ID < b.Product.ID
	})
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
