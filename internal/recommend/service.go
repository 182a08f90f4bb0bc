package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"beautymatch-backend/internal/catalog"
	"beautymatch-backend/internal/recommend/engine"
	"beautymatch-backend/internal/shared/metrics"
)

// ErrInvalidInput marks client-caused validation failures.
var ErrInvalidInput = errors.New("invalid input")

const (
	trendingMinRating  = 4.0
	trendingMinReviews = 50
	trendingLimit      = 20
)

// Service answers search, trending, and review-match requests against the
// read-only catalog.
type Service struct {
	Repo         catalog.Repo
	DefaultLimit int
	MaxLimit     int
}

// SearchRequest is one validated search.
type SearchRequest struct {
	Query    string
	Concerns []string
	Category string
	Brand    string
	PriceMin float64
	PriceMax float64
	Limit    int
}

// Recommendation is one ranked product suggestion.
type Recommendation struct {
	ProductID       string   `json:"productId"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	Category        string   `json:"category"`
	Subcategory     string   `json:"subcategory,omitempty"`
	PriceUSD        float64  `json:"priceUsd,omitempty"`
	Rating          float64  `json:"rating,omitempty"`
	ReviewCount     int      `json:"reviewCount"`
	MatchingReviews int      `json:"matchingReviews"`
	Score           float64  `json:"score"`
	Excerpts        []string `json:"excerpts,omitempty"`
}

// TrendingProduct is one trending entry.
type TrendingProduct struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"reviewCount"`
	PriceUSD      float64 `json:"priceUsd,omitempty"`
	TrendingScore float64 `json:"trendingScore"`
}

// Search ranks products for the request. An empty concern set matches all
// positive reviews; filters that match nothing produce an empty result, not
// an error.
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]Recommendation, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}
	metrics.IncSearchRequests()

	products, reviews, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	results := engine.Rank(engine.Query{
		Term:     req.Query,
		Concerns: req.Concerns,
		Category: req.Category,
		Brand:    req.Brand,
		PriceMin: req.PriceMin,
		PriceMax: req.PriceMax,
		Limit:    req.Limit,
	}, products, reviews)

	if len(results) == 0 {
		metrics.IncSearchEmpty()
	}

	recs := make([]Recommendation, 0, len(results))
	for _, r := range results {
		recs = append(recs, Recommendation{
			ProductID:       r.Product.ID,
			Name:            r.Product.Name,
			Brand:           r.Product.Brand,
			Category:        r.Product.Category,
			Subcategory:     r.Product.Subcategory,
			PriceUSD:        r.Product.PriceUSD,
			Rating:          r.AvgRating,
			ReviewCount:     r.ReviewCount,
			MatchingReviews: r.MatchingReviews,
			Score:           r.Score,
			Excerpts:        r.Excerpts,
		})
	}
	return recs, nil
}

// Trending returns high-signal products regardless of concerns.
func (s *Service) Trending(ctx context.Context) ([]TrendingProduct, error) {
	metrics.IncTrendingRequests()

	products, reviews, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	results := engine.Trending(engine.TrendingQuery{
		MinRating:  trendingMinRating,
		MinReviews: trendingMinReviews,
		Limit:      trendingLimit,
	}, products, reviews)

	out := make([]TrendingProduct, 0, len(results))
	for _, r := range results {
		out = append(out, TrendingProduct{
			ProductID:     r.Product.ID,
			Name:          r.Product.Name,
			Brand:         r.Product.Brand,
			Rating:        r.AvgRating,
			ReviewCount:   r.ReviewCount,
			PriceUSD:      r.Product.PriceUSD,
			TrendingScore: r.Score,
		})
	}
	return out, nil
}

// MatchReviews scores a product's reviews against free-text needs.
func (s *Service) MatchReviews(ctx context.Context, productName string, needs []string) (catalog.Product, []ScoredReview, error) {
	if strings.TrimSpace(productName) == "" {
		return catalog.Product{}, nil, fmt.Errorf("%w: product is required", ErrInvalidInput)
	}
	needs = trimNonEmpty(needs)
	if len(needs) == 0 {
		return catalog.Product{}, nil, fmt.Errorf("%w: needs list is empty", ErrInvalidInput)
	}
	metrics.IncReviewMatch()

	product, err := s.Repo.FindProductByName(ctx, productName)
	if err != nil {
		return catalog.Product{}, nil, err
	}
	reviews, err := s.Repo.ReviewsByProduct(ctx, product.ID, 0)
	if err != nil {
		return catalog.Product{}, nil, err
	}

	bodies := make([]string, 0, len(reviews))
	for _, r := range reviews {
		bodies = append(bodies, r.Body)
	}
	return product, ScoreReviews(bodies, needs), nil
}

func (s *Service) validate(req *SearchRequest) error {
	if req.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	}
	if req.Limit == 0 {
		req.Limit = s.DefaultLimit
	}
	if s.MaxLimit > 0 && req.Limit > s.MaxLimit {
		req.Limit = s.MaxLimit
	}
	if req.PriceMin < 0 || req.PriceMax < 0 {
		return fmt.Errorf("%w: price bounds must not be negative", ErrInvalidInput)
	}
	if req.PriceMin > 0 && req.PriceMax > 0 && req.PriceMin > req.PriceMax {
		return fmt.Errorf("%w: priceMin exceeds priceMax", ErrInvalidInput)
	}
	return nil
}

func (s *Service) load(ctx context.Context) ([]engine.Product, []engine.Review, error) {
	catalogProducts, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, nil, err
	}
	catalogReviews, err := s.Repo.ListReviews(ctx)
	if err != nil {
		return nil, nil, err
	}

	products := make([]engine.Product, 0, len(catalogProducts))
	for _, p := range catalogProducts {
		products = append(products, engine.Product{
			ID:          p.ID,
			Name:        p.Name,
			Brand:       p.Brand,
			Category:    p.PrimaryCategory,
			Subcategory: p.SecondaryCategory,
			PriceUSD:    p.PriceUSD,
			Rating:      p.Rating,
		})
	}
	reviews := make([]engine.Review, 0, len(catalogReviews))
	for _, r := range catalogReviews {
		reviews = append(reviews, engine.Review{
			ProductID: r.ProductID,
			Positive:  r.Positive(),
			Rating:    r.Rating,
			Tags:      r.ConcernTags,
			Body:      r.Body,
		})
	}
	return products, reviews, nil
}

func trimNonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
