package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// ErrInvalidInput marks client-caused validation failures.
var ErrInvalidInput = errors.New("invalid input")

// Service contains read-side business logic for the catalog.
type Service struct {
	Repo Repo
}

// NameCount pairs a name with an occurrence count.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats summarizes the loaded dataset.
type Stats struct {
	TotalProducts   int         `json:"totalProducts"`
	TotalReviews    int         `json:"totalReviews"`
	TotalBrands     int         `json:"totalBrands"`
	TotalCategories int         `json:"totalCategories"`
	AverageRating   float64     `json:"averageRating"`
	PositiveReviews int         `json:"positiveReviews"`
	MinPriceUSD     float64     `json:"minPriceUsd"`
	MaxPriceUSD     float64     `json:"maxPriceUsd"`
	TopCategories   []NameCount `json:"topCategories"`
	TopBrands       []NameCount `json:"topBrands"`
}

// ProductReviews returns a product and up to limit of its reviews.
func (s *Service) ProductReviews(ctx context.Context, productID string, limit int) (Product, []Review, error) {
	if strings.TrimSpace(productID) == "" {
		return Product{}, nil, ErrInvalidInput
	}
	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return Product{}, nil, err
	}
	reviews, err := s.Repo.ReviewsByProduct(ctx, productID, limit)
	if err != nil {
		return Product{}, nil, err
	}
	return product, reviews, nil
}

// Brands returns all brands sorted plus the top brands by product count.
func (s *Service) Brands(ctx context.Context) ([]string, []NameCount, error) {
	products, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, nil, err
	}
	counts := make(map[string]int)
	for _, p := range products {
		if p.Brand != "" {
			counts[p.Brand]++
		}
	}
	all := make([]string, 0, len(counts))
	for brand := range counts {
		all = append(all, brand)
	}
	sort.Strings(all)
	return all, topCounts(counts, 20), nil
}

// Categories returns the distinct primary and secondary categories, sorted.
func (s *Service) Categories(ctx context.Context) ([]string, []string, error) {
	products, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, nil, err
	}
	primary := make(map[string]struct{})
	secondary := make(map[string]struct{})
	for _, p := range products {
		if p.PrimaryCategory != "" {
			primary[p.PrimaryCategory] = struct{}{}
		}
		if p.SecondaryCategory != "" {
			secondary[p.SecondaryCategory] = struct{}{}
		}
	}
	return sortedKeys(primary), sortedKeys(secondary), nil
}

// DatasetStats computes summary statistics over the loaded dataset.
func (s *Service) DatasetStats(ctx context.Context) (Stats, error) {
	products, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return Stats{}, err
	}
	reviews, err := s.Repo.ListReviews(ctx)
	if err != nil {
		return Stats{}, err
	}

	type ratingAgg struct {
		sum   float64
		count int
	}
	ratings := make(map[string]*ratingAgg)
	positive := 0
	for _, r := range reviews {
		if r.Positive() {
			positive++
		}
		if r.Rating > 0 {
			agg, ok := ratings[r.ProductID]
			if !ok {
				agg = &ratingAgg{}
				ratings[r.ProductID] = agg
			}
			agg.sum += float64(r.Rating)
			agg.count++
		}
	}

	brandCounts := make(map[string]int)
	categoryCounts := make(map[string]int)
	var ratingSum float64
	rated := 0
	minPrice, maxPrice := 0.0, 0.0
	for _, p := range products {
		if p.Brand != "" {
			brandCounts[p.Brand]++
		}
		if p.PrimaryCategory != "" {
			categoryCounts[p.PrimaryCategory]++
		}
		rating := p.Rating
		if agg, ok := ratings[p.ID]; ok && agg.count > 0 {
			rating = agg.sum / float64(agg.count)
		}
		if rating > 0 {
			ratingSum += rating
			rated++
		}
		if p.PriceUSD > 0 {
			if minPrice == 0 || p.PriceUSD < minPrice {
				minPrice = p.PriceUSD
			}
			if p.PriceUSD > maxPrice {
				maxPrice = p.PriceUSD
			}
		}
	}

	stats := Stats{
		TotalProducts:   len(products),
		TotalReviews:    len(reviews),
		TotalBrands:     len(brandCounts),
		TotalCategories: len(categoryCounts),
		PositiveReviews: positive,
		MinPriceUSD:     minPrice,
		MaxPriceUSD:     maxPrice,
		TopCategories:   topCounts(categoryCounts, 10),
		TopBrands:       topCounts(brandCounts, 10),
	}
	if rated > 0 {
		stats.AverageRating = ratingSum / float64(rated)
	}
	return stats, nil
}

func topCounts(counts map[string]int, limit int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
