package recommend

import (
	"context"
	"errors"
	"testing"

	"beautymatch-backend/internal/catalog"
)

func serviceFixture() *Service {
	dataset := catalog.Dataset{
		Products: []catalog.Product{
			{ID: "p1", Name: "Hydra Cream", Brand: "GlowCo", PrimaryCategory: "Skincare", PriceUSD: 24},
			{ID: "p2", Name: "Night Serum", Brand: "GlowCo", PrimaryCategory: "Skincare", PriceUSD: 48},
			{ID: "p3", Name: "Matte Concealer", Brand: "Beauty Labs", PrimaryCategory: "Makeup", PriceUSD: 18},
		},
		Reviews: []catalog.Review{
			{ID: "r1", ProductID: "p1", Body: "So hydrating, saved my dry skin.", Rating: 5, Sentiment: catalog.SentimentPositive, ConcernTags: []string{"dryness"}},
			{ID: "r2", ProductID: "p1", Body: "Gentle and rich.", Rating: 4, Sentiment: catalog.SentimentPositive, ConcernTags: []string{"dryness"}},
			{ID: "r3", ProductID: "p1", Body: "Calmed the flaking overnight.", Rating: 5, Sentiment: catalog.SentimentPositive, ConcernTags: []string{"dryness", "redness"}},
			{ID: "r4", ProductID: "p2", Body: "Helped with dryness a little.", Rating: 4, Sentiment: catalog.SentimentPositive, ConcernTags: []string{"dryness"}},
			{ID: "r5", ProductID: "p3", Body: "Creases within an hour.", Rating: 2, Sentiment: catalog.SentimentNegative, ConcernTags: []string{"dryness"}},
		},
	}
	return &Service{
		Repo:         catalog.NewMemoryRepo(dataset),
		DefaultLimit: 12,
		MaxLimit:     50,
	}
}

func TestSearchRanksByMatchingPositiveReviews(t *testing.T) {
	svc := serviceFixture()

	recs, err := svc.Search(context.Background(), SearchRequest{Concerns: []string{"dryness"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].ProductID != "p1" || recs[1].ProductID != "p2" {
		t.Fatalf("unexpected order: %s, %s", recs[0].ProductID, recs[1].ProductID)
	}
	if recs[0].MatchingReviews != 3 || recs[1].MatchingReviews != 1 {
		t.Fatalf("unexpected matching counts: %d, %d", recs[0].MatchingReviews, recs[1].MatchingReviews)
	}
}

func TestSearchUnknownConcernReturnsEmpty(t *testing.T) {
	svc := serviceFixture()

	recs, err := svc.Search(context.Background(), SearchRequest{Concerns: []string{"volumizing"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty result, got %d", len(recs))
	}
}

func TestSearchValidation(t *testing.T) {
	svc := serviceFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		req  SearchRequest
	}{
		{"negative limit", SearchRequest{Limit: -1}},
		{"negative price", SearchRequest{PriceMin: -5}},
		{"inverted price bounds", SearchRequest{PriceMin: 50, PriceMax: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Search(ctx, tc.req); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSearchClampsLimit(t *testing.T) {
	svc := serviceFixture()
	svc.MaxLimit = 1

	recs, err := svc.Search(context.Background(), SearchRequest{Concerns: []string{"dryness"}, Limit: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected limit clamped to 1, got %d results", len(recs))
	}
}

func TestMatchReviewsScoresAgainstNeeds(t *testing.T) {
	svc := serviceFixture()

	product, scored, err := svc.MatchReviews(context.Background(), "hydra cream", []string{"dry skin"})
	if err != nil {
		t.Fatalf("MatchReviews: %v", err)
	}
	if product.ID != "p1" {
		t.Fatalf("unexpected product: %+v", product)
	}
	if len(scored) != 3 {
		t.Fatalf("expected 3 scored reviews, got %d", len(scored))
	}
	if scored[0].Score < scored[len(scored)-1].Score {
		t.Fatalf("scores not sorted descending: %+v", scored)
	}
	if scored[0].Review != "So hydrating, saved my dry skin." {
		t.Fatalf("expected exact match first, got %q", scored[0].Review)
	}
}

func TestMatchReviewsValidation(t *testing.T) {
	svc := serviceFixture()
	ctx := context.Background()

	if _, _, err := svc.MatchReviews(ctx, "", []string{"dry skin"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty product, got %v", err)
	}
	if _, _, err := svc.MatchReviews(ctx, "Hydra Cream", []string{"  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank needs, got %v", err)
	}
	if _, _, err := svc.MatchReviews(ctx, "No Such Product", []string{"dry skin"}); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTrendingAppliesThresholds(t *testing.T) {
	svc := serviceFixture()

	// Fixture products carry far fewer than the minimum review count.
	trending, err := svc.Trending(context.Background())
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(trending) != 0 {
		t.Fatalf("expected no trending products, got %d", len(trending))
	}
}
