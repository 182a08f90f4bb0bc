package catalog

import (
	"context"
	"errors"
	"testing"
)

func fixtureDataset() Dataset {
	return Dataset{
		Products: []Product{
			{ID: "p1", Name: "Hydra Cream", Brand: "GlowCo", PrimaryCategory: "Skincare"},
			{ID: "p2", Name: "Matte Concealer", Brand: "Beauty Labs", PrimaryCategory: "Makeup"},
		},
		Reviews: []Review{
			{ID: "r1", ProductID: "p1", Body: "So hydrating.", Rating: 5, Sentiment: SentimentPositive, ConcernTags: []string{"dryness"}},
			{ID: "r2", ProductID: "p1", Body: "Calmed my skin.", Rating: 4, Sentiment: SentimentPositive},
			{ID: "r3", ProductID: "p2", Body: "Too drying.", Rating: 2, Sentiment: SentimentNegative},
		},
	}
}

func TestMemoryRepoGetProduct(t *testing.T) {
	repo := NewMemoryRepo(fixtureDataset())

	product, err := repo.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if product.Name != "Hydra Cream" {
		t.Fatalf("expected Hydra Cream, got %s", product.Name)
	}

	if _, err := repo.GetProduct(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoFindProductByName(t *testing.T) {
	repo := NewMemoryRepo(fixtureDataset())

	product, err := repo.FindProductByName(context.Background(), "  matte concealer ")
	if err != nil {
		t.Fatalf("FindProductByName: %v", err)
	}
	if product.ID != "p2" {
		t.Fatalf("expected p2, got %s", product.ID)
	}

	if _, err := repo.FindProductByName(context.Background(), "Unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoReviewsByProduct(t *testing.T) {
	repo := NewMemoryRepo(fixtureDataset())

	reviews, err := repo.ReviewsByProduct(context.Background(), "p1", 1)
	if err != nil {
		t.Fatalf("ReviewsByProduct: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected limit applied, got %d reviews", len(reviews))
	}

	all, err := repo.ReviewsByProduct(context.Background(), "p1", 0)
	if err != nil {
		t.Fatalf("ReviewsByProduct: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(all))
	}

	if _, err := repo.ReviewsByProduct(context.Background(), "missing", 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoListCopiesAreIsolated(t *testing.T) {
	repo := NewMemoryRepo(fixtureDataset())

	first, err := repo.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	first[0].Name = "mutated"

	second, err := repo.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if second[0].Name == "mutated" {
		t.Fatalf("expected repo data to be isolated from callers")
	}
}
