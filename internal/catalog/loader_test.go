package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	localsource "beautymatch-backend/internal/shared/storage/source/local"
)

func writeFixtureDataset(t *testing.T, dir string) {
	t.Helper()

	products := strings.Join([]string{
		"product_id,product_name,brand_name,primary_category,secondary_category,price_usd,rating",
		"p1,Hydra Cream,GlowCo,Skincare,Moisturizers,24.00,4.5",
		"p2,Matte Concealer,,,,18.00,",
		"p3,Sheer Foundation,GlowCo,Makeup,Face,32.00,3.9",
	}, "\n")
	reviews := strings.Join([]string{
		"product_id,review_text,rating,sentiment,source_site,concern_tags",
		"p1,So hydrating.,5,positive,Sephora,dryness",
		"p1,Great for dry patches.,4,,Ulta,dryness;redness",
		"p2,Covers well.,4,positive,Sephora,dryness",
		"p2,Too drying.,2,negative,Sephora,dryness",
		"ghost,Lovely.,5,positive,Sephora,dryness",
	}, "\n")

	if err := os.WriteFile(filepath.Join(dir, "product_info.csv"), []byte(products), 0o644); err != nil {
		t.Fatalf("write products: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "reviews_batch1.csv"), []byte(reviews), 0o644); err != nil {
		t.Fatalf("write reviews: %v", err)
	}
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	writeFixtureDataset(t, dir)

	ds, err := Load(context.Background(), localsource.New(dir))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(ds.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(ds.Products))
	}
	if len(ds.Reviews) != 4 {
		t.Fatalf("expected 4 reviews (orphan dropped), got %d", len(ds.Reviews))
	}
	for _, r := range ds.Reviews {
		if r.ProductID == "ghost" {
			t.Fatalf("orphan review must be dropped")
		}
		if r.ID == "" {
			t.Fatalf("expected review IDs to be assigned")
		}
	}
}

func TestLoadAppliesFillRules(t *testing.T) {
	dir := t.TempDir()
	writeFixtureDataset(t, dir)

	ds, err := Load(context.Background(), localsource.New(dir))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var p2 Product
	for _, p := range ds.Products {
		if p.ID == "p2" {
			p2 = p
		}
	}
	if p2.Brand != "Unknown Brand" {
		t.Fatalf("expected brand fallback, got %q", p2.Brand)
	}
	if p2.PrimaryCategory != "Skincare" {
		t.Fatalf("expected category fallback, got %q", p2.PrimaryCategory)
	}
}

func TestLoadDerivesSentimentFromRating(t *testing.T) {
	dir := t.TempDir()
	writeFixtureDataset(t, dir)

	ds, err := Load(context.Background(), localsource.New(dir))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, r := range ds.Reviews {
		if r.Body == "Great for dry patches." {
			if r.Sentiment != SentimentPositive {
				t.Fatalf("expected rating 4 to imply positive, got %s", r.Sentiment)
			}
			if len(r.ConcernTags) != 2 {
				t.Fatalf("expected 2 concern tags, got %v", r.ConcernTags)
			}
			return
		}
	}
	t.Fatalf("fixture review not loaded")
}

func TestLoadFailsWithoutProducts(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(context.Background(), localsource.New(dir)); err == nil {
		t.Fatalf("expected error for missing dataset")
	}
}

func TestLoadFailsWithoutReviewFiles(t *testing.T) {
	dir := t.TempDir()
	products := "product_id,product_name\np1,Hydra Cream"
	if err := os.WriteFile(filepath.Join(dir, "product_info.csv"), []byte(products), 0o644); err != nil {
		t.Fatalf("write products: %v", err)
	}
	if _, err := Load(context.Background(), localsource.New(dir)); err == nil {
		t.Fatalf("expected error for missing review files")
	}
}

func TestSplitTags(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "semicolons", raw: "Dryness; Redness", expected: []string{"dryness", "redness"}},
		{name: "commas", raw: "acne,dullness", expected: []string{"acne", "dullness"}},
		{name: "dedupe", raw: "acne;acne", expected: []string{"acne"}},
		{name: "empty", raw: "  ", expected: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitTags(tc.raw)
			if len(got) != len(tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Fatalf("expected %v, got %v", tc.expected, got)
				}
			}
		})
	}
}
