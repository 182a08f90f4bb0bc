package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"beautymatch-backend/internal/bootstrap"
	"beautymatch-backend/internal/shared/config"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	products := strings.Join([]string{
		"product_id,product_name,brand_name,primary_category,secondary_category,price_usd,rating",
		"p1,Hydra Cream,GlowCo,Skincare,Moisturizers,24.00,4.5",
		"p2,Matte Concealer,Beauty Labs,Makeup,Face,18.00,3.8",
	}, "\n")
	reviews := strings.Join([]string{
		"product_id,review_text,rating,sentiment,source_site,concern_tags",
		"p1,So hydrating.,5,positive,Sephora,dryness",
		"p1,Rich without feeling greasy.,4,positive,Ulta,dryness",
		"p1,Calmed the flaking.,5,positive,Sephora,dryness;redness",
		"p2,Creases within an hour.,2,negative,Sephora,",
	}, "\n")
	if err := os.WriteFile(filepath.Join(dir, "product_info.csv"), []byte(products), 0o644); err != nil {
		t.Fatalf("write products: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "reviews_sample.csv"), []byte(reviews), 0o644); err != nil {
		t.Fatalf("write reviews: %v", err)
	}

	app, err := bootstrap.Build(config.Config{
		DatasetSource: "local",
		DatasetDir:    dir,
		DefaultLimit:  12,
		MaxLimit:      50,
	})
	if err != nil {
		t.Fatalf("bootstrap.Build: %v", err)
	}
	return app.Router
}

func get(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestProductReviewsEndpoint(t *testing.T) {
	router := setupRouter(t)

	resp := get(t, router, "/api/v1/products/p1/reviews?limit=2")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		ProductID    string `json:"productId"`
		Name         string `json:"name"`
		TotalReviews int    `json:"totalReviews"`
		Reviews      []struct {
			Body      string `json:"body"`
			Sentiment string `json:"sentiment"`
		} `json:"reviews"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.ProductID != "p1" || out.Name != "Hydra Cream" {
		t.Fatalf("unexpected product: %+v", out)
	}
	if out.TotalReviews != 2 || len(out.Reviews) != 2 {
		t.Fatalf("expected 2 reviews with limit, got %d", len(out.Reviews))
	}
}

func TestProductReviewsEndpointNotFound(t *testing.T) {
	router := setupRouter(t)

	resp := get(t, router, "/api/v1/products/missing/reviews")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestProductReviewsEndpointBadLimit(t *testing.T) {
	router := setupRouter(t)

	resp := get(t, router, "/api/v1/products/p1/reviews?limit=zero")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestBrandsEndpoint(t *testing.T) {
	router := setupRouter(t)

	resp := get(t, router, "/api/v1/brands")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var out struct {
		AllBrands []string `json:"allBrands"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.AllBrands) != 2 || out.AllBrands[0] != "Beauty Labs" {
		t.Fatalf("unexpected brands: %v", out.AllBrands)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	router := setupRouter(t)

	resp := get(t, router, "/api/v1/categories")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var out struct {
		PrimaryCategories   []string `json:"primaryCategories"`
		SecondaryCategories []string `json:"secondaryCategories"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.PrimaryCategories) != 2 || len(out.SecondaryCategories) != 2 {
		t.Fatalf("unexpected categories: %+v", out)
	}
}

func TestStatsEndpoint(t *testing.T) {
	router := setupRouter(t)

	resp := get(t, router, "/api/v1/stats")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var out struct {
		TotalProducts   int `json:"totalProducts"`
		TotalReviews    int `json:"totalReviews"`
		PositiveReviews int `json:"positiveReviews"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.TotalProducts != 2 || out.TotalReviews != 4 || out.PositiveReviews != 3 {
		t.Fatalf("unexpected stats: %+v", out)
	}
}
