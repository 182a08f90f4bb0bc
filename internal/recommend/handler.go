package recommend

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"beautymatch-backend/internal/catalog"
	"beautymatch-backend/internal/shared/metrics"
	"beautymatch-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search", h.search)
	rg.GET("/trending", h.trending)
	rg.POST("/reviews/match", h.matchReviews)
}

type searchRequest struct {
	Query    string   `json:"query"`
	Concerns []string `json:"concerns"`
	Category string   `json:"category"`
	Brand    string   `json:"brand"`
	PriceMin float64  `json:"priceMin"`
	PriceMax float64  `json:"priceMax"`
	Limit    int      `json:"limit"`
}

func (h *Handler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	start := time.Now()
	recs, err := h.Svc.Search(c.Request.Context(), SearchRequest{
		Query:    req.Query,
		Concerns: req.Concerns,
		Category: req.Category,
		Brand:    req.Brand,
		PriceMin: req.PriceMin,
		PriceMax: req.PriceMax,
		Limit:    req.Limit,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "search failed", nil)
		}
		return
	}
	metrics.ObserveSearchDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	c.Set("resultCount", len(recs))

	respond.OK(c, gin.H{
		"query": req.Query,
		"filters": gin.H{
			"concerns": req.Concerns,
			"category": req.Category,
			"brand":    req.Brand,
			"priceMin": req.PriceMin,
			"priceMax": req.PriceMax,
		},
		"totalResults": len(recs),
		"products":     recs,
	})
}

func (h *Handler) trending(c *gin.Context) {
	products, err := h.Svc.Trending(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute trending", nil)
		return
	}
	c.Set("resultCount", len(products))
	respond.OK(c, gin.H{"trendingProducts": products})
}

type matchRequest struct {
	Product string   `json:"product"`
	Needs   []string `json:"needs"`
}

func (h *Handler) matchReviews(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	product, scored, err := h.Svc.MatchReviews(c.Request.Context(), req.Product, req.Needs)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "product not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "review match failed", nil)
		}
		return
	}
	c.Set("productId", product.ID)
	c.Set("resultCount", len(scored))

	respond.OK(c, gin.H{
		"product":    product.Name,
		"topReviews": scored,
	})
}
