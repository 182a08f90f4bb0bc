package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"beautymatch-backend/internal/shared/server/respond"
)

const (
	defaultReviewLimit = 5
	maxReviewLimit     = 50
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products/:id/reviews", h.productReviews)
	rg.GET("/brands", h.brands)
	rg.GET("/categories", h.categories)
	rg.GET("/stats", h.stats)
}

type reviewResponse struct {
	ReviewID    string   `json:"reviewId"`
	Body        string   `json:"body"`
	Rating      int      `json:"rating,omitempty"`
	Sentiment   string   `json:"sentiment"`
	SourceSite  string   `json:"sourceSite,omitempty"`
	ConcernTags []string `json:"concernTags,omitempty"`
}

func (h *Handler) productReviews(c *gin.Context) {
	productID := c.Param("id")
	c.Set("productId", productID)

	limit := defaultReviewLimit
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}
	if limit > maxReviewLimit {
		limit = maxReviewLimit
	}

	product, reviews, err := h.Svc.ProductReviews(c.Request.Context(), productID, limit)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "product not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch reviews", nil)
		}
		return
	}

	resp := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		resp = append(resp, reviewResponse{
			ReviewID:    r.ID,
			Body:        r.Body,
			Rating:      r.Rating,
			Sentiment:   string(r.Sentiment),
			SourceSite:  r.SourceSite,
			ConcernTags: r.ConcernTags,
		})
	}
	c.Set("resultCount", len(resp))

	respond.OK(c, gin.H{
		"productId":    product.ID,
		"name":         product.Name,
		"totalReviews": len(resp),
		"reviews":      resp,
	})
}

func (h *Handler) brands(c *gin.Context) {
	all, top, err := h.Svc.Brands(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list brands", nil)
		return
	}
	respond.OK(c, gin.H{
		"allBrands": all,
		"topBrands": top,
	})
}

func (h *Handler) categories(c *gin.Context) {
	primary, secondary, err := h.Svc.Categories(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list categories", nil)
		return
	}
	respond.OK(c, gin.H{
		"primaryCategories":   primary,
		"secondaryCategories": secondary,
	})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Svc.DatasetStats(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute stats", nil)
		return
	}
	respond.OK(c, stats)
}
