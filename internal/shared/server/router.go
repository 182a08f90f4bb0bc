package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"beautymatch-backend/internal/shared/config"
	"beautymatch-backend/internal/shared/metrics"
	"beautymatch-backend/internal/shared/server/middleware"
	"beautymatch-backend/internal/shared/server/respond"
)

// RouteRegistrar attaches a handler's routes to a router group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the wired handlers for route registration.
type RouterDeps struct {
	Config           config.Config
	CatalogHandler   RouteRegistrar
	RecommendHandler RouteRegistrar
	HealthStatus     func() map[string]bool
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"SEARCH":  {Rate: 5, Burst: 10},
				"DEFAULT": {Rate: 20, Burst: 40},
			},
			GroupFor: func(c *gin.Context) string {
				if strings.HasPrefix(c.Request.URL.Path, "/api/v1/search") ||
					strings.HasPrefix(c.Request.URL.Path, "/api/v1/reviews/match") {
					return "SEARCH"
				}
				return "DEFAULT"
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := map[string]bool{"ok": true}
		if deps.HealthStatus != nil {
			status = deps.HealthStatus()
		}
		respond.JSON(c, http.StatusOK, status)
	})
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.RegisterRoutes(api)
	}
	if deps.RecommendHandler != nil {
		deps.RecommendHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
