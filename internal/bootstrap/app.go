package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"beautymatch-backend/internal/catalog"
	"beautymatch-backend/internal/recommend"
	"beautymatch-backend/internal/services/health"
	"beautymatch-backend/internal/shared/config"
	"beautymatch-backend/internal/shared/server"
	"beautymatch-backend/internal/shared/storage/db"
	"beautymatch-backend/internal/shared/storage/source"
	localsource "beautymatch-backend/internal/shared/storage/source/local"
	s3source "beautymatch-backend/internal/shared/storage/source/s3"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	CatalogRepo      catalog.Repo
	CatalogService   *catalog.Service
	RecommendService *recommend.Service
	CatalogHandler   *catalog.Handler
	RecommendHandler *recommend.Handler
	Health           *health.Service
}

// Build prepares shared dependencies and wires the router. A failure to load
// the dataset is returned to the caller and must abort startup.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	var (
		repo  catalog.Repo
		sqlDB *sql.DB
	)
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := db.RunMigrations(ctx, conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		sqlDB = conn
		repo = &catalog.PGRepo{DB: conn}
	} else {
		src, err := buildSource(ctx, cfg)
		if err != nil {
			return nil, err
		}
		dataset, err := catalog.Load(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("load dataset: %w", err)
		}
		repo = catalog.NewMemoryRepo(dataset)
	}

	catalogSvc := &catalog.Service{Repo: repo}
	recommendSvc := &recommend.Service{
		Repo:         repo,
		DefaultLimit: cfg.DefaultLimit,
		MaxLimit:     cfg.MaxLimit,
	}
	healthSvc := health.NewService()

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		CatalogRepo:      repo,
		CatalogService:   catalogSvc,
		RecommendService: recommendSvc,
		CatalogHandler:   catalog.NewHandler(catalogSvc),
		RecommendHandler: recommend.NewHandler(recommendSvc),
		Health:           healthSvc,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		CatalogHandler:   app.CatalogHandler,
		RecommendHandler: app.RecommendHandler,
		HealthStatus:     healthSvc.Status,
	})

	return app, nil
}

func buildSource(ctx context.Context, cfg config.Config) (source.Source, error) {
	switch cfg.DatasetSource {
	case "s3":
		return s3source.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localsource.New(cfg.DatasetDir), nil
	}
}
