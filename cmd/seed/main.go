package main

// Load the CSV dataset and insert it into Postgres:
//   go run ./cmd/seed

import (
	"context"
	"log"
	"os"

	"beautymatch-backend/internal/catalog"
	"beautymatch-backend/internal/shared/config"
	"beautymatch-backend/internal/shared/storage/db"
	"beautymatch-backend/internal/shared/storage/source"
	localsource "beautymatch-backend/internal/shared/storage/source/local"
	s3source "beautymatch-backend/internal/shared/storage/source/s3"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	src, err := buildSource(ctx, cfg)
	if err != nil {
		log.Printf("failed to build dataset source: %v", err)
		os.Exit(1)
	}

	dataset, err := catalog.Load(ctx, src)
	if err != nil {
		log.Printf("failed to load dataset: %v", err)
		os.Exit(1)
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}

	repo := &catalog.PGRepo{DB: sqlDB}
	for _, product := range dataset.Products {
		if err := repo.InsertProduct(ctx, product); err != nil {
			log.Printf("failed to insert product %s: %v", product.ID, err)
			os.Exit(1)
		}
	}
	for _, review := range dataset.Reviews {
		if err := repo.InsertReview(ctx, review); err != nil {
			log.Printf("failed to insert review %s: %v", review.ID, err)
			os.Exit(1)
		}
	}

	log.Printf("seeded %d products and %d reviews", len(dataset.Products), len(dataset.Reviews))
}

func buildSource(ctx context.Context, cfg config.Config) (source.Source, error) {
	switch cfg.DatasetSource {
	case "s3":
		return s3source.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localsource.New(cfg.DatasetDir), nil
	}
}
