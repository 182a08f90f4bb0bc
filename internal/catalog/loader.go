package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"beautymatch-backend/internal/shared/storage/source"
	"beautymatch-backend/internal/shared/telemetry"
)

const (
	productFile    = "product_info.csv"
	reviewsPattern = "reviews_*.csv"

	defaultBrand    = "Unknown Brand"
	defaultCategory = "Skincare"
)

// Load reads the full dataset from the source. Any error here is fatal to the
// caller: the service does not start without its catalog.
func Load(ctx context.Context, src source.Source) (Dataset, error) {
	products, err := loadProducts(ctx, src)
	if err != nil {
		return Dataset{}, fmt.Errorf("load products: %w", err)
	}
	if len(products) == 0 {
		return Dataset{}, fmt.Errorf("dataset has no products")
	}

	known := make(map[string]struct{}, len(products))
	for _, p := range products {
		known[p.ID] = struct{}{}
	}

	reviewFiles, err := src.List(ctx, reviewsPattern)
	if err != nil {
		return Dataset{}, fmt.Errorf("list review files: %w", err)
	}
	if len(reviewFiles) == 0 {
		return Dataset{}, fmt.Errorf("no review files matching %s", reviewsPattern)
	}

	var reviews []Review
	dropped := 0
	for _, name := range reviewFiles {
		fileReviews, orphans, err := loadReviews(ctx, src, name, known)
		if err != nil {
			return Dataset{}, fmt.Errorf("load %s: %w", name, err)
		}
		reviews = append(reviews, fileReviews...)
		dropped += orphans
	}

	if dropped > 0 {
		telemetry.Warn("dataset.orphan_reviews_dropped", map[string]any{
			"count": dropped,
		})
	}
	telemetry.Info("dataset.loaded", map[string]any{
		"products":     len(products),
		"reviews":      len(reviews),
		"review_files": len(reviewFiles),
	})

	return Dataset{Products: products, Reviews: reviews}, nil
}

func loadProducts(ctx context.Context, src source.Source) ([]Product, error) {
	f, err := src.Open(ctx, productFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := indexColumns(header)
	if _, ok := cols["product_id"]; !ok {
		return nil, fmt.Errorf("missing product_id column")
	}
	if _, ok := cols["product_name"]; !ok {
		return nil, fmt.Errorf("missing product_name column")
	}

	var products []Product
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		id := field(record, cols, "product_id")
		name := field(record, cols, "product_name")
		if id == "" || name == "" {
			continue
		}

		product := Product{
			ID:                id,
			Name:              name,
			Brand:             fieldOr(record, cols, "brand_name", defaultBrand),
			PrimaryCategory:   fieldOr(record, cols, "primary_category", defaultCategory),
			SecondaryCategory: field(record, cols, "secondary_category"),
			PriceUSD:          parseFloat(field(record, cols, "price_usd")),
			Rating:            parseFloat(field(record, cols, "rating")),
		}
		products = append(products, product)
	}
	return products, nil
}

func loadReviews(ctx context.Context, src source.Source, name string, known map[string]struct{}) ([]Review, int, error) {
	f, err := src.Open(ctx, name)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	cols := indexColumns(header)
	if _, ok := cols["product_id"]; !ok {
		return nil, 0, fmt.Errorf("missing product_id column")
	}
	if _, ok := cols["review_text"]; !ok {
		return nil, 0, fmt.Errorf("missing review_text column")
	}

	var reviews []Review
	orphans := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		productID := field(record, cols, "product_id")
		body := field(record, cols, "review_text")
		if productID == "" || body == "" {
			continue
		}
		if _, ok := known[productID]; !ok {
			orphans++
			continue
		}

		rating := parseInt(field(record, cols, "rating"))
		review := Review{
			ID:          field(record, cols, "review_id"),
			ProductID:   productID,
			Body:        body,
			Rating:      rating,
			Sentiment:   parseSentiment(field(record, cols, "sentiment"), rating),
			SourceSite:  field(record, cols, "source_site"),
			ConcernTags: SplitTags(field(record, cols, "concern_tags")),
		}
		if review.ID == "" {
			review.ID = uuid.NewString()
		}
		reviews = append(reviews, review)
	}
	return reviews, orphans, nil
}

// SplitTags parses a delimited concern-tag field into a normalized set.
// Tags are lowercased; both ';' and ',' act as separators.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == ','
	})
	seen := make(map[string]struct{}, len(fields))
	var tags []string
	for _, f := range fields {
		tag := strings.ToLower(strings.TrimSpace(f))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// parseSentiment prefers the dataset label and falls back to the star rating.
func parseSentiment(label string, rating int) Sentiment {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "positive":
		return SentimentPositive
	case "negative":
		return SentimentNegative
	}
	if rating >= 4 {
		return SentimentPositive
	}
	return SentimentNegative
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func fieldOr(record []string, cols map[string]int, name, def string) string {
	if val := field(record, cols, name); val != "" {
		return val
	}
	return def
}

func parseFloat(raw string) float64 {
	if raw == "" {
		return 0
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		return 0
	}
	return val
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return 0
	}
	return val
}
