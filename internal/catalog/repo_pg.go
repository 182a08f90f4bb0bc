package catalog

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// PGRepo serves the catalog from Postgres. Rows are written once by cmd/seed
// and read-only afterwards, matching the in-memory lifecycle.
type PGRepo struct {
	DB *sql.DB
}

const productColumns = `id, name, brand, primary_category, secondary_category, price_usd, rating`

func (r *PGRepo) GetProduct(ctx context.Context, productID string) (Product, error) {
	const query = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
LIMIT 1`
	return r.scanProduct(r.DB.QueryRowContext(ctx, query, productID))
}

func (r *PGRepo) FindProductByName(ctx context.Context, name string) (Product, error) {
	const query = `
SELECT ` + productColumns + `
FROM products
WHERE lower(name) = lower($1)
LIMIT 1`
	return r.scanProduct(r.DB.QueryRowContext(ctx, query, strings.TrimSpace(name)))
}

func (r *PGRepo) ListProducts(ctx context.Context) ([]Product, error) {
	const query = `
SELECT ` + productColumns + `
FROM products
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		product, err := r.scanProductRow(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *PGRepo) ListReviews(ctx context.Context) ([]Review, error) {
	const query = `
SELECT id, product_id, body, rating, sentiment, source_site, concern_tags
FROM reviews
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

func (r *PGRepo) ReviewsByProduct(ctx context.Context, productID string, limit int) ([]Review, error) {
	if _, err := r.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	const query = `
SELECT id, product_id, body, rating, sentiment, source_site, concern_tags
FROM reviews
WHERE product_id = $1
ORDER BY id
LIMIT $2`
	// limit <= 0 means all reviews; LIMIT NULL is unbounded in Postgres.
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := r.DB.QueryContext(ctx, query, productID, limitArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviews(rows)
}

// InsertProduct writes one product row. Used by cmd/seed only.
func (r *PGRepo) InsertProduct(ctx context.Context, product Product) error {
	const query = `
INSERT INTO products (id, name, brand, primary_category, secondary_category, price_usd, rating, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
ON CONFLICT (id) DO NOTHING`
	_, err := r.DB.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Brand,
		product.PrimaryCategory,
		nullableString(product.SecondaryCategory),
		nullableFloat(product.PriceUSD),
		nullableFloat(product.Rating),
	)
	return err
}

// InsertReview writes one review row. Used by cmd/seed only.
func (r *PGRepo) InsertReview(ctx context.Context, review Review) error {
	const query = `
INSERT INTO reviews (id, product_id, body, rating, sentiment, source_site, concern_tags, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
ON CONFLICT (id) DO NOTHING`
	_, err := r.DB.ExecContext(ctx, query,
		review.ID,
		review.ProductID,
		review.Body,
		nullableInt(review.Rating),
		string(review.Sentiment),
		nullableString(review.SourceSite),
		strings.Join(review.ConcernTags, ";"),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanProduct(row *sql.Row) (Product, error) {
	product, err := r.scanProductRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return product, nil
}

func (r *PGRepo) scanProductRow(row rowScanner) (Product, error) {
	var product Product
	var secondary sql.NullString
	var price sql.NullFloat64
	var rating sql.NullFloat64
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Brand,
		&product.PrimaryCategory,
		&secondary,
		&price,
		&rating,
	)
	if err != nil {
		return Product{}, err
	}
	if secondary.Valid {
		product.SecondaryCategory = secondary.String
	}
	if price.Valid {
		product.PriceUSD = price.Float64
	}
	if rating.Valid {
		product.Rating = rating.Float64
	}
	return product, nil
}

func scanReviews(rows *sql.Rows) ([]Review, error) {
	var reviews []Review
	for rows.Next() {
		var review Review
		var rating sql.NullInt64
		var sentiment string
		var sourceSite sql.NullString
		var tags string
		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.Body,
			&rating,
			&sentiment,
			&sourceSite,
			&tags,
		)
		if err != nil {
			return nil, err
		}
		if rating.Valid {
			review.Rating = int(rating.Int64)
		}
		review.Sentiment = Sentiment(sentiment)
		if sourceSite.Valid {
			review.SourceSite = sourceSite.String
		}
		review.ConcernTags = SplitTags(tags)
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value float64) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullableInt(value int) any {
	if value == 0 {
		return nil
	}
	return value
}
