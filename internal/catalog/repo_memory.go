package catalog

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo serves the catalog from memory. It is the primary backend:
// the dataset is loaded once at startup and never mutated afterwards.
type MemoryRepo struct {
	mu        sync.RWMutex
	products  []Product
	byID      map[string]Product
	byName    map[string]Product
	reviews   []Review
	byProduct map[string][]Review
}

// NewMemoryRepo indexes the dataset for serving.
func NewMemoryRepo(ds Dataset) *MemoryRepo {
	repo := &MemoryRepo{
		products:  append([]Product(nil), ds.Products...),
		byID:      make(map[string]Product, len(ds.Products)),
		byName:    make(map[string]Product, len(ds.Products)),
		reviews:   append([]Review(nil), ds.Reviews...),
		byProduct: make(map[string][]Review),
	}
	for _, p := range repo.products {
		repo.byID[p.ID] = p
		repo.byName[strings.ToLower(strings.TrimSpace(p.Name))] = p
	}
	for _, r := range repo.reviews {
		repo.byProduct[r.ProductID] = append(repo.byProduct[r.ProductID], r)
	}
	return repo
}

func (r *MemoryRepo) GetProduct(ctx context.Context, productID string) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.byID[productID]
	if !ok {
		return Product{}, ErrNotFound
	}
	return product, nil
}

func (r *MemoryRepo) FindProductByName(ctx context.Context, name string) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Product{}, ErrNotFound
	}
	return product, nil
}

func (r *MemoryRepo) ListProducts(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Product(nil), r.products...), nil
}

func (r *MemoryRepo) ListReviews(ctx context.Context) ([]Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Review(nil), r.reviews...), nil
}

func (r *MemoryRepo) ReviewsByProduct(ctx context.Context, productID string, limit int) ([]Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.byID[productID]; !ok {
		return nil, ErrNotFound
	}
	reviews := r.byProduct[productID]
	if limit > 0 && limit < len(reviews) {
		reviews = reviews[:limit]
	}
	return append([]Review(nil), reviews...), nil
}
