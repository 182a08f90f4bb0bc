package catalog

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "product not found" }

// Repo provides read access to the loaded catalog.
type Repo interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
	FindProductByName(ctx context.Context, name string) (Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	ListReviews(ctx context.Context) ([]Review, error)
	ReviewsByProduct(ctx context.Context, productID string, limit int) ([]Review, error)
}
