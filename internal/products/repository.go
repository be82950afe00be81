package products

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Repository defines the interface for product catalog storage.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Search(ctx context.Context, term string) ([]domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) error
}
