package repository

import (
	"context"

	"agricsmart/internal/domain/entity"
)

// ProductSearchFilter narrows a product search. Zero values mean "no filter".
type ProductSearchFilter struct {
	Query    string
	Category string
	MinPrice float64
	MaxPrice float64
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Product, int64, error)
	Search(ctx context.Context, filter ProductSearchFilter, limit, offset int) ([]*entity.Product, int64, error)
	ListActiveWithLocation(ctx context.Context) ([]*entity.Product, error)

	// AdjustQuantity atomically changes a product's quantity by delta.
	// A negative delta fails if the resulting quantity would drop below
	// zero; status is kept consistent with the sold-out invariant
	// (sold-out iff quantity == 0).
	AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Product, error)
}
