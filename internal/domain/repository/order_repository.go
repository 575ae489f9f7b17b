package repository

import (
	"context"

	"agricsmart/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Order, int64, error)
}
