package repository

import (
	"context"

	"agricsmart/internal/domain/entity"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	GetByReference(ctx context.Context, reference string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Payment, int64, error)
}
