package repository

import (
	"context"

	"agricsmart/internal/domain/entity"
)

type NotificationRepository interface {
	// Save upserts by ID, so a redelivered outbox task overwrites its own
	// notification instead of duplicating it.
	Save(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	Update(ctx context.Context, notification *entity.Notification) error
	Delete(ctx context.Context, id string) error
	ListByUserID(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, task *entity.OutboxTask) error
	ListPending(ctx context.Context, limit int) ([]*entity.OutboxTask, error)
	Update(ctx context.Context, task *entity.OutboxTask) error
}
