package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/domain/repository"
	"agricsmart/pkg/errors"
)

type firestoreOutboxRepository struct {
	client *firestore.Client
}

func NewFirestoreOutboxRepository(client *firestore.Client) repository.OutboxRepository {
	return &firestoreOutboxRepository{
		client: client,
	}
}

func (r *firestoreOutboxRepository) Create(ctx context.Context, task *entity.OutboxTask) error {
	if task.ID == "" {
		doc := r.client.Collection("outbox").NewDoc()
		task.ID = doc.ID
	}

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	task.Status = entity.OutboxStatusPending

	_, err := r.client.Collection("outbox").Doc(task.ID).Set(ctx, task)
	if err != nil {
		return errors.Internal("Failed to create outbox task", err)
	}

	return nil
}

func (r *firestoreOutboxRepository) ListPending(ctx context.Context, limit int) ([]*entity.OutboxTask, error) {
	query := r.client.Collection("outbox").
		Where("status", "==", entity.OutboxStatusPending).
		OrderBy("createdAt", firestore.Asc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var tasks []*entity.OutboxTask

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate outbox tasks", err)
		}
		var task entity.OutboxTask
		if err := doc.DataTo(&task); err != nil {
			return nil, errors.Internal("Failed to parse outbox task data", err)
		}
		tasks = append(tasks, &task)
	}

	return tasks, nil
}

func (r *firestoreOutboxRepository) Update(ctx context.Context, task *entity.OutboxTask) error {
	task.UpdatedAt = time.Now()

	_, err := r.client.Collection("outbox").Doc(task.ID).Set(ctx, task)
	if err != nil {
		return errors.Internal("Failed to update outbox task", err)
	}

	return nil
}
