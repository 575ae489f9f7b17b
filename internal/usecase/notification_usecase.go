package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/domain/repository"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/logger"
)

const outboxBatchSize = 50

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	outboxRepo       repository.OutboxRepository
	orderRepo        repository.OrderRepository
	userRepo         repository.UserRepository
	productRepo      repository.ProductRepository
	email            EmailSender
}

func NewNotificationUseCase(
	notificationRepo repository.NotificationRepository,
	outboxRepo repository.OutboxRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	email EmailSender,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		outboxRepo:       outboxRepo,
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		productRepo:      productRepo,
		email:            email,
	}
}

func (uc *NotificationUseCase) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	return uc.notificationRepo.ListByUserID(ctx, userID, unreadOnly, limit, offset)
}

func (uc *NotificationUseCase) CountUnread(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, notificationID, userID string) (*entity.Notification, error) {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	if notification.UserID != userID {
		return nil, errors.Forbidden("You don't have access to this notification", nil)
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := uc.notificationRepo.Update(ctx, notification); err != nil {
			return nil, err
		}
	}

	return notification, nil
}

func (uc *NotificationUseCase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.MarkAllRead(ctx, userID)
}

func (uc *NotificationUseCase) DeleteNotification(ctx context.Context, notificationID, userID string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if notification.UserID != userID {
		return errors.Forbidden("You don't have access to this notification", nil)
	}

	return uc.notificationRepo.Delete(ctx, notificationID)
}

// Notify persists a one-off notification, used for chat messages and system
// announcements that do not go through the order outbox.
func (uc *NotificationUseCase) Notify(ctx context.Context, userID, notificationType, content string, data map[string]interface{}) error {
	notification := &entity.Notification{
		UserID:  userID,
		Type:    notificationType,
		Content: content,
		Data:    data,
	}
	return uc.notificationRepo.Save(ctx, notification)
}

// StartDispatcher drains the outbox on a fixed interval until the context is
// cancelled. Delivery is at-least-once: a task stays pending until its
// notification has been persisted, so consumers must tolerate redelivery.
func (uc *NotificationUseCase) StartDispatcher(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		logger.Info("Notification dispatcher started (interval %s)", interval)

		for {
			select {
			case <-ctx.Done():
				logger.Info("Notification dispatcher stopped")
				return
			case <-ticker.C:
				uc.DispatchPending(ctx)
			}
		}
	}()
}

// DispatchPending processes one batch of pending outbox tasks.
func (uc *NotificationUseCase) DispatchPending(ctx context.Context) {
	tasks, err := uc.outboxRepo.ListPending(ctx, outboxBatchSize)
	if err != nil {
		logger.Error("Failed to list pending outbox tasks: %v", err)
		return
	}

	for _, task := range tasks {
		if err := uc.dispatchTask(ctx, task); err != nil {
			task.Attempts++
			task.LastError = err.Error()
			if updateErr := uc.outboxRepo.Update(ctx, task); updateErr != nil {
				logger.Error("Failed to record outbox failure for task %s: %v", task.ID, updateErr)
			}
			continue
		}

		task.Status = entity.OutboxStatusDone
		task.LastError = ""
		if err := uc.outboxRepo.Update(ctx, task); err != nil {
			logger.Error("Failed to mark outbox task %s done: %v", task.ID, err)
		}
	}
}

// dispatchTask resolves the order event into a notification plus a
// best-effort email. The notification's ID is the task's ID, so a redelivered
// task overwrites its earlier notification instead of duplicating it.
func (uc *NotificationUseCase) dispatchTask(ctx context.Context, task *entity.OutboxTask) error {
	// Stock-restore tasks are compensation journal entries, not
	// notifications: they exist when restocking failed during an order
	// cancel and only need the inventory adjustment replayed.
	if task.Event == entity.OrderEventStockRestore {
		if _, err := uc.productRepo.AdjustQuantity(ctx, task.ProductID, task.Quantity); err != nil {
			return fmt.Errorf("restore %d units of product %s: %w", task.Quantity, task.ProductID, err)
		}
		return nil
	}

	order, err := uc.orderRepo.GetByID(ctx, task.OrderID)
	if err != nil {
		return fmt.Errorf("resolve order %s: %w", task.OrderID, err)
	}

	recipientID, content := renderOrderEvent(task.Event, order)
	if recipientID == "" {
		logger.Warn("Dropping outbox task %s with unknown event %q", task.ID, task.Event)
		return nil
	}

	notification := &entity.Notification{
		ID:      task.ID,
		UserID:  recipientID,
		Type:    notificationTypeForEvent(task.Event),
		Content: content,
		Data: map[string]interface{}{
			"order_id": order.ID,
			"event":    task.Event,
		},
	}

	if err := uc.notificationRepo.Save(ctx, notification); err != nil {
		return fmt.Errorf("save notification: %w", err)
	}

	// Email is best effort. A failure is logged and the task still
	// completes, matching the in-app notification being the source of
	// record.
	if recipient, err := uc.userRepo.GetByID(ctx, recipientID); err == nil {
		if err := uc.email.Send(recipient.Email, emailSubjectForEvent(task.Event), content); err != nil {
			logger.Warn("Failed to email %s for order %s: %v", recipient.Email, order.ID, err)
		}
	} else {
		logger.Warn("Failed to resolve recipient %s for email: %v", recipientID, err)
	}

	return nil
}

func notificationTypeForEvent(event string) string {
	if event == entity.OrderEventPaymentRecvd {
		return entity.NotificationTypePayment
	}
	return entity.NotificationTypeOrder
}

func emailSubjectForEvent(event string) string {
	switch event {
	case entity.OrderEventNew:
		return "You have a new order"
	case entity.OrderEventStatusUpdate:
		return "Your order status changed"
	case entity.OrderEventPaymentRecvd:
		return "Payment received"
	}
	return "AgricSmart update"
}

// renderOrderEvent picks the recipient and message for an order event.
// New orders and payments go to the seller; status updates go to the buyer.
func renderOrderEvent(event string, order *entity.Order) (recipientID, content string) {
	names := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		names = append(names, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}
	itemSummary := strings.Join(names, ", ")

	switch event {
	case entity.OrderEventNew:
		return order.SellerID, fmt.Sprintf("New order for %s (total %.2f %s)", itemSummary, order.TotalAmount, order.Currency)
	case entity.OrderEventStatusUpdate:
		return order.BuyerID, fmt.Sprintf("Your order for %s is now %s", itemSummary, order.OrderStatus)
	case entity.OrderEventPaymentRecvd:
		return order.SellerID, fmt.Sprintf("Payment of %.2f %s received for %s", order.TotalAmount, order.Currency, itemSummary)
	}
	return "", ""
}
