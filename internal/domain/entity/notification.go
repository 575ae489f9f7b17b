package entity

import "time"

const (
	NotificationTypeMessage = "message"
	NotificationTypeOrder   = "order"
	NotificationTypePayment = "payment"
	NotificationTypeSystem  = "system"
)

type Notification struct {
	ID        string                 `json:"id" firestore:"id"`
	UserID    string                 `json:"user_id" firestore:"userId"`
	Type      string                 `json:"type" firestore:"type"`
	Content   string                 `json:"content" firestore:"content"`
	Data      map[string]interface{} `json:"data,omitempty" firestore:"data,omitempty"`
	IsRead    bool                   `json:"is_read" firestore:"isRead"`
	CreatedAt time.Time              `json:"created_at" firestore:"createdAt"`
}

const (
	OrderEventNew          = "new-order"
	OrderEventStatusUpdate = "order-status-update"
	OrderEventPaymentRecvd = "payment-received"
	OrderEventStockRestore = "stock-restore"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusDone    = "done"
)

// OutboxTask queues an order event for the notification dispatcher. Tasks are
// retried until done, so consumers must be idempotent.
type OutboxTask struct {
	ID        string    `json:"id" firestore:"id"`
	Event     string    `json:"event" firestore:"event"`
	OrderID   string    `json:"order_id" firestore:"orderId"`
	ProductID string    `json:"product_id,omitempty" firestore:"productId,omitempty"`
	Quantity  int       `json:"quantity,omitempty" firestore:"quantity,omitempty"`
	Status    string    `json:"status" firestore:"status"`
	Attempts  int       `json:"attempts" firestore:"attempts"`
	LastError string    `json:"last_error,omitempty" firestore:"lastError,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
