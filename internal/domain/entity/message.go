package entity

import "time"

const (
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
)

type Message struct {
	ID          string    `json:"id" firestore:"id"`
	ChatID      string    `json:"chat_id" firestore:"chatId"`
	SenderID    string    `json:"sender_id" firestore:"senderId"`
	Content     string    `json:"content" firestore:"content"`
	Attachments []string  `json:"attachments,omitempty" firestore:"attachments,omitempty"`
	Status      string    `json:"status" firestore:"status"` // sent, delivered, read
	ReadBy      []string  `json:"read_by" firestore:"readBy"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
