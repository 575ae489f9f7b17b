package entity

import "time"

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// PaymentDetails holds opaque provider-specific data. Reference is the key
// webhooks correlate on.
type PaymentDetails struct {
	Reference     string `json:"reference" firestore:"reference"`
	Provider      string `json:"provider,omitempty" firestore:"provider,omitempty"`
	PhoneNumber   string `json:"phone_number,omitempty" firestore:"phoneNumber,omitempty"`
	CardType      string `json:"card_type,omitempty" firestore:"cardType,omitempty"`
	Last4         string `json:"last4,omitempty" firestore:"last4,omitempty"`
	TransactionID string `json:"transaction_id,omitempty" firestore:"transactionId,omitempty"`
}

// Payment is the authoritative payment-state record. Orders hold a PaymentID
// and a mirrored status maintained by the payment workflow.
type Payment struct {
	ID          string         `json:"id" firestore:"id"`
	UserID      string         `json:"user_id" firestore:"userId"`
	OrderID     string         `json:"order_id,omitempty" firestore:"orderId,omitempty"`
	Amount      float64        `json:"amount" firestore:"amount"`
	Currency    string         `json:"currency" firestore:"currency"`
	Method      string         `json:"method" firestore:"method"` // momo, card, bank, crypto
	Status      string         `json:"status" firestore:"status"`
	Description string         `json:"description,omitempty" firestore:"description,omitempty"`
	Details     PaymentDetails `json:"details" firestore:"details"`
	CreatedAt   time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time      `json:"updated_at" firestore:"updatedAt"`
}

func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}
