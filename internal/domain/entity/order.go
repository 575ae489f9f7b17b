package entity

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	DeliveryMethodPickup   = "pickup"
	DeliveryMethodDelivery = "delivery"
	DeliveryMethodShipping = "shipping"
)

// OrderItem is a line item snapshotted at purchase time. Name and Price are
// copied from the product so later product edits do not alter the order.
type OrderItem struct {
	ProductID string  `json:"product_id" firestore:"productId"`
	Name      string  `json:"name" firestore:"name"`
	Price     float64 `json:"price" firestore:"price"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
}

type DeliveryAddress struct {
	Street     string    `json:"street" firestore:"street"`
	City       string    `json:"city" firestore:"city"`
	State      string    `json:"state,omitempty" firestore:"state,omitempty"`
	Country    string    `json:"country" firestore:"country"`
	PostalCode string    `json:"postal_code,omitempty" firestore:"postalCode,omitempty"`
	Location   *GeoPoint `json:"location,omitempty" firestore:"location,omitempty"`
}

type Order struct {
	ID              string          `json:"id" firestore:"id"`
	BuyerID         string          `json:"buyer_id" firestore:"buyerId"`
	SellerID        string          `json:"seller_id" firestore:"sellerId"`
	Items           []OrderItem     `json:"items" firestore:"items"`
	ItemsTotal      float64         `json:"items_total" firestore:"itemsTotal"`
	DeliveryFee     float64         `json:"delivery_fee" firestore:"deliveryFee"`
	TotalAmount     float64         `json:"total_amount" firestore:"totalAmount"`
	Currency        string          `json:"currency" firestore:"currency"`
	DeliveryAddress DeliveryAddress `json:"delivery_address" firestore:"deliveryAddress"`
	DeliveryMethod  string          `json:"delivery_method" firestore:"deliveryMethod"`
	PaymentMethod   string          `json:"payment_method" firestore:"paymentMethod"`
	PaymentID       string          `json:"payment_id,omitempty" firestore:"paymentId,omitempty"`
	// PaymentStatus mirrors the linked Payment and is written only by the
	// payment workflow. The Payment record is authoritative.
	PaymentStatus string    `json:"payment_status" firestore:"paymentStatus"`
	OrderStatus   string    `json:"order_status" firestore:"orderStatus"`
	Notes         string    `json:"notes,omitempty" firestore:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
}

// OrderTransitions is the allowed order-status transition table. Delivered
// and cancelled are terminal.
var OrderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range OrderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
