package entity

import "time"

const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
	ProductStatusSoldOut  = "sold-out"
)

type GeoPoint struct {
	Latitude  float64 `json:"latitude" firestore:"latitude"`
	Longitude float64 `json:"longitude" firestore:"longitude"`
}

type Product struct {
	ID              string    `json:"id" firestore:"id"`
	SellerID        string    `json:"seller_id" firestore:"sellerId"`
	Name            string    `json:"name" firestore:"name"`
	Description     string    `json:"description" firestore:"description"`
	Price           float64   `json:"price" firestore:"price"`
	Quantity        int       `json:"quantity" firestore:"quantity"`
	Category        string    `json:"category" firestore:"category"`
	Images          []string  `json:"images" firestore:"images"`
	Location        *GeoPoint `json:"location,omitempty" firestore:"location,omitempty"`
	DeliveryOptions []string  `json:"delivery_options" firestore:"deliveryOptions"` // pickup, delivery, shipping
	Status          string    `json:"status" firestore:"status"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time `json:"updated_at" firestore:"updatedAt"`
}
