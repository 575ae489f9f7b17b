package entity

import "time"

const (
	RoleAdmin    = "Admin"
	RoleSeller   = "Seller"
	RoleBuyer    = "Buyer"
	RoleEducator = "Educator"
)

type User struct {
	ID         string    `json:"id" firestore:"id"`
	Username   string    `json:"username" firestore:"username"`
	Email      string    `json:"email" firestore:"email"`
	Phone      string    `json:"phone" firestore:"phone"`
	Role       string    `json:"role" firestore:"role"` // Admin, Seller, Buyer, Educator
	Status     string    `json:"status" firestore:"status"` // "active", "suspended"
	ProfilePic string    `json:"profile_pic,omitempty" firestore:"profilePic,omitempty"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}
