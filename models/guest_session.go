package models

import "time"

// GuestSession backs anonymous carts. The session id doubles as the cart
// snapshot key, so a guest keeps their bag across page loads.
type GuestSession struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
