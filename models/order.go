package models

import "time"

type OrderStatus string

const (
	// Order statuses. The storefront only ever writes "pending"; the rest are
	// set from the admin dashboard.
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by the shop
	OrderStatusCompleted OrderStatus = "completed" // Delivered / fulfilled
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before fulfilment
)

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerName  string      `gorm:"column:customer_name" json:"customer_name"`
	CustomerEmail string      `gorm:"column:customer_email" json:"customer_email"`
	CustomerPhone string      `gorm:"column:customer_phone" json:"customer_phone"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	Items         []OrderItem `gorm:"serializer:json" json:"items"`
	TotalAmount   float64     `gorm:"column:total_amount" json:"total_amount"`
	Status        OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderItem is the lightweight snapshot of a cart line item embedded in the
// order row. Image and display fields are dropped on purpose; the order keeps
// the price paid, not a live reference to the catalog.
type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
