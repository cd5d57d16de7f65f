package models

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID string    `gorm:"index;not null" json:"product_id"`
	UserName  string    `gorm:"not null" json:"user_name"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5
	Comment   string    `gorm:"not null" json:"comment"`
	UserID    *string   `json:"user_id"` // set when the author was signed in
	CreatedAt time.Time `json:"created_at"`
}
