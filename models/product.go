package models

import (
	"time"

	"gorm.io/gorm"
)

// Product sections control homepage placement.
const (
	SectionNone       = "none"
	SectionFeatured   = "featured"
	SectionBestseller = "bestseller"
	SectionGeneral    = "general"
)

// PlaceholderImageURL is served whenever a product carries no usable image.
const PlaceholderImageURL = "https://via.placeholder.com/400?text=No+Image"

// Product is the admin-side write model for the products table.
type Product struct {
	ID             uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string   `gorm:"not null" json:"name"`
	Description    string   `json:"description"`
	Price          float64  `gorm:"not null" json:"price"`
	CompareAtPrice float64  `json:"compare_at_price"` // 0 means no discount
	Images         []string `gorm:"serializer:json" json:"images"`
	Category       string   `json:"category"`
	Section        string   `json:"section"`
	Stock          int      `json:"stock"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// CatalogProduct is the sanitized, render-safe view of a product record.
// Raw rows never flow past the catalog boundary; every field here has been
// coerced to the type the storefront expects.
type CatalogProduct struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	CompareAtPrice float64   `json:"compare_at_price"`
	ImageURL       string    `json:"image_url"`
	Images         []string  `json:"images"`
	Category       string    `json:"category"`
	Section        string    `json:"section"`
	Stock          int       `json:"stock"`
	CreatedAt      time.Time `json:"created_at"`
}

func (p CatalogProduct) HasDiscount() bool {
	return p.CompareAtPrice > p.Price
}

func (p CatalogProduct) IsOutOfStock() bool {
	return p.Stock <= 0
}
