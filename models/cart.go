package models

// CartLineItem is one product entry in a session cart. Line items are
// denormalized copies of the product at add time, flat and JSON-safe, because
// the persisted snapshot is exactly this slice marshalled as a JSON array.
type CartLineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	Quantity int     `json:"quantity"`
}
