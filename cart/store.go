package cart

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"strconv"
	"sync"

	"github.com/Bilal-Yasir34/apex-store/models"
)

// Store is the authoritative cart for one session. All reads and writes go
// through it; the persisted snapshot only exists so the bag survives a
// reload. No method here returns an error to the caller — malformed input is
// normalized, storage failures are logged and swallowed.
type Store struct {
	mu        sync.Mutex
	sessionID string
	items     []models.CartLineItem
	persister Persister
}

// Aggregate is derived from the current line items on every read, never
// cached, so it cannot drift from the items after a mutation.
type Aggregate struct {
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

func newStore(sessionID string, persister Persister) *Store {
	return &Store{sessionID: sessionID, persister: persister}
}

// restore loads the persisted snapshot. An absent key, unparsable payload or
// non-array value all degrade to an empty cart.
func (s *Store) restore(ctx context.Context) {
	data, err := s.persister.Load(ctx, s.sessionID)
	if err != nil {
		if err != ErrNoSnapshot {
			log.Printf("cart restore error: %v", err)
		}
		return
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("cart snapshot corrupt, starting empty: %v", err)
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// AddItem merges a product into the cart. The input may be arbitrarily
// malformed: nil or id-less products are a no-op, every field is coerced to
// the line-item contract. Adding a product already in the cart increments its
// quantity by one.
func (s *Store) AddItem(product map[string]interface{}) {
	if product == nil {
		return
	}
	id := stringifyID(product["id"])
	if id == "" {
		return
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = coerceQuantity(s.items[i].Quantity) + 1
			s.mu.Unlock()
			s.persist()
			return
		}
	}

	s.items = append(s.items, models.CartLineItem{
		ID:       id,
		Name:     stringOr(product["name"], "Product"),
		Price:    coercePrice(product["price"]),
		ImageURL: pickImage(product),
		Quantity: 1,
	})
	s.mu.Unlock()
	s.persist()
}

// RemoveItem drops the line item with the given id. Absent ids are a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mu.Unlock()
	s.persist()
}

// SetQuantity clamps to max(1, floor(quantity)); fractional and non-positive
// values can never zero out a line item. No-op when the id is absent.
func (s *Store) SetQuantity(id string, quantity float64) {
	safe := 1
	if !math.IsNaN(quantity) && !math.IsInf(quantity, 0) {
		if floored := int(math.Floor(quantity)); floored > 1 {
			safe = floored
		}
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = safe
			s.mu.Unlock()
			s.persist()
			return
		}
	}
	s.mu.Unlock()
}

// Clear empties the cart and erases the persisted snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	if err := s.persister.Delete(ctx, s.sessionID); err != nil {
		log.Printf("cart snapshot delete error: %v", err)
	}
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []models.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Aggregate recomputes total and item count from the line items. Prices and
// quantities are re-coerced on every read so one malformed entry cannot
// corrupt the whole sum.
func (s *Store) Aggregate() Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()

	var agg Aggregate
	for _, item := range s.items {
		price := item.Price
		if math.IsNaN(price) || math.IsInf(price, 0) {
			price = 0
		}
		qty := item.Quantity
		if qty < 0 {
			qty = 0
		}
		agg.Total += price * float64(qty)
		agg.ItemCount += qty
	}
	return agg
}

// persist writes the full line-item list to the persistent slot. Failures
// are logged, never propagated; the in-memory cart stays authoritative.
func (s *Store) persist() {
	s.mu.Lock()
	data, err := json.Marshal(s.items)
	s.mu.Unlock()
	if err != nil {
		log.Printf("cart snapshot marshal error: %v", err)
		return
	}
	if err := s.persister.Save(context.Background(), s.sessionID, data); err != nil {
		log.Printf("cart snapshot save error: %v", err)
	}
}

// stringifyID renders any backend id representation ("7", 7, 7.0) as the
// same string so equality is stable across numeric and string ids.
func stringifyID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case json.Number:
		return id.String()
	default:
		return ""
	}
}

func stringOr(v interface{}, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func coercePrice(v interface{}) float64 {
	var price float64
	switch p := v.(type) {
	case float64:
		price = p
	case int:
		price = float64(p)
	case int64:
		price = float64(p)
	case json.Number:
		price, _ = p.Float64()
	case string:
		price, _ = strconv.ParseFloat(p, 64)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}

func coerceQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// pickImage resolves the display image: first entry of an images array, then
// the singular image fields, else the placeholder.
func pickImage(product map[string]interface{}) string {
	if images, ok := product["images"].([]interface{}); ok && len(images) > 0 {
		if first, ok := images[0].(string); ok && first != "" {
			return first
		}
	}
	if url := stringOr(product["image_url"], ""); url != "" {
		return url
	}
	if url := stringOr(product["image"], ""); url != "" {
		return url
	}
	return models.PlaceholderImageURL
}
