package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Bilal-Yasir34/apex-store/models"
)

const fallbackProductName = "Skoon Essential"

var nonPriceChars = regexp.MustCompile(`[^0-9.]`)

// Cache fetches the product table once and presents a sanitized, render-safe
// view. Raw rows are scanned untyped and normalized on ingress; nothing
// downstream ever sees a half-formed record.
type Cache struct {
	db       *gorm.DB
	mu       sync.RWMutex
	products []models.CatalogProduct
	loaded   bool
}

func NewCache(db *gorm.DB) *Cache {
	return &Cache{db: db}
}

// Load replaces the cached view wholesale with a fresh fetch, newest first.
// On error the previous view is kept and the consumer is expected to render
// an error state rather than an empty catalog.
func (c *Cache) Load(ctx context.Context) error {
	var rows []map[string]interface{}
	if err := c.db.WithContext(ctx).
		Table("products").
		Where("deleted_at IS NULL").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	sanitized := make([]models.CatalogProduct, 0, len(rows))
	for _, row := range rows {
		sanitized = append(sanitized, SanitizeRecord(row))
	}

	c.mu.Lock()
	c.products = sanitized
	c.loaded = true
	c.mu.Unlock()

	log.Printf("✅ Loaded and sanitized %d products", len(sanitized))
	return nil
}

func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Products returns a copy of the sanitized view in fetch order.
func (c *Cache) Products() []models.CatalogProduct {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.CatalogProduct, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Cache) ByID(id string) (models.CatalogProduct, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.CatalogProduct{}, false
}

// BySection returns products whose section matches (already lower-cased by
// sanitization).
func (c *Cache) BySection(section string) []models.CatalogProduct {
	section = strings.ToLower(strings.TrimSpace(section))
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.CatalogProduct
	for _, p := range c.products {
		if p.Section == section {
			out = append(out, p)
		}
	}
	return out
}

// SanitizeRecord coerces one raw product row into the strict catalog shape.
//
// A record with no id gets a random synthetic one. The synthetic id is
// regenerated on every load, so such a record cannot be reliably referenced
// across reloads; that mirrors the upstream behavior and is documented
// rather than fixed.
func SanitizeRecord(raw map[string]interface{}) models.CatalogProduct {
	p := models.CatalogProduct{
		ID:             stringify(raw["id"]),
		Name:           stringOr(raw["name"], fallbackProductName),
		Description:    stringOr(raw["description"], ""),
		Price:          sanitizePrice(raw["price"]),
		CompareAtPrice: sanitizePrice(raw["compare_at_price"]),
		Images:         sanitizeImages(raw["images"]),
		Category:       stringOr(raw["category"], ""),
		Stock:          sanitizeStock(raw["stock"]),
		CreatedAt:      sanitizeTime(raw["created_at"]),
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	p.Section = strings.TrimSpace(strings.ToLower(stringify(raw["section"])))
	if p.Section == "" {
		p.Section = models.SectionGeneral
	}

	// Primary display image: the array first, then the singular fields, then
	// the placeholder.
	if len(p.Images) > 0 {
		p.ImageURL = p.Images[0]
	}
	if p.ImageURL == "" {
		p.ImageURL = stringOr(raw["image_url"], "")
	}
	if p.ImageURL == "" {
		p.ImageURL = stringOr(raw["image"], "")
	}
	if p.ImageURL == "" {
		p.ImageURL = models.PlaceholderImageURL
	}

	return p
}

// sanitizePrice keeps numeric values as-is; anything else is rendered to a
// string, stripped of every non digit/dot character and parsed, defaulting
// to 0. Covers inputs like "Rs 2,500".
func sanitizePrice(v interface{}) float64 {
	switch p := v.(type) {
	case float64:
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return 0
		}
		return p
	case int:
		if p < 0 {
			return 0
		}
		return float64(p)
	case int64:
		if p < 0 {
			return 0
		}
		return float64(p)
	case json.Number:
		f, err := p.Float64()
		if err != nil || f < 0 {
			return 0
		}
		return f
	case nil:
		return 0
	default:
		cleaned := nonPriceChars.ReplaceAllString(stringify(v), "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
}

// sanitizeImages keeps the field only if it is already a sequence.
func sanitizeImages(v interface{}) []string {
	switch imgs := v.(type) {
	case []string:
		return imgs
	case []interface{}:
		out := make([]string, 0, len(imgs))
		for _, img := range imgs {
			if s, ok := img.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		// GORM hands JSON columns back as raw text.
		var out []string
		if err := json.Unmarshal([]byte(imgs), &out); err == nil {
			return out
		}
		return []string{}
	default:
		return []string{}
	}
}

func sanitizeStock(v interface{}) int {
	switch s := v.(type) {
	case float64:
		if s < 0 || math.IsNaN(s) {
			return 0
		}
		return int(s)
	case int:
		if s < 0 {
			return 0
		}
		return s
	case int64:
		if s < 0 {
			return 0
		}
		return int(s)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			return 0
		}
		return n
	default:
		return 0
	}
}

func sanitizeTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
		return time.Time{}
	default:
		return time.Time{}
	}
}

func stringify(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
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
