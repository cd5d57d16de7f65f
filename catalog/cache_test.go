package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bilal-Yasir34/apex-store/models"
)

func TestSanitizeRecordMalformedPriceString(t *testing.T) {
	p := SanitizeRecord(map[string]interface{}{
		"id":    "x1",
		"price": "Rs 2,500",
	})

	assert.Equal(t, "x1", p.ID)
	assert.Equal(t, 2500.0, p.Price)
	assert.Empty(t, p.Images)
	assert.Equal(t, "general", p.Section)
}

func TestSanitizeRecordNumericPricePassesThrough(t *testing.T) {
	p := SanitizeRecord(map[string]interface{}{"id": 7.0, "price": 45.5})

	assert.Equal(t, "7", p.ID)
	assert.Equal(t, 45.5, p.Price)
}

func TestSanitizeRecordUnparsablePriceDefaultsToZero(t *testing.T) {
	for _, price := range []interface{}{"free!", nil, "..", map[string]interface{}{}} {
		p := SanitizeRecord(map[string]interface{}{"id": "1", "price": price})
		assert.Equal(t, 0.0, p.Price, "price %v", price)
	}
}

func TestSanitizeRecordMissingIDGetsSyntheticOne(t *testing.T) {
	a := SanitizeRecord(map[string]interface{}{"name": "orphan"})
	b := SanitizeRecord(map[string]interface{}{"name": "orphan"})

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	// Regenerated per load; two passes over the same record disagree.
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSanitizeRecordNameFallback(t *testing.T) {
	p := SanitizeRecord(map[string]interface{}{"id": "1"})
	assert.Equal(t, "Skoon Essential", p.Name)
}

func TestSanitizeRecordSectionNormalized(t *testing.T) {
	cases := map[interface{}]string{
		" Featured ":  "featured",
		"BESTSELLER":  "bestseller",
		"":            "general",
		nil:           "general",
	}
	for in, want := range cases {
		p := SanitizeRecord(map[string]interface{}{"id": "1", "section": in})
		assert.Equal(t, want, p.Section, "section %v", in)
	}
}

func TestSanitizeRecordImages(t *testing.T) {
	p := SanitizeRecord(map[string]interface{}{
		"id":     "1",
		"images": []interface{}{"a.jpg", 3, "b.jpg"},
	})
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Images)
	assert.Equal(t, "a.jpg", p.ImageURL)

	p = SanitizeRecord(map[string]interface{}{"id": "1", "images": "not an array"})
	assert.Empty(t, p.Images)
	assert.Equal(t, models.PlaceholderImageURL, p.ImageURL)

	p = SanitizeRecord(map[string]interface{}{"id": "1", "image_url": "single.jpg"})
	assert.Equal(t, "single.jpg", p.ImageURL)
}

func TestSanitizeRecordStockAndTime(t *testing.T) {
	now := time.Now()
	p := SanitizeRecord(map[string]interface{}{
		"id":         "1",
		"stock":      -3.0,
		"created_at": now,
	})
	assert.Equal(t, 0, p.Stock)
	assert.True(t, p.CreatedAt.Equal(now))

	p = SanitizeRecord(map[string]interface{}{"id": "1", "stock": 12.0})
	assert.Equal(t, 12, p.Stock)
}

func TestDerivedFlags(t *testing.T) {
	discounted := models.CatalogProduct{Price: 45, CompareAtPrice: 60}
	require.True(t, discounted.HasDiscount())

	full := models.CatalogProduct{Price: 45, CompareAtPrice: 0}
	assert.False(t, full.HasDiscount())

	assert.True(t, models.CatalogProduct{Stock: 0}.IsOutOfStock())
	assert.False(t, models.CatalogProduct{Stock: 3}.IsOutOfStock())
}
