package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Bilal-Yasir34/apex-store/catalog"
	"github.com/Bilal-Yasir34/apex-store/models"
)

// GetProducts serves the sanitized catalog view, newest first.
// Optional filters: ?section=featured, ?category=smart-watches, ?search=...
func GetProducts(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		// First hit after a failed boot load retries the fetch so the client
		// sees an error state instead of a silently empty catalog.
		if !cache.Loaded() {
			if err := cache.Load(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load products"})
				return
			}
		}

		products := cache.Products()

		if section := c.Query("section"); section != "" {
			products = cache.BySection(section)
		}
		if category := strings.ToLower(strings.TrimSpace(c.Query("category"))); category != "" {
			products = filterProducts(products, func(p models.CatalogProduct) bool {
				return p.Category == category
			})
		}
		if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
			products = filterProducts(products, func(p models.CatalogProduct) bool {
				return strings.Contains(strings.ToLower(p.Name), search) ||
					strings.Contains(strings.ToLower(p.Description), search)
			})
		}

		c.JSON(http.StatusOK, products)
	}
}

// ReloadProducts refetches the catalog wholesale. Admin-only.
func ReloadProducts(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := cache.Load(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to reload products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Catalog reloaded", "count": len(cache.Products())})
	}
}

func filterProducts(products []models.CatalogProduct, keep func(models.CatalogProduct) bool) []models.CatalogProduct {
	out := make([]models.CatalogProduct, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
