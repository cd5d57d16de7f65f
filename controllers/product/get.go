package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bilal-Yasir34/apex-store/catalog"
)

// GetProductByID returns a single sanitized product.
// URL param: /products/:id
func GetProductByID(cache *catalog.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		if !cache.Loaded() {
			if err := cache.Load(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load products"})
				return
			}
		}

		product, ok := cache.ByID(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
