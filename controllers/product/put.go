package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Bilal-Yasir34/apex-store/models"
)

// UpdateProduct updates an existing product by ID. Accepts the same fields
// as CreateProduct; omitted fields keep their current value.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input struct {
			Name           *string  `json:"name"`
			Description    *string  `json:"description"`
			Price          *float64 `json:"price"`
			CompareAtPrice *float64 `json:"compare_at_price"`
			Images         []string `json:"images"`
			Category       *string  `json:"category"`
			Section        *string  `json:"section"`
			Stock          *int     `json:"stock"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil && *input.Price >= 0 {
			product.Price = *input.Price
		}
		if input.CompareAtPrice != nil && *input.CompareAtPrice >= 0 {
			product.CompareAtPrice = *input.CompareAtPrice
		}
		if input.Images != nil {
			product.Images = input.Images
		}
		if input.Category != nil {
			product.Category = strings.TrimSpace(strings.ToLower(*input.Category))
		}
		if input.Section != nil {
			product.Section = normalizeSection(*input.Section)
		}
		if input.Stock != nil && *input.Stock >= 0 {
			product.Stock = *input.Stock
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
