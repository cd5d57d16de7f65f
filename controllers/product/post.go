package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Bilal-Yasir34/apex-store/models"
)

type ProductInput struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Price          float64  `json:"price" binding:"required,gte=0"`
	CompareAtPrice float64  `json:"compare_at_price" binding:"gte=0"`
	Images         []string `json:"images"`
	Category       string   `json:"category"`
	Section        string   `json:"section"`
	Stock          int      `json:"stock" binding:"gte=0"`
}

func normalizeSection(section string) string {
	section = strings.TrimSpace(strings.ToLower(section))
	switch section {
	case models.SectionFeatured, models.SectionBestseller, models.SectionNone:
		return section
	default:
		return models.SectionNone
	}
}

// CreateProduct creates a new catalog record. Admin-only.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product := models.Product{
			Name:           input.Name,
			Description:    input.Description,
			Price:          input.Price,
			CompareAtPrice: input.CompareAtPrice,
			Images:         input.Images,
			Category:       strings.TrimSpace(strings.ToLower(input.Category)),
			Section:        normalizeSection(input.Section),
			Stock:          input.Stock,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
