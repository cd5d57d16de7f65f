package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bilal-Yasir34/apex-store/cart"
)

func sessionID(c *gin.Context) (string, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	id, ok := val.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id, true
}

// GET /cart
func GetCart(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}
		store := carts.ForSession(c.Request.Context(), sid)
		agg := store.Aggregate()
		c.JSON(http.StatusOK, gin.H{
			"items":      store.Items(),
			"total":      agg.Total,
			"item_count": agg.ItemCount,
		})
	}
}

// POST /cart
// The body is the product to add, taken as-is; the store sanitizes whatever
// shape arrives. Adding the same product again bumps its quantity.
func AddCartItem(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}

		var product map[string]interface{}
		if err := c.ShouldBindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		store := carts.ForSession(c.Request.Context(), sid)
		store.AddItem(product)

		agg := store.Aggregate()
		c.JSON(http.StatusOK, gin.H{
			"items":      store.Items(),
			"total":      agg.Total,
			"item_count": agg.ItemCount,
		})
	}
}

type UpdateQuantityInput struct {
	Quantity float64 `json:"quantity" binding:"required"`
}

// PUT /cart/:product_id
func UpdateCartQuantity(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}
		productID := c.Param("product_id")

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		store := carts.ForSession(c.Request.Context(), sid)
		store.SetQuantity(productID, input.Quantity)

		c.JSON(http.StatusOK, gin.H{"items": store.Items()})
	}
}

// DELETE /cart/:product_id
func DeleteCartItem(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}
		store := carts.ForSession(c.Request.Context(), sid)
		store.RemoveItem(c.Param("product_id"))

		c.JSON(http.StatusOK, gin.H{"items": store.Items()})
	}
}

// DELETE /cart
func ClearCart(carts *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := sessionID(c)
		if !ok {
			return
		}
		carts.ForSession(c.Request.Context(), sid).Clear(c.Request.Context())

		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
