package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	cartControllers "github.com/Bilal-Yasir34/apex-store/controllers/cart"
	orderControllers "github.com/Bilal-Yasir34/apex-store/controllers/order"
	productcontroller "github.com/Bilal-Yasir34/apex-store/controllers/product"
	reviewControllers "github.com/Bilal-Yasir34/apex-store/controllers/review"
	"github.com/Bilal-Yasir34/apex-store/middleware"
)

// SetupStoreRoutes registers the storefront endpoints. The catalog and
// reviews are readable without a session; the cart and checkout need one
// (guest sessions count).
func SetupStoreRoutes(r *gin.Engine, deps *Deps) {
	// Brand skin is a deployment concern; clients read it from here.
	r.GET("/config", storeConfig)

	// ──────────────── Browse Products ────────────────
	r.GET("/products", productcontroller.GetProducts(deps.Catalog))
	r.GET("/products/:id", productcontroller.GetProductByID(deps.Catalog))

	// ──────────────── Reviews ────────────────
	r.GET("/products/:id/reviews", reviewControllers.GetReviews(deps.Reviews))

	sessionGroup := r.Group("/")
	sessionGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── Shopping Cart ────────────────
		cartGroup := sessionGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(deps.Carts))
			cartGroup.POST("", cartControllers.AddCartItem(deps.Carts))
			cartGroup.PUT("/:product_id", cartControllers.UpdateCartQuantity(deps.Carts))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(deps.Carts))
			cartGroup.DELETE("", cartControllers.ClearCart(deps.Carts))
		}

		// ──────────────── Checkout ────────────────
		sessionGroup.POST("/checkout", orderControllers.PlaceOrderHandler(deps.Carts, deps.Checkouts))
		sessionGroup.GET("/checkout/state", orderControllers.GetCheckoutStateHandler(deps.Checkouts))

		// ──────────────── Reviews (write) ────────────────
		sessionGroup.POST("/products/:id/reviews", reviewControllers.CreateReview(deps.Reviews))
	}
}

func storeConfig(c *gin.Context) {
	brand := os.Getenv("STORE_BRAND")
	if brand == "" {
		brand = "Apex Store"
	}
	c.JSON(http.StatusOK, gin.H{"brand": brand})
}
