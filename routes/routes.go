package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Bilal-Yasir34/apex-store/cart"
	"github.com/Bilal-Yasir34/apex-store/catalog"
	"github.com/Bilal-Yasir34/apex-store/checkout"
	orderControllers "github.com/Bilal-Yasir34/apex-store/controllers/order"
	"github.com/Bilal-Yasir34/apex-store/reviews"
)

// Deps carries the services constructed once in main and injected into
// every route group.
type Deps struct {
	DB        *gorm.DB
	Carts     *cart.Service
	Catalog   *catalog.Cache
	Checkouts *checkout.Service
	Reviews   *reviews.Service
	OrderHub  *orderControllers.Hub
}

// SetupRoutes is the single entry-point that wires up Auth, Store, and Admin
// route groups.
func SetupRoutes(r *gin.Engine, deps *Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, deps)

	// Storefront routes (JWT-protected cart/checkout, public catalog)
	SetupStoreRoutes(r, deps)

	// Admin routes (allow-listed JWT or API key)
	SetupAdminRoutes(r, deps)
}
