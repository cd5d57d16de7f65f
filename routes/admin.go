package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/Bilal-Yasir34/apex-store/controllers/order"
	productcontroller "github.com/Bilal-Yasir34/apex-store/controllers/product"
	reviewControllers "github.com/Bilal-Yasir34/apex-store/controllers/review"
	"github.com/Bilal-Yasir34/apex-store/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints.
func SetupAdminRoutes(r *gin.Engine, deps *Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin)
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(deps.DB))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(deps.DB))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(deps.DB))
			productAdmin.POST("/reload", productcontroller.ReloadProducts(deps.Catalog))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(deps.DB))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(deps.DB))
			orderAdmin.GET("/ws", deps.OrderHub.Handler())
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(deps.DB))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(deps.DB))
		}

		// ─────────── Review Moderation ───────────
		adminGroup.DELETE("/reviews/:reviewID", reviewControllers.DeleteReview(deps.Reviews))
	}
}
