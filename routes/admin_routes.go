package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/waterlife-shop/waterlife-backend/middleware"
)

// SetupAdminRoutes registers the back office under /api/admin. Every route
// except login requires an admin session; writes are activity-logged.
func SetupAdminRoutes(api *gin.RouterGroup, deps Deps, h AdminHandlers) {
	admin := api.Group("/admin")

	// ════════════════════════════════════════════════════════════
	// Public Routes (No Auth Required)
	// ════════════════════════════════════════════════════════════

	admin.POST("/login", h.Admin.AdminLogin)

	// ════════════════════════════════════════════════════════════
	// Protected Routes (Auth + Activity Logging)
	// ════════════════════════════════════════════════════════════

	protected := admin.Group("")
	protected.Use(
		middleware.AdminAuthMiddleware(deps.JWT, deps.Sessions, deps.Admins, deps.Logger),
		middleware.ActivityLoggingMiddleware(deps.Activity, deps.Snapshots.Load, deps.Logger),
	)

	protected.POST("/logout", h.Admin.AdminLogout)
	protected.GET("/me", h.Admin.GetAdminMe)
	protected.GET("/aktywnosc", middleware.RequireSuperAdminMiddleware(), h.Admin.GetActivityLogs)

	products := protected.Group("/produkty")
	{
		products.GET("", h.Products.GetProducts)
		products.POST("", h.Products.CreateProduct)
		products.POST("/upload-signature", h.Products.GetUploadSignature)
		products.GET("/:id", h.Products.GetProductByID)
		products.PATCH("/:id", h.Products.UpdateProduct)
		products.DELETE("/:id", h.Products.DeleteProduct)
	}

	categories := protected.Group("/kategorie")
	{
		categories.GET("", h.Taxonomy.GetCategories)
		categories.POST("", h.Taxonomy.CreateCategory)
		categories.PATCH("/:id", h.Taxonomy.UpdateCategory)
		categories.DELETE("/:id", h.Taxonomy.DeleteCategory)
	}

	manufacturers := protected.Group("/producenci")
	{
		manufacturers.GET("", h.Taxonomy.GetManufacturers)
		manufacturers.POST("", h.Taxonomy.CreateManufacturer)
		manufacturers.PATCH("/:id", h.Taxonomy.UpdateManufacturer)
		manufacturers.DELETE("/:id", h.Taxonomy.DeleteManufacturer)
	}

	orders := protected.Group("/zamowienia")
	{
		orders.GET("", h.Orders.GetOrders)
		orders.GET("/statystyki", h.Orders.GetOrderStats)
		orders.GET("/:id", h.Orders.GetOrderByID)
		orders.GET("/:id/pdf", h.Orders.DownloadQuotePDF)
		orders.PATCH("/:id/status", h.Orders.UpdateOrderStatus)
	}

	content := protected.Group("/tresci")
	{
		content.GET("", h.Content.GetSections)
		content.PUT("/:key", h.Content.UpsertSection)
		content.DELETE("/:key", h.Content.DeleteSection)
	}

	messages := protected.Group("/wiadomosci")
	{
		messages.GET("", h.Content.GetMessages)
		messages.PATCH("/:id/read", h.Content.MarkMessageRead)
		messages.DELETE("/:id", h.Content.DeleteMessage)
	}
}
