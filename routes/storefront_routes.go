package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/waterlife-shop/waterlife-backend/middleware"
)

// SetupStorefrontRoutes registers the public catalog, cart, quote, auth and
// customer account endpoints under /api.
func SetupStorefrontRoutes(api *gin.RouterGroup, deps Deps, h StorefrontHandlers) {
	// ════════════════════════════════════════════════════════════
	// Catalog (public)
	// ════════════════════════════════════════════════════════════

	products := api.Group("/produkty")
	{
		products.GET("", h.Products.GetProducts)
		products.GET("/filtry", h.Products.GetFilterMetadata)
		products.GET("/podpowiedzi", h.Products.GetSuggestions)
		products.GET("/:id", h.Products.GetProductByID)
	}

	api.GET("/strona-glowna", h.Content.GetHomepage)
	api.POST("/kontakt", h.Content.SubmitContact)

	// ════════════════════════════════════════════════════════════
	// Cart session + quote request
	// ════════════════════════════════════════════════════════════

	cart := api.Group("/koszyk")
	{
		cart.GET("", h.Cart.GetCart)
		cart.POST("", h.Cart.AddItem)
		cart.DELETE("", h.Cart.ClearCart)
		cart.PATCH("/:id", h.Cart.UpdateQuantity)
		cart.DELETE("/:id", h.Cart.RemoveItem)
	}

	// Guests may submit; a signed-in customer gets the order linked.
	api.POST("/zapytanie", middleware.OptionalAuth(deps.JWT), h.Quote.SubmitQuote)

	// ════════════════════════════════════════════════════════════
	// Customer auth
	// ════════════════════════════════════════════════════════════

	auth := api.Group("/auth")
	{
		auth.POST("/rejestracja", h.Auth.Register)
		auth.POST("/logowanie", h.Auth.Login)
		auth.POST("/wyloguj", h.Auth.Logout)
		auth.POST("/reset-hasla", h.Auth.RequestPasswordReset)
		auth.POST("/nowe-haslo", h.Auth.SetNewPassword)
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}

	// ════════════════════════════════════════════════════════════
	// Customer account (auth required)
	// ════════════════════════════════════════════════════════════

	account := api.Group("/konto")
	account.Use(middleware.AuthMiddleware(deps.JWT))
	{
		account.GET("", h.Account.GetProfile)
		account.PATCH("", h.Account.UpdateProfile)
		account.GET("/zamowienia", h.Account.ListOrders)
		account.GET("/zamowienia/:id", h.Account.GetOrder)
	}
}
