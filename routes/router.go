// Package routes wires the storefront and back office handlers onto a gin
// engine.
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	admin_admin "github.com/waterlife-shop/waterlife-backend/controllers/admin/admin_controller"
	admin_taxonomy "github.com/waterlife-shop/waterlife-backend/controllers/admin/category_controller"
	admin_content "github.com/waterlife-shop/waterlife-backend/controllers/admin/content_controller"
	admin_order "github.com/waterlife-shop/waterlife-backend/controllers/admin/order_controller"
	admin_product "github.com/waterlife-shop/waterlife-backend/controllers/admin/product_controller"
	store_account "github.com/waterlife-shop/waterlife-backend/controllers/storefront/account_controller"
	store_auth "github.com/waterlife-shop/waterlife-backend/controllers/storefront/auth_controller"
	store_cart "github.com/waterlife-shop/waterlife-backend/controllers/storefront/cart_controller"
	store_content "github.com/waterlife-shop/waterlife-backend/controllers/storefront/content_controller"
	store_product "github.com/waterlife-shop/waterlife-backend/controllers/storefront/product_controller"
	store_quote "github.com/waterlife-shop/waterlife-backend/controllers/storefront/quote_controller"
	"github.com/waterlife-shop/waterlife-backend/middleware"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/services"
)

type StorefrontHandlers struct {
	Products *store_product.Handler
	Cart     *store_cart.Handler
	Auth     *store_auth.Handler
	Account  *store_account.Handler
	Quote    *store_quote.Handler
	Content  *store_content.Handler
}

type AdminHandlers struct {
	Admin    *admin_admin.Handler
	Products *admin_product.Handler
	Taxonomy *admin_taxonomy.Handler
	Content  *admin_content.Handler
	Orders   *admin_order.Handler
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps is everything the router needs besides the handlers.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Redis     *redis.Client
	JWT       *services.JWTService
	Sessions  *services.AdminSessionService
	Activity  *services.ActivityLogService
	Admins    repository.AdminRepository
	Snapshots repository.Snapshots
	// Database is pinged by /health; nil skips the check.
	Database Pinger
}

// NewRouter builds the engine: global middleware, /health, /swagger and the
// /api tree.
func NewRouter(deps Deps, store StorefrontHandlers, admin AdminHandlers) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(deps.Logger),
		middleware.RequestLogger(deps.Logger),
		cors.New(corsConfig(deps.Config.Server)),
	)

	router.GET("/health", health(deps))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	if deps.Redis != nil {
		api.Use(middleware.RateLimiter(deps.Redis, deps.Config.Server.RateLimit, deps.Config.Server.RateWindow, deps.Logger))
	}

	SetupStorefrontRoutes(api, deps, store)
	SetupAdminRoutes(api, deps, admin)
	return router
}

func corsConfig(cfg config.ServerConfig) cors.Config {
	return cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		// Exposed for the quote PDF download.
		ExposeHeaders: []string{"Content-Disposition", "Content-Length"},
	}
}

type healthStatus struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// health godoc
// @Summary Liveness and dependency check
// @Tags System
// @Produce json
// @Success 200 {object} models.ApiResponse{data=healthStatus}
// @Failure 503 {object} models.ApiResponse{data=healthStatus}
// @Router /health [get]
func health(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := healthStatus{Database: "skipped", Redis: "skipped"}
		healthy := true
		if deps.Database != nil {
			status.Database = "ok"
			if err := deps.Database.Ping(ctx); err != nil {
				deps.Logger.Warn("database ping failed", zap.Error(err))
				status.Database, healthy = "down", false
			}
		}
		if deps.Redis != nil {
			status.Redis = "ok"
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				// The rate limiter fails open, so Redis being down degrades
				// cart sessions only.
				status.Redis = "down"
			}
		}

		if !healthy {
			resp := models.ErrorResponse(c, "Baza danych niedostępna")
			resp.Data = status
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(c, "OK", status))
	}
}
