// @title WaterLife API
// @version 1.0
// @description Storefront, customer account and back office API of the WaterLife heating, sanitary and irrigation shop.
// @host localhost:8081
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/cache"
	"github.com/waterlife-shop/waterlife-backend/cart"
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
	_ "github.com/waterlife-shop/waterlife-backend/docs"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/routes"
	"github.com/waterlife-shop/waterlife-backend/services"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

const sessionCleanupInterval = time.Hour

func init() {
	_ = godotenv.Load()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := config.NewLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ════════════════════════════════════════════════════════════
	// Infrastructure
	// ════════════════════════════════════════════════════════════

	db, err := config.OpenGorm(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer config.CloseGorm(db)
	if err := repository.Migrate(db); err != nil {
		return err
	}

	pool, err := config.OpenPool(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := config.ConnectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()

	// ════════════════════════════════════════════════════════════
	// Repositories and services
	// ════════════════════════════════════════════════════════════

	products := repository.NewProductRepository(db)
	categories := repository.NewCategoryRepository(db)
	manufacturers := repository.NewManufacturerRepository(db)
	orders := repository.NewOrderRepository(db)
	users := repository.NewUserRepository(db)
	admins := repository.NewAdminRepository(db)
	content := repository.NewContentRepository(db)
	contact := repository.NewContactRepository(db)

	jwt, err := services.NewJWTService(cfg.JWT)
	if err != nil {
		return err
	}
	sessions := services.NewAdminSessionService(admins, logger)
	activity := services.NewActivityLogService(repository.NewActivityRepository(db), logger)
	notifier := services.NewNotifier(services.NewResendClient(cfg.Resend, logger), cfg.Shop, cfg.Server.FrontendURL, logger)
	tracker := utils.NewLoginTracker(pool, logger)

	var media admin_product.MediaStore
	if cfg.Cloudinary.Enabled() {
		cld, err := services.NewCloudinaryService(cfg.Cloudinary, logger)
		if err != nil {
			return err
		}
		media = cld
	} else {
		logger.Warn("cloudinary not configured, image uploads disabled")
	}

	var google store_auth.GoogleIdentity
	if oauth, err := config.NewGoogleOAuth(ctx, cfg.Google); err != nil {
		logger.Error("google sign-in disabled", zap.Error(err))
	} else if oauth != nil {
		google = store_auth.OIDCIdentity{GoogleOAuth: oauth}
	}

	facets := cache.NewFacetCache(products.Facets, cache.TTL, logger)
	defer facets.Close()

	carts := cart.RedisBlob{Client: rdb, TTL: cart.SessionTTL}

	// ════════════════════════════════════════════════════════════
	// HTTP
	// ════════════════════════════════════════════════════════════

	secure := cfg.Server.CookieSecure
	store := routes.StorefrontHandlers{
		Products: store_product.NewHandler(products, facets, logger),
		Cart:     store_cart.NewHandler(carts, products, secure, logger),
		Auth: store_auth.NewHandler(users, jwt, notifier, tracker, google, store_auth.Options{
			FrontendURL:   cfg.Server.FrontendURL,
			SecureCookies: secure,
		}, logger),
		Account: store_account.NewHandler(users, orders, logger),
		Quote:   store_quote.NewHandler(orders, carts, notifier, cfg.Shop, logger),
		Content: store_content.NewHandler(content, contact, products, notifier, logger),
	}
	admin := routes.AdminHandlers{
		Admin:    admin_admin.NewHandler(admins, sessions, activity, jwt, secure, logger),
		Products: admin_product.NewHandler(products, categories, manufacturers, media, facets, logger),
		Taxonomy: admin_taxonomy.NewHandler(categories, manufacturers, facets, logger),
		Content:  admin_content.NewHandler(content, contact, logger),
		Orders:   admin_order.NewHandler(orders, cfg.Shop, logger),
	}

	router := routes.NewRouter(routes.Deps{
		Config:   cfg,
		Logger:   logger,
		Redis:    rdb,
		JWT:      jwt,
		Sessions: sessions,
		Activity: activity,
		Admins:   admins,
		Snapshots: repository.Snapshots{
			Products:      products,
			Categories:    categories,
			Manufacturers: manufacturers,
			Orders:        orders,
			Content:       content,
		},
		Database: pool,
	}, store, admin)

	go cleanupSessions(ctx, sessions)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// cleanupSessions deactivates expired admin sessions once an hour.
func cleanupSessions(ctx context.Context, sessions *services.AdminSessionService) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cctx, cancel := config.WithTimeout()
			_, _ = sessions.CleanupExpiredSessions(cctx)
			cancel()
		}
	}
}
