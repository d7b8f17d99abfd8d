package order_controller

import (
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/repository"
)

// Handler serves the back office view of quote requests.
type Handler struct {
	orders repository.OrderRepository
	shop   config.ShopConfig
	logger *zap.Logger
}

func NewHandler(orders repository.OrderRepository, shop config.ShopConfig, logger *zap.Logger) *Handler {
	return &Handler{
		orders: orders,
		shop:   shop,
		logger: logger.Named("admin-orders"),
	}
}
