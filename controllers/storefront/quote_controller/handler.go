package quote_controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/cart"
	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
)

// QuoteNotifier is satisfied by *services.Notifier.
type QuoteNotifier interface {
	QuoteStaffNotification(ctx context.Context, order *models.Order, pdf []byte) error
	QuoteConfirmation(ctx context.Context, order *models.Order) error
}

// Handler accepts "request a quote" submissions.
type Handler struct {
	orders   repository.OrderRepository
	carts    cart.Persister
	notifier QuoteNotifier
	shop     config.ShopConfig
	logger   *zap.Logger

	// async runs the email work after the response. Tests swap it for a
	// synchronous call.
	async func(func())
}

func NewHandler(
	orders repository.OrderRepository,
	carts cart.Persister,
	notifier QuoteNotifier,
	shop config.ShopConfig,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		orders:   orders,
		carts:    carts,
		notifier: notifier,
		shop:     shop,
		logger:   logger.Named("quote"),
		async:    func(fn func()) { go fn() },
	}
}
