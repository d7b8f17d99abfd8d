package quote_controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/waterlife-shop/waterlife-backend/cart"
	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/middleware"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/services"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

// totalTolerance is how far the client's total may drift from ours before it
// is worth a log line.
var totalTolerance = decimal.NewFromFloat(0.01)

// SubmitQuote godoc
// @Summary Request a quote
// @Description Stores the cart as a quote request, clears the server cart session and emails the staff (with PDF) and the customer. Email failures never fail the request. The total is recomputed on the server.
// @Tags Storefront - Quote
// @Accept json
// @Produce json
// @Param payload body models.QuoteRequest true "Customer details and cart"
// @Success 201 {object} models.QuoteResponse
// @Failure 400 {object} models.ApiResponse "Validation error"
// @Failure 500 {object} models.QuoteResponse
// @Router /zapytanie [post]
func (h *Handler) SubmitQuote(c *gin.Context) {
	var req models.QuoteRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	customer := normalizeCustomer(req.Customer)
	if customer.FirstName == "" || customer.LastName == "" || customer.Phone == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Uzupełnij imię, nazwisko i telefon"))
		return
	}

	total, itemCount := cart.Totals(req.Items)
	if decimal.NewFromFloat(req.Total).Sub(decimal.NewFromFloat(total)).Abs().GreaterThan(totalTolerance) {
		h.logger.Warn("client total mismatch",
			zap.Float64("client_total", req.Total),
			zap.Float64("server_total", total),
		)
	}

	order := &models.Order{
		Customer: customer,
		Cart: datatypes.NewJSONType(cart.Snapshot{
			Items:     req.Items,
			Total:     total,
			ItemCount: itemCount,
			Timestamp: time.Now().UTC(),
		}),
		Total:   total,
		IsGuest: true,
	}
	if userID, ok := h.resolveUser(c, req.UserID); ok {
		order.UserID = &userID
		order.IsGuest = false
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	if err := h.orders.Create(ctx, order); err != nil {
		h.logger.Error("failed to save quote", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.QuoteResponse{
			Success: false,
			Error:   "Nie udało się zapisać zapytania. Spróbuj ponownie.",
		})
		return
	}

	h.logger.Info("quote received",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", itemCount),
		zap.Float64("total", total),
	)

	if cartID, err := c.Cookie(cart.SessionCookie); err == nil && cartID != "" {
		cart.Open(ctx, h.carts, cart.SessionKey(cartID), h.logger).Clear(ctx)
	}

	sent := *order
	h.async(func() { h.notify(&sent) })

	c.JSON(http.StatusCreated, models.QuoteResponse{
		Success:     true,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
	})
}

// resolveUser attaches the order to the signed-in customer. A userId in the
// body is only honoured when it matches the token.
func (h *Handler) resolveUser(c *gin.Context, bodyID *string) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, false
	}
	if bodyID != nil && *bodyID != "" && *bodyID != userID.String() {
		h.logger.Warn("quote userId does not match token", zap.String("user_id", userID.String()))
	}
	return userID, true
}

// notify sends both emails. It runs detached from the request.
func (h *Handler) notify(order *models.Order) {
	ctx, cancel := config.WithTimeout()
	defer cancel()

	log := h.logger.With(zap.String("order_number", order.OrderNumber))

	pdf, err := services.GenerateQuotePDF(order, h.shop)
	if err != nil {
		log.Error("quote pdf failed", zap.Error(err))
	}
	if err := h.notifier.QuoteStaffNotification(ctx, order, pdf); err != nil {
		log.Error("staff notification failed", zap.Error(err))
	}
	if err := h.notifier.QuoteConfirmation(ctx, order); err != nil {
		log.Error("customer confirmation failed", zap.Error(err))
	}
}

func normalizeCustomer(in models.QuoteCustomer) models.QuoteCustomer {
	out := in
	out.FirstName = strings.TrimSpace(in.FirstName)
	out.LastName = strings.TrimSpace(in.LastName)
	out.Email = strings.ToLower(strings.TrimSpace(in.Email))
	out.Phone = strings.TrimSpace(in.Phone)
	out.Company = trimmedOrNil(in.Company)
	out.NIP = trimmedOrNil(in.NIP)
	out.Message = trimmedOrNil(in.Message)
	return out
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
