package account_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/middleware"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

// Handler serves the signed-in customer's profile and quote history. Every
// route sits behind middleware.AuthMiddleware.
type Handler struct {
	users  repository.UserRepository
	orders repository.OrderRepository
	logger *zap.Logger
}

func NewHandler(users repository.UserRepository, orders repository.OrderRepository, logger *zap.Logger) *Handler {
	return &Handler{users: users, orders: orders, logger: logger.Named("account")}
}

func (h *Handler) currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Wymagane zalogowanie"))
	}
	return id, ok
}

// GetProfile godoc
// @Summary Current customer profile
// @Tags Storefront - Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.UserResponse}
// @Failure 401 {object} models.ApiResponse
// @Router /konto [get]
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	user, err := h.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Konto nie istnieje"))
		return
	}
	if err != nil {
		h.logger.Error("failed to load profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać profilu"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Profil", user.ToResponse()))
}

// UpdateProfile godoc
// @Summary Update the customer profile
// @Description Only the fields present in the body change. An empty phone, company or NIP clears it.
// @Tags Storefront - Account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.UpdateUserRequest true "Profile fields"
// @Success 200 {object} models.ApiResponse{data=models.UserResponse}
// @Failure 400 {object} models.ApiResponse
// @Router /konto [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req models.UpdateUserRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		h.logger.Error("failed to load profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się zaktualizować profilu"))
		return
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		user.Phone = blankToNil(*req.Phone)
	}
	if req.Company != nil {
		user.Company = blankToNil(*req.Company)
	}
	if req.NIP != nil {
		user.NIP = blankToNil(*req.NIP)
	}
	if user.FirstName == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Pole firstName jest wymagane"))
		return
	}

	if err := h.users.Update(ctx, user); err != nil {
		h.logger.Error("failed to update profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się zaktualizować profilu"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Profil zaktualizowany", user.ToResponse()))
}

// ListOrders godoc
// @Summary Quote request history
// @Description Newest first.
// @Tags Storefront - Account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=[]models.OrderHistoryResponse}
// @Router /konto/zamowienia [get]
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	orders, err := h.orders.ListByUser(ctx, userID)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać zamówień"))
		return
	}

	history := make([]models.OrderHistoryResponse, 0, len(orders))
	for i := range orders {
		history = append(history, orders[i].ToHistory())
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Zamówienia", history))
}

// GetOrder godoc
// @Summary One quote request with its cart snapshot
// @Tags Storefront - Account
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 404 {object} models.ApiResponse
// @Router /konto/zamowienia/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	orderID, ok := utils.ParseIDParam(c, "zamówienia")
	if !ok {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	order, err := h.orders.Get(ctx, orderID)
	// Someone else's order is reported as missing.
	if errors.Is(err, repository.ErrNotFound) || (err == nil && (order.UserID == nil || *order.UserID != userID)) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Nie znaleziono zamówienia"))
		return
	}
	if err != nil {
		h.logger.Error("failed to load order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się pobrać zamówienia"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Zamówienie", order))
}

func blankToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
