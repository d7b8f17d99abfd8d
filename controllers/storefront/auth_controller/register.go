package auth_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/services"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

// Register godoc
// @Summary Create a customer account
// @Description Creates an email/password account and signs the customer in.
// @Tags Storefront - Auth
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Account details"
// @Success 201 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse "Email already registered"
// @Router /auth/rejestracja [post]
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("password hashing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się utworzyć konta"))
		return
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        req.Phone,
		Provider:     models.ProviderEmail,
	}
	if err := h.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusConflict, models.ErrorResponse(c, "Konto z tym adresem email już istnieje"))
			return
		}
		h.logger.Error("failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się utworzyć konta"))
		return
	}

	token, err := h.signIn(c, ctx, user)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Konto utworzone, zaloguj się ponownie"))
		return
	}

	h.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Konto utworzone", models.AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}))
}
