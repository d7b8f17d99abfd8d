package auth_controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/services"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

const resetSentMessage = "Jeśli konto istnieje, wysłaliśmy link do zmiany hasła"

// RequestPasswordReset godoc
// @Summary Send a password reset link
// @Description Always answers 200 so the endpoint cannot be used to probe for accounts.
// @Tags Storefront - Auth
// @Accept json
// @Produce json
// @Param payload body models.PasswordResetRequest true "Account email"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Router /auth/reset-hasla [post]
func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	user, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.logger.Error("user lookup failed", zap.Error(err))
		}
		c.JSON(http.StatusOK, models.SuccessResponse(c, resetSentMessage, nil))
		return
	}

	token, err := services.GenerateToken()
	if err != nil {
		h.logger.Error("reset token generation failed", zap.Error(err))
		c.JSON(http.StatusOK, models.SuccessResponse(c, resetSentMessage, nil))
		return
	}

	reset := &models.PasswordReset{
		UserID:    user.ID,
		TokenHash: services.HashToken(token),
		ExpiresAt: time.Now().Add(ResetTTL),
	}
	if err := h.users.CreatePasswordReset(ctx, reset); err != nil {
		h.logger.Error("failed to store password reset", zap.Error(err))
		c.JSON(http.StatusOK, models.SuccessResponse(c, resetSentMessage, nil))
		return
	}

	if err := h.notifier.PasswordReset(ctx, user, token, ResetTTL); err != nil {
		h.logger.Error("password reset email failed", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, resetSentMessage, nil))
}

// SetNewPassword godoc
// @Summary Set a new password from a reset link
// @Tags Storefront - Auth
// @Accept json
// @Produce json
// @Param payload body models.NewPasswordRequest true "Reset token and new password"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse "Invalid or expired token"
// @Router /auth/nowe-haslo [post]
func (h *Handler) SetNewPassword(c *gin.Context) {
	var req models.NewPasswordRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("password hashing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się zmienić hasła"))
		return
	}

	user, err := h.users.ConsumePasswordReset(ctx, services.HashToken(req.Token), hash, time.Now())
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Link wygasł lub został już użyty"))
		return
	}
	if err != nil {
		h.logger.Error("failed to consume password reset", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się zmienić hasła"))
		return
	}

	h.logger.Info("password changed", zap.String("user_id", user.ID.String()))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Hasło zostało zmienione", nil))
}
