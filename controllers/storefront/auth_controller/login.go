package auth_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/middleware"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/services"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

// Login godoc
// @Summary Sign in with email and password
// @Description Returns the customer token in the body and in the auth_token HttpOnly cookie.
// @Tags Storefront - Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} models.ApiResponse{data=models.AuthResponse}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse "Invalid credentials"
// @Router /auth/logowanie [post]
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	user, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.logger.Error("user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się zalogować"))
		return
	}
	// Same answer for unknown email and wrong password.
	if user == nil || !services.VerifyPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Nieprawidłowy email lub hasło"))
		return
	}

	token, err := h.signIn(c, ctx, user)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się zalogować"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Zalogowano", models.AuthResponse{
		User:  user.ToResponse(),
		Token: token,
	}))
}

// Logout godoc
// @Summary Sign out
// @Tags Storefront - Auth
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /auth/wyloguj [post]
func (h *Handler) Logout(c *gin.Context) {
	utils.ClearCookie(c, middleware.AuthCookie, h.opts.SecureCookies)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Wylogowano", nil))
}
