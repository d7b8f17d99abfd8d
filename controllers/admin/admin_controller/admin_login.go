package admin_controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/middleware"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/services"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

// AdminLogin godoc
// @Summary Login as admin
// @Description Authenticate admin with email and password. Returns JWT token and creates session
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param loginRequest body models.AdminLoginRequest true "Email and password"
// @Success 200 {object} models.ApiResponse{data=models.AdminLoginResponse}
// @Failure 400 {object} models.ApiResponse "Invalid credentials"
// @Failure 403 {object} models.ApiResponse "Account suspended"
// @Failure 500 {object} models.ApiResponse "Server error"
// @Router /admin/login [post]
func (h *Handler) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if !utils.BindJSON(c, &req) {
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	admin, err := h.admins.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.logger.Error("admin lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Błąd serwera"))
		return
	}
	if admin == nil || !services.VerifyPassword(admin.PasswordHash, req.Password) {
		h.logger.Info("admin login rejected", zap.String("email", req.Email))
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Nieprawidłowy email lub hasło"))
		return
	}
	if admin.Status != "active" {
		c.JSON(http.StatusForbidden, models.ErrorResponse(c, "Konto administratora jest zawieszone"))
		return
	}

	token, expiresAt, err := h.jwt.GenerateAdminToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		h.logger.Error("failed to generate admin token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Błąd serwera"))
		return
	}
	if _, err := h.sessions.CreateSession(ctx, admin.ID, token, c.ClientIP(), c.Request.UserAgent(), expiresAt); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Błąd serwera"))
		return
	}

	now := time.Now()
	if err := h.admins.TouchLogin(ctx, admin.ID, now); err != nil {
		h.logger.Warn("failed to update last login", zap.Error(err))
	}
	admin.LastLoginAt = &now

	utils.SetCookie(c, middleware.AdminCookie, token, int(time.Until(expiresAt)/time.Second), h.secure)
	h.logger.Info("admin signed in", zap.String("admin_id", admin.ID.String()))

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Zalogowano", models.AdminLoginResponse{
		Admin: admin.ToResponse(),
		Token: token,
	}))
}

// AdminLogout godoc
// @Summary Logout admin
// @Description Deactivates the session, so the token stops working before it expires
// @Tags Admin - Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse
// @Router /admin/logout [post]
func (h *Handler) AdminLogout(c *gin.Context) {
	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	if token := middleware.GetAdminToken(c); token != "" {
		if err := h.sessions.DeactivateSession(ctx, token); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Nie udało się wylogować"))
			return
		}
	}
	utils.ClearCookie(c, middleware.AdminCookie, h.secure)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Wylogowano", nil))
}

// GetAdminMe godoc
// @Summary Current admin
// @Tags Admin - Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.AdminResponse}
// @Failure 401 {object} models.ApiResponse
// @Router /admin/me [get]
func (h *Handler) GetAdminMe(c *gin.Context) {
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Wymagane zalogowanie"))
		return
	}

	ctx, cancel := config.RequestTimeout(c.Request.Context())
	defer cancel()

	admin, err := h.admins.GetByID(ctx, adminID)
	if err != nil {
		h.logger.Error("failed to load admin", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Błąd serwera"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Administrator", admin.ToResponse()))
}
