package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/services"
)

const (
	adminIDKey    = "adminID"
	adminEmailKey = "adminEmail"
	adminRoleKey  = "adminRole"
	adminTokenKey = "adminToken"
)

type AdminTokenVerifier interface {
	VerifyAdminToken(token string) (*services.AdminJWTClaims, error)
}

// SessionValidator is satisfied by *services.AdminSessionService.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*models.AdminSession, error)
}

type AdminLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
}

// AdminAuthMiddleware validates the admin token, its session and the admin's
// status. Logged out sessions are rejected even while the JWT is unexpired.
func AdminAuthMiddleware(jwt AdminTokenVerifier, sessions SessionValidator, admins AdminLookup, logger *zap.Logger) gin.HandlerFunc {
	logger = logger.Named("admin-auth")
	return func(c *gin.Context) {
		token, ok := ExtractToken(c, AdminCookie)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Brak tokenu"))
			return
		}

		claims, err := jwt.VerifyAdminToken(token)
		if err != nil {
			logger.Debug("invalid token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Nieprawidłowy token"))
			return
		}
		adminID, err := uuid.Parse(claims.AdminID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Nieprawidłowy token"))
			return
		}

		ctx, cancel := config.RequestTimeout(c.Request.Context())
		defer cancel()

		if _, err := sessions.Validate(ctx, token); err != nil {
			if !errors.Is(err, services.ErrSessionRevoked) {
				logger.Error("session lookup failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Sesja wygasła, zaloguj się ponownie"))
			return
		}

		admin, err := admins.GetByID(ctx, adminID)
		if err != nil {
			logger.Warn("admin not found", zap.String("admin_id", claims.AdminID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Konto administratora nie istnieje"))
			return
		}
		if admin.Status != "active" {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(c, "Konto administratora jest zawieszone"))
			return
		}

		c.Set(adminIDKey, admin.ID)
		c.Set(adminEmailKey, admin.Email)
		c.Set(adminRoleKey, admin.Role)
		c.Set(adminTokenKey, token)
		c.Next()
	}
}

// RequireSuperAdminMiddleware checks if the admin is a super admin
func RequireSuperAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(adminRoleKey) != models.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(c, "Wymagane uprawnienia superadministratora"))
			return
		}
		c.Next()
	}
}

func GetAdminID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(adminIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetAdminEmail(c *gin.Context) string {
	return c.GetString(adminEmailKey)
}

// GetAdminToken returns the raw token the request authenticated with.
func GetAdminToken(c *gin.Context) string {
	return c.GetString(adminTokenKey)
}
