package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/services"
)

const (
	AuthCookie  = "auth_token"
	AdminCookie = "admin_token"

	userIDKey    = "userID"
	userEmailKey = "userEmail"
	userNameKey  = "userName"
)

// UserTokenVerifier is satisfied by *services.JWTService.
type UserTokenVerifier interface {
	VerifyUserToken(token string) (*services.UserClaims, error)
}

// ExtractToken reads the token from the named cookie, falling back to an
// "Authorization: Bearer" header.
func ExtractToken(c *gin.Context, cookie string) (string, bool) {
	if token, err := c.Cookie(cookie); err == nil && token != "" {
		return token, true
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
		return parts[1], true
	}
	return "", false
}

// AuthMiddleware requires a valid customer token.
func AuthMiddleware(jwt UserTokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractToken(c, AuthCookie)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Wymagane zalogowanie"))
			return
		}
		claims, err := jwt.VerifyUserToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Sesja wygasła, zaloguj się ponownie"))
			return
		}
		setUser(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the customer when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(jwt UserTokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := ExtractToken(c, AuthCookie); ok {
			if claims, err := jwt.VerifyUserToken(token); err == nil {
				setUser(c, claims)
			}
		}
		c.Next()
	}
}

func setUser(c *gin.Context, claims *services.UserClaims) {
	c.Set(userIDKey, claims.UserID)
	c.Set(userEmailKey, claims.Email)
	c.Set(userNameKey, claims.Name)
}

// GetUserID returns the authenticated customer's id.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString(userIDKey)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
