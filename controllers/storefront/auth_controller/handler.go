package auth_controller

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/middleware"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/services"
	"github.com/waterlife-shop/waterlife-backend/utils"
)

// ResetTTL is how long a password reset link stays valid.
const ResetTTL = time.Hour

// ResetNotifier is satisfied by *services.Notifier.
type ResetNotifier interface {
	PasswordReset(ctx context.Context, user *models.User, token string, ttl time.Duration) error
}

// LoginRecorder is satisfied by *utils.LoginTracker.
type LoginRecorder interface {
	Record(ctx context.Context, userID uuid.UUID, ip, userAgent string) error
}

// GoogleIdentity runs the Google authorization code flow.
type GoogleIdentity interface {
	AuthCodeURL(state string) string
	// Identify exchanges the code and returns the verified ID token claims.
	Identify(ctx context.Context, code string) (*models.GoogleUserInfo, error)
}

type Options struct {
	FrontendURL   string
	SecureCookies bool
}

// Handler serves customer registration, sign-in and password recovery.
type Handler struct {
	users    repository.UserRepository
	jwt      *services.JWTService
	notifier ResetNotifier
	tracker  LoginRecorder
	google   GoogleIdentity
	opts     Options
	logger   *zap.Logger
}

// NewHandler wires the auth handlers. google may be nil when Google sign-in
// is not configured.
func NewHandler(
	users repository.UserRepository,
	jwt *services.JWTService,
	notifier ResetNotifier,
	tracker LoginRecorder,
	google GoogleIdentity,
	opts Options,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		users:    users,
		jwt:      jwt,
		notifier: notifier,
		tracker:  tracker,
		google:   google,
		opts:     opts,
		logger:   logger.Named("auth"),
	}
}

// signIn issues the customer token, sets the auth cookie and records the
// login event.
func (h *Handler) signIn(c *gin.Context, ctx context.Context, user *models.User) (string, error) {
	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}
	token, err := h.jwt.GenerateUserToken(user.ID, user.Email, name)
	if err != nil {
		return "", err
	}
	utils.SetCookie(c, middleware.AuthCookie, token, int(h.jwt.UserTokenTTL()/time.Second), h.opts.SecureCookies)

	if h.tracker != nil {
		if err := h.tracker.Record(ctx, user.ID, c.ClientIP(), c.Request.UserAgent()); err != nil {
			h.logger.Warn("login event not recorded", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}
	return token, nil
}
