package admin_controller

import (
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/repository"
	"github.com/waterlife-shop/waterlife-backend/services"
)

// Handler serves back office sign-in and the activity log.
type Handler struct {
	admins   repository.AdminRepository
	sessions *services.AdminSessionService
	activity *services.ActivityLogService
	jwt      *services.JWTService
	secure   bool
	logger   *zap.Logger
}

func NewHandler(
	admins repository.AdminRepository,
	sessions *services.AdminSessionService,
	activity *services.ActivityLogService,
	jwt *services.JWTService,
	secureCookies bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		admins:   admins,
		sessions: sessions,
		activity: activity,
		jwt:      jwt,
		secure:   secureCookies,
		logger:   logger.Named("admin"),
	}
}
