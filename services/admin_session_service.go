package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
)

// ErrSessionRevoked means the token verified but its session was logged out
// or has expired.
var ErrSessionRevoked = errors.New("session revoked")

// AdminSessionService handles admin session operations
type AdminSessionService struct {
	repo   repository.AdminRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewAdminSessionService(repo repository.AdminRepository, logger *zap.Logger) *AdminSessionService {
	return &AdminSessionService{repo: repo, logger: logger.Named("session"), now: time.Now}
}

// CreateSession stores the hash of a freshly issued admin token.
func (s *AdminSessionService) CreateSession(
	ctx context.Context,
	adminID uuid.UUID,
	token string,
	ipAddress string,
	userAgent string,
	expiresAt time.Time,
) (*models.AdminSession, error) {
	now := s.now()
	session := &models.AdminSession{
		AdminID:        adminID,
		TokenHash:      HashToken(token),
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      expiresAt,
		IsActive:       true,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		s.logger.Error("failed to create session", zap.Error(err))
		return nil, err
	}
	s.logger.Info("session created", zap.String("admin_id", adminID.String()))
	return session, nil
}

// Validate checks that the token's session is still active and records the
// activity.
func (s *AdminSessionService) Validate(ctx context.Context, token string) (*models.AdminSession, error) {
	hash := HashToken(token)
	now := s.now()
	session, err := s.repo.ActiveSession(ctx, hash, now)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionRevoked
	}
	if err != nil {
		return nil, err
	}
	if err := s.repo.TouchSession(ctx, hash, now); err != nil {
		s.logger.Warn("failed to update session activity", zap.Error(err))
	}
	return session, nil
}

// DeactivateSession marks the token's session inactive (logout).
func (s *AdminSessionService) DeactivateSession(ctx context.Context, token string) error {
	if err := s.repo.DeactivateSession(ctx, HashToken(token)); err != nil {
		s.logger.Error("failed to deactivate session", zap.Error(err))
		return err
	}
	return nil
}

// CleanupExpiredSessions removes stale sessions (run periodically)
func (s *AdminSessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repo.CleanupSessions(ctx, s.now())
	if err != nil {
		s.logger.Error("failed to cleanup expired sessions", zap.Error(err))
		return 0, err
	}
	s.logger.Info("cleaned up expired sessions", zap.Int64("count", n))
	return n, nil
}
