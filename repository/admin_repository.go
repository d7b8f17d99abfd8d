package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waterlife-shop/waterlife-backend/models"
)

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	Create(ctx context.Context, a *models.Admin) error
	TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	CreateSession(ctx context.Context, s *models.AdminSession) error
	// ActiveSession returns the active, unexpired session with the token hash.
	ActiveSession(ctx context.Context, tokenHash string, now time.Time) (*models.AdminSession, error)
	TouchSession(ctx context.Context, tokenHash string, at time.Time) error
	DeactivateSession(ctx context.Context, tokenHash string) error
	CleanupSessions(ctx context.Context, now time.Time) (int64, error)
}

type GormAdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

func (r *GormAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	if err := r.db.WithContext(ctx).First(&a, "LOWER(email) = LOWER(?)", email).Error; err != nil {
		return nil, translate(err, "get admin by email")
	}
	return &a, nil
}

func (r *GormAdminRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var a models.Admin
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get admin")
	}
	return &a, nil
}

func (r *GormAdminRepository) Create(ctx context.Context, a *models.Admin) error {
	return translate(r.db.WithContext(ctx).Create(a).Error, "create admin")
}

func (r *GormAdminRepository) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return translate(r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error, "touch admin login")
}

func (r *GormAdminRepository) CreateSession(ctx context.Context, s *models.AdminSession) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "create admin session")
}

func (r *GormAdminRepository) ActiveSession(ctx context.Context, tokenHash string, now time.Time) (*models.AdminSession, error) {
	var s models.AdminSession
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND is_active = ? AND expires_at > ?", tokenHash, true, now).
		First(&s).Error
	if err != nil {
		return nil, translate(err, "get admin session")
	}
	return &s, nil
}

func (r *GormAdminRepository) TouchSession(ctx context.Context, tokenHash string, at time.Time) error {
	return translate(r.db.WithContext(ctx).
		Model(&models.AdminSession{}).
		Where("token_hash = ? AND is_active = ?", tokenHash, true).
		Update("last_activity_at", at).Error, "touch admin session")
}

func (r *GormAdminRepository) DeactivateSession(ctx context.Context, tokenHash string) error {
	return translate(r.db.WithContext(ctx).
		Model(&models.AdminSession{}).
		Where("token_hash = ?", tokenHash).
		Update("is_active", false).Error, "deactivate admin session")
}

// CleanupSessions removes expired sessions and inactive ones older than a week.
func (r *GormAdminRepository) CleanupSessions(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR (is_active = ? AND last_activity_at < ?)", now, false, now.Add(-7*24*time.Hour)).
		Delete(&models.AdminSession{})
	if res.Error != nil {
		return 0, translate(res.Error, "cleanup admin sessions")
	}
	return res.RowsAffected, nil
}
