package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waterlife-shop/waterlife-backend/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error

	CreatePasswordReset(ctx context.Context, pr *models.PasswordReset) error
	// ConsumePasswordReset marks an unused, unexpired reset as used and sets
	// the new password hash in one transaction.
	ConsumePasswordReset(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*models.User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error, "create user")
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get user")
	}
	return &u, nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, translate(err, "get user by email")
	}
	return &u, nil
}

func (r *GormUserRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "google_id = ?", googleID).Error; err != nil {
		return nil, translate(err, "get user by google id")
	}
	return &u, nil
}

func (r *GormUserRepository) Update(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Omit("CreatedAt").Save(u).Error, "update user")
}

func (r *GormUserRepository) CreatePasswordReset(ctx context.Context, pr *models.PasswordReset) error {
	return translate(r.db.WithContext(ctx).Create(pr).Error, "create password reset")
}

func (r *GormUserRepository) ConsumePasswordReset(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pr models.PasswordReset
		err := tx.Where("token_hash = ? AND used_at IS NULL AND expires_at > ?", tokenHash, now).
			First(&pr).Error
		if err != nil {
			return translate(err, "find password reset")
		}
		if err := tx.Model(&pr).Update("used_at", now).Error; err != nil {
			return translate(err, "use password reset")
		}
		if err := tx.First(&user, "id = ?", pr.UserID).Error; err != nil {
			return translate(err, "get user")
		}
		return translate(tx.Model(&user).Update("password_hash", passwordHash).Error, "set password")
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
