package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sign-in providers.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// User is a storefront customer account. PasswordHash is empty for accounts
// created through Google sign-in.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName" gorm:"type:varchar(255);not null"`
	LastName     string    `json:"lastName" gorm:"type:varchar(255)"`
	Phone        *string   `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Company      *string   `json:"company,omitempty"`
	NIP          *string   `json:"nip,omitempty" gorm:"column:nip;type:varchar(20)"`
	GoogleID     *string   `json:"-" gorm:"column:google_id;type:varchar(255);uniqueIndex"`
	Provider     string    `json:"provider" gorm:"type:varchar(50);default:'email'"`
	Avatar       *string   `json:"avatar,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV7())
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Provider == "" {
		u.Provider = ProviderEmail
	}
	return nil
}

// UserResponse is the public-facing user data
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     *string   `json:"phone"`
	Company   *string   `json:"company,omitempty"`
	NIP       *string   `json:"nip,omitempty"`
	Provider  string    `json:"provider"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Company:   u.Company,
		NIP:       u.NIP,
		Provider:  u.Provider,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// GoogleUserInfo holds the ID token claims we read after Google sign-in.
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// AuthResponse is returned after successful authentication
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// RegisterRequest is the POST /api/auth/rejestracja body.
type RegisterRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=8"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     *string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type NewPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest for profile updates
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1"`
	Phone     *string `json:"phone"`
	Company   *string `json:"company"`
	NIP       *string `json:"nip" binding:"omitempty,len=10,numeric"`
}

// PasswordReset is a one-time reset link. Only the SHA-256 of the token is
// stored.
type PasswordReset struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	TokenHash string     `json:"-" gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"not null"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (pr *PasswordReset) BeforeCreate(tx *gorm.DB) error {
	if pr.ID == uuid.Nil {
		pr.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

// LoginEvent is written through pgx by the login tracker; the model exists so
// the table is migrated with the rest.
type LoginEvent struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	LoggedInAt time.Time `gorm:"not null;index"`
	IPAddress  string
	UserAgent  string `gorm:"type:text"`
	DeviceType string
	Browser    string
	OS         string `gorm:"column:os"`
}

func (LoginEvent) TableName() string {
	return "login_events"
}
