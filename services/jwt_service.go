package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/waterlife-shop/waterlife-backend/config"
)

// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

const (
	userIssuer  = "waterlife-api"
	adminIssuer = "waterlife-admin"
)

// UserClaims represents the customer JWT payload
type UserClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// AdminJWTClaims represents the JWT claims for admin tokens
type AdminJWTClaims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies customer and admin tokens. The two kinds use
// separate secrets and issuers, so neither verifies as the other.
type JWTService struct {
	secret      []byte
	adminSecret []byte
	expiry      time.Duration
	adminExpiry time.Duration
	now         func() time.Time
}

func NewJWTService(cfg config.JWTConfig) (*JWTService, error) {
	if cfg.Secret == "" || cfg.AdminSecret == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}
	return &JWTService{
		secret:      []byte(cfg.Secret),
		adminSecret: []byte(cfg.AdminSecret),
		expiry:      cfg.Expiry,
		adminExpiry: cfg.AdminExpiry,
		now:         time.Now,
	}, nil
}

// UserTokenTTL is how long a customer token (and its cookie) lives.
func (j *JWTService) UserTokenTTL() time.Duration {
	return j.expiry
}

func (j *JWTService) GenerateUserToken(userID uuid.UUID, email, name string) (string, error) {
	now := j.now()
	claims := UserClaims{
		UserID: userID.String(),
		Email:  email,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    userIssuer,
		},
	}
	return sign(claims, j.secret)
}

func (j *JWTService) VerifyUserToken(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}
	if err := j.parse(tokenString, claims, j.secret, userIssuer); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}
	return claims, nil
}

// GenerateAdminToken returns the token and its expiry, which the caller
// stores on the admin session.
func (j *JWTService) GenerateAdminToken(adminID uuid.UUID, email, role string) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.adminExpiry)
	claims := AdminJWTClaims{
		AdminID: adminID.String(),
		Email:   email,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    adminIssuer,
		},
	}
	token, err := sign(claims, j.adminSecret)
	return token, expiresAt, err
}

func (j *JWTService) VerifyAdminToken(tokenString string) (*AdminJWTClaims, error) {
	claims := &AdminJWTClaims{}
	if err := j.parse(tokenString, claims, j.adminSecret, adminIssuer); err != nil {
		return nil, err
	}
	if claims.AdminID == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: missing required claims", ErrInvalidToken)
	}
	return claims, nil
}

func sign(claims jwt.Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return s, nil
}

func (j *JWTService) parse(tokenString string, claims jwt.Claims, secret []byte, issuer string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
