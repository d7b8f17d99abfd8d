package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// ════════════════════════════════════════════════════════════
// Password Management
// ════════════════════════════════════════════════════════════

// MinPasswordLength applies to customer and admin passwords alike.
const MinPasswordLength = 8

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if a password matches its bcrypt hash. An empty hash
// (Google-only account) never matches.
func VerifyPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func ValidatePassword(password string) bool {
	return len(password) >= MinPasswordLength
}

// ════════════════════════════════════════════════════════════
// Opaque tokens (password reset links, OAuth state)
// ════════════════════════════════════════════════════════════

// GenerateToken returns a 64 character hex string (32 random bytes).
func GenerateToken() (string, error) {
	token := make([]byte, 32)
	if _, err := rand.Read(token); err != nil {
		return "", err
	}
	return hex.EncodeToString(token), nil
}

// HashToken hashes a token using SHA256 for storage in database
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
