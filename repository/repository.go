// Package repository is the gorm-backed persistence layer. Controllers depend
// on the interfaces declared here so handlers can be tested against in-memory
// fakes.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/waterlife-shop/waterlife-backend/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrInUse is returned when deleting a row other rows still reference.
	ErrInUse = errors.New("repository: still referenced")
	// ErrDuplicate is returned on unique constraint violations.
	ErrDuplicate = errors.New("repository: duplicate")
)

// translate maps gorm and driver errors onto the package sentinels.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "SQLSTATE 23505"):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Manufacturer{},
		&models.Product{},
		&models.User{},
		&models.PasswordReset{},
		&models.LoginEvent{},
		&models.Order{},
		&models.Admin{},
		&models.AdminSession{},
		&models.ActivityLog{},
		&models.HomepageSection{},
		&models.ContactMessage{},
	)
}

// Paging normalizes page/limit the way every list endpoint does: page starts
// at 1, limit defaults to def and is capped at 100.
func Paging(page, limit, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = def
	}
	return page, limit
}

func offset(page, limit int) int {
	return (page - 1) * limit
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func likePattern(s string) string {
	return "%" + escapeLike(strings.TrimSpace(s)) + "%"
}
