package content_controller

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/repository"
)

// sectionKey restricts homepage section keys to URL-safe identifiers.
var sectionKey = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// Handler edits homepage sections and works the contact message inbox.
type Handler struct {
	content repository.ContentRepository
	contact repository.ContactRepository
	logger  *zap.Logger
}

func NewHandler(content repository.ContentRepository, contact repository.ContactRepository, logger *zap.Logger) *Handler {
	return &Handler{
		content: content,
		contact: contact,
		logger:  logger.Named("admin-content"),
	}
}
