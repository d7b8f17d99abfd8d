package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/repository"
)

// ActivityLogService records back office writes.
type ActivityLogService struct {
	repo   repository.ActivityRepository
	logger *zap.Logger
}

func NewActivityLogService(repo repository.ActivityRepository, logger *zap.Logger) *ActivityLogService {
	return &ActivityLogService{repo: repo, logger: logger.Named("activity")}
}

// LogActivityRequest contains the parameters for logging an activity
type LogActivityRequest struct {
	AdminID      uuid.UUID
	AdminEmail   string
	Action       string // ActionCreateProduct, ActionUpdateOrder, ...
	ResourceType string
	ResourceID   string
	ResourceName string
	Changes      map[string]any // {before: {...}, after: {...}}
	Status       string
	ErrorMessage string
	IPAddress    string
	UserAgent    string
}

// LogActivity writes one entry. Failures are logged, never returned to the
// request that triggered them.
func (s *ActivityLogService) LogActivity(ctx context.Context, req LogActivityRequest) {
	if req.AdminID == uuid.Nil {
		s.logger.Warn("admin id is nil", zap.String("action", req.Action))
		return
	}

	changesJSON := []byte("{}")
	if req.Changes != nil {
		if data, err := json.Marshal(req.Changes); err != nil {
			s.logger.Warn("failed to marshal changes", zap.Error(err))
		} else {
			changesJSON = data
		}
	}

	if req.Status == "" {
		req.Status = models.StatusSuccess
	}

	entry := &models.ActivityLog{
		AdminID:      req.AdminID,
		AdminEmail:   req.AdminEmail,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		ResourceName: req.ResourceName,
		Changes:      datatypes.JSON(changesJSON),
		Status:       req.Status,
		ErrorMessage: req.ErrorMessage,
		IPAddress:    req.IPAddress,
		UserAgent:    req.UserAgent,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("failed to create activity log", zap.Error(err))
		return
	}

	s.logger.Info(req.Action,
		zap.String("resource_type", req.ResourceType),
		zap.String("resource_id", req.ResourceID),
		zap.String("resource_name", req.ResourceName),
		zap.String("admin", req.AdminEmail),
		zap.String("status", req.Status),
	)
}

func (s *ActivityLogService) List(ctx context.Context, q models.ActivityQuery) ([]models.ActivityLog, int, error) {
	return s.repo.List(ctx, q)
}

// CreateChanges builds the {before, after} map stored with an entry.
func CreateChanges(before, after any) map[string]any {
	return map[string]any{
		"before": before,
		"after":  after,
	}
}
