package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog represents an admin action log entry
type ActivityLog struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	AdminID      uuid.UUID      `json:"admin_id" gorm:"type:uuid;not null;index:idx_activity_admin_date,sort:desc"`
	AdminEmail   string         `json:"admin_email" gorm:"not null"`
	Action       string         `json:"action" gorm:"not null;index"`                                             // created_product, updated_order, ...
	ResourceType string         `json:"resource_type" gorm:"not null;index:idx_activity_resource_date,sort:desc"` // product, category, order
	ResourceID   string         `json:"resource_id" gorm:"not null;index"`
	ResourceName string         `json:"resource_name"` // product name, order number
	Changes      datatypes.JSON `json:"changes" gorm:"type:jsonb"` // {before: {...}, after: {...}}
	Status       string         `json:"status" gorm:"not null"`
	ErrorMessage string         `json:"error_message"`
	IPAddress    string         `json:"ip_address"`
	UserAgent    string         `json:"user_agent"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime;index:idx_activity_admin_date,sort:desc;index:idx_activity_resource_date,sort:desc"`
}

func (al *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.Must(uuid.NewV7())
	}
	if al.Status == "" {
		al.Status = StatusSuccess
	}
	return nil
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// ActivityChanges represents the before/after changes
type ActivityChanges struct {
	Before map[string]any `json:"before"`
	After  map[string]any `json:"after"`
}

// ActivityLogResponse is the response for activity log data
type ActivityLogResponse struct {
	ID           uuid.UUID      `json:"id"`
	AdminID      uuid.UUID      `json:"admin_id"`
	AdminEmail   string         `json:"admin_email"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	ResourceName string         `json:"resource_name"`
	Changes      map[string]any `json:"changes"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	IPAddress    string         `json:"ip_address"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (al *ActivityLog) ToResponse() ActivityLogResponse {
	changes := make(map[string]any)
	if al.Changes != nil {
		_ = json.Unmarshal(al.Changes, &changes)
	}

	return ActivityLogResponse{
		ID:           al.ID,
		AdminID:      al.AdminID,
		AdminEmail:   al.AdminEmail,
		Action:       al.Action,
		ResourceType: al.ResourceType,
		ResourceID:   al.ResourceID,
		ResourceName: al.ResourceName,
		Changes:      changes,
		Status:       al.Status,
		ErrorMessage: al.ErrorMessage,
		IPAddress:    al.IPAddress,
		CreatedAt:    al.CreatedAt,
	}
}

// ActivityQuery filters GET /api/admin/aktywnosc.
type ActivityQuery struct {
	AdminID      string `form:"admin_id" binding:"omitempty,uuid"`
	ResourceType string `form:"resource_type"`
	Action       string `form:"action"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
}

const (
	ActionCreateProduct = "created_product"
	ActionUpdateProduct = "updated_product"
	ActionDeleteProduct = "deleted_product"

	ActionCreateCategory = "created_category"
	ActionUpdateCategory = "updated_category"
	ActionDeleteCategory = "deleted_category"

	ActionCreateManufacturer = "created_manufacturer"
	ActionUpdateManufacturer = "updated_manufacturer"
	ActionDeleteManufacturer = "deleted_manufacturer"

	ActionUpdateOrder = "updated_order"

	ActionUpdateContent = "updated_content"

	ActionUpdateContactMessage = "updated_contact_message"

	ResourceTypeProduct        = "product"
	ResourceTypeCategory       = "category"
	ResourceTypeManufacturer   = "manufacturer"
	ResourceTypeOrder          = "order"
	ResourceTypeContent        = "content"
	ResourceTypeContactMessage = "contact_message"

	StatusSuccess = "success"
	StatusFailed  = "failed"
)
