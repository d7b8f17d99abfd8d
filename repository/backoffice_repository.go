package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/waterlife-shop/waterlife-backend/models"
)

type ActivityRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, q models.ActivityQuery) ([]models.ActivityLog, int, error)
}

type ContentRepository interface {
	// Sections returns homepage sections by sort order.
	Sections(ctx context.Context, activeOnly bool) ([]models.HomepageSection, error)
	Upsert(ctx context.Context, s *models.HomepageSection) error
	Delete(ctx context.Context, key string) error
}

type ContactRepository interface {
	Create(ctx context.Context, m *models.ContactMessage) error
	List(ctx context.Context, q models.ContactQuery) ([]models.ContactMessage, int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ─────────────────────────────────────────────────────────────
// Activity log
// ─────────────────────────────────────────────────────────────

type GormActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

func (r *GormActivityRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return translate(r.db.WithContext(ctx).Create(entry).Error, "create activity log")
}

func (r *GormActivityRepository) List(ctx context.Context, q models.ActivityQuery) ([]models.ActivityLog, int, error) {
	page, limit := Paging(q.Page, q.Limit, 50)

	query := r.db.WithContext(ctx).Model(&models.ActivityLog{})
	if q.AdminID != "" {
		query = query.Where("admin_id = ?", q.AdminID)
	}
	if q.ResourceType != "" {
		query = query.Where("resource_type = ?", q.ResourceType)
	}
	if q.Action != "" {
		query = query.Where("action = ?", q.Action)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count activity")
	}
	var logs []models.ActivityLog
	err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(offset(page, limit)).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, translate(err, "list activity")
	}
	return logs, int(total), nil
}

// ─────────────────────────────────────────────────────────────
// Homepage content
// ─────────────────────────────────────────────────────────────

type GormContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *GormContentRepository {
	return &GormContentRepository{db: db}
}

func (r *GormContentRepository) Sections(ctx context.Context, activeOnly bool) ([]models.HomepageSection, error) {
	query := r.db.WithContext(ctx).Order("sort_order ASC, key ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var sections []models.HomepageSection
	if err := query.Find(&sections).Error; err != nil {
		return nil, translate(err, "list sections")
	}
	return sections, nil
}

func (r *GormContentRepository) Upsert(ctx context.Context, s *models.HomepageSection) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "subtitle", "content", "image_url", "link_url", "sort_order", "active", "updated_at",
		}),
	}).Create(s).Error
	if err != nil {
		return translate(err, "upsert section")
	}
	// On conflict s still carries the freshly generated id.
	return translate(r.db.WithContext(ctx).Where("key = ?", s.Key).First(s).Error, "reload section")
}

func (r *GormContentRepository) Delete(ctx context.Context, key string) error {
	res := r.db.WithContext(ctx).Delete(&models.HomepageSection{}, "key = ?", key)
	if res.Error != nil {
		return translate(res.Error, "delete section")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ─────────────────────────────────────────────────────────────
// Contact messages
// ─────────────────────────────────────────────────────────────

type GormContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

func (r *GormContactRepository) Create(ctx context.Context, m *models.ContactMessage) error {
	return translate(r.db.WithContext(ctx).Create(m).Error, "create contact message")
}

func (r *GormContactRepository) List(ctx context.Context, q models.ContactQuery) ([]models.ContactMessage, int, error) {
	page, limit := Paging(q.Page, q.Limit, 20)

	query := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if q.Unread {
		query = query.Where("read = ?", false)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count contact messages")
	}
	var msgs []models.ContactMessage
	err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(offset(page, limit)).
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, 0, translate(err, "list contact messages")
	}
	return msgs, int(total), nil
}

func (r *GormContactRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return translate(res.Error, "mark contact message read")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.ContactMessage{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete contact message")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
