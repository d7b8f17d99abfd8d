package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waterlife-shop/waterlife-backend/models"
)

type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	List(ctx context.Context, q models.AdminOrderQuery) ([]models.Order, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes *string) (*models.Order, error)
	// Stats summarises all orders; month counts are relative to now.
	Stats(ctx context.Context, now time.Time) (*models.OrderStats, error)
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, o *models.Order) error {
	return translate(r.db.WithContext(ctx).Create(o).Error, "create order")
}

func (r *GormOrderRepository) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get order")
	}
	return &o, nil
}

func (r *GormOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err, "list user orders")
	}
	return orders, nil
}

func (r *GormOrderRepository) List(ctx context.Context, q models.AdminOrderQuery) ([]models.Order, int, error) {
	page, limit := Paging(q.Page, q.Limit, 20)

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Q != "" {
		pattern := likePattern(q.Q)
		query = query.Where(
			"(order_number ILIKE ? OR customer_email ILIKE ? OR customer_last_name ILIKE ? OR customer_company ILIKE ?)",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count orders")
	}

	var orders []models.Order
	err := query.Session(&gorm.Session{}).
		Order("created_at DESC").
		Offset(offset(page, limit)).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, translate(err, "list orders")
	}
	return orders, int(total), nil
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes *string) (*models.Order, error) {
	updates := map[string]any{"status": status}
	if notes != nil {
		updates["admin_notes"] = *notes
	}
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, translate(res.Error, "update order status")
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *GormOrderRepository) Stats(ctx context.Context, now time.Time) (*models.OrderStats, error) {
	var rows []struct {
		Status string
		Count  int
		Value  float64
	}
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total), 0) AS value").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "order stats")
	}

	stats := &models.OrderStats{ByStatus: make(map[string]int, len(models.OrderStatusLabels))}
	for status := range models.OrderStatusLabels {
		stats.ByStatus[status] = 0
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
		stats.Total += row.Count
		if models.OrderStatusOpen(row.Status) {
			stats.OpenValue += row.Value
		}
	}

	thisMonth, lastMonth := models.MonthBounds(now)
	var cur, prev int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ?", thisMonth).
		Count(&cur).Error; err != nil {
		return nil, translate(err, "count orders this month")
	}
	if err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", lastMonth, thisMonth).
		Count(&prev).Error; err != nil {
		return nil, translate(err, "count orders last month")
	}
	stats.ThisMonth, stats.LastMonth = int(cur), int(prev)
	stats.MonthChange = models.MonthChangePct(stats.ThisMonth, stats.LastMonth)
	return stats, nil
}
