package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waterlife-shop/waterlife-backend/models"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]models.CategoryWithProducts, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	// Delete refuses with ErrInUse while products reference the category.
	Delete(ctx context.Context, id uuid.UUID) error
}

type ManufacturerRepository interface {
	List(ctx context.Context) ([]models.Manufacturer, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Manufacturer, error)
	Create(ctx context.Context, m *models.Manufacturer) error
	Update(ctx context.Context, m *models.Manufacturer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) List(ctx context.Context) ([]models.CategoryWithProducts, error) {
	var rows []models.CategoryWithProducts
	err := r.db.WithContext(ctx).
		Table("categories c").
		Select("c.*, COUNT(p.id)::int AS products").
		Joins("LEFT JOIN products p ON p.category_id = c.id").
		Group("c.id").
		Order("c.sort_order ASC, c.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "list categories")
	}
	return rows, nil
}

func (r *GormCategoryRepository) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get category")
	}
	return &c, nil
}

func (r *GormCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "create category")
}

func (r *GormCategoryRepository) Update(ctx context.Context, c *models.Category) error {
	return translate(r.db.WithContext(ctx).Omit("CreatedAt").Save(c).Error, "update category")
}

func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteUnreferenced(ctx, r.db, &models.Category{}, "category_id", id, "delete category")
}

type GormManufacturerRepository struct {
	db *gorm.DB
}

func NewManufacturerRepository(db *gorm.DB) *GormManufacturerRepository {
	return &GormManufacturerRepository{db: db}
}

func (r *GormManufacturerRepository) List(ctx context.Context) ([]models.Manufacturer, error) {
	var rows []models.Manufacturer
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, translate(err, "list manufacturers")
	}
	return rows, nil
}

func (r *GormManufacturerRepository) Get(ctx context.Context, id uuid.UUID) (*models.Manufacturer, error) {
	var m models.Manufacturer
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get manufacturer")
	}
	return &m, nil
}

func (r *GormManufacturerRepository) Create(ctx context.Context, m *models.Manufacturer) error {
	return translate(r.db.WithContext(ctx).Create(m).Error, "create manufacturer")
}

func (r *GormManufacturerRepository) Update(ctx context.Context, m *models.Manufacturer) error {
	return translate(r.db.WithContext(ctx).Omit("CreatedAt").Save(m).Error, "update manufacturer")
}

func (r *GormManufacturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteUnreferenced(ctx, r.db, &models.Manufacturer{}, "manufacturer_id", id, "delete manufacturer")
}

// deleteUnreferenced deletes the row only when no product points at it. The
// check and the delete share a transaction.
func deleteUnreferenced(ctx context.Context, db *gorm.DB, model any, column string, id uuid.UUID, op string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.Product{}).Where(column+" = ?", id).Count(&refs).Error; err != nil {
			return translate(err, op)
		}
		if refs > 0 {
			return ErrInUse
		}
		res := tx.Delete(model, "id = ?", id)
		if res.Error != nil {
			return translate(res.Error, op)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
