package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/models"
)

// ProductQuery selects products. A zero Limit returns every match.
type ProductQuery struct {
	Filter   catalog.FilterState
	Featured *bool
	// Status restricts to one status; empty means any (back office).
	Status string
	Page   int
	Limit  int
}

type ProductRepository interface {
	List(ctx context.Context, q ProductQuery) ([]models.Product, int, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	Suggest(ctx context.Context, query string, limit int) ([]models.Product, error)
	Facets(ctx context.Context) (*models.FilterMetadata, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

const productJoins = `LEFT JOIN categories c ON c.id = products.category_id
	LEFT JOIN manufacturers m ON m.id = products.manufacturer_id`

// productOrder is the catalog's natural ordering, shared by listings and
// suggestions.
const productOrder = "products.created_at DESC, products.id"

// BuildProductWhere turns a query into a WHERE clause and its arguments.
// Dimensions combine with AND, values within a dimension with OR.
func BuildProductWhere(q ProductQuery) (string, []any) {
	conditions := []string{"1 = 1"}
	args := []any{}
	f := q.Filter

	if q.Status != "" {
		conditions = append(conditions, "products.status = ?")
		args = append(args, q.Status)
	}
	if search := strings.TrimSpace(f.SearchQuery); search != "" {
		conditions = append(conditions, "(products.name ILIKE ? OR products.description ILIKE ?)")
		args = append(args, likePattern(search), likePattern(search))
	}
	if len(f.Categories) > 0 {
		conditions = append(conditions, "c.slug IN ?")
		args = append(args, f.Categories)
	}
	if len(f.Manufacturers) > 0 {
		conditions = append(conditions, "m.slug IN ?")
		args = append(args, f.Manufacturers)
	}
	if f.MinPrice != nil {
		conditions = append(conditions, "products.price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "products.price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.InStock != nil && *f.InStock {
		conditions = append(conditions, "products.stock > 0")
	}
	if q.Featured != nil {
		conditions = append(conditions, "products.featured = ?")
		args = append(args, *q.Featured)
	}

	return strings.Join(conditions, " AND "), args
}

func (r *GormProductRepository) List(ctx context.Context, q ProductQuery) ([]models.Product, int, error) {
	where, args := BuildProductWhere(q)

	base := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins(productJoins).
		Where(where, args...)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count products")
	}

	find := base.Session(&gorm.Session{}).
		Preload("Category").
		Preload("Manufacturer").
		Order(productOrder)
	if q.Limit > 0 {
		page, limit := Paging(q.Page, q.Limit, catalog.ItemsPerPage)
		find = find.Offset(offset(page, limit)).Limit(limit)
	}

	var products []models.Product
	if err := find.Find(&products).Error; err != nil {
		return nil, 0, translate(err, "list products")
	}
	return products, int(total), nil
}

func (r *GormProductRepository) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Manufacturer").
		First(&p, "products.id = ?", id).Error
	if err != nil {
		return nil, translate(err, "get product")
	}
	return &p, nil
}

func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, translate(err, "find products")
	}
	return products, nil
}

// Suggest matches active products by name, description or category name, in
// catalog order.
func (r *GormProductRepository) Suggest(ctx context.Context, query string, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Scopes(suggestScope(query, limit)).
		Preload("Category").
		Preload("Manufacturer").
		Find(&products).Error
	if err != nil {
		return nil, translate(err, "suggest products")
	}
	return products, nil
}

func suggestScope(query string, limit int) func(*gorm.DB) *gorm.DB {
	pattern := likePattern(query)
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Joins(productJoins).
			Where("products.status = ?", catalog.StatusActive).
			Where("(products.name ILIKE ? OR products.description ILIKE ? OR c.name ILIKE ?)", pattern, pattern, pattern).
			Order(productOrder).
			Limit(limit)
	}
}

func (r *GormProductRepository) Create(ctx context.Context, p *models.Product) error {
	return translate(r.db.WithContext(ctx).Omit("Category", "Manufacturer").Create(p).Error, "create product")
}

func (r *GormProductRepository) Update(ctx context.Context, p *models.Product) error {
	res := r.db.WithContext(ctx).Omit("Category", "Manufacturer", "CreatedAt").Save(p)
	if res.Error != nil {
		return translate(res.Error, "update product")
	}
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Facets computes the filter sidebar data. The four aggregates run
// concurrently.
func (r *GormProductRepository) Facets(ctx context.Context) (*models.FilterMetadata, error) {
	db := r.db.WithContext(ctx)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	meta := &models.FilterMetadata{
		Categories:    []models.FacetOption{},
		Manufacturers: []models.FacetOption{},
	}
	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
			}
		}()
	}

	run("categories", func() error {
		var rows []models.FacetOption
		err := db.Raw(`
			SELECT c.slug AS value, c.name AS label, COUNT(p.id)::int AS count
			FROM categories c
			LEFT JOIN products p ON p.category_id = c.id AND p.status = ?
			GROUP BY c.id, c.slug, c.name, c.sort_order
			ORDER BY c.sort_order ASC, c.name ASC
		`, catalog.StatusActive).Scan(&rows).Error
		if err == nil && rows != nil {
			mu.Lock()
			meta.Categories = rows
			mu.Unlock()
		}
		return err
	})

	run("manufacturers", func() error {
		var rows []models.FacetOption
		err := db.Raw(`
			SELECT m.slug AS value, m.name AS label, COUNT(p.id)::int AS count
			FROM manufacturers m
			LEFT JOIN products p ON p.manufacturer_id = m.id AND p.status = ?
			GROUP BY m.id, m.slug, m.name
			ORDER BY m.name ASC
		`, catalog.StatusActive).Scan(&rows).Error
		if err == nil && rows != nil {
			mu.Lock()
			meta.Manufacturers = rows
			mu.Unlock()
		}
		return err
	})

	run("price range", func() error {
		var pr models.PriceRangeData
		err := db.Raw(`
			SELECT COALESCE(MIN(price), 0)::float8 AS min, COALESCE(MAX(price), 0)::float8 AS max
			FROM products
			WHERE status = ?
		`, catalog.StatusActive).Scan(&pr).Error
		if err == nil {
			mu.Lock()
			meta.PriceRange = pr
			mu.Unlock()
		}
		return err
	})

	run("availability", func() error {
		var av models.AvailabilityData
		err := db.Raw(`
			SELECT
				COUNT(*) FILTER (WHERE stock > 0)::int AS in_stock,
				COUNT(*) FILTER (WHERE stock <= 0)::int AS out_of_stock
			FROM products
			WHERE status = ?
		`, catalog.StatusActive).Scan(&av).Error
		if err == nil {
			mu.Lock()
			meta.Availability = av
			mu.Unlock()
		}
		return err
	})

	wg.Wait()
	if len(errs) > 0 {
		return nil, fmt.Errorf("facets: %w", errs[0])
	}
	return meta, nil
}
