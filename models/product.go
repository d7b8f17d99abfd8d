package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/waterlife-shop/waterlife-backend/catalog"
)

// ═══════════════════════════════════════════════════════════
// JSONB Type Definitions
// ═══════════════════════════════════════════════════════════

// ProductImage is one uploaded photo. PublicID is the Cloudinary asset id.
type ProductImage struct {
	URL      string `json:"url" binding:"required,url"`
	PublicID string `json:"public_id,omitempty"`
	IsMain   bool   `json:"is_main"`
}

type ProductImages []ProductImage

// ═══════════════════════════════════════════════════════════
// Main Product Model (GORM)
// ═══════════════════════════════════════════════════════════

type Product struct {
	ID             uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Name           string            `json:"name" gorm:"not null;index"`
	Description    string            `json:"description" gorm:"type:text"`
	Price          float64           `json:"price" gorm:"type:numeric(12,2);not null;check:price >= 0"`
	Stock          int               `json:"stock" gorm:"not null;default:0;check:stock >= 0"`
	CategoryID     *uuid.UUID        `json:"category_id" gorm:"type:uuid;index"`
	Category       *Category         `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	ManufacturerID *uuid.UUID        `json:"manufacturer_id" gorm:"type:uuid;index"`
	Manufacturer   *Manufacturer     `json:"manufacturer,omitempty" gorm:"foreignKey:ManufacturerID;references:ID"`
	Images         ProductImages     `json:"images" gorm:"type:jsonb;not null;default:'[]'"`
	Specifications datatypes.JSONMap `json:"specifications" gorm:"type:jsonb"`
	Featured       bool              `json:"featured" gorm:"default:false;index"`
	Status         string            `json:"status" gorm:"type:varchar(20);not null;default:'active';check:status IN ('active', 'inactive');index"`
	CreatedAt      time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	if p.Status == "" {
		p.Status = catalog.StatusActive
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

// MediaFolder is the Cloudinary folder holding this product's images.
func (p *Product) MediaFolder(root string) string {
	return root + "/" + p.ID.String()
}

// ToCatalog projects the product onto the storefront shape. Category and
// Manufacturer must be preloaded for their slugs to be filled in.
func (p *Product) ToCatalog() catalog.Product {
	out := catalog.Product{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Images:      make([]catalog.Image, 0, len(p.Images)),
		Featured:    p.Featured,
		Status:      p.Status,
	}
	if p.Category != nil {
		out.Category = p.Category.Slug
		out.CategoryName = p.Category.Name
	}
	if p.Manufacturer != nil {
		out.Manufacturer = p.Manufacturer.Slug
		out.ManufacturerName = p.Manufacturer.Name
	}
	for _, img := range p.Images {
		out.Images = append(out.Images, catalog.Image{URL: img.URL, IsMain: img.IsMain})
	}
	return out
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type ProductRequest struct {
	Name           string         `json:"name" binding:"required" example:"Kocioł kondensacyjny 24 kW"`
	Description    string         `json:"description" example:"Wiszący kocioł gazowy z zasobnikiem"`
	Price          float64        `json:"price" binding:"min=0" example:"4500"`
	Stock          int            `json:"stock" binding:"min=0" example:"3"`
	CategoryID     *uuid.UUID     `json:"category_id"`
	ManufacturerID *uuid.UUID     `json:"manufacturer_id"`
	Images         []ProductImage `json:"images" binding:"omitempty,dive"`
	Specifications map[string]any `json:"specifications"`
	Featured       bool           `json:"featured"`
	Status         string         `json:"status" binding:"omitempty,oneof=active inactive" example:"active"`
}

type UpdateProductRequest struct {
	Name           *string         `json:"name" binding:"omitempty,min=1"`
	Description    *string         `json:"description"`
	Price          *float64        `json:"price" binding:"omitempty,min=0"`
	Stock          *int            `json:"stock" binding:"omitempty,min=0"`
	CategoryID     *uuid.UUID      `json:"category_id"`
	ManufacturerID *uuid.UUID      `json:"manufacturer_id"`
	Images         *[]ProductImage `json:"images" binding:"omitempty,dive"`
	Specifications *map[string]any `json:"specifications"`
	Featured       *bool           `json:"featured"`
	Status         *string         `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ═══════════════════════════════════════════════════════════
// Storefront filter metadata
// ═══════════════════════════════════════════════════════════

// FilterMetadata feeds the filter sidebar.
type FilterMetadata struct {
	Categories    []FacetOption    `json:"categories"`
	Manufacturers []FacetOption    `json:"manufacturers"`
	PriceRange    PriceRangeData   `json:"priceRange"`
	Availability  AvailabilityData `json:"availability"`
}

// FacetOption is one checkbox of a multi-select filter.
type FacetOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type PriceRangeData struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type AvailabilityData struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}

// ═══════════════════════════════════════════════════════════
// JSONB Scanner/Valuer for GORM
// ═══════════════════════════════════════════════════════════

func (p *ProductImages) Scan(value interface{}) error {
	if value == nil {
		*p = make(ProductImages, 0)
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ProductImages")
	}
	return json.Unmarshal(bytes, p)
}

func (p ProductImages) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal([]ProductImage{})
	}
	return json.Marshal(p)
}

// Normalize makes sure exactly one image is marked main when there are any.
func (p ProductImages) Normalize() ProductImages {
	out := make(ProductImages, len(p))
	copy(out, p)
	mainSeen := false
	for i := range out {
		if out[i].IsMain && !mainSeen {
			mainSeen = true
			continue
		}
		out[i].IsMain = false
	}
	if !mainSeen && len(out) > 0 {
		out[0].IsMain = true
	}
	return out
}
