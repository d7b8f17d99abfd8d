package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products for the storefront filters ("Kotły", "Pompy", ...).
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Slug        string    `json:"slug" gorm:"type:varchar(120);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	SortOrder   int       `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7 and slug
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV7())
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}

func (Category) TableName() string {
	return "categories"
}

// CategoryRequest is used when creating a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required" example:"Kotły gazowe"`
	Slug        string `json:"slug" example:"kotly-gazowe"`
	Description string `json:"description" example:"Kotły kondensacyjne i tradycyjne"`
	SortOrder   int    `json:"sort_order" example:"1"`
}

// UpdateCategoryRequest is used when updating a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Slug        *string `json:"slug" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

// CategoryWithProducts extends Category with product count
type CategoryWithProducts struct {
	Category
	Products int `json:"products"`
}
