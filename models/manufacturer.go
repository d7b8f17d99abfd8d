package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Manufacturer is a product brand (Vaillant, Grundfos, Gardena, ...).
type Manufacturer struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"type:varchar(120);uniqueIndex;not null"`
	Website   string    `json:"website"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (m *Manufacturer) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.Must(uuid.NewV7())
	}
	if m.Slug == "" {
		m.Slug = Slugify(m.Name)
	}
	return nil
}

func (Manufacturer) TableName() string {
	return "manufacturers"
}

type ManufacturerRequest struct {
	Name    string `json:"name" binding:"required" example:"Vaillant"`
	Slug    string `json:"slug" example:"vaillant"`
	Website string `json:"website" binding:"omitempty,url" example:"https://www.vaillant.pl"`
	LogoURL string `json:"logo_url" binding:"omitempty,url"`
}

type UpdateManufacturerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1"`
	Slug    *string `json:"slug" binding:"omitempty,min=1"`
	Website *string `json:"website" binding:"omitempty,url"`
	LogoURL *string `json:"logo_url" binding:"omitempty,url"`
}
