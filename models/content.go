package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/waterlife-shop/waterlife-backend/catalog"
)

// HomepageSection is one editable block of the homepage (hero, banners,
// promo tiles). Key is unique, so admin writes are upserts.
type HomepageSection struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Key       string         `json:"key" gorm:"type:varchar(64);uniqueIndex;not null"`
	Title     string         `json:"title"`
	Subtitle  string         `json:"subtitle"`
	Content   datatypes.JSON `json:"content" gorm:"type:jsonb" swaggertype:"object"`
	ImageURL  *string        `json:"imageUrl,omitempty"`
	LinkURL   *string        `json:"linkUrl,omitempty"`
	SortOrder int            `json:"sortOrder" gorm:"default:0;index"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (s *HomepageSection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (HomepageSection) TableName() string {
	return "homepage_sections"
}

type HomepageSectionRequest struct {
	Title     string         `json:"title" binding:"required"`
	Subtitle  string         `json:"subtitle"`
	Content   datatypes.JSON `json:"content" swaggertype:"object"`
	ImageURL  *string        `json:"imageUrl" binding:"omitempty,url"`
	LinkURL   *string        `json:"linkUrl"`
	SortOrder int            `json:"sortOrder"`
	Active    *bool          `json:"active"`
}

// HomepageResponse is GET /api/strona-glowna.
type HomepageResponse struct {
	Sections    []HomepageSection `json:"sections"`
	Bestsellers []catalog.Product `json:"bestsellers"`
}

// ContactMessage is a message left through the contact form.
type ContactMessage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;index"`
	Phone     *string   `json:"phone,omitempty"`
	Subject   *string   `json:"subject,omitempty"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Read      bool      `json:"read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

// ContactRequest is the POST /api/kontakt body.
type ContactRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone"`
	Subject *string `json:"subject"`
	Message string  `json:"message" binding:"required,min=10"`
}

type ContactQuery struct {
	Unread bool `form:"unread"`
	Page   int  `form:"page"`
	Limit  int  `form:"limit"`
}
