package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/waterlife-shop/waterlife-backend/models"
)

// Snapshots loads the current state of back office resources for the
// activity log's before/after diff.
type Snapshots struct {
	Products      ProductRepository
	Categories    CategoryRepository
	Manufacturers ManufacturerRepository
	Orders        OrderRepository
	Content       ContentRepository
}

// Load returns the resource or an untyped nil when it does not exist, the id
// is malformed, or the type has no snapshot (contact messages).
func (s Snapshots) Load(ctx context.Context, resourceType, id string) any {
	if resourceType == models.ResourceTypeContent {
		sections, err := s.Content.Sections(ctx, false)
		if err != nil {
			return nil
		}
		for i := range sections {
			if sections[i].Key == id {
				return &sections[i]
			}
		}
		return nil
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	switch resourceType {
	case models.ResourceTypeProduct:
		if p, err := s.Products.Get(ctx, uid); err == nil {
			return p
		}
	case models.ResourceTypeCategory:
		if c, err := s.Categories.Get(ctx, uid); err == nil {
			return c
		}
	case models.ResourceTypeManufacturer:
		if m, err := s.Manufacturers.Get(ctx, uid); err == nil {
			return m
		}
	case models.ResourceTypeOrder:
		if o, err := s.Orders.Get(ctx, uid); err == nil {
			return o
		}
	}
	return nil
}
