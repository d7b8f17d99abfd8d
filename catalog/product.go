// Package catalog filters and paginates the storefront product list.
//
// The package has three parts. FilterState holds what the shopper selected.
// Pipeline fetches the full product list and derives the filtered view from a
// FilterState. Paginate turns that view into numbered pages.
package catalog

// Product statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Image is one product photo. At most one image per product is the main one.
type Image struct {
	URL    string `json:"url"`
	IsMain bool   `json:"isMain"`
}

// Product is the read-only projection of a product served by GET /api/produkty.
// Category and Manufacturer carry slugs; the *Name fields are for display.
type Product struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Price            float64 `json:"price"`
	Stock            int     `json:"stock"`
	Category         string  `json:"category,omitempty"`
	CategoryName     string  `json:"categoryName,omitempty"`
	Manufacturer     string  `json:"manufacturer,omitempty"`
	ManufacturerName string  `json:"manufacturerName,omitempty"`
	Images           []Image `json:"images"`
	Featured         bool    `json:"featured"`
	Status           string  `json:"status"`
}

// MainImage returns the URL of the main image, falling back to the first one.
func (p Product) MainImage() string {
	for _, img := range p.Images {
		if img.IsMain {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}
