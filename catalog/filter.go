package catalog

import (
	"slices"
	"strings"
)

// Apply returns the products that satisfy every active dimension of s, in
// input order. Within the category and manufacturer dimensions any selected
// value matches.
func Apply(products []Product, s FilterState) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if Match(p, s) {
			out = append(out, p)
		}
	}
	return out
}

// Match reports whether p satisfies s. Pagination fields are ignored.
func Match(p Product, s FilterState) bool {
	if len(s.Categories) > 0 && !slices.Contains(s.Categories, p.Category) {
		return false
	}
	if len(s.Manufacturers) > 0 && !slices.Contains(s.Manufacturers, p.Manufacturer) {
		return false
	}
	if s.MinPrice != nil && p.Price < *s.MinPrice {
		return false
	}
	if s.MaxPrice != nil && p.Price > *s.MaxPrice {
		return false
	}
	if s.InStock != nil && *s.InStock && !p.InStock() {
		return false
	}
	if q := strings.TrimSpace(s.SearchQuery); q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	return true
}
