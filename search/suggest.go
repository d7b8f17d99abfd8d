package search

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/waterlife-shop/waterlife-backend/catalog"
)

const (
	// MinQueryLength is the shortest query that produces suggestions.
	MinQueryLength = 2
	// MaxSuggestions caps the suggestion list.
	MaxSuggestions = 5
)

// Suggest returns up to limit products whose name, description or category
// contains query, ignoring case. Source order is kept. A limit outside
// 1..MaxSuggestions means MaxSuggestions.
func Suggest(products []catalog.Product, query string, limit int) []catalog.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < MinQueryLength {
		return nil
	}
	if limit < 1 || limit > MaxSuggestions {
		limit = MaxSuggestions
	}

	out := make([]catalog.Product, 0, limit)
	for _, p := range products {
		if matches(p, q) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func matches(p catalog.Product, lowered string) bool {
	category := p.CategoryName
	if category == "" {
		category = p.Category
	}
	for _, field := range []string{p.Name, p.Description, category} {
		if strings.Contains(strings.ToLower(field), lowered) {
			return true
		}
	}
	return false
}

// ProductPath is the storefront path of a product page.
func ProductPath(id string) string {
	return "/produkty/" + url.PathEscape(id)
}

// ResultsPath is the storefront path of the full search results page.
func ResultsPath(query string) string {
	return "/szukaj?q=" + url.QueryEscape(strings.TrimSpace(query))
}
