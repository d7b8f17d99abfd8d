package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// ItemsPerPage is the fixed product page size.
const ItemsPerPage = 12

// FilterKey names one filter dimension of a FilterState.
type FilterKey string

const (
	KeyCategories    FilterKey = "categories"
	KeyManufacturers FilterKey = "manufacturers"
	KeyMinPrice      FilterKey = "minPrice"
	KeyMaxPrice      FilterKey = "maxPrice"
	KeyInStock       FilterKey = "inStock"
	KeySearchQuery   FilterKey = "searchQuery"
)

var (
	ErrUnknownFilter = errors.New("catalog: unknown filter")
	ErrFilterValue   = errors.New("catalog: invalid filter value")
)

// FilterState is the shopper's current filter selection. Categories and
// Manufacturers are sets, kept sorted and without duplicates.
type FilterState struct {
	Categories    []string `json:"categories"`
	Manufacturers []string `json:"manufacturers"`
	MinPrice      *float64 `json:"minPrice"`
	MaxPrice      *float64 `json:"maxPrice"`
	InStock       *bool    `json:"inStock"`
	SearchQuery   string   `json:"searchQuery"`
	CurrentPage   int      `json:"currentPage"`
	ItemsPerPage  int      `json:"itemsPerPage"`
}

// NewFilterState returns the default state, optionally seeded with a search
// query taken from the request URL.
func NewFilterState(seedQuery string) FilterState {
	s := ClearFilters()
	s.SearchQuery = strings.TrimSpace(seedQuery)
	return s
}

// ClearFilters returns the default state: no filters, first page.
func ClearFilters() FilterState {
	return FilterState{
		Categories:    []string{},
		Manufacturers: []string{},
		CurrentPage:   1,
		ItemsPerPage:  ItemsPerPage,
	}
}

// UpdateFilter returns s with one filter replaced. Whenever the filter value
// actually changes, the page goes back to 1 so a stale page number is never
// combined with a new result set.
//
// Accepted values: []string for the set filters, float64 / *float64 / nil for
// the price bounds, bool / *bool / nil for inStock and string for searchQuery.
func UpdateFilter(s FilterState, key FilterKey, value any) (FilterState, error) {
	before := s.criteriaKey()
	next := s.clone()

	switch key {
	case KeyCategories, KeyManufacturers:
		set, ok := value.([]string)
		if !ok && value != nil {
			return s, fmt.Errorf("%w: %s wants []string, got %T", ErrFilterValue, key, value)
		}
		if key == KeyCategories {
			next.Categories = normalizeSet(set)
		} else {
			next.Manufacturers = normalizeSet(set)
		}
	case KeyMinPrice, KeyMaxPrice:
		bound, err := priceValue(value)
		if err != nil {
			return s, fmt.Errorf("%w: %s: %v", ErrFilterValue, key, err)
		}
		if key == KeyMinPrice {
			next.MinPrice = bound
		} else {
			next.MaxPrice = bound
		}
	case KeyInStock:
		switch v := value.(type) {
		case nil:
			next.InStock = nil
		case bool:
			next.InStock = &v
		case *bool:
			next.InStock = copyBool(v)
		default:
			return s, fmt.Errorf("%w: inStock wants bool, got %T", ErrFilterValue, value)
		}
	case KeySearchQuery:
		q, ok := value.(string)
		if !ok && value != nil {
			return s, fmt.Errorf("%w: searchQuery wants string, got %T", ErrFilterValue, value)
		}
		next.SearchQuery = q
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownFilter, key)
	}

	if next.criteriaKey() != before {
		next.CurrentPage = 1
	}
	return next, nil
}

// SetPage moves to page without touching the filters.
func SetPage(s FilterState, page int) FilterState {
	next := s.clone()
	if page < 1 {
		page = 1
	}
	next.CurrentPage = page
	return next
}

// HasCriteria reports whether any filter dimension is active.
func (s FilterState) HasCriteria() bool {
	return len(s.Categories) > 0 || len(s.Manufacturers) > 0 ||
		s.MinPrice != nil || s.MaxPrice != nil ||
		(s.InStock != nil && *s.InStock) ||
		strings.TrimSpace(s.SearchQuery) != ""
}

func (s FilterState) perPage() int {
	if s.ItemsPerPage < 1 {
		return ItemsPerPage
	}
	return s.ItemsPerPage
}

// criteriaKey identifies the filter dimensions only, ignoring pagination.
func (s FilterState) criteriaKey() string {
	var b strings.Builder
	b.WriteString(strings.Join(normalizeSet(s.Categories), "\x1f"))
	b.WriteByte('|')
	b.WriteString(strings.Join(normalizeSet(s.Manufacturers), "\x1f"))
	b.WriteByte('|')
	if s.MinPrice != nil {
		b.WriteString(strconv.FormatFloat(*s.MinPrice, 'f', -1, 64))
	}
	b.WriteByte('|')
	if s.MaxPrice != nil {
		b.WriteString(strconv.FormatFloat(*s.MaxPrice, 'f', -1, 64))
	}
	b.WriteByte('|')
	if s.InStock != nil {
		b.WriteString(strconv.FormatBool(*s.InStock))
	}
	b.WriteByte('|')
	b.WriteString(s.SearchQuery)
	return b.String()
}

func (s FilterState) clone() FilterState {
	c := s
	c.Categories = slices.Clone(s.Categories)
	c.Manufacturers = slices.Clone(s.Manufacturers)
	c.MinPrice = copyFloat(s.MinPrice)
	c.MaxPrice = copyFloat(s.MaxPrice)
	c.InStock = copyBool(s.InStock)
	return c
}

// ─────────────────────────────────────────────────────────────
// Query string mapping (GET /api/produkty parameters)
// ─────────────────────────────────────────────────────────────

// ParseQuery reads a FilterState from URL query parameters. Malformed numbers
// and booleans are ignored rather than rejected.
func ParseQuery(q url.Values) FilterState {
	s := NewFilterState(q.Get("search"))
	s.Categories = normalizeSet(splitMulti(q["category"]))
	s.Manufacturers = normalizeSet(splitMulti(q["manufacturer"]))
	if v, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil && v >= 0 {
		s.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil && v >= 0 {
		s.MaxPrice = &v
	}
	if v, err := strconv.ParseBool(q.Get("inStock")); err == nil {
		s.InStock = &v
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		s.CurrentPage = p
	}
	return s
}

// Query encodes the filter dimensions of s as URL query parameters.
func (s FilterState) Query() url.Values {
	q := url.Values{}
	for _, c := range s.Categories {
		q.Add("category", c)
	}
	for _, m := range s.Manufacturers {
		q.Add("manufacturer", m)
	}
	if s.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*s.MinPrice, 'f', -1, 64))
	}
	if s.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*s.MaxPrice, 'f', -1, 64))
	}
	if s.InStock != nil {
		q.Set("inStock", strconv.FormatBool(*s.InStock))
	}
	if s.SearchQuery != "" {
		q.Set("search", s.SearchQuery)
	}
	return q
}

// ─────────────────────────────────────────────────────────────
// Observable container
// ─────────────────────────────────────────────────────────────

// Filters holds the live FilterState of one product listing view and tells
// subscribers about every change.
type Filters struct {
	mu          sync.Mutex
	state       FilterState
	subscribers map[int]func(FilterState)
	nextID      int
}

func NewFilters(seedQuery string) *Filters {
	return &Filters{
		state:       NewFilterState(seedQuery),
		subscribers: make(map[int]func(FilterState)),
	}
}

// State returns a copy of the current state.
func (f *Filters) State() FilterState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

func (f *Filters) UpdateFilter(key FilterKey, value any) error {
	f.mu.Lock()
	next, err := UpdateFilter(f.state, key, value)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	f.state = next
	f.mu.Unlock()
	f.notify(next)
	return nil
}

func (f *Filters) ClearFilters() {
	f.mu.Lock()
	f.state = ClearFilters()
	next := f.state
	f.mu.Unlock()
	f.notify(next)
}

func (f *Filters) SetPage(page int) {
	f.mu.Lock()
	f.state = SetPage(f.state, page)
	next := f.state
	f.mu.Unlock()
	f.notify(next)
}

// Subscribe registers fn to be called with the new state after each change.
// The returned func removes the subscription.
func (f *Filters) Subscribe(fn func(FilterState)) (unsubscribe func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.subscribers[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subscribers, id)
	}
}

func (f *Filters) notify(s FilterState) {
	f.mu.Lock()
	fns := make([]func(FilterState), 0, len(f.subscribers))
	for _, fn := range f.subscribers {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(s.clone())
	}
}

// ─────────────────────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────────────────────

func normalizeSet(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func splitMulti(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

func priceValue(value any) (*float64, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case float64:
		if v < 0 {
			return nil, errors.New("negative price")
		}
		return &v, nil
	case int:
		f := float64(v)
		return priceValue(f)
	case *float64:
		if v == nil {
			return nil, nil
		}
		return priceValue(*v)
	default:
		return nil, fmt.Errorf("unsupported type %T", value)
	}
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
