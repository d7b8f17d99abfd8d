package search

import (
	"strings"
	"sync"

	"github.com/waterlife-shop/waterlife-backend/catalog"
)

// Suggestions is the state of the suggestion panel under the search box.
// Selected is -1 while nothing is highlighted.
type Suggestions struct {
	mu       sync.Mutex
	query    string
	results  []catalog.Product
	selected int
	open     bool
}

func NewSuggestions() *Suggestions {
	return &Suggestions{selected: -1}
}

// Update replaces the results for query and opens the panel when there is
// something to show. The highlight is reset.
func (s *Suggestions) Update(query string, results []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = strings.TrimSpace(query)
	s.results = results
	s.selected = -1
	s.open = len(results) > 0
}

// Down moves the highlight one row down, stopping at the last row.
func (s *Suggestions) Down() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open || len(s.results) == 0 {
		return
	}
	if s.selected < len(s.results)-1 {
		s.selected++
	}
}

// Up moves the highlight one row up. Moving up from the first row clears it.
func (s *Suggestions) Up() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return
	}
	if s.selected > -1 {
		s.selected--
	}
}

// Enter returns where the storefront navigates: the highlighted product page,
// or the full results page when nothing is highlighted. The panel closes.
// An empty query with nothing highlighted yields "".
func (s *Suggestions) Enter() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.closeLocked()

	if s.open && s.selected >= 0 && s.selected < len(s.results) {
		return ProductPath(s.results[s.selected].ID)
	}
	if s.query == "" {
		return ""
	}
	return ResultsPath(s.query)
}

func (s *Suggestions) Escape() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Suggestions) ClickOutside() {
	s.Escape()
}

func (s *Suggestions) closeLocked() {
	s.open = false
	s.selected = -1
}

func (s *Suggestions) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *Suggestions) Selected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *Suggestions) Results() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}
