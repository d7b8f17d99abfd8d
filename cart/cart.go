// Package cart holds the shopping cart line items and their running totals.
//
// A Store is the single owner of a cart's line items. Every mutation goes
// through its methods and is written back to a Persister as a JSON blob of the
// form {"items": [...]}.
package cart

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StorageKey names the persisted cart blob.
const StorageKey = "waterlife-cart"

// LineItem is one product entry in the cart.
type LineItem struct {
	ID       string  `json:"id" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"min=0"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// Snapshot is a point-in-time copy of the cart, as sent with a quote request.
type Snapshot struct {
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
	Timestamp time.Time  `json:"timestamp"`
}

type blob struct {
	Items []LineItem `json:"items"`
}

// Store is the cart state container.
type Store struct {
	mu        sync.Mutex
	key       string
	persister Persister
	logger    *zap.Logger

	items     []LineItem
	total     float64
	itemCount int
}

// Open loads the cart stored under key. A missing or unreadable blob yields an
// empty cart.
func Open(ctx context.Context, p Persister, key string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{key: key, persister: p, logger: logger}

	data, err := p.Load(ctx, key)
	switch {
	case err != nil:
		logger.Warn("cart blob not loaded", zap.String("key", key), zap.Error(err))
	case len(data) > 0:
		var b blob
		if err := json.Unmarshal(data, &b); err != nil {
			logger.Warn("cart blob is corrupt, starting empty", zap.String("key", key), zap.Error(err))
		} else {
			s.items = dedupe(b.Items)
		}
	}
	s.recompute()
	return s
}

// AddItem adds quantity units of item. An item already in the cart has its
// quantity increased instead of being duplicated. A quantity below one adds a
// single unit.
func (s *Store) AddItem(ctx context.Context, item LineItem, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		item.Quantity = quantity
		s.items = append(s.items, item)
	}
	s.commit(ctx)
}

// RemoveItem deletes the line item with the given id. Unknown ids are ignored.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(ctx, id)
}

// UpdateQuantity sets the quantity of a line item. Zero or negative quantities
// remove the item.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.remove(ctx, id)
		return
	}
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items[i].Quantity = quantity
	s.commit(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.commit(ctx)
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]LineItem(nil), s.items...)
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCount
}

// Snapshot copies the current cart state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Items:     append([]LineItem{}, s.items...),
		Total:     s.total,
		ItemCount: s.itemCount,
		Timestamp: time.Now().UTC(),
	}
}

func (s *Store) remove(ctx context.Context, id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.commit(ctx)
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// commit recomputes the totals and writes the blob. Write failures are logged
// only; the in-memory cart stays authoritative.
func (s *Store) commit(ctx context.Context) {
	s.recompute()

	data, err := json.Marshal(blob{Items: s.itemsOrEmpty()})
	if err != nil {
		s.logger.Error("cart blob not encoded", zap.Error(err))
		return
	}
	if err := s.persister.Save(ctx, s.key, data); err != nil {
		s.logger.Error("cart blob not saved", zap.String("key", s.key), zap.Error(err))
	}
}

func (s *Store) recompute() {
	s.total, s.itemCount = Totals(s.items)
}

func (s *Store) itemsOrEmpty() []LineItem {
	if s.items == nil {
		return []LineItem{}
	}
	return s.items
}

// Totals returns Σ price×quantity and Σ quantity for items. Money is summed in
// decimal and not rounded, so the total matches the line items exactly.
func Totals(items []LineItem) (total float64, count int) {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
		count += it.Quantity
	}
	return sum.InexactFloat64(), count
}

// ParseQuantity parses a quantity typed by a user, falling back to 1.
func ParseQuantity(input string) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 1
	}
	return n
}

// dedupe merges repeated ids from a hand-edited or legacy blob so the one line
// item per id invariant holds after loading.
func dedupe(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	seen := make(map[string]int, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if i, ok := seen[it.ID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		seen[it.ID] = len(out)
		out = append(out, it)
	}
	return out
}
