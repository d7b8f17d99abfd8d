package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/catalog"
)

// Suggester returns the suggestions for a query, at most MaxSuggestions of
// them.
type Suggester interface {
	Suggest(ctx context.Context, query string) ([]catalog.Product, error)
}

// SourceSuggester matches queries against the full product list of a
// catalog source.
type SourceSuggester struct {
	Source catalog.Source
}

func (s SourceSuggester) Suggest(ctx context.Context, query string) ([]catalog.Product, error) {
	products, err := s.Source.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return Suggest(products, query, MaxSuggestions), nil
}

// Box is the search input. Keystrokes are debounced; once the input settles
// a query of at least MinQueryLength runes is looked up and the results
// replace the panel contents. Shorter input closes the panel without a
// lookup.
type Box struct {
	Panel *Suggestions

	suggester Suggester
	debounce  *Debouncer
	logger    *zap.Logger

	mu     sync.Mutex
	ctx    context.Context
	seq    uint64
	cancel context.CancelFunc
	err    error
}

// NewBox returns a box that waits delay after the last keystroke before
// looking up suggestions. Lookups run under ctx.
func NewBox(ctx context.Context, suggester Suggester, delay time.Duration, logger *zap.Logger) *Box {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Box{
		Panel:     NewSuggestions(),
		suggester: suggester,
		debounce:  NewDebouncer(delay),
		logger:    logger,
		ctx:       ctx,
	}
}

// Type records the current content of the input.
func (b *Box) Type(input string) {
	query := strings.TrimSpace(input)
	if utf8.RuneCountInString(query) < MinQueryLength {
		b.debounce.Cancel()
		b.abandon()
		b.Panel.Update(query, nil)
		return
	}
	b.debounce.Trigger(func() { b.lookup(query) })
}

// Flush runs a pending lookup now. It reports whether there was one.
func (b *Box) Flush() bool {
	return b.debounce.Flush()
}

// Enter resolves a pending lookup first, so a quick Enter still sees the
// results for what was typed.
func (b *Box) Enter() string {
	b.Flush()
	return b.Panel.Enter()
}

// Err returns the error of the last lookup, or nil.
func (b *Box) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// abandon cancels a lookup in flight so its results are dropped.
func (b *Box) abandon() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
}

func (b *Box) lookup(query string) {
	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	b.seq++
	seq := b.seq
	ctx, cancel := context.WithCancel(b.ctx)
	b.cancel = cancel
	b.mu.Unlock()

	results, err := b.suggester.Suggest(ctx, query)

	b.mu.Lock()
	defer b.mu.Unlock()
	cancel()
	if seq != b.seq {
		b.logger.Debug("discarding superseded suggestions", zap.String("query", query))
		return
	}
	b.cancel = nil
	b.err = err
	if err != nil {
		b.logger.Warn("suggestion lookup failed", zap.String("query", query), zap.Error(err))
		b.Panel.Update(query, nil)
		return
	}
	b.Panel.Update(query, results)
}
