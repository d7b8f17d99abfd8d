package catalog

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrSuperseded is returned by Refetch when a newer fetch started before this
// one finished. Its result was discarded.
var ErrSuperseded = errors.New("catalog: fetch superseded")

// Source supplies the full product list.
type Source interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// Pipeline holds the fetched product list and derives filtered views of it.
// A fresh Pipeline reports Loading until its first fetch completes.
type Pipeline struct {
	source Source
	logger *zap.Logger

	mu         sync.Mutex
	products   []Product
	generation uint64
	loading    bool
	err        error

	fetchSeq uint64
	cancel   context.CancelFunc

	memoKey    string
	memoGen    uint64
	memo       []Product
	recomputed int
}

func NewPipeline(source Source, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{source: source, logger: logger, loading: true}
}

// Refetch loads the product list from the source and replaces the current one.
// Starting a new fetch cancels the one in flight; a cancelled or superseded
// fetch never overwrites state.
func (p *Pipeline) Refetch(ctx context.Context) error {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.fetchSeq++
	seq := p.fetchSeq
	fctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.loading = true
	p.err = nil
	p.mu.Unlock()

	products, err := p.source.ListProducts(fctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	cancel()

	if seq != p.fetchSeq {
		p.logger.Debug("discarding superseded product fetch", zap.Uint64("seq", seq))
		return ErrSuperseded
	}
	p.cancel = nil

	if err == nil && fctx.Err() != nil {
		err = fctx.Err()
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Caller went away: keep whatever list we had.
			p.loading = false
			return err
		}
		p.loading = false
		p.err = err
		p.logger.Warn("product fetch failed", zap.Error(err))
		return err
	}

	p.products = products
	p.generation++
	p.loading = false
	p.logger.Debug("product list refreshed", zap.Int("count", len(products)))
	return nil
}

// Close cancels any fetch in flight.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Pipeline) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Err returns the error of the last completed fetch, or nil.
func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Products returns the unfiltered list.
func (p *Pipeline) Products() []Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.products
}

// Filtered returns Apply(Products(), s). The result is reused until either the
// product list or the filter dimensions of s change; page changes alone do not
// recompute it.
func (p *Pipeline) Filtered(s FilterState) []Product {
	key := s.criteriaKey()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.memo != nil && p.memoKey == key && p.memoGen == p.generation {
		return p.memo
	}
	p.memo = Apply(p.products, s)
	p.memoKey = key
	p.memoGen = p.generation
	p.recomputed++
	return p.memo
}

// View returns the page of the filtered list selected by s.
func (p *Pipeline) View(s FilterState) Page[Product] {
	return Paginate(p.Filtered(s), s.CurrentPage, s.perPage())
}
