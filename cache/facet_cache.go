// Package cache holds in-process snapshot caches for read-heavy storefront
// data.
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
	"github.com/waterlife-shop/waterlife-backend/models"
	"github.com/waterlife-shop/waterlife-backend/search"
)

const (
	TTL = 5 * time.Minute
	// RefreshDelay coalesces bursts of back office writes into one reload.
	RefreshDelay = 2 * time.Second
)

// FacetLoader computes fresh filter metadata.
type FacetLoader func(ctx context.Context) (*models.FilterMetadata, error)

type facetEntry struct {
	data      *models.FilterMetadata
	fetchedAt time.Time
}

// FacetCache serves the filter sidebar data (categories, manufacturers,
// price range, stock counts) for TTL. Invalidate drops the snapshot and
// schedules a debounced background reload.
type FacetCache struct {
	load    FacetLoader
	ttl     time.Duration
	logger  *zap.Logger
	refresh *search.Debouncer
	now     func() time.Time

	mu    sync.RWMutex
	entry *facetEntry
	// gen is bumped by Invalidate; a load started under an older gen is
	// returned to its caller but not stored.
	gen uint64
}

func NewFacetCache(load FacetLoader, ttl time.Duration, logger *zap.Logger) *FacetCache {
	if ttl <= 0 {
		ttl = TTL
	}
	return &FacetCache{
		load:    load,
		ttl:     ttl,
		logger:  logger.Named("facet-cache"),
		refresh: search.NewDebouncer(RefreshDelay),
		now:     time.Now,
	}
}

func (c *FacetCache) cached() (*models.FilterMetadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry != nil && c.now().Sub(c.entry.fetchedAt) < c.ttl {
		return c.entry.data, true
	}
	return nil, false
}

// Get returns the cached metadata, loading it on a miss.
func (c *FacetCache) Get(ctx context.Context) (*models.FilterMetadata, error) {
	if data, ok := c.cached(); ok {
		return data, nil
	}
	return c.warm(ctx)
}

func (c *FacetCache) warm(ctx context.Context) (*models.FilterMetadata, error) {
	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	data, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	if gen == c.gen {
		c.entry = &facetEntry{data: data, fetchedAt: c.now()}
	} else {
		c.logger.Debug("dropping facets loaded before an invalidation")
	}
	c.mu.Unlock()
	return data, nil
}

// Invalidate is called after any product, category or manufacturer write.
func (c *FacetCache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.gen++
	c.mu.Unlock()

	c.refresh.Trigger(func() {
		ctx, cancel := config.WithTimeout()
		defer cancel()
		if _, err := c.warm(ctx); err != nil {
			c.logger.Warn("background refresh failed", zap.Error(err))
		}
	})
}

// Close cancels a pending background refresh.
func (c *FacetCache) Close() {
	c.refresh.Cancel()
}
