package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/models"
)

func countingLoader(calls *atomic.Int32) FacetLoader {
	return func(context.Context) (*models.FilterMetadata, error) {
		n := calls.Add(1)
		return &models.FilterMetadata{PriceRange: models.PriceRangeData{Max: float64(n)}}, nil
	}
}

func TestFacetCache_HitWithinTTL(t *testing.T) {
	var calls atomic.Int32
	c := NewFacetCache(countingLoader(&calls), time.Minute, zap.NewNop())

	first, err := c.Get(context.Background())
	require.NoError(t, err)
	second, err := c.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Same(t, first, second)
}

func TestFacetCache_ExpiresAfterTTL(t *testing.T) {
	var calls atomic.Int32
	c := NewFacetCache(countingLoader(&calls), time.Minute, zap.NewNop())
	now := time.Now()
	c.now = func() time.Time { return now }

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	data, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2.0, data.PriceRange.Max)
}

func TestFacetCache_LoadErrorIsNotCached(t *testing.T) {
	fail := true
	c := NewFacetCache(func(context.Context) (*models.FilterMetadata, error) {
		if fail {
			return nil, errors.New("db down")
		}
		return &models.FilterMetadata{}, nil
	}, time.Minute, zap.NewNop())

	_, err := c.Get(context.Background())
	require.Error(t, err)

	fail = false
	_, err = c.Get(context.Background())
	assert.NoError(t, err)
}

func TestFacetCache_InvalidateCoalescesRefreshes(t *testing.T) {
	var calls atomic.Int32
	c := NewFacetCache(countingLoader(&calls), time.Minute, zap.NewNop())
	defer c.Close()

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	c.Invalidate()
	c.Invalidate()
	c.Invalidate()
	_, ok := c.cached()
	assert.False(t, ok)

	assert.True(t, c.refresh.Flush())
	assert.Equal(t, int32(2), calls.Load())

	_, ok = c.cached()
	assert.True(t, ok)
}

func TestFacetCache_LoadOverlappingInvalidateIsNotStored(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	c := NewFacetCache(func(context.Context) (*models.FilterMetadata, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
		}
		return &models.FilterMetadata{PriceRange: models.PriceRangeData{Max: float64(calls.Load())}}, nil
	}, time.Minute, zap.NewNop())
	defer c.Close()

	got := make(chan *models.FilterMetadata)
	go func() {
		data, _ := c.Get(context.Background())
		got <- data
	}()

	<-started
	c.Invalidate()
	close(release)

	stale := <-got
	require.NotNil(t, stale)
	assert.Equal(t, 1.0, stale.PriceRange.Max)
	_, ok := c.cached()
	assert.False(t, ok, "a load that straddles an invalidation must not fill the cache")

	require.True(t, c.refresh.Flush())
	fresh, ok := c.cached()
	require.True(t, ok)
	assert.Equal(t, 2.0, fresh.PriceRange.Max)
}
