package search

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waterlife-shop/waterlife-backend/catalog"
)

type countingSource struct {
	calls atomic.Int32
	err   error
}

func (s *countingSource) ListProducts(context.Context) ([]catalog.Product, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return products(), nil
}

func TestBox_RapidTypingLooksUpOnce(t *testing.T) {
	src := &countingSource{}
	b := NewBox(context.Background(), SourceSuggester{Source: src}, 20*time.Millisecond, nil)

	for _, input := range []string{"k", "ko", "koc", "koci"} {
		b.Type(input)
	}

	require.Eventually(t, b.Panel.Open, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), src.calls.Load())

	results := b.Panel.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "Kocioł gazowy", results[0].Name)
	assert.NoError(t, b.Err())
}

func TestBox_ShortInputNeverLooksUp(t *testing.T) {
	src := &countingSource{}
	b := NewBox(context.Background(), SourceSuggester{Source: src}, 10*time.Millisecond, nil)

	b.Type("k")
	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, src.calls.Load())
	assert.False(t, b.Panel.Open())

	// Deleting back to one character drops the lookup still waiting.
	b.Type("kot")
	b.Type("k")
	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, src.calls.Load())
	assert.False(t, b.Panel.Open())
}

func TestBox_EnterResolvesPendingLookup(t *testing.T) {
	src := &countingSource{}
	b := NewBox(context.Background(), SourceSuggester{Source: src}, time.Hour, nil)

	b.Type("ogrzew")
	require.True(t, b.Flush())
	require.True(t, b.Panel.Open())
	b.Panel.Down()
	assert.Equal(t, "/produkty/1", b.Enter())

	b.Type("zraszacz")
	assert.Equal(t, "/szukaj?q=zraszacz", b.Enter(), "enter before the delay still sees the query")
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestBox_LookupFailureClosesPanel(t *testing.T) {
	src := &countingSource{err: errors.New("connection refused")}
	b := NewBox(context.Background(), SourceSuggester{Source: src}, time.Hour, nil)

	b.Type("kocioł")
	b.Flush()
	assert.Error(t, b.Err())
	assert.False(t, b.Panel.Open())
	assert.Empty(t, b.Panel.Results())
}
