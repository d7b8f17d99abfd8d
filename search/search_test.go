package search

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waterlife-shop/waterlife-backend/catalog"
)

func TestDebouncer_LastWriteWins(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var mu sync.Mutex
	var got []string
	done := make(chan struct{})
	for _, q := range []string{"k", "ko", "koc"} {
		q := q
		d.Trigger(func() {
			mu.Lock()
			got = append(got, q)
			mu.Unlock()
			close(done)
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}
	time.Sleep(40 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"koc"}, got)
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, calls.Load())
	assert.False(t, d.Pending())
}

func TestDebouncer_Flush(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	require.True(t, d.Pending())

	assert.True(t, d.Flush())
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Flush())
}

func products() []catalog.Product {
	return []catalog.Product{
		{ID: "1", Name: "Kocioł gazowy", Description: "kondensacyjny", CategoryName: "Ogrzewanie"},
		{ID: "2", Name: "Grzejnik płytowy", Description: "Stalowy", CategoryName: "Ogrzewanie"},
		{ID: "3", Name: "Zraszacz", Description: "Nawadnianie", CategoryName: "Ogród"},
		{ID: "4", Name: "Bateria", Description: "umywalkowa", Category: "sanitariaty"},
	}
}

func TestSuggest_MinimumLength(t *testing.T) {
	assert.Empty(t, Suggest(products(), "k", 5))
	assert.Empty(t, Suggest(products(), "  k  ", 5))
	assert.NotEmpty(t, Suggest(products(), "ko", 5))
}

func TestSuggest_MatchesCategoryCaseInsensitive(t *testing.T) {
	got := Suggest(products(), "OGRZEW", 5)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)

	got = Suggest(products(), "sanitar", 5)
	require.Len(t, got, 1)
	assert.Equal(t, "4", got[0].ID)
}

func TestSuggest_CapsAtFive(t *testing.T) {
	var many []catalog.Product
	for i := range 12 {
		many = append(many, catalog.Product{ID: fmt.Sprint(i), Name: "Zawór kulowy"})
	}
	got := Suggest(many, "zawór", 50)
	require.Len(t, got, MaxSuggestions)
	assert.Equal(t, "0", got[0].ID)
	assert.Equal(t, "4", got[4].ID)
}

func TestSuggestions_KeyboardNavigation(t *testing.T) {
	s := NewSuggestions()
	s.Update("ogrzew", Suggest(products(), "ogrzew", 5))
	require.True(t, s.Open())
	assert.Equal(t, -1, s.Selected())

	s.Down()
	s.Down()
	s.Down()
	assert.Equal(t, 1, s.Selected(), "clamped at last row")

	s.Up()
	s.Up()
	s.Up()
	assert.Equal(t, -1, s.Selected())

	s.Down()
	assert.Equal(t, "/produkty/1", s.Enter())
	assert.False(t, s.Open())
}

func TestSuggestions_EnterWithoutHighlightGoesToResults(t *testing.T) {
	s := NewSuggestions()
	s.Update("zawór kulowy", nil)
	assert.False(t, s.Open())
	assert.Equal(t, "/szukaj?q=zaw%C3%B3r+kulowy", s.Enter())
}

func TestSuggestions_EscapeAndClickOutsideClose(t *testing.T) {
	s := NewSuggestions()
	s.Update("ogrzew", Suggest(products(), "ogrzew", 5))
	s.Down()
	s.Escape()
	assert.False(t, s.Open())
	assert.Equal(t, -1, s.Selected())

	s.Update("ogrzew", Suggest(products(), "ogrzew", 5))
	s.ClickOutside()
	assert.False(t, s.Open())

	s.Down()
	assert.Equal(t, -1, s.Selected(), "closed panel ignores arrows")
}

func TestSuggestions_BlankQueryEntersNowhere(t *testing.T) {
	s := NewSuggestions()
	s.Update("   ", nil)
	assert.Equal(t, "", s.Enter())

	s.Update("  kocioł ", nil)
	assert.Equal(t, "/szukaj?q=kocio%C5%82", s.Enter())
}
