package catalog

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []Product {
	return []Product{
		{ID: "1", Name: "Kocioł gazowy", Description: "Kondensacyjny 24 kW", Price: 10, Stock: 3, Category: "A", Manufacturer: "vaillant"},
		{ID: "2", Name: "Pompa obiegowa", Description: "Do instalacji CO", Price: 20, Stock: 0, Category: "B", Manufacturer: "grundfos"},
		{ID: "3", Name: "Zraszacz", Description: "Nawadnianie ogrodu", Price: 30, Stock: 5, Category: "C", Manufacturer: "gardena"},
	}
}

func ids(ps []Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func mustUpdate(t *testing.T, s FilterState, key FilterKey, v any) FilterState {
	t.Helper()
	next, err := UpdateFilter(s, key, v)
	require.NoError(t, err)
	return next
}

func TestApply_NoFiltersKeepsEverythingInOrder(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, ids(Apply(fixture(), NewFilterState(""))))
}

func TestApply_DimensionsCombineWithAnd(t *testing.T) {
	s := mustUpdate(t, NewFilterState(""), KeyCategories, []string{"A"})
	s = mustUpdate(t, s, KeyMinPrice, 15.0)

	assert.Empty(t, Apply(fixture(), s))
}

func TestApply_ValuesWithinDimensionCombineWithOr(t *testing.T) {
	s := mustUpdate(t, NewFilterState(""), KeyCategories, []string{"A", "B"})

	assert.Equal(t, []string{"1", "2"}, ids(Apply(fixture(), s)))
}

func TestApply_PriceBoundsAreInclusive(t *testing.T) {
	s := mustUpdate(t, NewFilterState(""), KeyMinPrice, 10.0)
	s = mustUpdate(t, s, KeyMaxPrice, 20.0)

	assert.Equal(t, []string{"1", "2"}, ids(Apply(fixture(), s)))
}

func TestApply_InStock(t *testing.T) {
	s := mustUpdate(t, NewFilterState(""), KeyInStock, true)
	assert.Equal(t, []string{"1", "3"}, ids(Apply(fixture(), s)))

	s = mustUpdate(t, s, KeyInStock, false)
	assert.Len(t, Apply(fixture(), s), 3)
}

func TestApply_SearchIsCaseInsensitiveOverNameAndDescription(t *testing.T) {
	s := NewFilterState("KOCIOŁ")
	assert.Equal(t, []string{"1"}, ids(Apply(fixture(), s)))

	s = mustUpdate(t, s, KeySearchQuery, "ogrodu")
	assert.Equal(t, []string{"3"}, ids(Apply(fixture(), s)))
}

func TestApply_Manufacturer(t *testing.T) {
	s := mustUpdate(t, NewFilterState(""), KeyManufacturers, []string{"grundfos", "gardena"})
	assert.Equal(t, []string{"2", "3"}, ids(Apply(fixture(), s)))
}

func TestUpdateFilter_ResetsPage(t *testing.T) {
	s := SetPage(NewFilterState(""), 3)
	require.Equal(t, 3, s.CurrentPage)

	s = mustUpdate(t, s, KeySearchQuery, "x")
	assert.Equal(t, 1, s.CurrentPage)
}

func TestUpdateFilter_SameValueKeepsPage(t *testing.T) {
	s := mustUpdate(t, NewFilterState(""), KeyCategories, []string{"A"})
	s = SetPage(s, 2)

	s = mustUpdate(t, s, KeyCategories, []string{"A", "A"})
	assert.Equal(t, 2, s.CurrentPage)
}

func TestUpdateFilter_DoesNotMutateInput(t *testing.T) {
	orig := mustUpdate(t, NewFilterState(""), KeyCategories, []string{"A"})
	_ = mustUpdate(t, orig, KeyCategories, []string{"B"})

	assert.Equal(t, []string{"A"}, orig.Categories)
}

func TestUpdateFilter_Errors(t *testing.T) {
	s := NewFilterState("")

	_, err := UpdateFilter(s, "colour", "red")
	assert.True(t, errors.Is(err, ErrUnknownFilter))

	_, err = UpdateFilter(s, KeyMinPrice, "cheap")
	assert.True(t, errors.Is(err, ErrFilterValue))

	_, err = UpdateFilter(s, KeyMinPrice, -1.0)
	assert.True(t, errors.Is(err, ErrFilterValue))

	_, err = UpdateFilter(s, KeyInStock, "yes")
	assert.True(t, errors.Is(err, ErrFilterValue))
}

func TestUpdateFilter_NilClearsBound(t *testing.T) {
	s := mustUpdate(t, NewFilterState(""), KeyMaxPrice, 100)
	require.NotNil(t, s.MaxPrice)

	s = mustUpdate(t, s, KeyMaxPrice, nil)
	assert.Nil(t, s.MaxPrice)
}

func TestClearFilters(t *testing.T) {
	s := ClearFilters()
	assert.False(t, s.HasCriteria())
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, ItemsPerPage, s.ItemsPerPage)
}

func TestSetPage_ClampsBelowOne(t *testing.T) {
	assert.Equal(t, 1, SetPage(NewFilterState(""), -4).CurrentPage)
}

func TestParseQuery(t *testing.T) {
	q := url.Values{}
	q.Add("category", "kotly,pompy")
	q.Add("category", "kotly")
	q.Set("manufacturer", "vaillant")
	q.Set("minPrice", "100")
	q.Set("maxPrice", "oops")
	q.Set("inStock", "true")
	q.Set("search", " zawór ")
	q.Set("page", "2")

	s := ParseQuery(q)
	assert.Equal(t, []string{"kotly", "pompy"}, s.Categories)
	assert.Equal(t, []string{"vaillant"}, s.Manufacturers)
	require.NotNil(t, s.MinPrice)
	assert.Equal(t, 100.0, *s.MinPrice)
	assert.Nil(t, s.MaxPrice)
	require.NotNil(t, s.InStock)
	assert.True(t, *s.InStock)
	assert.Equal(t, "zawór", s.SearchQuery)
	assert.Equal(t, 2, s.CurrentPage)

	back := ParseQuery(s.Query())
	assert.Equal(t, s.criteriaKey(), back.criteriaKey())
}

func TestFilters_NotifiesSubscribers(t *testing.T) {
	f := NewFilters("")
	var seen []FilterState
	unsubscribe := f.Subscribe(func(s FilterState) { seen = append(seen, s) })

	require.NoError(t, f.UpdateFilter(KeyCategories, []string{"A"}))
	f.SetPage(2)
	unsubscribe()
	f.ClearFilters()

	require.Len(t, seen, 2)
	assert.Equal(t, []string{"A"}, seen[0].Categories)
	assert.Equal(t, 2, seen[1].CurrentPage)
	assert.Empty(t, f.State().Categories)
}

func TestFilters_RejectedUpdateDoesNotNotify(t *testing.T) {
	f := NewFilters("")
	calls := 0
	f.Subscribe(func(FilterState) { calls++ })

	assert.Error(t, f.UpdateFilter("bogus", 1))
	assert.Zero(t, calls)
}
