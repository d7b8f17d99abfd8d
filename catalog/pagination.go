package catalog

import "fmt"

// Page is one slice of a longer list. From and To are 1-based positions of the
// first and last item shown, both 0 when the page is empty.
type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	From       int `json:"from"`
	To         int `json:"to"`
}

// Paginate returns page number page of items. Pages below 1 are treated as 1;
// pages past the end are empty.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage < 1 {
		perPage = ItemsPerPage
	}
	if page < 1 {
		page = 1
	}
	total := len(items)
	pg := Page[T]{
		Items:      []T{},
		Number:     page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: TotalPages(total, perPage),
	}

	start := (page - 1) * perPage
	if start >= total {
		return pg
	}
	end := min(start+perPage, total)
	pg.Items = items[start:end]
	pg.From = start + 1
	pg.To = end
	return pg
}

// TotalPages is ceil(total / perPage).
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage < 1 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// PrevPage returns the page before current, staying on the first page.
func PrevPage(current int) int {
	if current <= 1 {
		return 1
	}
	return current - 1
}

// NextPage returns the page after current, staying on the last page.
func NextPage(current, totalPages int) int {
	if current >= totalPages {
		return max(current, 1)
	}
	return current + 1
}

// PageMarker is one entry of a page selector: a page number or an ellipsis.
type PageMarker struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// PageWindow lays out the page selector: the first and last page, the current
// page and its neighbours. A gap of exactly one page shows that page, a wider
// gap collapses into an ellipsis.
func PageWindow(current, totalPages int) []PageMarker {
	if totalPages < 1 {
		return nil
	}
	current = min(max(current, 1), totalPages)

	shown := []int{1}
	for _, n := range []int{current - 1, current, current + 1, totalPages} {
		if n > shown[len(shown)-1] && n <= totalPages {
			shown = append(shown, n)
		}
	}

	out := make([]PageMarker, 0, len(shown)+2)
	prev := 0
	for _, n := range shown {
		switch gap := n - prev - 1; {
		case prev == 0 || gap == 0:
		case gap == 1:
			out = append(out, PageMarker{Page: prev + 1})
		default:
			out = append(out, PageMarker{Ellipsis: true})
		}
		out = append(out, PageMarker{Page: n, Current: n == current})
		prev = n
	}
	return out
}

// StatusMessage is the "showing X–Y of Z" line under the product grid.
func StatusMessage[T any](p Page[T]) string {
	if p.Total == 0 || len(p.Items) == 0 {
		return "Brak produktów"
	}
	noun := "produktów"
	if p.Total == 1 {
		noun = "produktu"
	}
	return fmt.Sprintf("Wyświetlanie %d–%d z %d %s", p.From, p.To, p.Total, noun)
}
