package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/waterlife-shop/waterlife-backend/catalog"
	"github.com/waterlife-shop/waterlife-backend/services"
)

type productFlags struct {
	categories    []string
	manufacturers []string
	minPrice      float64
	maxPrice      float64
	inStock       bool
	search        string
	page          int
}

func newProductsCmd(a *app) *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"produkty"},
		Short:   "List products, filtered and paginated",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := f.state(cmd)
			if err != nil {
				return err
			}

			p := catalog.NewPipeline(a.api, a.logger)
			defer p.Close()
			if err := p.Refetch(cmd.Context()); err != nil {
				return fmt.Errorf("nie udało się pobrać produktów: %w", err)
			}

			renderPage(cmd.OutOrStdout(), p.View(state))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&f.categories, "category", "c", nil, "category slug, repeatable")
	cmd.Flags().StringSliceVarP(&f.manufacturers, "manufacturer", "m", nil, "manufacturer slug, repeatable")
	cmd.Flags().Float64Var(&f.minPrice, "min-price", 0, "lowest price in PLN")
	cmd.Flags().Float64Var(&f.maxPrice, "max-price", 0, "highest price in PLN")
	cmd.Flags().BoolVar(&f.inStock, "in-stock", false, "only products available now")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "text to look for in name and description")
	cmd.Flags().IntVarP(&f.page, "page", "p", 1, "page number")
	return cmd
}

// state replays the flags through the same filter updates the storefront
// applies, so page resets and set normalisation match.
func (f productFlags) state(cmd *cobra.Command) (catalog.FilterState, error) {
	filters := catalog.NewFilters(f.search)
	updates := []struct {
		key   catalog.FilterKey
		flag  string
		value any
	}{
		{catalog.KeyCategories, "category", f.categories},
		{catalog.KeyManufacturers, "manufacturer", f.manufacturers},
		{catalog.KeyMinPrice, "min-price", f.minPrice},
		{catalog.KeyMaxPrice, "max-price", f.maxPrice},
		{catalog.KeyInStock, "in-stock", f.inStock},
	}
	for _, u := range updates {
		if !cmd.Flags().Changed(u.flag) {
			continue
		}
		if err := filters.UpdateFilter(u.key, u.value); err != nil {
			return catalog.FilterState{}, fmt.Errorf("--%s: %w", u.flag, err)
		}
	}
	filters.SetPage(f.page)
	return filters.State(), nil
}

func renderPage(w io.Writer, page catalog.Page[catalog.Product]) {
	if len(page.Items) == 0 {
		fmt.Fprintln(w, catalog.StatusMessage(page))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAZWA\tKATEGORIA\tPRODUCENT\tCENA\tDOSTĘPNOŚĆ")
	for _, p := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, orDash(p.CategoryName), orDash(p.ManufacturerName),
			services.FormatPLN(p.Price), availability(p))
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, catalog.StatusMessage(page))
	if page.TotalPages > 1 {
		fmt.Fprintln(w, pageSelector(page.Number, page.TotalPages))
	}
}

// pageSelector prints the page window, e.g. "1 … 4 [5] 6 … 12".
func pageSelector(current, total int) string {
	markers := catalog.PageWindow(current, total)
	parts := make([]string, 0, len(markers))
	for _, m := range markers {
		switch {
		case m.Ellipsis:
			parts = append(parts, "…")
		case m.Current:
			parts = append(parts, fmt.Sprintf("[%d]", m.Page))
		default:
			parts = append(parts, fmt.Sprint(m.Page))
		}
	}
	return "Strony: " + strings.Join(parts, " ")
}

func availability(p catalog.Product) string {
	if p.InStock() {
		return fmt.Sprintf("dostępny (%d szt.)", p.Stock)
	}
	return "na zamówienie"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
