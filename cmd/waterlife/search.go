package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/waterlife-shop/waterlife-backend/search"
	"github.com/waterlife-shop/waterlife-backend/services"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		selectRow int
		local     bool
	)
	cmd := &cobra.Command{
		Use:     "search <text>",
		Aliases: []string{"szukaj"},
		Short:   "Show search suggestions and where Enter would take you",
		Long: "Shows up to 5 suggestions for the text. --select N highlights the N-th row " +
			"(1-based); the printed target is the product page of the highlighted row, " +
			"or the full results page when nothing is highlighted.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			out := cmd.OutOrStdout()
			if utf8.RuneCountInString(query) < search.MinQueryLength {
				fmt.Fprintf(out, "Wpisz co najmniej %d znaki.\n", search.MinQueryLength)
				return nil
			}

			var suggester search.Suggester = a.api
			if local {
				suggester = search.SourceSuggester{Source: a.api}
			}
			box := search.NewBox(cmd.Context(), suggester, search.SuggestDelay, a.logger)

			// Replay the text one keystroke at a time; only the settled input
			// is looked up.
			runes := []rune(query)
			for i := range runes {
				box.Type(string(runes[:i+1]))
			}
			box.Flush()
			if err := box.Err(); err != nil {
				return fmt.Errorf("nie udało się pobrać podpowiedzi: %w", err)
			}

			panel := box.Panel
			for range selectRow {
				panel.Down()
			}
			renderSuggestions(out, panel)
			fmt.Fprintln(out, "→", box.Enter())
			return nil
		},
	}
	cmd.Flags().IntVar(&selectRow, "select", 0, "row to highlight, 0 for none")
	cmd.Flags().BoolVar(&local, "local", false, "match against the full product list instead of asking the server")
	return cmd
}

func renderSuggestions(w io.Writer, panel *search.Suggestions) {
	results := panel.Results()
	if len(results) == 0 {
		fmt.Fprintln(w, "Brak podpowiedzi")
		return
	}
	selected := panel.Selected()
	for i, p := range results {
		marker := " "
		if i == selected {
			marker = ">"
		}
		fmt.Fprintf(w, "%s %s  %s\n", marker, p.Name, services.FormatPLN(p.Price))
	}
}
