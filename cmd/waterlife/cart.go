package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/waterlife-shop/waterlife-backend/cart"
	"github.com/waterlife-shop/waterlife-backend/services"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cart",
		Aliases: []string{"koszyk"},
		Short:   "Show and edit the cart kept on this machine",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderCart(cmd.OutOrStdout(), a.openCart(cmd.Context()))
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <product-id> [quantity]",
			Short: "Add a product; an existing line has its quantity increased",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				product, err := a.api.Product(ctx, args[0])
				if err != nil {
					return fmt.Errorf("nie udało się pobrać produktu: %w", err)
				}
				qty := 1
				if len(args) == 2 {
					qty = cart.ParseQuantity(args[1])
				}

				store := a.openCart(ctx)
				store.AddItem(ctx, cart.LineItem{
					ID:       product.ID,
					Name:     product.Name,
					Price:    product.Price,
					ImageURL: product.MainImage(),
				}, qty)
				fmt.Fprintf(cmd.OutOrStdout(), "Dodano do koszyka: %s\n", product.Name)
				renderCart(cmd.OutOrStdout(), store)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <product-id> <quantity>",
			Short: "Set the quantity of a line; 0 removes it",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				store := a.openCart(ctx)
				store.UpdateQuantity(ctx, args[0], cart.ParseQuantity(args[1]))
				renderCart(cmd.OutOrStdout(), store)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <product-id>",
			Short: "Remove a line",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				store := a.openCart(ctx)
				store.RemoveItem(ctx, args[0])
				renderCart(cmd.OutOrStdout(), store)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				ctx := cmd.Context()
				a.openCart(ctx).Clear(ctx)
				fmt.Fprintln(cmd.OutOrStdout(), "Koszyk jest pusty")
				return nil
			},
		},
	)
	return cmd
}

func renderCart(w io.Writer, store *cart.Store) {
	items := store.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "Koszyk jest pusty")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAZWA\tCENA\tILOŚĆ\tWARTOŚĆ")
	for _, it := range items {
		line, _ := cart.Totals([]cart.LineItem{it})
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			it.ID, it.Name, services.FormatPLN(it.Price), it.Quantity, services.FormatPLN(line))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\nRazem: %s (%d szt.)\n", services.FormatPLN(store.Total()), store.ItemCount())
}
