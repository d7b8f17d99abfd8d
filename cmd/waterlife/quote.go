package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/waterlife-shop/waterlife-backend/client"
	"github.com/waterlife-shop/waterlife-backend/models"
)

func newQuoteCmd(a *app) *cobra.Command {
	var (
		customer models.QuoteCustomer
		company  string
		nip      string
		message  string
	)
	cmd := &cobra.Command{
		Use:     "quote",
		Aliases: []string{"zapytanie"},
		Short:   "Send the cart as a quote request",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			customer.Company = optional(company)
			customer.NIP = optional(nip)
			customer.Message = optional(message)

			resp, err := a.api.SubmitCart(ctx, a.openCart(ctx), customer)
			if errors.Is(err, client.ErrEmptyCart) {
				return errors.New("koszyk jest pusty")
			}
			if err != nil {
				return fmt.Errorf("nie udało się wysłać zapytania: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Dziękujemy! Zapytanie %s zostało wysłane. Skontaktujemy się wkrótce.\n", resp.OrderNumber)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&customer.FirstName, "first-name", "", "first name")
	f.StringVar(&customer.LastName, "last-name", "", "last name")
	f.StringVar(&customer.Email, "email", "", "email address")
	f.StringVar(&customer.Phone, "phone", "", "phone number")
	f.StringVar(&company, "company", "", "company name")
	f.StringVar(&nip, "nip", "", "company tax id")
	f.StringVar(&message, "message", "", "notes for the shop")
	for _, name := range []string{"first-name", "last-name", "email", "phone"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
