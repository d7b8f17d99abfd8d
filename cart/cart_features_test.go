package cart_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cucumber/godog"

	"github.com/waterlife-shop/waterlife-backend/cart"
	"github.com/waterlife-shop/waterlife-backend/client"
	"github.com/waterlife-shop/waterlife-backend/models"
)

type cartTestContext struct {
	store *cart.Store
	// shopStatus is what the quote endpoint answers with.
	shopStatus int
	shop       *httptest.Server
	received   []models.QuoteRequest
}

func (c *cartTestContext) startShop() {
	c.shop = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.QuoteRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		c.received = append(c.received, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(c.shopStatus)
		if c.shopStatus == http.StatusCreated {
			_ = json.NewEncoder(w).Encode(models.QuoteResponse{Success: true, OrderID: "o1", OrderNumber: "WL-20261016-000001"})
			return
		}
		_ = json.NewEncoder(w).Encode(models.QuoteResponse{Error: "Serwis chwilowo niedostępny"})
	}))
}

func (c *cartTestContext) anEmptyCart() error {
	c.store = cart.Open(context.Background(), cart.NewMemoryBlob(), cart.StorageKey, nil)
	return nil
}

func (c *cartTestContext) iAddOfNamedPriced(qty int, id, name string, price float64) error {
	c.store.AddItem(context.Background(), cart.LineItem{ID: id, Name: name, Price: price}, qty)
	return nil
}

func (c *cartTestContext) iSetTheQuantityOfTo(id string, qty int) error {
	c.store.UpdateQuantity(context.Background(), id, qty)
	return nil
}

func (c *cartTestContext) submitQuote(status int) error {
	c.shopStatus = status
	_, err := client.New(c.shop.URL).SubmitCart(context.Background(), c.store, models.QuoteCustomer{
		FirstName: "Jan",
		LastName:  "Kowalski",
		Email:     "jan@kowalski.pl",
		Phone:     "500600700",
	})
	if len(c.received) == 0 {
		return errors.New("quote request never reached the shop")
	}
	return err
}

func (c *cartTestContext) theQuoteRequestSucceeds() error {
	return c.submitQuote(http.StatusCreated)
}

func (c *cartTestContext) theQuoteRequestFails() error {
	var apiErr *client.APIError
	if err := c.submitQuote(http.StatusServiceUnavailable); !errors.As(err, &apiErr) {
		return fmt.Errorf("expected an api error, got %v", err)
	}
	return nil
}

func (c *cartTestContext) theCartHasLineItems(n int) error {
	if got := len(c.store.Items()); got != n {
		return fmt.Errorf("expected %d line items, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) theQuantityOfIs(id string, qty int) error {
	for _, it := range c.store.Items() {
		if it.ID == id {
			if it.Quantity != qty {
				return fmt.Errorf("expected quantity %d for %s, got %d", qty, id, it.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("line item %s not in cart", id)
}

func (c *cartTestContext) theCartTotalIs(total float64) error {
	if got := c.store.Total(); got != total {
		return fmt.Errorf("expected total %.2f, got %.2f", total, got)
	}
	return nil
}

func (c *cartTestContext) theCartItemCountIs(n int) error {
	if got := c.store.ItemCount(); got != n {
		return fmt.Errorf("expected item count %d, got %d", n, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.startShop()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		tc.shop.Close()
		tc.received = nil
		return ctx, err
	})

	ctx.Step(`^an empty cart$`, tc.anEmptyCart)

	ctx.Step(`^I add (\d+) of "([^"]*)" named "([^"]*)" priced ([\d.]+)$`, tc.iAddOfNamedPriced)
	ctx.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOfTo)
	ctx.Step(`^the quote request succeeds$`, tc.theQuoteRequestSucceeds)
	ctx.Step(`^the quote request fails$`, tc.theQuoteRequestFails)

	ctx.Step(`^the cart has (\d+) line items$`, tc.theCartHasLineItems)
	ctx.Step(`^the quantity of "([^"]*)" is (\d+)$`, tc.theQuantityOfIs)
	ctx.Step(`^the cart total is ([\d.]+)$`, tc.theCartTotalIs)
	ctx.Step(`^the cart item count is (\d+)$`, tc.theCartItemCountIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
