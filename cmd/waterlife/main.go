// Command waterlife is a terminal storefront for the WaterLife shop: browse
// and filter the catalog, get search suggestions, keep a cart on disk and
// send it as a quote request.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/cart"
	"github.com/waterlife-shop/waterlife-backend/client"
	"github.com/waterlife-shop/waterlife-backend/config"
)

func init() {
	_ = godotenv.Load()
}

type app struct {
	apiURL  string
	cartDir string
	verbose bool

	logger *zap.Logger
	api    *client.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "waterlife",
		Short:        "WaterLife storefront in the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetErrPrefix("Błąd:")

	root.PersistentFlags().StringVar(&a.apiURL, "api", envOr("WATERLIFE_API", "http://localhost:8081"), "shop API base URL")
	root.PersistentFlags().StringVar(&a.cartDir, "cart-dir", envOr("WATERLIFE_CART_DIR", defaultCartDir()), "directory holding the cart file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log API calls")

	root.AddCommand(
		newProductsCmd(a),
		newSearchCmd(a),
		newCartCmd(a),
		newQuoteCmd(a),
	)
	return root
}

func (a *app) init() error {
	if a.verbose {
		logger, err := config.NewLogger("development")
		if err != nil {
			return err
		}
		a.logger = logger
	} else {
		a.logger = zap.NewNop()
	}
	a.api = client.New(a.apiURL, client.WithLogger(a.logger))
	return nil
}

// openCart loads the cart file, the terminal's stand-in for browser storage.
func (a *app) openCart(ctx context.Context) *cart.Store {
	return cart.Open(ctx, cart.FileBlob{Dir: a.cartDir}, cart.StorageKey, a.logger)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultCartDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "waterlife")
	}
	return "."
}
