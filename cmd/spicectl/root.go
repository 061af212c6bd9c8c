// Package main implements spicectl, the terminal client for the Spiceshop
// storefront and its back office.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/spiceshop/storefront-go/internal/account"
	"github.com/spiceshop/storefront-go/internal/admin"
	"github.com/spiceshop/storefront-go/internal/cart"
	"github.com/spiceshop/storefront-go/internal/catalog"
	"github.com/spiceshop/storefront-go/internal/notify"
	"github.com/spiceshop/storefront-go/internal/orders"
	"github.com/spiceshop/storefront-go/internal/session"
	"github.com/spiceshop/storefront-go/pkg/api"
	"github.com/spiceshop/storefront-go/pkg/config"
	"github.com/spiceshop/storefront-go/pkg/logger"
)

// app holds everything a command needs, wired once in PersistentPreRunE.
type app struct {
	cfg      *config.Config
	logger   *logger.Logger
	client   *api.Client
	sessions *session.Store
	banners  *notify.Center
}

var runtime app

var rootCmd = &cobra.Command{
	Use:   "spicectl",
	Short: "Spiceshop storefront and back office from the terminal",
	Long: `spicectl is the terminal client for the Spiceshop storefront: browse the
spice catalog, manage a cart, place orders, and run the admin back office.

Configuration comes from SPICESHOP_* environment variables or a .env file;
SPICESHOP_BACKEND_URL is the only required one.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logg := logger.New(logger.Options{ServiceName: "spicectl"})

		if err := godotenv.Load(); err != nil {
			logg.Debug(cmd.Context(), ".env file not found, relying on environment")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logg = logger.New(logger.Options{
			ServiceName: "spicectl",
			Level:       logger.ParseLevel(cfg.App.LogLevel),
			WarnStack:   cfg.App.LogWarnStack,
		})

		sessions, err := session.NewStore(cfg.Session, logg)
		if err != nil {
			return err
		}
		if err := sessions.Init(cmd.Context()); err != nil {
			return err
		}

		client, err := api.NewClient(cfg.Backend, logg, sessions)
		if err != nil {
			return err
		}

		runtime = app{
			cfg:      cfg,
			logger:   logg,
			client:   client,
			sessions: sessions,
			banners:  notify.NewCenter(),
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		flushBanners()
	},
}

func init() {
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(adminCmd)
}

// commandContext returns a context cancelled by Ctrl-C, so an in-flight
// mutation aborts instead of committing after the user gave up.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func cartStore() (*cart.Store, error) {
	return cart.NewStore(
		runtime.client,
		cart.PricingFromConfig(runtime.cfg.Shop),
		runtime.banners,
		runtime.cfg.Banner.CartTTL,
		runtime.logger,
	)
}

func accountService() (*account.Service, error) {
	return account.NewService(runtime.client, runtime.banners, runtime.cfg.Banner.FormTTL, runtime.logger)
}

func adminConsole() (*admin.Console, error) {
	return admin.NewConsole(runtime.client, runtime.sessions, runtime.banners, runtime.cfg.Banner.FormTTL, runtime.logger)
}

func shopCatalog() (*catalog.Shop, error) {
	return catalog.NewShop(runtime.client, runtime.logger)
}

func catalogManager() (*catalog.Manager, error) {
	return catalog.NewManager(
		runtime.client,
		runtime.cfg.Shop.AdminSpicesPageSize,
		runtime.banners,
		runtime.cfg.Banner.FormTTL,
		runtime.logger,
	)
}

func orderHistory() (*orders.History, error) {
	return orders.NewHistory(runtime.client, runtime.logger)
}

func orderDesk() (*orders.Desk, error) {
	return orders.NewDesk(
		runtime.client,
		runtime.cfg.Shop.AdminOrdersPageSize,
		runtime.banners,
		runtime.cfg.Banner.FormTTL,
		runtime.logger,
	)
}
