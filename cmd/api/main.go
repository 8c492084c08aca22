package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/text/language"

	"github.com/yarotec/storefront/api/routes"
	"github.com/yarotec/storefront/internal/browse"
	"github.com/yarotec/storefront/internal/cart"
	"github.com/yarotec/storefront/internal/catalog"
	"github.com/yarotec/storefront/internal/checkout"
	"github.com/yarotec/storefront/pkg/config"
	"github.com/yarotec/storefront/pkg/kv"
	"github.com/yarotec/storefront/pkg/logger"
	"github.com/yarotec/storefront/pkg/metrics"
	"github.com/yarotec/storefront/pkg/money"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	storage, closeStorage, err := kv.Open(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open cart storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStorage(); err != nil {
			logg.Error(context.Background(), "error closing cart storage", err)
		}
	}()

	formatter := money.NewFormatter(cfg.Locale.Tag, cfg.Locale.CurrencySymbol)

	sources, err := catalog.Sources(cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "invalid catalog configuration", err)
		os.Exit(1)
	}
	products := catalog.NewStore(catalog.StoreParams{
		Sources: sources,
		Logger:  logg,
		Metrics: m,
	})
	if _, err := products.Load(context.Background()); err != nil {
		logg.Error(context.Background(), "catalog unavailable, serving empty", err)
	}

	transport, err := checkout.NewTransport(cfg.Relay, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to configure relay transport", err)
		os.Exit(1)
	}
	relay := checkout.NewMailRelay(checkout.MailRelayParams{
		OwnerEmail: cfg.Relay.OwnerEmail,
		Transport:  transport,
		Logger:     logg,
		Metrics:    m,
	})
	checkoutService, err := checkout.NewService(relay, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	carts := cart.NewRegistry(cart.RegistryParams{
		Namespace: cfg.Storage.Namespace,
		KV:        storage,
		Logger:    logg,
		Metrics:   m,
		Formatter: formatter,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"storage":        cfg.Storage.Driver,
		"relay":          transport.Name(),
		"catalog_source": products.Source(),
	})
	logg.Info(ctx, "starting storefront api")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:    cfg,
			Logger:    logg,
			Storage:   storage,
			Catalog:   products,
			Projector: browse.NewProjector(formatter, language.Make(cfg.Locale.Tag)),
			Carts:     carts,
			Checkout:  checkoutService,
			Gatherer:  reg,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "storefront api stopped")
}
