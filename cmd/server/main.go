package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yangart/storefront/internal/api"
	"github.com/yangart/storefront/internal/auth"
	"github.com/yangart/storefront/internal/cart"
	"github.com/yangart/storefront/internal/config"
	"github.com/yangart/storefront/internal/events"
	"github.com/yangart/storefront/internal/logging"
	"github.com/yangart/storefront/internal/metrics"
	"github.com/yangart/storefront/internal/razorpay"
	"github.com/yangart/storefront/internal/repository"
	"github.com/yangart/storefront/internal/repository/memory"
	"github.com/yangart/storefront/internal/repository/postgres"
	"github.com/yangart/storefront/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	repos, db, err := openRepositories(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	carts, closeCarts, err := openCartStore(cfg.Cart, logger)
	if err != nil {
		logger.Fatal("Failed to open cart store", zap.Error(err))
	}
	defer closeCarts()

	publisher, err := events.NewPublisher(cfg.Events, logger)
	if err != nil {
		logger.Fatal("Failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()

	registry := metrics.NewRegistry()
	tokens := auth.NewTokenIssuer(cfg.Auth)
	gateway := razorpay.NewClient(cfg.Razorpay, logger)

	services := api.Services{
		Orders: service.NewOrderService(repos, gateway, publisher, registry, carts, service.OrderConfig{
			KeySecret:         cfg.Razorpay.KeySecret,
			StrictTransitions: cfg.Orders.StrictTransitions,
		}, logger),
		Products: service.NewProductService(repos, logger),
		Offers:   service.NewOfferService(repos, logger),
		Accounts: service.NewUserService(repos, tokens, logger),
		Carts:    service.NewCartService(repos, carts, logger),
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(cfg, services, tokens, registry, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.Database.Driver),
			zap.String("events", cfg.Events.Driver),
			zap.Bool("strict_transitions", cfg.Orders.StrictTransitions),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func openRepositories(cfg *config.Config, logger *zap.Logger) (*repository.Repositories, *sql.DB, error) {
	if cfg.Database.Driver == "memory" {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositories(), nil, nil
	}

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return postgres.NewRepositories(db, logger), db, nil
}

func openCartStore(cfg config.CartConfig, logger *zap.Logger) (cart.Store, func(), error) {
	if cfg.PebbleDir == "" {
		logger.Warn("CART_PEBBLE_DIR is empty; carts are kept in memory")
		return cart.NewMemoryStore(), func() {}, nil
	}

	store, err := cart.NewPebbleStore(cfg.PebbleDir)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close cart store", zap.Error(err))
		}
	}, nil
}
