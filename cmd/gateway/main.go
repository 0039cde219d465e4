package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/secondbowl/storefront-gateway/api/routes"
	"github.com/secondbowl/storefront-gateway/internal/cart"
	checkoutsvc "github.com/secondbowl/storefront-gateway/internal/checkout"
	"github.com/secondbowl/storefront-gateway/internal/connectivity"
	"github.com/secondbowl/storefront-gateway/internal/events"
	"github.com/secondbowl/storefront-gateway/internal/orders"
	"github.com/secondbowl/storefront-gateway/internal/profile"
	"github.com/secondbowl/storefront-gateway/pkg/backend"
	"github.com/secondbowl/storefront-gateway/pkg/config"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
	"github.com/secondbowl/storefront-gateway/pkg/metrics"
	"github.com/secondbowl/storefront-gateway/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	gatewayMetrics := metrics.NewGatewayMetrics(registry)

	backendClient, err := backend.NewClient(cfg.Backend, gatewayMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to build backend client", err)
		os.Exit(1)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewBus()
	carts := cart.NewStore(cfg.Cart.IdleTTL)
	carts.StartJanitor(runCtx, cfg.Cart.JanitorInterval)

	orderService := orders.NewService(backendClient, redisClient, bus, cfg.Cache, logg, gatewayMetrics)
	profileService := profile.NewService(backendClient, redisClient, bus, cfg.Cache, logg, gatewayMetrics)
	checkoutService := checkoutsvc.NewService(carts, orderService, logg)

	monitor := connectivity.NewMonitor(backendClient, cfg.Connectivity, logg, gatewayMetrics)
	monitor.Start(runCtx)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront gateway")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, carts, checkoutService, orderService, profileService, monitor, registry),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "gateway stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
