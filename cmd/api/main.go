// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/infrastructure/cartstore"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	httpserver "github.com/your-org/storefront-backend/internal/interfaces/http"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg)
	appLogger.Infof("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to Redis (cart store + rate limiting)
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		appLogger.Fatalf("Redis health check failed: %v", err)
	}

	// Catalog provider against the CMS gateway
	provider := catalog.NewHTTPProvider(cfg.Catalog.BaseURL, &http.Client{
		Timeout: cfg.Catalog.RequestTimeout,
	}, appLogger)

	// Probe the gateway once at startup so a misconfigured base URL
	// shows up immediately; failure is not fatal, the gateway may just
	// not be up yet
	probeCtx, cancelProbe := context.WithTimeout(context.Background(), cfg.Catalog.RequestTimeout)
	if _, err := provider.Products(probeCtx); err != nil {
		appLogger.WithError(err).Warn("Catalog gateway not reachable at startup")
	}
	cancelProbe()

	// Wire the cart engine and checkout service
	store := cartstore.NewRedis(redisClient.GetClient(), cfg.Cart.SessionTTL)
	cartEngine := cart.NewEngine(store, appLogger)
	checkoutService := checkout.NewService(cartEngine, provider, appLogger)

	// Create and start HTTP server
	server := httpserver.NewServer(cfg, appLogger, redisClient.GetClient(), provider, cartEngine, checkoutService)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			appLogger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down gracefully")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		appLogger.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	appLogger.Info("Server shutdown completed")
}
