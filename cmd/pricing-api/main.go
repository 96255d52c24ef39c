// Package main is the entry point for the pricing API service: the price
// calculation engine plus the saved-seller collection behind a REST API.
//
// 12-Factor App compilance:
//   - I. Codebase: Single codebase tracked in version control
//   - II. Dependencies: Managed via go.mod
//   - III. Config: Configuration via environment variables
//   - VI. Processes: Stateless processes
//   - VII. Port Binding: Self-contained HTTP server
//   - IX. Disposability: Graceful shutdown
//   - XI. Logs: Structured logging to stdout
//
// Usage:
//
//	go run cmd/pricing-api/main.go
//
// Environment Variables:
//
//	SHIRABERU_ENVIRONMENT - Deployment environment (development, staging, production)
//	SHIRABERU_SERVER_PORT - HTTP server port (default: 8080)
//	SHIRABERU_STORAGE_PATH - SQLite database path (default: pricing.db)
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/shiraberu/pricing-go/internal/application/service"
	"github.com/shiraberu/pricing-go/internal/domain/pricing"
	"github.com/shiraberu/pricing-go/internal/infrastructure/config"
	"github.com/shiraberu/pricing-go/internal/infrastructure/logging"
	"github.com/shiraberu/pricing-go/internal/infrastructure/persistance/sqlite"
	"github.com/shiraberu/pricing-go/internal/interfaces/http/handler"
	"github.com/shiraberu/pricing-go/internal/interfaces/http/middleware"
	"github.com/shiraberu/pricing-go/pkg/logger"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log := logger.MustNew(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.App.Environment == "development",
	})
	defer log.Sync()

	log.Info("Starting pricing API",
		"version", version,
		"environment", cfg.App.Environment,
	)

	// Create context that listens for shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logAdapter := logging.NewAdapter(log)

	// ============================================================================
	// Storage
	// ============================================================================

	db, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		log.Fatal("Failed to open database", "path", cfg.Storage.Path, "error", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations", "error", err)
	}

	// ============================================================================
	// Services
	// ============================================================================

	pricingService, err := service.NewPricingService(pricing.Resolve(cfg.Pricing), logAdapter)
	if err != nil {
		log.Fatal("Invalid pricing configuration", "error", err)
	}

	sellerRepo := sqlite.NewSellerRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	appStateRepo := sqlite.NewAppStateRepository(db)

	sellerService := service.NewSellerService(sellerRepo, categoryRepo, appStateRepo, logAdapter)
	exportService := service.NewExportService(sellerRepo, categoryRepo, logAdapter)

	pricingHandler := handler.NewPricingHandler(pricingService)
	sellerHandler := handler.NewSellerHandler(sellerService, exportService)
	healthHandler := handler.NewHealthHandler(db, version)

	// ============================================================================
	// Router and middleware stack
	// ============================================================================
	// Order matters! Middleware is executed in the order added.

	r := chi.NewRouter()

	// 1. Request ID generation/propagation
	r.Use(middleware.RequestID)

	// 2. Logging (after Request ID so it's included in logs)
	r.Use(middleware.Logger(logAdapter))

	// 3. Panic recovery
	r.Use(middleware.Recoverer(logAdapter))

	// 4. CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 5. Rate limiting
	rateLimiterConfig := middleware.DefaultRateLimiterConfig()
	rateLimiterConfig.RequestedPerSecond = cfg.Server.RateLimit
	rateLimiterConfig.Burst = cfg.Server.RateBurst
	r.Use(middleware.RateLimiter(rateLimiterConfig))

	// 6. Content-Type enforcement
	r.Use(middleware.ContentTypeJSON)

	// ============================================================================
	// Routes
	// ============================================================================

	r.Get("/health", healthHandler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/pricing", pricingHandler.Routes())
		r.Mount("/", sellerHandler.Routes())
	})

	// ============================================================================
	// HTTP server
	// ============================================================================

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Info("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server shutdown complete")
}
