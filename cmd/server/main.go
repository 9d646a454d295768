package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/auth"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/inventory"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/router"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting admin dashboard server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"product_resource", cfg.Inventory.ResourceURL,
	)

	// Inventory synchronizer against the remote collection
	client := inventory.NewClient(inventory.ClientConfig{
		ResourceURL: cfg.Inventory.ResourceURL,
		Timeout:     time.Duration(cfg.Inventory.RequestTimeout) * time.Second,
		RateLimit:   cfg.Inventory.RateLimit,
		RateBurst:   cfg.Inventory.RateBurst,
	}, nil)
	products := inventory.NewSynchronizer(client, log)

	// Access gate and routing guard read the same cookie independently
	gate := auth.NewGate(auth.CookieConfig{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.CookieSecure,
	}, time.Duration(cfg.Auth.SessionTTLHours)*time.Hour, log)

	guard := middleware.GuardRules{
		CookieName:        cfg.Auth.CookieName,
		LoginPath:         cfg.Auth.LoginPath,
		DashboardPath:     cfg.Auth.DashboardPath,
		ProtectedPrefixes: cfg.Auth.ProtectedPrefixes,
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	r := router.NewDashboard(router.DashboardDeps{
		Guard:          guard,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Health:         handlers.NewHealthHandler("dashboard", log),
		Auth:           handlers.NewAuthHandler(gate, guard.LoginPath, guard.DashboardPath, log),
		Dashboard:      handlers.NewDashboardHandler(gate, products, log),
		Products:       handlers.NewProductHandler(products, validate, log),
		Logger:         log,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Initial load runs in the background; the product list reports loading until it finishes
	loadCtx, cancelLoad := context.WithCancel(context.Background())
	defer cancelLoad()
	go func() {
		if err := products.Load(loadCtx); err == nil {
			log.Info("product collection loaded", "count", len(products.Products()))
		}
	}()

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	cancelLoad()

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
