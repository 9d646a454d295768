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

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/router"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/pkg/logger"
)

// mockapi serves a local product collection with the same contract as the hosted one.
// Point the dashboard at it with PRODUCT_RESOURCE_URL=http://localhost:8081/product.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	var repo *repository.InMemoryProductRepository
	if cfg.MockAPI.Seed {
		repo = repository.NewSeededProductRepository()
	} else {
		repo = repository.NewInMemoryProductRepository()
	}

	productService := service.NewProductService(repo, validator.New(validator.WithRequiredStructEnabled()))

	r := router.NewResource(
		handlers.NewHealthHandler("mockapi", log),
		handlers.NewResourceHandler(productService, log),
		log,
	)

	addr := fmt.Sprintf("%s:%s", cfg.MockAPI.Host, cfg.MockAPI.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("mock product resource listening", "address", addr, "seeded", cfg.MockAPI.Seed)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
