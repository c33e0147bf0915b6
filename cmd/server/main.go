package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/darlink/rental-booking-backend/internal/app"
	"github.com/darlink/rental-booking-backend/internal/config"
	"github.com/darlink/rental-booking-backend/internal/db"
	"github.com/darlink/rental-booking-backend/internal/hold"
	"github.com/darlink/rental-booking-backend/internal/logger"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.IsProduction, cfg.LogFile)

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logrus.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	// Booking hold store: Redis when configured, in-process otherwise.
	holdStore := hold.NewMemoryStore()
	if cfg.RedisURL != "" {
		redisClient, err := hold.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logrus.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		holdStore = hold.NewRedisStore(redisClient)
	}

	// Assemble all modules
	container := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		DBPool:       pool,
		HoldStore:    holdStore,
		HoldTTL:      cfg.HoldTTL,
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTAccessTokenTTL,
		BcryptCost:   cfg.BcryptCost,
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		logrus.Infof("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logrus.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("server forced to shutdown: %v", err)
	}

	logrus.Info("server exited gracefully")
}
