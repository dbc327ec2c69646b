package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/segyhp/loan-penalty/internal/config"
	"github.com/segyhp/loan-penalty/internal/handler"
	"github.com/segyhp/loan-penalty/internal/service"
)

func main() {
	// Optional .env; real environment variables win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.InitLogger(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zap.L().Sync() }()

	//Initialize service
	penaltyService := service.NewPenaltyServiceFromConfig(cfg)
	penaltyHandler := handler.NewPenaltyHandler(penaltyService)
	healthHandler := handler.NewHealthHandler()

	// Setup routes
	router := handler.NewRouter(penaltyHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		zap.L().Info("server starting",
			zap.String("addr", server.Addr),
			zap.Duration("penalty_block", cfg.GetPenaltyBlockDuration()),
			zap.String("penalty_per_block", cfg.GetPenaltyPerBlock().String()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zap.L().Fatal("server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("server exited")
}
