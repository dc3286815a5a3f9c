package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/mealshop/gateway"
	"github.com/example/mealshop/pkg/config"
	"github.com/example/mealshop/pkg/logging"
	"github.com/example/mealshop/pkg/repository"
)

func main() {
	// Load config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := logging.New(&cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting server",
		zap.String("address", cfg.Server.Addr()),
		zap.String("database", cfg.MongoDB.Database))

	// Connect to MongoDB
	mongo, err := repository.NewMongo(&cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := mongo.Ping(ctx); err != nil {
		logger.Fatal("MongoDB ping failed", zap.Error(err))
	}
	cancel()
	logger.Info("MongoDB connected successfully")

	// Connect to Redis (one-time verification codes)
	rdb := repository.NewRedisRepository(&cfg.Redis)
	if err := rdb.Ping(context.Background()); err != nil {
		logger.Warn("Redis connection failed", zap.Error(err))
	} else {
		logger.Info("Redis connected successfully")
	}

	// Create gateway
	gw := gateway.NewGateway(cfg, logger, gateway.Stores{
		Users:     mongo.Users(),
		Products:  mongo.Products(),
		Packages:  mongo.Packages(),
		Orders:    mongo.Orders(),
		Dashboard: mongo.Dashboard(),
		OTP:       rdb,
	})
	gw.SetupRoutes()

	// Start gateway in goroutine
	gwErr := make(chan error, 1)
	go func() {
		if err := gw.Start(); err != nil {
			gwErr <- err
		}
	}()

	logger.Info("Server started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-gwErr:
		logger.Fatal("Gateway error", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := mongo.Close(shutdownCtx); err != nil {
		logger.Error("Failed to close MongoDB connection", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		logger.Error("Failed to close Redis connection", zap.Error(err))
	}

	logger.Info("Server stopped")
}
