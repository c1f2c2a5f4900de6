package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bobby-s-dev/weather-dashboard/internal/api"
	"github.com/bobby-s-dev/weather-dashboard/internal/config"
	"github.com/bobby-s-dev/weather-dashboard/internal/dataset"
	"github.com/bobby-s-dev/weather-dashboard/internal/scheduler"
	"github.com/bobby-s-dev/weather-dashboard/internal/services"
	"github.com/bobby-s-dev/weather-dashboard/pkg/client"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	logger, err := config.NewLogger(cfg.Server.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting Weather Dashboard Service")

	// Load dataset
	store := dataset.NewStore(cfg.Dataset.Path, logger)
	if _, err := store.Load(); err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}

	// Initialize prediction service client
	forecastClient := client.NewForecastClient(cfg.Forecast.BackendURL, client.ClientConfig{
		Timeout:        cfg.Forecast.Timeout,
		MaxRetries:     cfg.Retry.MaxRetries,
		RetryDelay:     cfg.Retry.Delay,
		Multiplier:     cfg.Retry.Multiplier,
		Threshold:      cfg.CircuitBreaker.Threshold,
		BreakerTimeout: cfg.CircuitBreaker.Timeout,
	}, logger)
	logger.Info("Forecast client initialized", zap.String("backend", cfg.Forecast.BackendURL))

	dashboard := services.NewDashboard(cfg, store, forecastClient, logger)
	defer dashboard.Close()

	// Initialize scheduler
	reloadScheduler := scheduler.NewScheduler(dashboard, cfg.Dataset.ReloadSchedule, logger)

	app := newApp(cfg, dashboard, reloadScheduler, logger)

	if err := reloadScheduler.Start(); err != nil {
		logger.Fatal("Failed to start scheduler",
			zap.String("schedule", cfg.Dataset.ReloadSchedule),
			zap.Error(err))
	}

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reloadScheduler.Stop()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// newApp creates the Fiber app with the dashboard routes mounted.
func newApp(cfg *config.Config, dashboard *services.Dashboard, status api.StatusProvider, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	handler := api.NewHandler(dashboard, status, cfg.Calendar.MaxRangeDays, logger)
	api.SetupRoutes(app, handler, logger)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	// Default to 500 status code
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   err.Error(),
		"success": false,
	})
}
