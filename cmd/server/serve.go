package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"kpi-dashboard/internal/adapters/http/middleware"
	"kpi-dashboard/internal/adapters/http/routes"
	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/adapters/persistence/repositories"
	"kpi-dashboard/internal/config"
	"kpi-dashboard/internal/core/services"
	"kpi-dashboard/internal/pkg/redisstore"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate, seed and start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			log.WithError(err).Error("Failed to close database")
		}
	}()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		return err
	}
	log.Info("Database migration completed")

	if err := config.NewSeeder(db, cfg.Seed, log).Run(ctx); err != nil {
		log.WithError(err).Warn("Failed to seed database")
	}

	storage, err := rateLimitStorage(ctx)
	if err != nil {
		return err
	}
	if storage != nil {
		defer storage.Close()
	}

	// Purges expired and revoked refresh tokens
	cronService := services.NewCronService(
		repositories.NewRefreshTokenRepository(db),
		cfg.Cron.TokenCleanup,
		log.WithField("service", "cron"),
	)
	if err := cronService.Start(); err != nil {
		return err
	}
	defer cronService.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "KPI Dashboard API v1",
		ErrorHandler: middleware.NewErrorHandler(log),
	})

	middleware.Setup(app, cfg, log, storage)
	routes.Setup(app, db, cfg, log, storage)

	go gracefulShutdown(app)

	log.WithField("mode", cfg.AppMode).Infof("Server starting on port %s", cfg.Port)
	return app.Listen(":" + cfg.Port)
}

// rateLimitStorage connects to Redis when REDIS_URL is set. A nil storage
// keeps rate-limit counters in process memory.
func rateLimitStorage(ctx context.Context) (fiber.Storage, error) {
	if cfg.Redis.URL == "" {
		return nil, nil
	}

	client, err := redisstore.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, err
	}

	log.Info("Rate limiter backed by Redis")
	return redisstore.New(client, "kpi:limiter:"), nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("Error during shutdown")
	}
	log.Info("Server stopped gracefully")
}
