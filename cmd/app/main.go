package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plateful/chefvoice/internal/bootstrap"
	"github.com/plateful/chefvoice/internal/config"
	"github.com/plateful/chefvoice/internal/database"
	"github.com/plateful/chefvoice/internal/database/postgres"
	"github.com/plateful/chefvoice/internal/handler"
	"github.com/plateful/chefvoice/internal/recipe"
	"github.com/plateful/chefvoice/internal/server"
	"github.com/plateful/chefvoice/internal/units"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, warning := range warnings {
		slog.Warn(warning)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := bootstrap.RunMigrations(cfg.GetDBConnString(), "migrations"); err != nil {
		slog.Error("Failed to apply migrations", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	publisher, _, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	handler.InitValidator()

	if err := units.LoadAliasOverlay("configs/unit_aliases.json", "schemas/unit_aliases.schema.json"); err != nil {
		slog.Error("Failed to load unit alias overlay", "error", err)
		os.Exit(1)
	}

	recipeRepo := postgres.NewRecipeRepository(dbPool)
	conversationRepo := postgres.NewConversationRepository(dbPool)
	recipeService := recipe.NewService(recipeRepo, publisher)

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, dbPool, recipeService, conversationRepo)

	// Run the server in a goroutine so signal handling stays on main.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info(bootstrap.LogMsgShuttingDownServer)
	if err := srv.Stop(ctx); err != nil {
		slog.Error(bootstrap.LogMsgServerForcedShutdown, "error", err)
	}
	slog.Info(bootstrap.LogMsgServerStopped)
}
