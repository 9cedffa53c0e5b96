package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/labkeeper/internal/cli"
	"github.com/dmitrijs2005/labkeeper/internal/config"
	"github.com/dmitrijs2005/labkeeper/internal/cryptox"
	"github.com/dmitrijs2005/labkeeper/internal/logging"
	"github.com/dmitrijs2005/labkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/labkeeper/internal/services"
	"github.com/dmitrijs2005/labkeeper/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(os.Stderr, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.Connect(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error(ctx, "failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	m := repomanager.NewSQLiteRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		logger.Error(ctx, "failed to run migrations", "error", err)
		os.Exit(1)
	}

	users := services.NewUserService(db, m, cryptox.NewHasher(cryptox.DefaultParams), logger)
	reservations := services.NewReservationService(db, m, logger)

	if err := users.Initialize(ctx); err != nil {
		logger.Error(ctx, "failed to initialize users", "error", err)
		os.Exit(1)
	}

	cli.NewApp(cfg, users, reservations, logger).Run(ctx)
}
