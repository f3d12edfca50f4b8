// Package bootstrap wires configuration to a storage driver and prepares the chart of accounts.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/revenue_cycle_app/internal/platform/config"
	"github.com/SscSPs/revenue_cycle_app/internal/repositories/database/memory"
	"github.com/SscSPs/revenue_cycle_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/revenue_cycle_app/internal/seed"
	"github.com/SscSPs/revenue_cycle_app/pkg/database"
)

// Storage is an opened storage driver.
type Storage struct {
	Repos portsrepo.RepositoryProvider
	// Ping checks the backing database; nil for the memory driver.
	Ping  func(ctx context.Context) error
	Close func()
}

// OpenStorage opens the configured driver. For postgres it also applies pending migrations.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return &Storage{
			Repos: memory.NewRepositoryProvider(store),
			Close: func() {},
		}, nil

	case config.StoragePostgres:
		logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsPath))
		if err := database.MigrateUp(cfg.MigrationsPath, cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}

		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		return &Storage{
			Repos: pgsql.NewRepositoryProvider(pool),
			Ping:  pool.Ping,
			Close: func() { database.ClosePgxPool(pool, logger) },
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// SeedChartOfAccounts loads the configured seed file into the store. The memory driver is
// always seeded since it starts empty.
func SeedChartOfAccounts(ctx context.Context, cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) error {
	if !cfg.SeedOnStart && cfg.StorageDriver != config.StorageMemory {
		return nil
	}
	file, err := seed.LoadChartOfAccounts(cfg.COASeedFile)
	if err != nil {
		return err
	}
	logger.Info("Seeding chart of accounts", slog.String("file", cfg.COASeedFile), slog.Int("accounts", len(file.Accounts)))
	_, err = seed.Apply(ctx, repos.TxManager, repos.AccountRepo, file, time.Now().UTC())
	return err
}
