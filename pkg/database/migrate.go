package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// MigrateUp applies every pending migration found at sourceURL (e.g. "file://migrations").
func MigrateUp(sourceURL, databaseURL string, logger *slog.Logger) error {
	return withMigrator(sourceURL, databaseURL, logger, func(m *migrate.Migrate) error {
		err := m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No new migrations to apply")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		logger.Info("Database migrations applied successfully")
		return nil
	})
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(sourceURL, databaseURL string, steps int, logger *slog.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive")
	}
	return withMigrator(sourceURL, databaseURL, logger, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}
		logger.Info("Database migrations rolled back", slog.Int("steps", steps))
		return nil
	})
}

// withMigrator opens a short-lived database/sql connection through the pgx stdlib driver, the
// same driver family as the application pool, and hands a migrate instance to fn.
func withMigrator(sourceURL, databaseURL string, logger *slog.Logger, fn func(m *migrate.Migrate) error) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	runErr := fn(m)
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		logger.Warn("Failed to close migrator", slog.Any("source_error", sourceErr), slog.Any("database_error", dbErr))
	}
	return runErr
}
