package storage

import (
	"context"
	"database/sql"
	"fmt"

	"menu-bot/internal/storage/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Commands accepted by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

func init() {
	goose.SetBaseFS(migrations.FS)
}

// Migrate runs a single migration command against db.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *zap.Logger) error {
	switch command {
	case MigrateUp:
		return RunMigrations(ctx, db, logger)
	case MigrateDown:
		return RollbackMigration(ctx, db, logger)
	case MigrateStatus:
		return Status(ctx, db, logger)
	default:
		return fmt.Errorf("storage.Migrate: unknown command %q (want %s, %s or %s)",
			command, MigrateUp, MigrateDown, MigrateStatus)
	}
}

func RunMigrations(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	const operation = "storage.RunMigrations"

	logger.Info("Running database migrations...")

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%s: failed to set dialect: %w", operation, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", operation, err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

func RollbackMigration(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	const operation = "storage.RollbackMigration"

	logger.Info("Rolling back last migration...")

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%s: failed to set dialect: %w", operation, err)
	}

	if err := goose.DownContext(ctx, db, "."); err != nil {
		return fmt.Errorf("%s: failed to rollback migration: %w", operation, err)
	}

	logger.Info("Migration rollback completed")
	return nil
}

func Status(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	const operation = "storage.Status"

	logger.Info("Checking migration status...")

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%s: failed to set dialect: %w", operation, err)
	}

	if err := goose.StatusContext(ctx, db, "."); err != nil {
		return fmt.Errorf("%s: failed to check migration status: %w", operation, err)
	}

	return nil
}
