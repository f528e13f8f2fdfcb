package cmd

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/internal/repositories/memory"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

// openRepositories builds the repository provider for the configured storage
// driver. The returned close func releases the database pool, if any.
func openRepositories(ctx context.Context, runMigrations bool) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage, data is lost on exit")
		return memory.NewRepositoryProvider(memory.New()), func() {}, nil
	}

	if runMigrations {
		if err := migrateUp(); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBConnectMaxRetries)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

func migrateUp() error {
	logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsPath))
	changed, err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, 0)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if changed {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}
	return nil
}
