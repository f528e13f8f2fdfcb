package cmd

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/spf13/cobra"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back database migrations",
	Example:   "ledger_backend migrate up\nledger_backend migrate down --steps 1",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
	RunE:      runMigrate,
}

func init() {
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 0, "number of migrations to apply (0 = all)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if cfg.StorageDriver != config.StoragePostgres {
		return fmt.Errorf("migrations require STORAGE_DRIVER=%s", config.StoragePostgres)
	}
	if migrateSteps < 0 {
		return fmt.Errorf("--steps must not be negative")
	}

	direction := database.MigrateDirection(args[0])
	changed, err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, direction, migrateSteps)
	if err != nil {
		logger.Error("Migration failed", slog.String("direction", args[0]), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Migration finished",
		slog.String("direction", args[0]),
		slog.Int("steps", migrateSteps),
		slog.Bool("changed", changed))
	return nil
}
