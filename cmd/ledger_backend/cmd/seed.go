package cmd

import (
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/seed"
	"github.com/spf13/cobra"
)

var (
	seedFile        string
	seedWorkplaceID string
	seedUserID      string
	seedMigrate     bool
)

var seedCmd = &cobra.Command{
	Use:     "seed",
	Short:   "Load currencies, exchange rates and a chart of accounts from YAML",
	Example: "ledger_backend seed --file seed.yaml --workplace wp-1 --user admin",
	RunE:    runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "seed file")
	seedCmd.Flags().StringVar(&seedWorkplaceID, "workplace", "", "workplace id to seed")
	seedCmd.Flags().StringVar(&seedUserID, "user", "", "user id recorded in audit fields")
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", false, "apply pending migrations first")
	_ = seedCmd.MarkFlagRequired("workplace")
	_ = seedCmd.MarkFlagRequired("user")
}

func runSeed(cmd *cobra.Command, args []string) error {
	file, err := seed.LoadFile(seedFile)
	if err != nil {
		return err
	}

	repos, closeRepos, err := openRepositories(cmd.Context(), seedMigrate)
	if err != nil {
		return err
	}
	defer closeRepos()

	svc := services.NewServiceContainer(repos)
	res, err := seed.Apply(cmd.Context(), svc, seedWorkplaceID, seedUserID, file)
	if err != nil {
		logger.Error("Seeding failed", slog.String("file", seedFile), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Seeding finished",
		slog.String("workplace_id", seedWorkplaceID),
		slog.Int("currencies", res.Currencies),
		slog.Int("exchange_rates", res.ExchangeRates),
		slog.Int("accounts", res.Accounts),
		slog.Int("skipped", res.Skipped))
	return nil
}
