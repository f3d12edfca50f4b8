package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/core/services"
	"github.com/SscSPs/revenue_cycle_app/internal/platform/bootstrap"
	"github.com/SscSPs/revenue_cycle_app/internal/seed"
	"github.com/spf13/cobra"
)

var seedFile string

var seedAccountsCmd = &cobra.Command{
	Use:   "seed-accounts",
	Short: "Load the chart of accounts from a YAML file",
	Long: `Upserts every account of the file by code. Running it twice is harmless.

Example:
  rc_admin seed-accounts --file configs/chart_of_accounts.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := requirePostgres(cfg); err != nil {
			return err
		}
		if seedFile == "" {
			seedFile = cfg.COASeedFile
		}

		file, err := seed.LoadChartOfAccounts(seedFile)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		storage, err := bootstrap.OpenStorage(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer storage.Close()

		result, err := seed.Apply(ctx, storage.Repos.TxManager, storage.Repos.AccountRepo, file, time.Now().UTC())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "accounts created: %d, updated: %d\n", result.Created, result.Updated)
		return nil
	},
}

var checkAccountsCmd = &cobra.Command{
	Use:   "check-accounts",
	Short: "Verify that the accounts used by automatic journals exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := requirePostgres(cfg); err != nil {
			return err
		}

		ctx := cmd.Context()
		storage, err := bootstrap.OpenStorage(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer storage.Close()

		fixed, err := services.NewChartOfAccountsService(storage.Repos.AccountRepo).FixedAccounts(ctx)
		if err != nil {
			logger.Error("Chart of accounts is incomplete", slog.String("error", err.Error()))
			return err
		}
		for _, a := range []struct {
			role string
			code string
			name string
		}{
			{"cash", fixed.Cash.Code, fixed.Cash.Name},
			{"receivable", fixed.Receivable.Code, fixed.Receivable.Name},
			{"sales revenue", fixed.SalesRevenue.Code, fixed.SalesRevenue.Name},
			{"other income", fixed.OtherIncome.Code, fixed.OtherIncome.Name},
		} {
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s %s\n", a.role, a.code, a.name)
		}
		return nil
	},
}

func init() {
	seedAccountsCmd.Flags().StringVar(&seedFile, "file", "", "chart of accounts YAML (default COA_SEED_FILE)")
}
