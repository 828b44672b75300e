package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourorg/rentalhub/internal/infrastructure/logger"
	"github.com/yourorg/rentalhub/internal/migrate"
	"github.com/yourorg/rentalhub/pkg/config"
	"github.com/yourorg/rentalhub/pkg/database"
)

// The server applies migrations at startup; this CLI exists for running
// them against a database ahead of a deploy, and for seeding on demand.
func main() {
	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the rental portal database schema",
	}

	rootCmd.AddCommand(upCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply the schema; safe to run repeatedly",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.NewLogger(cfg.LogLevel)

			pool, err := database.Connect(cmd.Context(), cfg.DatabaseURL, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			return migrate.Up(cmd.Context(), pool.DB(), log)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo fixtures; skipped when users already exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.NewLogger(cfg.LogLevel)

			pool, err := database.Connect(cmd.Context(), cfg.DatabaseURL, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := migrate.Up(cmd.Context(), pool.DB(), log); err != nil {
				return err
			}
			return migrate.Seed(cmd.Context(), pool.DB(), log)
		},
	}
}
