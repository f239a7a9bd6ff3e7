package main

import (
	"context"
	"fmt"

	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/postgres"
	"dispatch/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func newRootCmd(log logger.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "dispatchctl",
		Short:         "Admin tool for the delivery dispatch service",
		Long:          `dispatchctl applies database migrations, runs the unclaimed delivery sweep once and inspects the driver earning config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(log),
		newSweepCmd(log),
		newEarningConfigCmd(log),
	)

	return root
}

// openPool конфиг читается на каждую команду: help не должен требовать окружения.
func openPool(ctx context.Context, log logger.Logger) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.LoadCLI()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}
	return cfg, pool, nil
}
