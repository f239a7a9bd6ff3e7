package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"dispatch/internal/pkg/migrations"
	"dispatch/pkg/logger"
	"github.com/spf13/cobra"
)

func newMigrateCmd(log logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				migrator, closeFn, err := openMigrator(cmd, log)
				if err != nil {
					return err
				}
				defer closeFn()

				return migrator.Up(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				migrator, closeFn, err := openMigrator(cmd, log)
				if err != nil {
					return err
				}
				defer closeFn()

				statuses, err := migrator.Status(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tAPPLIED\tFILE")
				for _, s := range statuses {
					fmt.Fprintf(w, "%d\t%t\t%s\n", s.Version, s.Applied, s.Path)
				}
				return w.Flush()
			},
		},
	)

	return cmd
}

func openMigrator(cmd *cobra.Command, log logger.Logger) (*migrations.Migrator, func(), error) {
	_, pool, err := openPool(cmd.Context(), log)
	if err != nil {
		return nil, nil, err
	}

	migrator, err := migrations.New(log, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	return migrator, func() {
		if err := migrator.Close(); err != nil {
			log.Warn("close migrator", logger.Err(err))
		}
		pool.Close()
	}, nil
}
