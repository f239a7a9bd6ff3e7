package main

import (
	"encoding/json"

	"dispatch/internal/dto"
	earningConfigRepo "dispatch/internal/repository/earning_config"
	"dispatch/internal/service/earning"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/spf13/cobra"
)

func newEarningConfigCmd(log logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "earning-config",
		Short: "Inspect the driver earning config",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the active earning config as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, pool, err := openPool(ctx, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			policy := earning.New(earningConfigRepo.New(querier.New(pool, pgxv5.DefaultCtxGetter)))
			cfg, err := policy.Config(ctx)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.FromEarningConfig(*cfg))
		},
	})

	return cmd
}
