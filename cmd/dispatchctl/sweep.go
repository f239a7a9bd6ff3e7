package main

import (
	"fmt"

	"dispatch/internal/app"
	"dispatch/internal/pkg/firebase"
	"dispatch/internal/pkg/kafka"
	"dispatch/pkg/logger"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/spf13/cobra"
)

func newSweepCmd(log logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Fail unclaimed deliveries past the expiry window once",
		Long:  `sweep runs the same pass as the service background task: every waiting delivery nobody claimed in time becomes delivery_failed and its notifications are sent.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, pool, err := openPool(ctx, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			fcm, err := firebase.NewMessagingClient(ctx, log, &cfg.Firebase)
			if err != nil {
				return fmt.Errorf("firebase: %w", err)
			}

			producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
			if err != nil {
				return fmt.Errorf("kafka producer: %w", err)
			}
			defer func() {
				if err := producer.Close(); err != nil {
					log.Warn("close kafka producer", logger.Err(err))
				}
			}()

			cliApp, err := app.InitializeCLIApp(ctx, log, pool, pgxv5.DefaultCtxGetter, fcm, producer, cfg)
			if err != nil {
				return fmt.Errorf("business logic: %w", err)
			}

			expired, err := cliApp.DeliveryService.ExpireUnclaimed(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "expired deliveries: %d\n", expired)
			return err
		},
	}
}
