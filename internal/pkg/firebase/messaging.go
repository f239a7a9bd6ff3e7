package firebase

import (
	"context"
	"fmt"

	"dispatch/internal/pkg/config"
	"dispatch/pkg/logger"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// NewMessagingClient клиент FCM. Без файла ключа используются
// Application Default Credentials окружения.
func NewMessagingClient(ctx context.Context, log logger.Logger, cfg *config.Firebase) (*messaging.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialising firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialising firebase messaging client: %w", err)
	}

	log.Info("Firebase messaging client created",
		logger.NewField("credentials_file", cfg.CredentialsFile != ""),
	)
	return client, nil
}
