package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/httpclient"
	"dispatch/internal/pkg/metrics"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "ordering-platform"
)

const (
	initialInterval = 200 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
	maxRetries      = 3
)

var ErrNotConfigured = errors.New("webhook url is not configured")

// Gateway сообщает платформе заказов о смене статуса доставки.
type Gateway struct {
	client  client
	retrier *backoff_adapter.Retrier
	url     string
}

func New(client client, url string) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		MaxRetries:      maxRetries,
		ShouldRetry:     httpclient.IsRetryable,
	}

	return &Gateway{
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
		url:     url,
	}
}

func (g *Gateway) SendStatus(ctx context.Context, webhook entities.StatusWebhook) error {
	if g.url == "" {
		return ErrNotConfigured
	}

	payload := toPayload(webhook)

	var attempt uint64
	start := time.Now()
	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return g.client.DoJSON(ctx, http.MethodPost, g.url, nil, payload, nil)
	})
	metrics.ObserveGateway(serviceName, "SendStatus", httpclient.Code(err), start, attempt)

	if err != nil {
		return fmt.Errorf("gateway webhook, status %s of %s: %w", webhook.Status, webhook.ClientID, err)
	}
	return nil
}
