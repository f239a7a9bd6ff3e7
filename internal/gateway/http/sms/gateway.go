package sms

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"dispatch/internal/pkg/httpclient"
	"dispatch/internal/pkg/metrics"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
)

const (
	serviceName = "sms"
)

const (
	initialInterval = 500 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
	maxRetries      = 2
)

var (
	ErrNotConfigured = errors.New("sms gateway is not configured")
	ErrNoRecipients  = errors.New("sms recipients are empty")
)

type Gateway struct {
	client  client
	retrier *backoff_adapter.Retrier
	url     string
	apiKey  string
}

func New(client client, url, apiKey string) *Gateway {
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
		apiKey:  apiKey,
	}
}

// Send одна рассылка на всех получателей, номера через запятую.
func (g *Gateway) Send(ctx context.Context, to []string, message string) error {
	if g.url == "" || g.apiKey == "" {
		return ErrNotConfigured
	}
	if len(to) == 0 {
		return ErrNoRecipients
	}

	form := url.Values{
		"api_key": {g.apiKey},
		"msg":     {message},
		"to":      {strings.Join(to, ",")},
	}

	var attempt uint64
	start := time.Now()
	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return g.client.PostForm(ctx, g.url, form, nil)
	})
	metrics.ObserveGateway(serviceName, "Send", httpclient.Code(err), start, attempt)

	if err != nil {
		return fmt.Errorf("gateway sms: %w", err)
	}
	return nil
}
