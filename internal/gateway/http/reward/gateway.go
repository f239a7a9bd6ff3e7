package reward

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
	serviceName = "reward-api"
	dateLayout  = "2006-01-02"
)

const (
	initialInterval = 200 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
	maxRetries      = 2
)

var ErrNotConfigured = errors.New("reward url is not configured")

type issuePayload struct {
	UserID       string  `json:"user_id"`
	RewardAmount float64 `json:"reward_amount"`
	RewardType   string  `json:"reward_type"`
	OrderID      string  `json:"order_id"`
	ExpiryDate   string  `json:"expiry_date"`
}

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

func (g *Gateway) IssueReward(ctx context.Context, reward entities.RewardRequest) error {
	if g.url == "" {
		return ErrNotConfigured
	}

	payload := issuePayload{
		UserID:       reward.UserID,
		RewardAmount: reward.Amount,
		RewardType:   reward.RewardType,
		OrderID:      reward.OrderID,
		ExpiryDate:   reward.ExpiryDate.UTC().Format(dateLayout),
	}

	var attempt uint64
	start := time.Now()
	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return g.client.DoJSON(ctx, http.MethodPost, g.url, nil, payload, nil)
	})
	metrics.ObserveGateway(serviceName, "IssueReward", httpclient.Code(err), start, attempt)

	if err != nil {
		return fmt.Errorf("gateway reward, order %s: %w", reward.OrderID, err)
	}
	return nil
}
