package push

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/metrics"
	"firebase.google.com/go/v4/messaging"
)

const (
	serviceName = "fcm"

	// лимит FCM на один multicast
	maxBatchSize = 500
)

// Gateway рассылает пуши через Firebase Cloud Messaging.
type Gateway struct {
	client         client
	isInvalidToken func(error) bool
}

func New(client client) *Gateway {
	return &Gateway{
		client:         client,
		isInvalidToken: invalidToken,
	}
}

func invalidToken(err error) bool {
	return messaging.IsUnregistered(err) ||
		messaging.IsInvalidArgument(err) ||
		messaging.IsSenderIDMismatch(err)
}

// Send возвращает токены, от которых FCM отказался навсегда.
// Ошибка возвращается только если не дошло ни одно сообщение.
func (g *Gateway) Send(ctx context.Context, tokens []string, message entities.PushMessage) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	var (
		invalid   []string
		delivered int
		lastErr   error
	)

	for start := 0; start < len(tokens); start += maxBatchSize {
		end := min(start+maxBatchSize, len(tokens))
		batch := tokens[start:end]

		resp, err := g.send(ctx, batch, message)
		if err != nil {
			lastErr = err
			continue
		}

		delivered += resp.SuccessCount
		for i, r := range resp.Responses {
			if r == nil || r.Success || i >= len(batch) {
				continue
			}
			lastErr = r.Error
			if g.isInvalidToken(r.Error) {
				invalid = append(invalid, batch[i])
			}
		}
	}

	if delivered == 0 && lastErr != nil {
		return invalid, fmt.Errorf("gateway fcm, %d tokens: %w", len(tokens), lastErr)
	}
	return invalid, nil
}

func (g *Gateway) send(ctx context.Context, tokens []string, message entities.PushMessage) (*messaging.BatchResponse, error) {
	start := time.Now()
	resp, err := g.client.SendEachForMulticast(ctx, toMulticast(tokens, message))

	code := "OK"
	if err != nil {
		code = "ERROR"
	} else if resp.FailureCount > 0 {
		code = "PARTIAL"
	}
	metrics.ObserveGateway(serviceName, "SendEachForMulticast", code, start, 1)

	return resp, err
}

func toMulticast(tokens []string, message entities.PushMessage) *messaging.MulticastMessage {
	data := make(map[string]string, len(message.Data)+3)
	for k, v := range message.Data {
		data[k] = v
	}
	data["campaign_title"] = message.Title
	data["campaign_message"] = message.Body
	data["sent_at"] = strconv.FormatInt(time.Now().Unix(), 10)

	return &messaging.MulticastMessage{
		Tokens: tokens,
		Data:   data,
		Notification: &messaging.Notification{
			Title: message.Title,
			Body:  message.Body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound:          "default",
					MutableContent: true,
				},
			},
		},
	}
}
