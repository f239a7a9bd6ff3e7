//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=events_test
package events

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type dispatcherLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Notifier interface {
	Message(delivery entities.Delivery) entities.PushMessage
	Target(delivery entities.Delivery) (entities.PushTarget, bool)
	InformsPlatform(status entities.DeliveryStatus) bool
	Webhook(delivery entities.Delivery) entities.StatusWebhook
}

type TokenRepository interface {
	ListByOwner(ctx context.Context, owner entities.PushTarget) ([]entities.PushToken, error)
	DeleteTokens(ctx context.Context, tokens []string) (int64, error)
}

// PushSender возвращает токены, которые провайдер признал недействительными.
type PushSender interface {
	Send(ctx context.Context, tokens []string, message entities.PushMessage) ([]string, error)
}

type WebhookSender interface {
	SendStatus(ctx context.Context, webhook entities.StatusWebhook) error
}

type RewardIssuer interface {
	IssueReward(ctx context.Context, reward entities.RewardRequest) error
}

type StatsRepository interface {
	RecordCompletion(ctx context.Context, driverID string, earning float64, onTime bool, at time.Time) error
	Get(ctx context.Context, driverID string) (*entities.DriverStats, error)
}

type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event entities.StatusChangedEvent) error
}
