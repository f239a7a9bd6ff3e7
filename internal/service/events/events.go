package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/metrics"
	"dispatch/internal/service/earning"
	"dispatch/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// Dispatcher выполняет побочные эффекты перехода статуса после коммита.
// Каждый эффект независим, ошибки логируются и не возвращаются.
type Dispatcher struct {
	log       dispatcherLogger
	notifier  Notifier
	tokens    TokenRepository
	push      PushSender
	webhook   WebhookSender
	rewards   RewardIssuer
	stats     StatsRepository
	publisher EventPublisher
	timeout   time.Duration
}

type Deps struct {
	Notifier  Notifier
	Tokens    TokenRepository
	Push      PushSender
	Webhook   WebhookSender
	Rewards   RewardIssuer
	Stats     StatsRepository
	Publisher EventPublisher
}

func New(log dispatcherLogger, deps Deps, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Dispatcher{
		log: log.With(
			logger.NewField("component", "event_dispatcher"),
		),
		notifier:  deps.Notifier,
		tokens:    deps.Tokens,
		push:      deps.Push,
		webhook:   deps.Webhook,
		rewards:   deps.Rewards,
		stats:     deps.Stats,
		publisher: deps.Publisher,
		timeout:   timeout,
	}
}

func (d *Dispatcher) OnTransition(ctx context.Context, from entities.DeliveryStatus, delivery entities.Delivery) {
	if from == delivery.Status {
		return
	}

	// запрос мог уже завершиться, эффекты живут своим таймаутом
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	log := d.log.With(
		logger.NewField("delivery_id", delivery.ID),
		logger.NewField("client_id", delivery.ClientID),
		logger.NewField("from", from.String()),
		logger.NewField("to", delivery.Status.String()),
	)

	d.notify(ctx, log, delivery)

	if d.notifier.InformsPlatform(delivery.Status) {
		d.informPlatform(ctx, log, delivery)
	}

	if delivery.Status == entities.StatusDeliverySuccess {
		d.recordCompletion(ctx, log, delivery)
		d.issueReward(ctx, log, delivery)
	}

	d.publish(ctx, log, from, delivery)
}

func (d *Dispatcher) GetDriverStats(ctx context.Context, driverID string) (*entities.DriverStats, error) {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	stats, err := d.stats.Get(ctx, driverID)
	if err != nil {
		if errors.Is(err, ErrStatsNotFound) {
			return &entities.DriverStats{DriverID: driverID}, nil
		}
		return nil, fmt.Errorf("get driver stats: %w", err)
	}
	return stats, nil
}

func (d *Dispatcher) notify(ctx context.Context, log logger.Logger, delivery entities.Delivery) {
	target, ok := d.notifier.Target(delivery)
	if !ok {
		metrics.NotificationsTotal.WithLabelValues(metrics.ChannelPush, metrics.OutcomeSkipped).Inc()
		return
	}

	tokens, err := d.tokens.ListByOwner(ctx, target)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.ChannelPush, metrics.OutcomeFailed).Inc()
		log.Error("list push tokens", logger.Err(err))
		return
	}
	if len(tokens) == 0 {
		metrics.NotificationsTotal.WithLabelValues(metrics.ChannelPush, metrics.OutcomeSkipped).Inc()
		return
	}

	values := make([]string, 0, len(tokens))
	for _, t := range tokens {
		values = append(values, t.Token)
	}

	invalid, err := d.push.Send(ctx, values, d.notifier.Message(delivery))
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.ChannelPush, metrics.OutcomeFailed).Inc()
		log.Error("send push", logger.Err(err), logger.NewField("tokens", len(values)))
	} else {
		metrics.NotificationsTotal.WithLabelValues(metrics.ChannelPush, metrics.OutcomeSent).Inc()
	}

	if len(invalid) == 0 {
		return
	}

	removed, err := d.tokens.DeleteTokens(ctx, invalid)
	if err != nil {
		log.Warn("delete invalid push tokens", logger.Err(err))
		return
	}
	log.Info("invalid push tokens removed", logger.NewField("removed", removed))
}

func (d *Dispatcher) informPlatform(ctx context.Context, log logger.Logger, delivery entities.Delivery) {
	if err := d.webhook.SendStatus(ctx, d.notifier.Webhook(delivery)); err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.ChannelWebhook, metrics.OutcomeFailed).Inc()
		log.Error("send status webhook", logger.Err(err))
		return
	}
	metrics.NotificationsTotal.WithLabelValues(metrics.ChannelWebhook, metrics.OutcomeSent).Inc()
}

func (d *Dispatcher) recordCompletion(ctx context.Context, log logger.Logger, delivery entities.Delivery) {
	if delivery.DriverID == nil || delivery.ActualDeliveryCompletedTime == nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.ChannelStats, metrics.OutcomeSkipped).Inc()
		return
	}

	completedAt := *delivery.ActualDeliveryCompletedTime
	onTime := !completedAt.After(delivery.EstDeliveryCompletedTime)

	err := d.stats.RecordCompletion(ctx, *delivery.DriverID, delivery.DriverEarning, onTime, completedAt)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.ChannelStats, metrics.OutcomeFailed).Inc()
		log.Error("record driver completion", logger.Err(err))
		return
	}
	metrics.NotificationsTotal.WithLabelValues(metrics.ChannelStats, metrics.OutcomeSent).Inc()
}

func (d *Dispatcher) issueReward(ctx context.Context, log logger.Logger, delivery entities.Delivery) {
	reward, ok := earning.RewardFor(delivery, time.Now().UTC())
	if !ok {
		metrics.NotificationsTotal.WithLabelValues(metrics.ChannelReward, metrics.OutcomeSkipped).Inc()
		return
	}

	if err := d.rewards.IssueReward(ctx, reward); err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.ChannelReward, metrics.OutcomeFailed).Inc()
		log.Error("issue guarantee reward",
			logger.Err(err),
			logger.NewField("user_id", reward.UserID),
			logger.NewField("amount", reward.Amount),
		)
		return
	}
	metrics.NotificationsTotal.WithLabelValues(metrics.ChannelReward, metrics.OutcomeSent).Inc()
	log.Info("guarantee reward issued", logger.NewField("amount", reward.Amount))
}

func (d *Dispatcher) publish(ctx context.Context, log logger.Logger, from entities.DeliveryStatus, delivery entities.Delivery) {
	event := entities.StatusChangedEvent{
		DeliveryID: delivery.ID,
		UID:        delivery.UID,
		ClientID:   delivery.ClientID,
		From:       from,
		To:         delivery.Status,
		DriverID:   delivery.DriverID,
		OccurredAt: time.Now().UTC(),
	}

	if err := d.publisher.PublishStatusChanged(ctx, event); err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.ChannelEvent, metrics.OutcomeFailed).Inc()
		log.Error("publish status changed event", logger.Err(err))
		return
	}
	metrics.NotificationsTotal.WithLabelValues(metrics.ChannelEvent, metrics.OutcomeSent).Inc()
}
