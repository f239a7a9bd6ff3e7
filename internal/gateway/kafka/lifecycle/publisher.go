package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/metrics"
	"github.com/IBM/sarama"
)

const serviceName = "kafka"

var ErrNotConfigured = errors.New("status changed topic is not configured")

// Publisher пишет события жизненного цикла доставки в kafka.
// Ключ сообщения uid доставки: события одной доставки попадают в одну партицию.
type Publisher struct {
	producer producer
	topic    string
}

func New(producer producer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, event entities.StatusChangedEvent) error {
	if p.topic == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(toEvent(event))
	if err != nil {
		return fmt.Errorf("marshal status changed event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.UID.String()),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(eventType)},
		},
	}

	start := time.Now()
	_, _, err = p.producer.SendMessage(msg)

	code := "OK"
	if err != nil {
		code = "ERROR"
	}
	metrics.ObserveGateway(serviceName, "PublishStatusChanged", code, start, 1)

	if err != nil {
		return fmt.Errorf("publish %s of %s: %w", event.To, event.ClientID, err)
	}
	return nil
}
