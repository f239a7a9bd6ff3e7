package delivery_expiry

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

// DeliveryExpiry закрывает доставки, которые никто не взял вовремя.
type DeliveryExpiry struct {
	log      handlerLogger
	service  Service
	interval time.Duration
}

func NewDeliveryExpiry(log handlerLogger, service Service, interval time.Duration) *DeliveryExpiry {
	return &DeliveryExpiry{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (d *DeliveryExpiry) TTL() time.Duration {
	return d.interval
}

// Do незакрытая из-за ошибки запись останется кандидатом и попадет в следующий проход.
func (d *DeliveryExpiry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, d.interval)
	defer cancel()

	start := time.Now()
	expired, err := d.service.ExpireUnclaimed(ctxWithTimeout)

	if expired > 0 {
		d.log.Info("delivery expiry",
			logger.NewField("expired_deliveries", expired),
			logger.Duration("took", time.Since(start)),
		)
	}

	return err
}

func (d *DeliveryExpiry) Info() string {
	return "delivery expiry"
}
