//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_requested_test
package delivery_requested

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Create(ctx context.Context, cmd entities.CreateDelivery) (*entities.Delivery, error)
}
