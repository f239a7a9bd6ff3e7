//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_expiry_test
package delivery_expiry

import (
	"context"

	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ExpireUnclaimed(ctx context.Context) (int64, error)
}
