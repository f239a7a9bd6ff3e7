//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=earning_config_put_test
package earning_config_put

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
	UpdateConfig(ctx context.Context, modify entities.EarningConfigModify) (*entities.EarningConfig, error)
}
