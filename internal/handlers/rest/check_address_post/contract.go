//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=check_address_post_test
package check_address_post

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
	Quote(ctx context.Context, cmd entities.CheckAddress) (*entities.Quote, error)
}
