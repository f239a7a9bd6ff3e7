//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=push_token_post_test
package push_token_post

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
	Register(ctx context.Context, token entities.PushToken) (*entities.PushToken, error)
}
