//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=push_token_delete_test
package push_token_delete

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
	Unregister(ctx context.Context, owner entities.PushTarget, token string) error
}
