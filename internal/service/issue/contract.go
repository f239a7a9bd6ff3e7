//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=issue_test
package issue

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Repository interface {
	Create(ctx context.Context, issue entities.DeliveryIssue) (*entities.DeliveryIssue, error)
}

type DeliveryGetter interface {
	GetByClientID(ctx context.Context, clientID string) (*entities.Delivery, error)
}

type SMSSender interface {
	Send(ctx context.Context, to []string, message string) error
}
