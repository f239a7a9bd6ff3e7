//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=pushtoken_test
package pushtoken

import (
	"context"

	"dispatch/internal/entities"
)

type Repository interface {
	Upsert(ctx context.Context, token entities.PushToken) (*entities.PushToken, error)
	Delete(ctx context.Context, owner entities.PushTarget, token string) error
}
