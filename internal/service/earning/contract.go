//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=earning_test
package earning

import (
	"context"

	"dispatch/internal/entities"
)

type ConfigRepository interface {
	Get(ctx context.Context) (*entities.EarningConfig, error)
	Save(ctx context.Context, cfg entities.EarningConfig) (*entities.EarningConfig, error)
}
