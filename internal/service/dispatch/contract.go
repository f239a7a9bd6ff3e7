//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_test
package dispatch

import (
	"context"
	"time"

	"dispatch/internal/entities"
)

type Repository interface {
	ListWaitingSince(ctx context.Context, since time.Time) ([]entities.Delivery, error)
	ListWaitingInBox(ctx context.Context, box entities.BoundingBox, since time.Time) ([]entities.Delivery, error)
}

// LocationStore последние координаты водителей. Нет записи - ErrDriverLocationUnknown.
type LocationStore interface {
	Save(ctx context.Context, location entities.DriverLocation) error
	Get(ctx context.Context, driverID string) (*entities.DriverLocation, error)
}
