//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, delivery entities.Delivery) (*entities.Delivery, error)
	GetByID(ctx context.Context, id int64) (*entities.Delivery, error)
	GetByClientID(ctx context.Context, clientID string) (*entities.Delivery, error)
	GetByUID(ctx context.Context, uid uuid.UUID) (*entities.Delivery, error)
	GetForUpdate(ctx context.Context, id int64) (*entities.Delivery, error)

	// Claim возвращает ErrClaimRejected, если условие claim не выполнилось.
	Claim(ctx context.Context, id int64, driverID string, at time.Time) (*entities.Delivery, error)
	Update(ctx context.Context, modify entities.DeliveryModify) (*entities.Delivery, error)

	ListUnclaimedReadyBefore(ctx context.Context, readyBefore time.Time) ([]entities.Delivery, error)
	// FailUnclaimed возвращает ErrClaimRejected, если доставку успели забрать.
	FailUnclaimed(ctx context.Context, id int64, reason string) (*entities.Delivery, error)

	ListByDriver(ctx context.Context, driverID string, statuses []entities.DeliveryStatus) ([]entities.Delivery, error)
	List(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, error)
}

type GeoResolver interface {
	Resolve(ctx context.Context, provider entities.GeoProvider, address string) (entities.Point, error)
	DistanceKm(ctx context.Context, provider entities.GeoProvider, from, to entities.Point) (float64, error)
}

type EarningPolicy interface {
	Quote(ctx context.Context, distanceKm float64, pickupReadyAt time.Time) (entities.Quote, error)
	Finalize(ctx context.Context, delivery entities.Delivery) (entities.EarningResult, error)
}

// EventDispatcher вызывается после коммита, ошибок не возвращает.
type EventDispatcher interface {
	OnTransition(ctx context.Context, from entities.DeliveryStatus, delivery entities.Delivery)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
