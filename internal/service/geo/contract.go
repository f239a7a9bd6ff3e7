//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=geo_test
package geo

import (
	"context"

	"dispatch/internal/entities"
)

// Provider внешний сервис геокодинга и маршрутов.
// Пустой результат геокодинга провайдер возвращает как ErrAddressNotFound.
type Provider interface {
	Geocode(ctx context.Context, address string) (*entities.Point, error)
	RouteDistanceKm(ctx context.Context, from, to entities.Point) (float64, error)
}
