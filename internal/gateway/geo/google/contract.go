//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=google_test
package google

import (
	"context"

	"googlemaps.github.io/maps"
)

type client interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
