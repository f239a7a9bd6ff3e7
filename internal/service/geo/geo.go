package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
)

const defaultTimeout = 5 * time.Second

// Resolver выбирает провайдера по доставке и ограничивает каждый вызов таймаутом.
// Наружу отдает только ErrAddressNotFound, ErrGeoUnavailable и ErrUnknownProvider.
type Resolver struct {
	providers map[entities.GeoProvider]Provider
	timeout   time.Duration
}

func New(timeout time.Duration, providers map[entities.GeoProvider]Provider) *Resolver {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Resolver{
		providers: providers,
		timeout:   timeout,
	}
}

func (r *Resolver) Resolve(ctx context.Context, provider entities.GeoProvider, address string) (entities.Point, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return entities.Point{}, ErrEmptyAddress
	}

	p, err := r.provider(provider)
	if err != nil {
		return entities.Point{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	point, err := p.Geocode(ctx, address)
	if err != nil {
		return entities.Point{}, mapProviderError(provider, "geocode", err)
	}
	if point == nil || !point.IsValid() {
		return entities.Point{}, fmt.Errorf("%s geocode %q: %w", provider, address, ErrAddressNotFound)
	}
	return *point, nil
}

func (r *Resolver) DistanceKm(ctx context.Context, provider entities.GeoProvider, from, to entities.Point) (float64, error) {
	p, err := r.provider(provider)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	km, err := p.RouteDistanceKm(ctx, from, to)
	if err != nil {
		return 0, mapProviderError(provider, "route", err)
	}
	if km < 0 {
		return 0, fmt.Errorf("%s route: negative distance: %w", provider, ErrGeoUnavailable)
	}
	return entities.Round2(km), nil
}

func (r *Resolver) provider(name entities.GeoProvider) (Provider, error) {
	if name == "" {
		name = entities.DefaultGeoProvider
	}
	p, ok := r.providers[name]
	if !ok || p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

func mapProviderError(provider entities.GeoProvider, op string, err error) error {
	if errors.Is(err, ErrAddressNotFound) {
		return fmt.Errorf("%s %s: %w", provider, op, ErrAddressNotFound)
	}
	return fmt.Errorf("%s %s: %w: %w", provider, op, ErrGeoUnavailable, err)
}
