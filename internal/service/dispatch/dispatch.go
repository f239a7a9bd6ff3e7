package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"dispatch/internal/entities"
)

type Settings struct {
	WaitingWindow   time.Duration
	DefaultRadiusKm float64
	MaxRadiusKm     float64
}

func DefaultSettings() Settings {
	return Settings{
		WaitingWindow:   3 * time.Hour,
		DefaultRadiusKm: 3,
		MaxRadiusKm:     50,
	}
}

// Matcher выдача доставок водителям. Доставки не изменяет.
type Matcher struct {
	repository Repository
	locations  LocationStore
	settings   Settings
}

func New(repository Repository, locations LocationStore, settings Settings) *Matcher {
	defaults := DefaultSettings()
	if settings.WaitingWindow <= 0 {
		settings.WaitingWindow = defaults.WaitingWindow
	}
	if settings.DefaultRadiusKm <= 0 {
		settings.DefaultRadiusKm = defaults.DefaultRadiusKm
	}
	if settings.MaxRadiusKm <= 0 {
		settings.MaxRadiusKm = defaults.MaxRadiusKm
	}

	return &Matcher{
		repository: repository,
		locations:  locations,
		settings:   settings,
	}
}

// ListWaiting доставки без водителя, созданные за последние WaitingWindow, новые первыми.
func (m *Matcher) ListWaiting(ctx context.Context) ([]entities.Delivery, error) {
	since := time.Now().UTC().Add(-m.settings.WaitingWindow)

	deliveries, err := m.repository.ListWaitingSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list waiting deliveries: %w", err)
	}
	return deliveries, nil
}

// ListNearby доставки в радиусе от водителя, созданные за последние WaitingWindow,
// по возрастанию расстояния до точки забора.
func (m *Matcher) ListNearby(ctx context.Context, query entities.NearbyQuery) ([]entities.DeliveryWithDistance, error) {
	radius := query.RadiusKm
	switch {
	case radius == 0:
		radius = m.settings.DefaultRadiusKm
	case radius < 0 || radius > m.settings.MaxRadiusKm:
		return nil, fmt.Errorf("%w: %.2f km", ErrInvalidRadius, radius)
	}

	origin, err := m.origin(ctx, query)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().Add(-m.settings.WaitingWindow)

	candidates, err := m.repository.ListWaitingInBox(ctx, boundingBox(origin, radius), since)
	if err != nil {
		return nil, fmt.Errorf("list deliveries in box: %w", err)
	}

	result := make([]entities.DeliveryWithDistance, 0, len(candidates))
	for _, d := range candidates {
		if d.Pickup.Point == nil || d.CreatedAt.Before(since) {
			continue
		}
		km := haversineKm(origin, *d.Pickup.Point)
		if km > radius {
			continue
		}
		result = append(result, entities.DeliveryWithDistance{
			Delivery:           d,
			DistanceToDriverKm: entities.Round2(km),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceToDriverKm < result[j].DistanceToDriverKm
	})
	return result, nil
}

func (m *Matcher) origin(ctx context.Context, query entities.NearbyQuery) (entities.Point, error) {
	if query.Point != nil {
		if !query.Point.IsValid() {
			return entities.Point{}, ErrInvalidPoint
		}
		return *query.Point, nil
	}

	if strings.TrimSpace(query.DriverID) == "" {
		return entities.Point{}, ErrDriverLocationUnknown
	}

	location, err := m.locations.Get(ctx, query.DriverID)
	if err != nil {
		if errors.Is(err, ErrDriverLocationUnknown) {
			return entities.Point{}, ErrDriverLocationUnknown
		}
		return entities.Point{}, fmt.Errorf("get driver location: %w", err)
	}
	if !location.Point.IsValid() {
		return entities.Point{}, ErrDriverLocationUnknown
	}
	return location.Point, nil
}

func (m *Matcher) UpdateLocation(ctx context.Context, driverID string, point entities.Point) error {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return ErrInvalidDriverID
	}
	if !point.IsValid() {
		return ErrInvalidPoint
	}

	err := m.locations.Save(ctx, entities.DriverLocation{
		DriverID:  driverID,
		Point:     point,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("save driver location: %w", err)
	}
	return nil
}
