package driver_location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/service/dispatch"
	"github.com/redis/go-redis/v9"
)

const (
	geoKey           = "dispatch:drivers"
	updatedKeyPrefix = "dispatch:drivers:updated:"
)

type Repository struct {
	client RedisClient
	ttl    time.Duration
}

// New ttl ограничивает время жизни отметки обновления. Ноль - без ограничения.
func New(client RedisClient, ttl time.Duration) *Repository {
	return &Repository{
		client: client,
		ttl:    ttl,
	}
}

func (r *Repository) Save(ctx context.Context, location entities.DriverLocation) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.GeoAdd(ctx, geoKey, &redis.GeoLocation{
			Name:      location.DriverID,
			Longitude: location.Point.Lng,
			Latitude:  location.Point.Lat,
		})
		pipe.Set(ctx, updatedKey(location.DriverID), location.UpdatedAt.UTC().Format(time.RFC3339Nano), r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("unexpected driver location repository save error: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, driverID string) (*entities.DriverLocation, error) {
	positions, err := r.client.GeoPos(ctx, geoKey, driverID).Result()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver location repository get error: %w", err)
	}
	if len(positions) == 0 || positions[0] == nil {
		return nil, dispatch.ErrDriverLocationUnknown
	}

	location := &entities.DriverLocation{
		DriverID: driverID,
		Point: entities.Point{
			Lat: positions[0].Latitude,
			Lng: positions[0].Longitude,
		},
	}

	raw, err := r.client.Get(ctx, updatedKey(driverID)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// отметка истекла, координаты считаем устаревшими
		if r.ttl > 0 {
			return nil, dispatch.ErrDriverLocationUnknown
		}
	case err != nil:
		return nil, fmt.Errorf("unexpected driver location repository get error: %w", err)
	default:
		if updatedAt, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			location.UpdatedAt = updatedAt
		}
	}

	return location, nil
}

func updatedKey(driverID string) string {
	return updatedKeyPrefix + driverID
}
