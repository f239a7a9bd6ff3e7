package driver_location

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	GeoPos(ctx context.Context, key string, members ...string) *redis.GeoPosCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}
