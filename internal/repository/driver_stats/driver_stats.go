package driver_stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/service/events"
	"github.com/jackc/pgx/v5"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// RecordCompletion атомарно прибавляет одну завершенную доставку к истории водителя.
func (r *Repository) RecordCompletion(ctx context.Context, driverID string, earning float64, onTime bool, at time.Time) error {
	var onTimeInc int64
	if onTime {
		onTimeInc = 1
	}

	query := `
		INSERT INTO driver_stats (driver_id, total_deliveries, total_earnings, on_time_deliveries, last_delivered_at)
		VALUES ($1, 1, $2, $3, $4)
		ON CONFLICT (driver_id) DO UPDATE SET
			total_deliveries = driver_stats.total_deliveries + 1,
			total_earnings = driver_stats.total_earnings + EXCLUDED.total_earnings,
			on_time_deliveries = driver_stats.on_time_deliveries + EXCLUDED.on_time_deliveries,
			last_delivered_at = GREATEST(driver_stats.last_delivered_at, EXCLUDED.last_delivered_at)
	`

	_, err := r.querier.Exec(ctx, query, driverID, earning, onTimeInc, at)
	if err != nil {
		return fmt.Errorf("unexpected driver stats repository record error: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, driverID string) (*entities.DriverStats, error) {
	query := `
		SELECT driver_id, total_deliveries, total_earnings, on_time_deliveries, last_delivered_at
		FROM driver_stats
		WHERE driver_id = $1
	`

	var stats entities.DriverStats
	err := r.querier.QueryRow(ctx, query, driverID).Scan(
		&stats.DriverID,
		&stats.TotalDeliveries,
		&stats.TotalEarnings,
		&stats.OnTimeDeliveries,
		&stats.LastDeliveredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrStatsNotFound
		}
		return nil, fmt.Errorf("unexpected driver stats repository get error: %w", err)
	}

	stats.TotalEarnings = entities.Round2(stats.TotalEarnings)
	return &stats, nil
}
