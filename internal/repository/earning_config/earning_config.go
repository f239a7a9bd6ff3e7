package earning_config

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/entities"
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

// Get отдает значения по умолчанию, пока конфиг ни разу не сохраняли.
func (r *Repository) Get(ctx context.Context) (*entities.EarningConfig, error) {
	query := `
		SELECT base_distance_km, base_earning, extra_per_km, grace_period_minutes,
		       penalty_6_10, penalty_11_15, penalty_above_15, estimated_minutes_per_km, updated_at
		FROM earning_config
		WHERE id = 1
	`

	var model EarningConfigDB
	err := r.querier.QueryRow(ctx, query).Scan(
		&model.BaseDistanceKm,
		&model.BaseEarning,
		&model.ExtraPerKm,
		&model.GracePeriodMinutes,
		&model.Penalty6To10,
		&model.Penalty11To15,
		&model.PenaltyAbove15,
		&model.EstimatedMinutesPerKm,
		&model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			defaults := entities.DefaultEarningConfig()
			return &defaults, nil
		}
		return nil, fmt.Errorf("unexpected earning config repository get error: %w", err)
	}

	return ToDomain(&model), nil
}

func (r *Repository) Save(ctx context.Context, cfg entities.EarningConfig) (*entities.EarningConfig, error) {
	model := FromDomain(&cfg)

	query := `
		INSERT INTO earning_config (id, base_distance_km, base_earning, extra_per_km, grace_period_minutes,
		                            penalty_6_10, penalty_11_15, penalty_above_15, estimated_minutes_per_km, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (id) DO UPDATE SET
			base_distance_km = EXCLUDED.base_distance_km,
			base_earning = EXCLUDED.base_earning,
			extra_per_km = EXCLUDED.extra_per_km,
			grace_period_minutes = EXCLUDED.grace_period_minutes,
			penalty_6_10 = EXCLUDED.penalty_6_10,
			penalty_11_15 = EXCLUDED.penalty_11_15,
			penalty_above_15 = EXCLUDED.penalty_above_15,
			estimated_minutes_per_km = EXCLUDED.estimated_minutes_per_km,
			updated_at = NOW()
		RETURNING base_distance_km, base_earning, extra_per_km, grace_period_minutes,
		          penalty_6_10, penalty_11_15, penalty_above_15, estimated_minutes_per_km, updated_at
	`

	var saved EarningConfigDB
	err := r.querier.QueryRow(
		ctx,
		query,
		model.BaseDistanceKm,
		model.BaseEarning,
		model.ExtraPerKm,
		model.GracePeriodMinutes,
		model.Penalty6To10,
		model.Penalty11To15,
		model.PenaltyAbove15,
		model.EstimatedMinutesPerKm,
	).Scan(
		&saved.BaseDistanceKm,
		&saved.BaseEarning,
		&saved.ExtraPerKm,
		&saved.GracePeriodMinutes,
		&saved.Penalty6To10,
		&saved.Penalty11To15,
		&saved.PenaltyAbove15,
		&saved.EstimatedMinutesPerKm,
		&saved.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("unexpected earning config repository save error: %w", err)
	}

	return ToDomain(&saved), nil
}
