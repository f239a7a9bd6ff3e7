package earning

import (
	"fmt"

	"dispatch/internal/entities"
)

func validateConfig(cfg entities.EarningConfig) error {
	nonNegative := map[string]float64{
		"base_distance_km":         cfg.BaseDistanceKm,
		"base_earning":             cfg.BaseEarning,
		"extra_per_km":             cfg.ExtraPerKm,
		"grace_period_minutes":     cfg.GracePeriodMinutes,
		"estimated_minutes_per_km": cfg.EstimatedMinutesPerKm,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, name)
		}
	}

	percentages := map[string]float64{
		"penalty_6_10":     cfg.Penalty6To10,
		"penalty_11_15":    cfg.Penalty11To15,
		"penalty_above_15": cfg.PenaltyAbove15,
	}
	for name, v := range percentages {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: %s must be within 0..100", ErrInvalidConfig, name)
		}
	}
	return nil
}
