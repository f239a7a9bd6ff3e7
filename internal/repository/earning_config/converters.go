package earning_config

import "dispatch/internal/entities"

func ToDomain(c *EarningConfigDB) *entities.EarningConfig {
	if c == nil {
		return nil
	}
	return &entities.EarningConfig{
		BaseDistanceKm:        c.BaseDistanceKm,
		BaseEarning:           c.BaseEarning,
		ExtraPerKm:            c.ExtraPerKm,
		GracePeriodMinutes:    c.GracePeriodMinutes,
		Penalty6To10:          c.Penalty6To10,
		Penalty11To15:         c.Penalty11To15,
		PenaltyAbove15:        c.PenaltyAbove15,
		EstimatedMinutesPerKm: c.EstimatedMinutesPerKm,
		UpdatedAt:             c.UpdatedAt,
	}
}

func FromDomain(c *entities.EarningConfig) *EarningConfigDB {
	if c == nil {
		return nil
	}
	return &EarningConfigDB{
		BaseDistanceKm:        c.BaseDistanceKm,
		BaseEarning:           c.BaseEarning,
		ExtraPerKm:            c.ExtraPerKm,
		GracePeriodMinutes:    c.GracePeriodMinutes,
		Penalty6To10:          c.Penalty6To10,
		Penalty11To15:         c.Penalty11To15,
		PenaltyAbove15:        c.PenaltyAbove15,
		EstimatedMinutesPerKm: c.EstimatedMinutesPerKm,
	}
}
