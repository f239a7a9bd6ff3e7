package earning_config

import "time"

type EarningConfigDB struct {
	BaseDistanceKm        float64
	BaseEarning           float64
	ExtraPerKm            float64
	GracePeriodMinutes    float64
	Penalty6To10          float64
	Penalty11To15         float64
	PenaltyAbove15        float64
	EstimatedMinutesPerKm float64
	UpdatedAt             time.Time
}
