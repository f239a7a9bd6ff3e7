package entities

import (
	"math"
	"time"
)

// EarningConfig настройки расчета заработка водителя, одна запись на систему.
type EarningConfig struct {
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

func DefaultEarningConfig() EarningConfig {
	return EarningConfig{
		BaseDistanceKm:        10,
		BaseEarning:           25,
		ExtraPerKm:            3,
		GracePeriodMinutes:    5,
		Penalty6To10:          50,
		Penalty11To15:         50,
		PenaltyAbove15:        70,
		EstimatedMinutesPerKm: 3.5,
	}
}

type EarningConfigModify struct {
	BaseDistanceKm        *float64
	BaseEarning           *float64
	ExtraPerKm            *float64
	GracePeriodMinutes    *float64
	Penalty6To10          *float64
	Penalty11To15         *float64
	PenaltyAbove15        *float64
	EstimatedMinutesPerKm *float64
}

// Estimate заработок за дистанцию без штрафов.
func (c EarningConfig) Estimate(distanceKm float64) float64 {
	d := Round2(distanceKm)
	if d <= c.BaseDistanceKm {
		return Round2(c.BaseEarning)
	}
	return Round2(c.BaseEarning + (d-c.BaseDistanceKm)*c.ExtraPerKm)
}

// Penalty процент штрафа за опоздание в минутах.
func (c EarningConfig) Penalty(delayMinutes float64) float64 {
	switch {
	case delayMinutes <= 0, delayMinutes <= c.GracePeriodMinutes:
		return 0
	case delayMinutes <= 10:
		return c.Penalty6To10
	case delayMinutes <= 15:
		return c.Penalty11To15
	default:
		return c.PenaltyAbove15
	}
}

// Net заработок после штрафа, не меньше нуля.
func (c EarningConfig) Net(distanceKm, delayMinutes float64) (net, penaltyPct float64) {
	penaltyPct = c.Penalty(delayMinutes)
	net = c.Estimate(distanceKm) * (1 - penaltyPct/100)
	return Round2(math.Max(net, 0)), penaltyPct
}

func (c EarningConfig) EstimatedCompletion(pickupReadyAt time.Time, distanceKm float64) time.Time {
	minutes := Round2(distanceKm) * c.EstimatedMinutesPerKm
	return pickupReadyAt.Add(time.Duration(math.Round(minutes * float64(time.Minute))))
}

type EarningResult struct {
	DriverEarning     float64
	PenaltyPercentage float64
	DelayMinutes      float64
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DelayMinutes опоздание фактического завершения относительно расчетного, не меньше нуля.
func DelayMinutes(estimated time.Time, actual time.Time) float64 {
	delay := actual.Sub(estimated).Minutes()
	if delay < 0 {
		return 0
	}
	return delay
}
