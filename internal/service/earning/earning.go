package earning

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/entities"
)

const (
	RewardTypeCoupon = "coupon"
	rewardValidFor   = 7 * 24 * time.Hour
)

// Ступени гарантийного вознаграждения покупателю за опоздание.
const (
	RewardTierA = 10.0
	RewardTierB = 15.0
	RewardTierC = 20.0
)

// Policy считает заработок водителя. Каждый расчет читает настройки один раз.
type Policy struct {
	repository ConfigRepository
}

func New(repository ConfigRepository) *Policy {
	return &Policy{
		repository: repository,
	}
}

func (p *Policy) Config(ctx context.Context) (*entities.EarningConfig, error) {
	cfg, err := p.repository.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get earning config: %w", err)
	}
	return cfg, nil
}

func (p *Policy) UpdateConfig(ctx context.Context, modify entities.EarningConfigModify) (*entities.EarningConfig, error) {
	current, err := p.repository.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get earning config: %w", err)
	}

	next := applyModify(*current, modify)
	if err := validateConfig(next); err != nil {
		return nil, err
	}

	saved, err := p.repository.Save(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("save earning config: %w", err)
	}
	return saved, nil
}

func (p *Policy) Estimate(ctx context.Context, distanceKm float64) (float64, error) {
	if distanceKm < 0 {
		return 0, ErrNegativeDistance
	}

	cfg, err := p.Config(ctx)
	if err != nil {
		return 0, err
	}
	return cfg.Estimate(distanceKm), nil
}

// Quote стоимость и расчетное время завершения из одного снимка настроек.
func (p *Policy) Quote(ctx context.Context, distanceKm float64, pickupReadyAt time.Time) (entities.Quote, error) {
	if distanceKm < 0 {
		return entities.Quote{}, ErrNegativeDistance
	}

	cfg, err := p.Config(ctx)
	if err != nil {
		return entities.Quote{}, err
	}

	return entities.Quote{
		Distance:                 entities.Round2(distanceKm),
		Fees:                     cfg.Estimate(distanceKm),
		EstDeliveryCompletedTime: cfg.EstimatedCompletion(pickupReadyAt, distanceKm),
	}, nil
}

// Finalize окончательный заработок по фактическому времени завершения.
func (p *Policy) Finalize(ctx context.Context, delivery entities.Delivery) (entities.EarningResult, error) {
	if delivery.ActualDeliveryCompletedTime == nil {
		return entities.EarningResult{}, ErrMissingActualTime
	}

	cfg, err := p.Config(ctx)
	if err != nil {
		return entities.EarningResult{}, err
	}

	delay := entities.DelayMinutes(delivery.EstDeliveryCompletedTime, *delivery.ActualDeliveryCompletedTime)
	net, pct := cfg.Net(delivery.Distance, delay)

	return entities.EarningResult{
		DriverEarning:     net,
		PenaltyPercentage: pct,
		DelayMinutes:      delay,
	}, nil
}

// GuaranteeReward сумма купона покупателю за опоздание. false - купон не положен.
func GuaranteeReward(delayMinutes float64) (float64, bool) {
	switch {
	case delayMinutes <= 0:
		return 0, false
	case delayMinutes <= 10:
		return RewardTierA, true
	case delayMinutes <= 15:
		return RewardTierB, true
	case delayMinutes <= 30:
		return RewardTierC, true
	default:
		return 0, false
	}
}

// RewardFor собирает запрос на купон. false если опоздания нет или покупатель неизвестен.
func RewardFor(delivery entities.Delivery, now time.Time) (entities.RewardRequest, bool) {
	if delivery.ActualDeliveryCompletedTime == nil || delivery.CustomerInfo.PlatformUserID == "" {
		return entities.RewardRequest{}, false
	}

	delay := entities.DelayMinutes(delivery.EstDeliveryCompletedTime, *delivery.ActualDeliveryCompletedTime)
	amount, ok := GuaranteeReward(delay)
	if !ok {
		return entities.RewardRequest{}, false
	}

	return entities.RewardRequest{
		UserID:     delivery.CustomerInfo.PlatformUserID,
		Amount:     amount,
		RewardType: RewardTypeCoupon,
		OrderID:    delivery.ClientID,
		ExpiryDate: now.Add(rewardValidFor),
	}, true
}

func applyModify(cfg entities.EarningConfig, m entities.EarningConfigModify) entities.EarningConfig {
	if m.BaseDistanceKm != nil {
		cfg.BaseDistanceKm = *m.BaseDistanceKm
	}
	if m.BaseEarning != nil {
		cfg.BaseEarning = *m.BaseEarning
	}
	if m.ExtraPerKm != nil {
		cfg.ExtraPerKm = *m.ExtraPerKm
	}
	if m.GracePeriodMinutes != nil {
		cfg.GracePeriodMinutes = *m.GracePeriodMinutes
	}
	if m.Penalty6To10 != nil {
		cfg.Penalty6To10 = *m.Penalty6To10
	}
	if m.Penalty11To15 != nil {
		cfg.Penalty11To15 = *m.Penalty11To15
	}
	if m.PenaltyAbove15 != nil {
		cfg.PenaltyAbove15 = *m.PenaltyAbove15
	}
	if m.EstimatedMinutesPerKm != nil {
		cfg.EstimatedMinutesPerKm = *m.EstimatedMinutesPerKm
	}
	return cfg
}
