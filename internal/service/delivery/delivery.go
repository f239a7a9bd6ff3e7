package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/metrics"
	"github.com/google/uuid"
)

const (
	ExpiryReason = "No driver available after 30 mins"

	defaultPlatform = "na"
	defaultLimit    = 50
	maxLimit        = 200
)

type Settings struct {
	MaxDistanceKm float64
	ExpireAfter   time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		MaxDistanceKm: 15,
		ExpireAfter:   30 * time.Minute,
	}
}

// Delivery реестр доставок: создание, claim, переходы статусов и просрочка.
type Delivery struct {
	repository Repository
	geo        GeoResolver
	earning    EarningPolicy
	dispatcher EventDispatcher
	txManager  TxManager
	settings   Settings
}

func New(
	repository Repository,
	geo GeoResolver,
	earning EarningPolicy,
	dispatcher EventDispatcher,
	txManager TxManager,
	settings Settings,
) *Delivery {
	defaults := DefaultSettings()
	if settings.MaxDistanceKm <= 0 {
		settings.MaxDistanceKm = defaults.MaxDistanceKm
	}
	if settings.ExpireAfter <= 0 {
		settings.ExpireAfter = defaults.ExpireAfter
	}

	return &Delivery{
		repository: repository,
		geo:        geo,
		earning:    earning,
		dispatcher: dispatcher,
		txManager:  txManager,
		settings:   settings,
	}
}

func (d *Delivery) Create(ctx context.Context, cmd entities.CreateDelivery) (*entities.Delivery, error) {
	cmd.ClientID = strings.TrimSpace(cmd.ClientID)
	if err := validateCreate(cmd); err != nil {
		return nil, err
	}
	if cmd.GeoProvider == "" {
		cmd.GeoProvider = entities.DefaultGeoProvider
	}
	if cmd.Currency == "" {
		cmd.Currency = entities.DefaultCurrency
	}
	if strings.TrimSpace(cmd.Platform) == "" {
		cmd.Platform = defaultPlatform
	}

	quote, err := d.quote(ctx, *cmd.Pickup.Point, cmd.DropOff, cmd.GeoProvider, cmd.PickupReadyAt)
	if err != nil {
		return nil, err
	}

	dropOff := cmd.DropOff
	dropOff.Point = &quote.DropOff

	record := entities.Delivery{
		UID:                      uuid.New(),
		ClientID:                 cmd.ClientID,
		Platform:                 cmd.Platform,
		Pickup:                   cmd.Pickup,
		DropOff:                  dropOff,
		Distance:                 quote.Distance,
		GeoProvider:              cmd.GeoProvider,
		PickupReadyAt:            cmd.PickupReadyAt.UTC(),
		PickupLastTime:           cmd.PickupLastTime.UTC(),
		EstDeliveryCompletedTime: quote.EstDeliveryCompletedTime.UTC(),
		Status:                   entities.StatusWaitingForDriver,
		Currency:                 cmd.Currency,
		PaymentType:              cmd.PaymentType,
		Amount:                   entities.Round2(cmd.Amount),
		Fees:                     quote.Fees,
		Tips:                     entities.Round2(cmd.Tips),
		DriverEarning:            quote.Fees,
		CustomerInfo:             cmd.CustomerInfo,
		Items:                    cmd.Items,
	}

	created, err := d.repository.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("create delivery: %w", err)
	}

	d.dispatcher.OnTransition(ctx, entities.StatusCreated, *created)
	return created, nil
}

// Quote расчет доставки без сохранения.
func (d *Delivery) Quote(ctx context.Context, cmd entities.CheckAddress) (*entities.Quote, error) {
	if err := validateCheckAddress(cmd); err != nil {
		return nil, err
	}
	if cmd.GeoProvider == "" {
		cmd.GeoProvider = entities.DefaultGeoProvider
	}
	if cmd.PickupReadyAt.IsZero() {
		cmd.PickupReadyAt = time.Now().UTC()
	}

	quote, err := d.quote(ctx, cmd.Pickup, cmd.DropOff, cmd.GeoProvider, cmd.PickupReadyAt)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

func (d *Delivery) quote(
	ctx context.Context,
	pickup entities.Point,
	dropOff entities.Address,
	provider entities.GeoProvider,
	readyAt time.Time,
) (entities.Quote, error) {
	var point entities.Point
	if dropOff.Point != nil {
		point = *dropOff.Point
	} else {
		resolved, err := d.geo.Resolve(ctx, provider, dropOff.Text)
		if err != nil {
			return entities.Quote{}, fmt.Errorf("resolve drop-off: %w", err)
		}
		point = resolved
	}

	distance, err := d.geo.DistanceKm(ctx, provider, pickup, point)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("route distance: %w", err)
	}
	if distance > d.settings.MaxDistanceKm {
		return entities.Quote{}, fmt.Errorf("%w: %.2f km, limit %.2f km", ErrAddressUnreachable, distance, d.settings.MaxDistanceKm)
	}

	quote, err := d.earning.Quote(ctx, distance, readyAt)
	if err != nil {
		return entities.Quote{}, fmt.Errorf("earning quote: %w", err)
	}
	quote.DropOff = point
	return quote, nil
}

// Claim атомарно закрепляет доставку за водителем. Из параллельных claim побеждает ровно один.
func (d *Delivery) Claim(ctx context.Context, id int64, driverID string) (*entities.Delivery, error) {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	claimed, err := d.repository.Claim(ctx, id, driverID, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, ErrClaimRejected) {
			metrics.DeliveryClaimsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("claim delivery %d: %w", id, err)
		}

		reason := d.classifyRejectedClaim(ctx, id)
		metrics.DeliveryClaimsTotal.WithLabelValues(claimResult(reason)).Inc()
		return nil, reason
	}

	metrics.DeliveryClaimsTotal.WithLabelValues("won").Inc()
	metrics.DeliveryTransitionsTotal.WithLabelValues(entities.StatusWaitingForDriver.String(), claimed.Status.String()).Inc()
	d.dispatcher.OnTransition(ctx, entities.StatusWaitingForDriver, *claimed)
	return claimed, nil
}

func (d *Delivery) ClaimByClientID(ctx context.Context, clientID string, driverID string) (*entities.Delivery, error) {
	current, err := d.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return d.Claim(ctx, current.ID, driverID)
}

func (d *Delivery) classifyRejectedClaim(ctx context.Context, id int64) error {
	current, err := d.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDeliveryNotFound) {
			return ErrDeliveryNotFound
		}
		return fmt.Errorf("claim delivery %d: %w", id, err)
	}
	if current.Assigned {
		return ErrAlreadyClaimed
	}
	return ErrNotClaimable
}

func claimResult(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyClaimed):
		return "already_claimed"
	case errors.Is(err, ErrNotClaimable):
		return "not_claimable"
	case errors.Is(err, ErrDeliveryNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// Transition переводит доставку в новый статус. Повтор того же статуса
// возвращает запись без изменений и без уведомлений.
func (d *Delivery) Transition(ctx context.Context, cmd entities.TransitionCommand) (*entities.Delivery, error) {
	if !cmd.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	var (
		from  entities.DeliveryStatus
		after *entities.Delivery
	)

	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := d.repository.GetForUpdate(ctx, cmd.ID)
		if err != nil {
			return fmt.Errorf("lock delivery %d: %w", cmd.ID, err)
		}
		from = current.Status

		if err := authorize(cmd.Actor, current, cmd.Status); err != nil {
			return err
		}

		if current.Status == cmd.Status {
			after = current
			return nil
		}

		// driver_assign только через Claim
		if cmd.Status == entities.StatusDriverAssigned || !entities.CanTransition(current.Status, cmd.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, cmd.Status)
		}

		modify, err := d.buildModify(ctx, current, cmd)
		if err != nil {
			return err
		}

		updated, err := d.repository.Update(ctx, modify)
		if err != nil {
			return fmt.Errorf("update delivery %d: %w", cmd.ID, err)
		}
		after = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	if from != after.Status {
		metrics.DeliveryTransitionsTotal.WithLabelValues(from.String(), after.Status.String()).Inc()
		d.dispatcher.OnTransition(ctx, from, *after)
	}
	return after, nil
}

func (d *Delivery) buildModify(
	ctx context.Context,
	current *entities.Delivery,
	cmd entities.TransitionCommand,
) (entities.DeliveryModify, error) {
	now := time.Now().UTC()
	status := cmd.Status
	modify := entities.DeliveryModify{
		ID:     &current.ID,
		Status: &status,
	}

	reason := trimmed(cmd.Reason)

	switch cmd.Status {
	case entities.StatusOrderPickedUp:
		modify.RiderPickupTime = &now

	case entities.StatusDeliverySuccess:
		proof := trimmed(cmd.ProofImage)
		if proof == nil {
			proof = trimmed(current.ProofImage)
		}
		if proof == nil {
			return entities.DeliveryModify{}, ErrProofRequired
		}
		modify.ProofImage = proof

		completed := current.ActualDeliveryCompletedTime
		if completed == nil {
			completed = &now
		}
		modify.ActualDeliveryCompletedTime = completed

		if current.PaymentType == entities.PaymentCash {
			cash := current.Amount
			modify.CashCollected = &cash
		}

		final := *current
		final.ActualDeliveryCompletedTime = completed
		result, err := d.earning.Finalize(ctx, final)
		if err != nil {
			return entities.DeliveryModify{}, fmt.Errorf("finalize earning: %w", err)
		}
		modify.DriverEarning = &result.DriverEarning
		modify.PenaltyPercentage = &result.PenaltyPercentage

	case entities.StatusCanceled, entities.StatusDriverRejected:
		assigned := false
		modify.Assigned = &assigned
		modify.CancelReason = reason

	case entities.StatusDeliveryFailed:
		modify.CancelReason = reason
	}

	return modify, nil
}

// Cancel отмена доставки платформой или администратором.
func (d *Delivery) Cancel(ctx context.Context, uid uuid.UUID, reason string, actor entities.Actor) (*entities.Delivery, error) {
	if !canCancel(actor) {
		return nil, ErrForbidden
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	current, err := d.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	return d.Transition(ctx, entities.TransitionCommand{
		ID:     current.ID,
		Status: entities.StatusCanceled,
		Reason: &reason,
		Actor:  actor,
	})
}

func (d *Delivery) Get(ctx context.Context, id int64) (*entities.Delivery, error) {
	delivery, err := d.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery %d: %w", id, err)
	}
	return delivery, nil
}

func (d *Delivery) GetByClientID(ctx context.Context, clientID string) (*entities.Delivery, error) {
	clientID = strings.TrimSpace(clientID)
	if !isValidClientID(clientID) {
		return nil, ErrInvalidClientID
	}

	delivery, err := d.repository.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("get delivery %q: %w", clientID, err)
	}
	return delivery, nil
}

func (d *Delivery) GetByUID(ctx context.Context, uid uuid.UUID) (*entities.Delivery, error) {
	delivery, err := d.repository.GetByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("get delivery %s: %w", uid, err)
	}
	return delivery, nil
}

// ListDriverDeliveries активные или закрытые доставки водителя.
func (d *Delivery) ListDriverDeliveries(ctx context.Context, driverID string, active bool) ([]entities.Delivery, error) {
	if strings.TrimSpace(driverID) == "" {
		return nil, ErrInvalidDriverID
	}

	statuses := entities.ClosedDriverStatuses
	if active {
		statuses = entities.ActiveDriverStatuses
	}

	deliveries, err := d.repository.ListByDriver(ctx, driverID, statuses)
	if err != nil {
		return nil, fmt.Errorf("list driver deliveries: %w", err)
	}
	return deliveries, nil
}

func (d *Delivery) ListAll(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if filter.Limit == 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	deliveries, err := d.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	return deliveries, nil
}

// ExpireUnclaimed переводит в delivery_failed доставки, которые никто не взял
// за ExpireAfter от pickup_ready_at. Ошибка по одной записи не прерывает проход.
func (d *Delivery) ExpireUnclaimed(ctx context.Context) (int64, error) {
	readyBefore := time.Now().UTC().Add(-d.settings.ExpireAfter)

	candidates, err := d.repository.ListUnclaimedReadyBefore(ctx, readyBefore)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("expiry sweep timed out: %w", err)
		}
		return 0, fmt.Errorf("list expiry candidates: %w", err)
	}

	var (
		expired int64
		errs    []error
	)
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		failed, err := d.repository.FailUnclaimed(ctx, candidate.ID, ExpiryReason)
		if err != nil {
			if errors.Is(err, ErrClaimRejected) {
				continue
			}
			errs = append(errs, fmt.Errorf("expire delivery %d: %w", candidate.ID, err))
			continue
		}

		expired++
		metrics.DeliveryExpiredTotal.Inc()
		metrics.DeliveryTransitionsTotal.WithLabelValues(candidate.Status.String(), failed.Status.String()).Inc()
		d.dispatcher.OnTransition(ctx, entities.StatusWaitingForDriver, *failed)
	}

	return expired, errors.Join(errs...)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
