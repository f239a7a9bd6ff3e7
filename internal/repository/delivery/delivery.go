package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/repository"
	"dispatch/internal/service/delivery"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const table = "deliveries"

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, deliveryEntity entities.Delivery) (*entities.Delivery, error) {
	model, err := FromDomain(&deliveryEntity)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}

	query, args, err := qb.Insert(table).
		Columns(
			"uid", "client_id", "platform",
			"pickup_lat", "pickup_lng", "pickup_address", "pickup_contact_name", "pickup_contact_phone",
			"drop_lat", "drop_lng", "drop_address", "drop_contact_name", "drop_contact_phone",
			"distance", "geo_provider",
			"pickup_ready_at", "pickup_last_time", "est_delivery_completed_time",
			"assigned", "status",
			"currency", "payment_type", "amount", "fees", "tips",
			"customer_info", "items",
		).
		Values(
			model.UID, model.ClientID, model.Platform,
			model.PickupLat, model.PickupLng, model.PickupAddress, model.PickupContactName, model.PickupContactPhone,
			model.DropLat, model.DropLng, model.DropAddress, model.DropContactName, model.DropContactPhone,
			model.Distance, model.GeoProvider,
			model.PickupReadyAt, model.PickupLastTime, model.EstDeliveryCompletedTime,
			model.Assigned, model.Status,
			model.Currency, model.PaymentType, model.Amount, model.Fees, model.Tips,
			model.CustomerInfo, model.Items,
		).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}

	created, err := r.queryOne(ctx, query, args...)
	if err != nil {
		if repository.IsConstraintViolation(err, repository.PgErrUniqueViolation, repository.ConstraintDeliveryClientID) {
			return nil, delivery.ErrDuplicateClientID
		}
		return nil, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Delivery, error) {
	return r.getBy(ctx, "getbyid", sq.Eq{"id": id}, false)
}

// GetForUpdate блокирует строку до конца транзакции из контекста.
func (r *Repository) GetForUpdate(ctx context.Context, id int64) (*entities.Delivery, error) {
	return r.getBy(ctx, "getforupdate", sq.Eq{"id": id}, true)
}

func (r *Repository) GetByClientID(ctx context.Context, clientID string) (*entities.Delivery, error) {
	return r.getBy(ctx, "getbyclientid", sq.Eq{"client_id": clientID}, false)
}

func (r *Repository) GetByUID(ctx context.Context, uid uuid.UUID) (*entities.Delivery, error) {
	return r.getBy(ctx, "getbyuid", sq.Eq{"uid": uid}, false)
}

// Claim назначает водителя только если доставка еще ждет и никем не взята.
// Из двух конкурентных UPDATE строку получает один, второй видит ноль строк.
func (r *Repository) Claim(ctx context.Context, id int64, driverID string, at time.Time) (*entities.Delivery, error) {
	query, args, err := qb.Update(table).
		Set("driver_id", driverID).
		Set("assigned", true).
		Set("status", entities.StatusDriverAssigned.String()).
		Set("rider_accepted_time", sq.Expr("COALESCE(rider_accepted_time, ?)", at)).
		Set("updated_at", at).
		Where(sq.Eq{
			"id":       id,
			"assigned": false,
			"status":   entities.StatusWaitingForDriver.String(),
		}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository claim error: %w", err)
	}

	claimed, err := r.queryOne(ctx, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrClaimRejected
		}
		return nil, mapError("claim", err)
	}
	return claimed, nil
}

func (r *Repository) Update(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error) {
	model := FromDomainModify(&deliveryModify)
	if model == nil || model.ID == nil {
		return nil, delivery.ErrDeliveryNotFound
	}

	builder := qb.Update(table)

	// опциональные поля
	if model.Status != nil {
		builder = builder.Set("status", *model.Status)
	}
	if model.Assigned != nil {
		builder = builder.Set("assigned", *model.Assigned)
	}
	if model.DriverID != nil {
		builder = builder.Set("driver_id", *model.DriverID)
	}
	if model.ProofImage != nil {
		builder = builder.Set("proof_image", *model.ProofImage)
	}
	if model.CancelReason != nil {
		builder = builder.Set("cancel_reason", *model.CancelReason)
	}
	if model.CashCollected != nil {
		builder = builder.Set("cash_collected", *model.CashCollected)
	}
	if model.DriverEarning != nil {
		builder = builder.Set("driver_earning", *model.DriverEarning)
	}
	if model.PenaltyPercentage != nil {
		builder = builder.Set("penalty_percentage", *model.PenaltyPercentage)
	}

	// отметки времени пишутся один раз
	if model.RiderAcceptedTime != nil {
		builder = builder.Set("rider_accepted_time", sq.Expr("COALESCE(rider_accepted_time, ?)", *model.RiderAcceptedTime))
	}
	if model.RiderPickupTime != nil {
		builder = builder.Set("rider_pickup_time", sq.Expr("COALESCE(rider_pickup_time, ?)", *model.RiderPickupTime))
	}
	if model.ActualDeliveryCompletedTime != nil {
		builder = builder.Set("actual_delivery_completed_time",
			sq.Expr("COALESCE(actual_delivery_completed_time, ?)", *model.ActualDeliveryCompletedTime))
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": *model.ID}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	updated, err := r.queryOne(ctx, query, args...)
	if err != nil {
		return nil, mapError("update", err)
	}
	return updated, nil
}

// ListUnclaimedReadyBefore ждущие доставки, у которых время готовности не позже readyBefore.
func (r *Repository) ListUnclaimedReadyBefore(ctx context.Context, readyBefore time.Time) ([]entities.Delivery, error) {
	builder := selectDeliveries().
		Where(sq.Eq{
			"status":   entities.StatusWaitingForDriver.String(),
			"assigned": false,
		}).
		Where(sq.LtOrEq{"pickup_ready_at": readyBefore}).
		OrderBy("id ASC")

	return r.queryMany(ctx, "list unclaimed", builder)
}

// FailUnclaimed закрывает ждущую доставку с причиной. Если ее успели взять, ErrClaimRejected.
func (r *Repository) FailUnclaimed(ctx context.Context, id int64, reason string) (*entities.Delivery, error) {
	query, args, err := qb.Update(table).
		Set("status", entities.StatusDeliveryFailed.String()).
		Set("cancel_reason", reason).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":       id,
			"assigned": false,
			"status":   entities.StatusWaitingForDriver.String(),
		}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository fail unclaimed error: %w", err)
	}

	failed, err := r.queryOne(ctx, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrClaimRejected
		}
		return nil, mapError("fail unclaimed", err)
	}
	return failed, nil
}

func (r *Repository) ListByDriver(ctx context.Context, driverID string, statuses []entities.DeliveryStatus) ([]entities.Delivery, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, s.String())
	}

	builder := selectDeliveries().
		Where(sq.Eq{"driver_id": driverID, "status": values}).
		OrderBy("updated_at DESC", "id DESC")

	return r.queryMany(ctx, "list by driver", builder)
}

func (r *Repository) List(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, error) {
	builder := selectDeliveries().OrderBy("created_at DESC", "id DESC")
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	return r.queryMany(ctx, "list", builder)
}

// ListWaitingSince свободные доставки, созданные не раньше since, новые первыми.
func (r *Repository) ListWaitingSince(ctx context.Context, since time.Time) ([]entities.Delivery, error) {
	builder := selectDeliveries().
		Where(sq.Eq{
			"status":   entities.StatusWaitingForDriver.String(),
			"assigned": false,
		}).
		Where(sq.GtOrEq{"created_at": since}).
		OrderBy("created_at DESC", "id DESC")

	return r.queryMany(ctx, "list waiting", builder)
}

// ListWaitingInBox свободные доставки, созданные не раньше since,
// с точкой забора внутри прямоугольника.
func (r *Repository) ListWaitingInBox(ctx context.Context, box entities.BoundingBox, since time.Time) ([]entities.Delivery, error) {
	lng := sq.Sqlizer(sq.Expr("pickup_lng BETWEEN ? AND ?", box.MinLng, box.MaxLng))
	if box.WrapsAntimeridian() {
		lng = sq.Or{
			sq.GtOrEq{"pickup_lng": box.MinLng},
			sq.LtOrEq{"pickup_lng": box.MaxLng},
		}
	}

	builder := selectDeliveries().
		Where(sq.Eq{
			"status":   entities.StatusWaitingForDriver.String(),
			"assigned": false,
		}).
		Where(sq.GtOrEq{"created_at": since}).
		Where(sq.Expr("pickup_lat BETWEEN ? AND ?", box.MinLat, box.MaxLat)).
		Where(lng).
		OrderBy("id ASC")

	return r.queryMany(ctx, "list waiting in box", builder)
}

func (r *Repository) getBy(ctx context.Context, op string, where sq.Eq, forUpdate bool) (*entities.Delivery, error) {
	builder := selectDeliveries().Where(where).Limit(1)
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository %s error: %w", op, err)
	}

	found, err := r.queryOne(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	return found, nil
}

func (r *Repository) queryOne(ctx context.Context, query string, args ...any) (*entities.Delivery, error) {
	var model DeliveryDB
	if err := r.querier.QueryRow(ctx, query, args...).Scan(model.scanTargets()...); err != nil {
		return nil, err
	}
	return ToDomain(&model)
}

func (r *Repository) queryMany(ctx context.Context, op string, builder sq.SelectBuilder) ([]entities.Delivery, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository %s error: %w", op, err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	models := make([]DeliveryDB, 0, 8)
	for rows.Next() {
		var model DeliveryDB
		if err := rows.Scan(model.scanTargets()...); err != nil {
			return nil, fmt.Errorf("unexpected delivery repository %s error: %w", op, err)
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(op, err)
	}

	return ToDomainList(models)
}

func selectDeliveries() sq.SelectBuilder {
	return qb.Select(deliveryColumns...).From(table)
}

func returning() string {
	return "RETURNING " + strings.Join(deliveryColumns, ", ")
}

func mapError(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return delivery.ErrDeliveryNotFound
	case repository.IsPgErrorWithCode(err, repository.PgErrSerializationFailure):
		return fmt.Errorf("%w: %w", delivery.ErrConcurrentUpdate, err)
	default:
		return fmt.Errorf("unexpected delivery repository %s error: %w", op, err)
	}
}
