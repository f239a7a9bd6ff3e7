package delivery

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryDB struct {
	ID       int64
	UID      uuid.UUID
	ClientID string
	Platform string

	PickupLat          *float64
	PickupLng          *float64
	PickupAddress      string
	PickupContactName  string
	PickupContactPhone string

	DropLat          *float64
	DropLng          *float64
	DropAddress      string
	DropContactName  string
	DropContactPhone string

	Distance    float64
	GeoProvider string

	PickupReadyAt               time.Time
	PickupLastTime              time.Time
	EstDeliveryCompletedTime    time.Time
	ActualDeliveryCompletedTime *time.Time
	RiderAcceptedTime           *time.Time
	RiderPickupTime             *time.Time

	DriverID *string
	Assigned bool
	Status   string

	Currency          string
	PaymentType       string
	Amount            float64
	Fees              float64
	Tips              float64
	CashCollected     float64
	DriverEarning     float64
	PenaltyPercentage float64

	CustomerInfo []byte
	Items        []byte

	ProofImage   *string
	CancelReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type DeliveryModifyDB struct {
	ID                          *int64
	Status                      *string
	Assigned                    *bool
	DriverID                    *string
	ProofImage                  *string
	CancelReason                *string
	CashCollected               *float64
	DriverEarning               *float64
	PenaltyPercentage           *float64
	RiderAcceptedTime           *time.Time
	RiderPickupTime             *time.Time
	ActualDeliveryCompletedTime *time.Time
}

var deliveryColumns = []string{
	"id", "uid", "client_id", "platform",
	"pickup_lat", "pickup_lng", "pickup_address", "pickup_contact_name", "pickup_contact_phone",
	"drop_lat", "drop_lng", "drop_address", "drop_contact_name", "drop_contact_phone",
	"distance", "geo_provider",
	"pickup_ready_at", "pickup_last_time", "est_delivery_completed_time",
	"actual_delivery_completed_time", "rider_accepted_time", "rider_pickup_time",
	"driver_id", "assigned", "status",
	"currency", "payment_type", "amount", "fees", "tips",
	"cash_collected", "driver_earning", "penalty_percentage",
	"customer_info", "items", "proof_image", "cancel_reason",
	"created_at", "updated_at",
}

// scanTargets порядок совпадает с deliveryColumns.
func (d *DeliveryDB) scanTargets() []any {
	return []any{
		&d.ID, &d.UID, &d.ClientID, &d.Platform,
		&d.PickupLat, &d.PickupLng, &d.PickupAddress, &d.PickupContactName, &d.PickupContactPhone,
		&d.DropLat, &d.DropLng, &d.DropAddress, &d.DropContactName, &d.DropContactPhone,
		&d.Distance, &d.GeoProvider,
		&d.PickupReadyAt, &d.PickupLastTime, &d.EstDeliveryCompletedTime,
		&d.ActualDeliveryCompletedTime, &d.RiderAcceptedTime, &d.RiderPickupTime,
		&d.DriverID, &d.Assigned, &d.Status,
		&d.Currency, &d.PaymentType, &d.Amount, &d.Fees, &d.Tips,
		&d.CashCollected, &d.DriverEarning, &d.PenaltyPercentage,
		&d.CustomerInfo, &d.Items, &d.ProofImage, &d.CancelReason,
		&d.CreatedAt, &d.UpdatedAt,
	}
}
