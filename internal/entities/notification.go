package entities

import (
	"time"

	"github.com/google/uuid"
)

type PushOwnerKind string

const (
	PushOwnerDriver   PushOwnerKind = "driver"
	PushOwnerCustomer PushOwnerKind = "customer"
)

func (k PushOwnerKind) String() string {
	return string(k)
}

type DeviceType string

const (
	DeviceWeb     DeviceType = "web"
	DeviceIOS     DeviceType = "ios"
	DeviceAndroid DeviceType = "android"
)

func (d DeviceType) String() string {
	return string(d)
}

func (d DeviceType) IsValid() bool {
	switch d {
	case DeviceWeb, DeviceIOS, DeviceAndroid:
		return true
	default:
		return false
	}
}

// PushTarget получатель пуша: водитель или покупатель платформы.
type PushTarget struct {
	Kind PushOwnerKind
	ID   string
}

type PushToken struct {
	Owner      PushTarget
	Token      string
	DeviceType DeviceType
	CreatedAt  time.Time
}

type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// StatusWebhook тело вебхука платформе заказов.
type StatusWebhook struct {
	Event                       string
	ClientID                    string
	UID                         uuid.UUID
	Status                      DeliveryStatus
	ActualDeliveryCompletedTime *time.Time
	RiderAcceptedTime           *time.Time
	RiderPickupTime             *time.Time
	DriverInfo                  []DriverInfo
}

type DriverInfo struct {
	DriverID string
}

type RewardRequest struct {
	UserID     string
	Amount     float64
	RewardType string
	OrderID    string
	ExpiryDate time.Time
}

// StatusChangedEvent событие в топик жизненного цикла доставки.
type StatusChangedEvent struct {
	DeliveryID int64
	UID        uuid.UUID
	ClientID   string
	From       DeliveryStatus
	To         DeliveryStatus
	DriverID   *string
	OccurredAt time.Time
}
