package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Point struct {
	Lat float64
	Lng float64
}

func (p Point) IsValid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180 && !(p.Lat == 0 && p.Lng == 0)
}

type Address struct {
	Point        *Point
	Text         string
	ContactName  string
	ContactPhone string
}

type PaymentType string

const (
	PaymentCash PaymentType = "cash"
	PaymentCard PaymentType = "card"
)

func (p PaymentType) String() string {
	return string(p)
}

func (p PaymentType) IsValid() bool {
	return p == PaymentCash || p == PaymentCard
}

type Currency string

const (
	CurrencyUSD Currency = "usd"
	CurrencyCAD Currency = "cad"
	CurrencyBDT Currency = "bdt"
)

const DefaultCurrency = CurrencyBDT

func (c Currency) String() string {
	return string(c)
}

func (c Currency) IsValid() bool {
	switch c {
	case CurrencyUSD, CurrencyCAD, CurrencyBDT:
		return true
	default:
		return false
	}
}

// GeoProvider бэкенд геокодинга и маршрутов, выбирается на каждую доставку.
type GeoProvider string

const (
	GeoProviderGoogle GeoProvider = "google"
	GeoProviderOSM    GeoProvider = "osm"
)

const DefaultGeoProvider = GeoProviderGoogle

func (g GeoProvider) String() string {
	return string(g)
}

type Delivery struct {
	ID       int64
	UID      uuid.UUID
	ClientID string
	Platform string

	Pickup      Address
	DropOff     Address
	Distance    float64
	GeoProvider GeoProvider

	PickupReadyAt               time.Time
	PickupLastTime              time.Time
	EstDeliveryCompletedTime    time.Time
	ActualDeliveryCompletedTime *time.Time
	RiderAcceptedTime           *time.Time
	RiderPickupTime             *time.Time

	DriverID *string
	Assigned bool
	Status   DeliveryStatus

	Currency          Currency
	PaymentType       PaymentType
	Amount            float64
	Fees              float64
	Tips              float64
	CashCollected     float64
	DriverEarning     float64
	PenaltyPercentage float64

	CustomerInfo CustomerInfo
	Items        json.RawMessage

	ProofImage   *string
	CancelReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeliveryModify частичное обновление, nil поля не трогаются.
// Rider*Time и ActualDeliveryCompletedTime пишутся только если в базе еще пусто.
type DeliveryModify struct {
	ID                          *int64
	Status                      *DeliveryStatus
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

// CreateDelivery входные данные для создания доставки.
type CreateDelivery struct {
	ClientID       string
	Platform       string
	Pickup         Address
	DropOff        Address
	GeoProvider    GeoProvider
	PickupReadyAt  time.Time
	PickupLastTime time.Time
	Currency       Currency
	PaymentType    PaymentType
	Amount         float64
	Tips           float64
	CustomerInfo   CustomerInfo
	Items          json.RawMessage
}

// CheckAddress расчет доставки без сохранения.
type CheckAddress struct {
	Pickup        Point
	DropOff       Address
	GeoProvider   GeoProvider
	PickupReadyAt time.Time
}

type Quote struct {
	DropOff                  Point
	Distance                 float64
	Fees                     float64
	EstDeliveryCompletedTime time.Time
}

type TransitionCommand struct {
	ID         int64
	Status     DeliveryStatus
	ProofImage *string
	Reason     *string
	Actor      Actor
}

type DeliveryFilter struct {
	Status *DeliveryStatus
	Limit  uint64
	Offset uint64
}

// DeliveryWithDistance доставка в выдаче водителю вместе с расстоянием до него.
type DeliveryWithDistance struct {
	Delivery
	DistanceToDriverKm float64
}

type NearbyQuery struct {
	DriverID string
	Point    *Point
	RadiusKm float64
}

// BoundingBox прямоугольник по координатам. MinLng > MaxLng означает,
// что прямоугольник пересекает 180-й меридиан.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

func (b BoundingBox) WrapsAntimeridian() bool {
	return b.MinLng > b.MaxLng
}
