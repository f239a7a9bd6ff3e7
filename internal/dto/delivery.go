package dto

import (
	"encoding/json"
	"time"
)

type Address struct {
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	ContactName  string   `json:"contact_name,omitempty"`
	ContactPhone string   `json:"contact_phone,omitempty"`
}

type DeliveryCreate struct {
	ClientID       string          `json:"client_id"`
	Platform       string          `json:"platform"`
	PickupAddress  Address         `json:"pickup_address"`
	DropOffAddress Address         `json:"drop_off_address"`
	GeoProvider    string          `json:"geo_provider"`
	PickupReadyAt  time.Time       `json:"pickup_ready_at"`
	PickupLastTime time.Time       `json:"pickup_last_time"`
	Currency       string          `json:"currency"`
	PaymentType    string          `json:"payment_type"`
	Amount         float64         `json:"amount"`
	Tips           float64         `json:"tips"`
	CustomerInfo   json.RawMessage `json:"customer_info"`
	Items          json.RawMessage `json:"items"`
}

type CheckAddress struct {
	PickupAddress  Address    `json:"pickup_address"`
	DropOffAddress Address    `json:"drop_off_address"`
	GeoProvider    string     `json:"geo_provider"`
	PickupReadyAt  *time.Time `json:"pickup_ready_at"`
}

type Quote struct {
	DropOffLatitude          float64   `json:"drop_off_latitude"`
	DropOffLongitude         float64   `json:"drop_off_longitude"`
	Distance                 float64   `json:"distance"`
	Fees                     float64   `json:"fees"`
	EstDeliveryCompletedTime time.Time `json:"est_delivery_completed_time"`
}

type DeliveryCancel struct {
	UID    string `json:"uid"`
	Reason string `json:"reason"`
}

type DeliveryTransition struct {
	Status     string  `json:"status"`
	ProofImage *string `json:"proof_image"`
	Reason     *string `json:"reason"`
}

type Delivery struct {
	ID                          int64           `json:"id"`
	UID                         string          `json:"uid"`
	ClientID                    string          `json:"client_id"`
	Platform                    string          `json:"platform"`
	Status                      string          `json:"status"`
	Assigned                    bool            `json:"assigned"`
	Driver                      *string         `json:"driver"`
	PickupAddress               Address         `json:"pickup_address"`
	DropOffAddress              Address         `json:"drop_off_address"`
	Distance                    float64         `json:"distance"`
	GeoProvider                 string          `json:"geo_provider"`
	PickupReadyAt               time.Time       `json:"pickup_ready_at"`
	PickupLastTime              time.Time       `json:"pickup_last_time"`
	EstDeliveryCompletedTime    time.Time       `json:"est_delivery_completed_time"`
	ActualDeliveryCompletedTime *time.Time      `json:"actual_delivery_completed_time"`
	RiderAcceptedTime           *time.Time      `json:"rider_accepted_time"`
	RiderPickupTime             *time.Time      `json:"rider_pickup_time"`
	Currency                    string          `json:"currency"`
	PaymentType                 string          `json:"payment_type"`
	Amount                      float64         `json:"amount"`
	Fees                        float64         `json:"fees"`
	Tips                        float64         `json:"tips"`
	CashCollected               float64         `json:"cash_collected"`
	DriverEarning               float64         `json:"driver_earning"`
	PenaltyPercentage           float64         `json:"penalty_percentage"`
	CustomerInfo                json.RawMessage `json:"customer_info"`
	Items                       json.RawMessage `json:"items"`
	ProofImage                  *string         `json:"proof_image"`
	CancelReason                *string         `json:"cancel_reason"`
	CreatedAt                   time.Time       `json:"created_at"`
	UpdatedAt                   time.Time       `json:"updated_at"`
}

type NearbyDelivery struct {
	Delivery
	DistanceToDriverKm float64 `json:"distance_to_driver_km"`
}

type Message struct {
	Message string `json:"message"`
}
