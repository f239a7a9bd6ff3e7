package dto

import "time"

type DriverLocation struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type DriverStats struct {
	DriverID         string     `json:"driver_id"`
	TotalDeliveries  int64      `json:"total_deliveries"`
	TotalEarnings    float64    `json:"total_earnings"`
	OnTimeDeliveries int64      `json:"on_time_deliveries"`
	LastDeliveredAt  *time.Time `json:"last_delivered_at"`
}

type EarningConfig struct {
	BaseDistanceKm        float64   `json:"base_distance_km"`
	BaseEarning           float64   `json:"base_earning"`
	ExtraPerKm            float64   `json:"extra_per_km"`
	GracePeriodMinutes    float64   `json:"grace_period_minutes"`
	Penalty6To10          float64   `json:"penalty_6_10"`
	Penalty11To15         float64   `json:"penalty_11_15"`
	PenaltyAbove15        float64   `json:"penalty_above_15"`
	EstimatedMinutesPerKm float64   `json:"estimated_minutes_per_km"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// EarningConfigUpdate отсутствующие поля не меняются.
type EarningConfigUpdate struct {
	BaseDistanceKm        *float64 `json:"base_distance_km"`
	BaseEarning           *float64 `json:"base_earning"`
	ExtraPerKm            *float64 `json:"extra_per_km"`
	GracePeriodMinutes    *float64 `json:"grace_period_minutes"`
	Penalty6To10          *float64 `json:"penalty_6_10"`
	Penalty11To15         *float64 `json:"penalty_11_15"`
	PenaltyAbove15        *float64 `json:"penalty_above_15"`
	EstimatedMinutesPerKm *float64 `json:"estimated_minutes_per_km"`
}

type IssueReport struct {
	ClientID    string  `json:"client_id"`
	ReportedBy  string  `json:"reported_by"`
	IssueType   string  `json:"issue_type"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

type Issue struct {
	ID          int64     `json:"id"`
	DeliveryID  int64     `json:"delivery_id"`
	ReportedBy  string    `json:"reported_by"`
	IssueType   string    `json:"issue_type"`
	Description string    `json:"description"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

type PushTokenRegister struct {
	Token      string `json:"token"`
	DeviceType string `json:"device_type"`
}

type PushTokenUnregister struct {
	Token string `json:"token"`
}

type PushToken struct {
	Token      string    `json:"token"`
	DeviceType string    `json:"device_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// PingResponse отдает время сервера, по нему приложение водителя
// поправляет расхождение часов при показе ETA.
type PingResponse struct {
	Message    *string   `json:"message"`
	ServerTime time.Time `json:"server_time"`
}
