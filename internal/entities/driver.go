package entities

import "time"

// DriverStats история работы водителя.
type DriverStats struct {
	DriverID         string
	TotalDeliveries  int64
	TotalEarnings    float64
	OnTimeDeliveries int64
	LastDeliveredAt  *time.Time
}

type DriverLocation struct {
	DriverID  string
	Point     Point
	UpdatedAt time.Time
}
