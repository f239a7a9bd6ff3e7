package webhook

import (
	"time"

	"dispatch/internal/entities"
)

type statusPayload struct {
	Event                       string       `json:"event"`
	ClientID                    string       `json:"client_id"`
	UID                         string       `json:"uid"`
	Status                      string       `json:"status"`
	ActualDeliveryCompletedTime *string      `json:"actual_delivery_completed_time"`
	RiderAcceptedTime           *string      `json:"rider_accepted_time"`
	RiderPickupTime             *string      `json:"rider_pickup_time"`
	DriverInfo                  []driverInfo `json:"driver_info"`
}

type driverInfo struct {
	DriverID string `json:"driver_id"`
}

func toPayload(w entities.StatusWebhook) statusPayload {
	drivers := make([]driverInfo, 0, len(w.DriverInfo))
	for _, d := range w.DriverInfo {
		drivers = append(drivers, driverInfo{DriverID: d.DriverID})
	}

	return statusPayload{
		Event:                       w.Event,
		ClientID:                    w.ClientID,
		UID:                         w.UID.String(),
		Status:                      w.Status.String(),
		ActualDeliveryCompletedTime: rfc3339(w.ActualDeliveryCompletedTime),
		RiderAcceptedTime:           rfc3339(w.RiderAcceptedTime),
		RiderPickupTime:             rfc3339(w.RiderPickupTime),
		DriverInfo:                  drivers,
	}
}

func rfc3339(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
