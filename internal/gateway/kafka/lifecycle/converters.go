package lifecycle

import (
	"time"

	"dispatch/internal/entities"
)

const eventType = "delivery.status.changed"

type statusChangedEvent struct {
	Type       string  `json:"type"`
	DeliveryID int64   `json:"delivery_id"`
	UID        string  `json:"uid"`
	ClientID   string  `json:"client_id"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	DriverID   *string `json:"driver_id"`
	OccurredAt string  `json:"occurred_at"`
}

func toEvent(e entities.StatusChangedEvent) statusChangedEvent {
	return statusChangedEvent{
		Type:       eventType,
		DeliveryID: e.DeliveryID,
		UID:        e.UID.String(),
		ClientID:   e.ClientID,
		From:       e.From.String(),
		To:         e.To.String(),
		DriverID:   e.DriverID,
		OccurredAt: e.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
}
