package delivery

import (
	"encoding/json"
	"fmt"

	"dispatch/internal/entities"
)

func ToDomain(d *DeliveryDB) (*entities.Delivery, error) {
	if d == nil {
		return nil, nil
	}

	var customer entities.CustomerInfo
	if len(d.CustomerInfo) > 0 {
		if err := json.Unmarshal(d.CustomerInfo, &customer); err != nil {
			return nil, fmt.Errorf("decode customer info of delivery %d: %w", d.ID, err)
		}
	}

	var items json.RawMessage
	if len(d.Items) > 0 {
		items = json.RawMessage(d.Items)
	}

	return &entities.Delivery{
		ID:       d.ID,
		UID:      d.UID,
		ClientID: d.ClientID,
		Platform: d.Platform,
		Pickup: entities.Address{
			Point:        toPoint(d.PickupLat, d.PickupLng),
			Text:         d.PickupAddress,
			ContactName:  d.PickupContactName,
			ContactPhone: d.PickupContactPhone,
		},
		DropOff: entities.Address{
			Point:        toPoint(d.DropLat, d.DropLng),
			Text:         d.DropAddress,
			ContactName:  d.DropContactName,
			ContactPhone: d.DropContactPhone,
		},
		Distance:                    d.Distance,
		GeoProvider:                 entities.GeoProvider(d.GeoProvider),
		PickupReadyAt:               d.PickupReadyAt,
		PickupLastTime:              d.PickupLastTime,
		EstDeliveryCompletedTime:    d.EstDeliveryCompletedTime,
		ActualDeliveryCompletedTime: d.ActualDeliveryCompletedTime,
		RiderAcceptedTime:           d.RiderAcceptedTime,
		RiderPickupTime:             d.RiderPickupTime,
		DriverID:                    d.DriverID,
		Assigned:                    d.Assigned,
		Status:                      entities.DeliveryStatus(d.Status),
		Currency:                    entities.Currency(d.Currency),
		PaymentType:                 entities.PaymentType(d.PaymentType),
		Amount:                      d.Amount,
		Fees:                        d.Fees,
		Tips:                        d.Tips,
		CashCollected:               d.CashCollected,
		DriverEarning:               d.DriverEarning,
		PenaltyPercentage:           d.PenaltyPercentage,
		CustomerInfo:                customer,
		Items:                       items,
		ProofImage:                  d.ProofImage,
		CancelReason:                d.CancelReason,
		CreatedAt:                   d.CreatedAt,
		UpdatedAt:                   d.UpdatedAt,
	}, nil
}

func ToDomainList(models []DeliveryDB) ([]entities.Delivery, error) {
	result := make([]entities.Delivery, 0, len(models))
	for i := range models {
		d, err := ToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, nil
}

func FromDomain(d *entities.Delivery) (*DeliveryDB, error) {
	if d == nil {
		return nil, nil
	}

	customer, err := json.Marshal(d.CustomerInfo)
	if err != nil {
		return nil, fmt.Errorf("encode customer info: %w", err)
	}

	var items []byte
	if len(d.Items) > 0 {
		items = []byte(d.Items)
	}

	pickupLat, pickupLng := fromPoint(d.Pickup.Point)
	dropLat, dropLng := fromPoint(d.DropOff.Point)

	return &DeliveryDB{
		UID:                         d.UID,
		ClientID:                    d.ClientID,
		Platform:                    d.Platform,
		PickupLat:                   pickupLat,
		PickupLng:                   pickupLng,
		PickupAddress:               d.Pickup.Text,
		PickupContactName:           d.Pickup.ContactName,
		PickupContactPhone:          d.Pickup.ContactPhone,
		DropLat:                     dropLat,
		DropLng:                     dropLng,
		DropAddress:                 d.DropOff.Text,
		DropContactName:             d.DropOff.ContactName,
		DropContactPhone:            d.DropOff.ContactPhone,
		Distance:                    d.Distance,
		GeoProvider:                 d.GeoProvider.String(),
		PickupReadyAt:               d.PickupReadyAt,
		PickupLastTime:              d.PickupLastTime,
		EstDeliveryCompletedTime:    d.EstDeliveryCompletedTime,
		ActualDeliveryCompletedTime: d.ActualDeliveryCompletedTime,
		RiderAcceptedTime:           d.RiderAcceptedTime,
		RiderPickupTime:             d.RiderPickupTime,
		DriverID:                    d.DriverID,
		Assigned:                    d.Assigned,
		Status:                      d.Status.String(),
		Currency:                    d.Currency.String(),
		PaymentType:                 d.PaymentType.String(),
		Amount:                      d.Amount,
		Fees:                        d.Fees,
		Tips:                        d.Tips,
		CashCollected:               d.CashCollected,
		DriverEarning:               d.DriverEarning,
		PenaltyPercentage:           d.PenaltyPercentage,
		CustomerInfo:                customer,
		Items:                       items,
		ProofImage:                  d.ProofImage,
		CancelReason:                d.CancelReason,
	}, nil
}

func FromDomainModify(d *entities.DeliveryModify) *DeliveryModifyDB {
	if d == nil {
		return nil
	}
	modify := &DeliveryModifyDB{
		ID:                          d.ID,
		Assigned:                    d.Assigned,
		DriverID:                    d.DriverID,
		ProofImage:                  d.ProofImage,
		CancelReason:                d.CancelReason,
		CashCollected:               d.CashCollected,
		DriverEarning:               d.DriverEarning,
		PenaltyPercentage:           d.PenaltyPercentage,
		RiderAcceptedTime:           d.RiderAcceptedTime,
		RiderPickupTime:             d.RiderPickupTime,
		ActualDeliveryCompletedTime: d.ActualDeliveryCompletedTime,
	}
	if d.Status != nil {
		status := d.Status.String()
		modify.Status = &status
	}
	return modify
}

func toPoint(lat, lng *float64) *entities.Point {
	if lat == nil || lng == nil {
		return nil
	}
	return &entities.Point{Lat: *lat, Lng: *lng}
}

func fromPoint(p *entities.Point) (lat, lng *float64) {
	if p == nil {
		return nil, nil
	}
	return &p.Lat, &p.Lng
}
