package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"dispatch/internal/entities"
)

func (a Address) point() *entities.Point {
	if a.Latitude == nil || a.Longitude == nil {
		return nil
	}
	return &entities.Point{Lat: *a.Latitude, Lng: *a.Longitude}
}

func (a Address) ToEntity() entities.Address {
	return entities.Address{
		Point:        a.point(),
		Text:         strings.TrimSpace(a.Address),
		ContactName:  a.ContactName,
		ContactPhone: a.ContactPhone,
	}
}

func FromAddress(a entities.Address) Address {
	res := Address{
		Address:      a.Text,
		ContactName:  a.ContactName,
		ContactPhone: a.ContactPhone,
	}
	if a.Point != nil {
		lat, lng := a.Point.Lat, a.Point.Lng
		res.Latitude = &lat
		res.Longitude = &lng
	}
	return res
}

func (d DeliveryCreate) ToEntity() (entities.CreateDelivery, error) {
	var customer entities.CustomerInfo
	if len(d.CustomerInfo) > 0 {
		if err := json.Unmarshal(d.CustomerInfo, &customer); err != nil {
			return entities.CreateDelivery{}, fmt.Errorf("customer_info: %w", err)
		}
	}

	return entities.CreateDelivery{
		ClientID:       strings.TrimSpace(d.ClientID),
		Platform:       d.Platform,
		Pickup:         d.PickupAddress.ToEntity(),
		DropOff:        d.DropOffAddress.ToEntity(),
		GeoProvider:    entities.GeoProvider(strings.ToLower(d.GeoProvider)),
		PickupReadyAt:  d.PickupReadyAt,
		PickupLastTime: d.PickupLastTime,
		Currency:       entities.Currency(strings.ToLower(d.Currency)),
		PaymentType:    entities.PaymentType(strings.ToLower(d.PaymentType)),
		Amount:         d.Amount,
		Tips:           d.Tips,
		CustomerInfo:   customer,
		Items:          d.Items,
	}, nil
}

func (c CheckAddress) ToEntity() entities.CheckAddress {
	cmd := entities.CheckAddress{
		DropOff:     c.DropOffAddress.ToEntity(),
		GeoProvider: entities.GeoProvider(strings.ToLower(c.GeoProvider)),
	}
	if p := c.PickupAddress.point(); p != nil {
		cmd.Pickup = *p
	}
	if c.PickupReadyAt != nil {
		cmd.PickupReadyAt = *c.PickupReadyAt
	}
	return cmd
}

func FromQuote(q entities.Quote) Quote {
	return Quote{
		DropOffLatitude:          q.DropOff.Lat,
		DropOffLongitude:         q.DropOff.Lng,
		Distance:                 q.Distance,
		Fees:                     q.Fees,
		EstDeliveryCompletedTime: q.EstDeliveryCompletedTime,
	}
}

func FromDelivery(d entities.Delivery) (Delivery, error) {
	customer, err := json.Marshal(d.CustomerInfo)
	if err != nil {
		return Delivery{}, fmt.Errorf("customer_info: %w", err)
	}

	items := d.Items
	if len(items) == 0 {
		items = json.RawMessage("[]")
	}

	return Delivery{
		ID:                          d.ID,
		UID:                         d.UID.String(),
		ClientID:                    d.ClientID,
		Platform:                    d.Platform,
		Status:                      d.Status.String(),
		Assigned:                    d.Assigned,
		Driver:                      d.DriverID,
		PickupAddress:               FromAddress(d.Pickup),
		DropOffAddress:              FromAddress(d.DropOff),
		Distance:                    d.Distance,
		GeoProvider:                 d.GeoProvider.String(),
		PickupReadyAt:               d.PickupReadyAt,
		PickupLastTime:              d.PickupLastTime,
		EstDeliveryCompletedTime:    d.EstDeliveryCompletedTime,
		ActualDeliveryCompletedTime: d.ActualDeliveryCompletedTime,
		RiderAcceptedTime:           d.RiderAcceptedTime,
		RiderPickupTime:             d.RiderPickupTime,
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
		CreatedAt:                   d.CreatedAt,
		UpdatedAt:                   d.UpdatedAt,
	}, nil
}

func FromDeliveries(list []entities.Delivery) ([]Delivery, error) {
	res := make([]Delivery, 0, len(list))
	for _, d := range list {
		item, err := FromDelivery(d)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

func FromNearby(list []entities.DeliveryWithDistance) ([]NearbyDelivery, error) {
	res := make([]NearbyDelivery, 0, len(list))
	for _, d := range list {
		item, err := FromDelivery(d.Delivery)
		if err != nil {
			return nil, err
		}
		res = append(res, NearbyDelivery{Delivery: item, DistanceToDriverKm: d.DistanceToDriverKm})
	}
	return res, nil
}

func FromDriverStats(s entities.DriverStats) DriverStats {
	return DriverStats{
		DriverID:         s.DriverID,
		TotalDeliveries:  s.TotalDeliveries,
		TotalEarnings:    s.TotalEarnings,
		OnTimeDeliveries: s.OnTimeDeliveries,
		LastDeliveredAt:  s.LastDeliveredAt,
	}
}

func FromEarningConfig(c entities.EarningConfig) EarningConfig {
	return EarningConfig{
		BaseDistanceKm:        c.BaseDistanceKm,
		BaseEarning:           c.BaseEarning,
		ExtraPerKm:            c.ExtraPerKm,
		GracePeriodMinutes:    c.GracePeriodMinutes,
		Penalty6To10:          c.Penalty6To10,
		Penalty11To15:         c.Penalty11To15,
		PenaltyAbove15:        c.PenaltyAbove15,
		EstimatedMinutesPerKm: c.EstimatedMinutesPerKm,
		UpdatedAt:             c.UpdatedAt,
	}
}

func (u EarningConfigUpdate) ToEntity() entities.EarningConfigModify {
	return entities.EarningConfigModify{
		BaseDistanceKm:        u.BaseDistanceKm,
		BaseEarning:           u.BaseEarning,
		ExtraPerKm:            u.ExtraPerKm,
		GracePeriodMinutes:    u.GracePeriodMinutes,
		Penalty6To10:          u.Penalty6To10,
		Penalty11To15:         u.Penalty11To15,
		PenaltyAbove15:        u.PenaltyAbove15,
		EstimatedMinutesPerKm: u.EstimatedMinutesPerKm,
	}
}

func (r IssueReport) ToEntity() entities.ReportIssue {
	return entities.ReportIssue{
		ClientID:    strings.TrimSpace(r.ClientID),
		ReportedBy:  entities.IssueReporter(strings.ToLower(r.ReportedBy)),
		IssueType:   entities.IssueType(strings.ToLower(r.IssueType)),
		Description: r.Description,
		Image:       r.Image,
	}
}

func FromIssue(i entities.DeliveryIssue) Issue {
	return Issue{
		ID:          i.ID,
		DeliveryID:  i.DeliveryID,
		ReportedBy:  string(i.ReportedBy),
		IssueType:   string(i.IssueType),
		Description: i.Description,
		Image:       i.Image,
		CreatedAt:   i.CreatedAt,
	}
}

func FromPushToken(t entities.PushToken) PushToken {
	return PushToken{
		Token:      t.Token,
		DeviceType: t.DeviceType.String(),
		CreatedAt:  t.CreatedAt,
	}
}
