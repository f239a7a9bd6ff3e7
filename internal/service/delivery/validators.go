package delivery

import (
	"strings"

	"dispatch/internal/entities"
	"dispatch/internal/service/geo"
)

func isValidClientID(clientID string) bool {
	return strings.TrimSpace(clientID) != ""
}

func validateCreate(cmd entities.CreateDelivery) error {
	if !isValidClientID(cmd.ClientID) {
		return ErrInvalidClientID
	}
	if cmd.Pickup.Point == nil || !cmd.Pickup.Point.IsValid() {
		return ErrInvalidPickup
	}
	if err := validateDropOff(cmd.DropOff); err != nil {
		return err
	}
	if cmd.PickupReadyAt.IsZero() || cmd.PickupLastTime.IsZero() || cmd.PickupLastTime.Before(cmd.PickupReadyAt) {
		return ErrInvalidPickupWindow
	}
	if cmd.Amount < 0 || cmd.Tips < 0 {
		return ErrInvalidAmount
	}
	if !cmd.PaymentType.IsValid() {
		return ErrInvalidPaymentType
	}
	if cmd.Currency != "" && !cmd.Currency.IsValid() {
		return ErrInvalidCurrency
	}
	return validateProvider(cmd.GeoProvider)
}

func validateCheckAddress(cmd entities.CheckAddress) error {
	if !cmd.Pickup.IsValid() {
		return ErrInvalidPickup
	}
	if err := validateDropOff(cmd.DropOff); err != nil {
		return err
	}
	return validateProvider(cmd.GeoProvider)
}

func validateDropOff(addr entities.Address) error {
	if addr.Point != nil {
		if !addr.Point.IsValid() {
			return ErrInvalidDropOff
		}
		return nil
	}
	if strings.TrimSpace(addr.Text) == "" {
		return ErrInvalidDropOff
	}
	return nil
}

func validateProvider(p entities.GeoProvider) error {
	switch p {
	case "", entities.GeoProviderGoogle, entities.GeoProviderOSM:
		return nil
	default:
		return geo.ErrUnknownProvider
	}
}

// authorize проверяет, может ли инициатор перевести доставку в статус to.
func authorize(actor entities.Actor, current *entities.Delivery, to entities.DeliveryStatus) error {
	switch actor.Role {
	case entities.RoleAdmin, entities.RolePlatform, entities.RoleSystem:
		return nil
	case entities.RoleDriver:
		if to == entities.StatusCanceled {
			return ErrForbidden
		}
		if current.DriverID == nil || *current.DriverID != actor.ID {
			return ErrNotAssignedDriver
		}
		// повторное сохранение текущего статуса разрешено и снятому водителю
		if !current.Assigned && current.Status != to {
			return ErrNotAssignedDriver
		}
		return nil
	default:
		return ErrForbidden
	}
}

func canCancel(actor entities.Actor) bool {
	switch actor.Role {
	case entities.RoleAdmin, entities.RolePlatform, entities.RoleSystem:
		return true
	default:
		return false
	}
}
