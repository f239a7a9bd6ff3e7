package lifecycle

import (
	"fmt"
	"strings"

	"dispatch/internal/entities"
)

const (
	WebhookEvent = "status"

	fallbackTitle = "Order Notification"
	fallbackBody  = "No specific message available."
)

type template struct {
	title string
	body  string
}

// Заголовок может содержать %s для client_id заказа.
var messages = map[entities.DeliveryStatus]template{
	entities.StatusCreated: {
		title: "Order #%s Placed",
		body:  "We've got your delivery request and are preparing it for dispatch.",
	},
	entities.StatusWaitingForDriver: {
		title: "Order #%s Waiting for Driver",
		body:  "Your order is waiting for a driver to pick it up.",
	},
	entities.StatusDriverAssigned: {
		title: "Driver Assigned to Order #%s",
		body:  "A driver has been assigned for your order. They'll be with you soon!",
	},
	entities.StatusOrderPickedUp: {
		title: "Rider Picked Up Order #%s",
		body:  "Your order has been picked up by the rider and is on its way to you.",
	},
	entities.StatusOnTheWay: {
		title: "Rider On the Way for Order #%s",
		body:  "Your rider is on the way with your order. Stay tuned!",
	},
	entities.StatusArrived: {
		title: "Almost There, Get Ready!",
		body:  "Your rider has arrived at the drop-off point.",
	},
	entities.StatusDeliverySuccess: {
		title: "Delivered!",
		body:  "Bon appétit! Your order has arrived.",
	},
	entities.StatusDeliveryFailed: {
		title: "Delivery Failed",
		body:  "We couldn’t assign a delivery person. Your order has been cancelled and refunded.",
	},
	entities.StatusDriverRejected: {
		title: "Order #%s Rejected",
		body:  "The driver could not take your order. We are looking into it.",
	},
	entities.StatusCanceled: {
		title: "Order Canceled",
		body:  "Your order has been canceled. Need help? Contact support or place a new order.",
	},
}

// failedAfterPickup текст для доставки, которая сорвалась уже у водителя.
var failedAfterPickup = template{
	title: "Order #%s Could Not Be Delivered",
	body:  "Your delivery could not be completed. Support will contact you shortly.",
}

// Notifier переводит состояние доставки в пуш и вебхук. Побочных эффектов нет.
type Notifier struct{}

func New() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Message(delivery entities.Delivery) entities.PushMessage {
	tpl, ok := messages[delivery.Status]
	if delivery.Status == entities.StatusDeliveryFailed && delivery.DriverID != nil {
		tpl = failedAfterPickup
	}
	if !ok {
		return entities.PushMessage{
			Title: fallbackTitle,
			Body:  fallbackBody,
			Data:  pushData(delivery, fallbackTitle, fallbackBody),
		}
	}

	title := tpl.title
	if strings.Contains(title, "%s") {
		title = fmt.Sprintf(title, delivery.ClientID)
	}

	return entities.PushMessage{
		Title: title,
		Body:  tpl.body,
		Data:  pushData(delivery, title, tpl.body),
	}
}

// Target получатель пуша: назначенный водитель, иначе покупатель платформы.
func (n *Notifier) Target(delivery entities.Delivery) (entities.PushTarget, bool) {
	if delivery.Assigned && delivery.DriverID != nil && *delivery.DriverID != "" {
		return entities.PushTarget{Kind: entities.PushOwnerDriver, ID: *delivery.DriverID}, true
	}
	if delivery.CustomerInfo.PlatformUserID != "" {
		return entities.PushTarget{Kind: entities.PushOwnerCustomer, ID: delivery.CustomerInfo.PlatformUserID}, true
	}
	return entities.PushTarget{}, false
}

// InformsPlatform платформе заказов не шлем статусы до назначения водителя.
func (n *Notifier) InformsPlatform(status entities.DeliveryStatus) bool {
	switch status {
	case entities.StatusCreated, entities.StatusWaitingForDriver:
		return false
	default:
		return true
	}
}

func (n *Notifier) Webhook(delivery entities.Delivery) entities.StatusWebhook {
	webhook := entities.StatusWebhook{
		Event:                       WebhookEvent,
		ClientID:                    delivery.ClientID,
		UID:                         delivery.UID,
		Status:                      delivery.Status,
		ActualDeliveryCompletedTime: delivery.ActualDeliveryCompletedTime,
		RiderAcceptedTime:           delivery.RiderAcceptedTime,
		RiderPickupTime:             delivery.RiderPickupTime,
		DriverInfo:                  []entities.DriverInfo{},
	}
	if delivery.DriverID != nil {
		webhook.DriverInfo = append(webhook.DriverInfo, entities.DriverInfo{DriverID: *delivery.DriverID})
	}
	return webhook
}

func pushData(delivery entities.Delivery, title, body string) map[string]string {
	return map[string]string{
		"campaign_title":   title,
		"campaign_message": body,
		"client_id":        delivery.ClientID,
		"status":           delivery.Status.String(),
	}
}
