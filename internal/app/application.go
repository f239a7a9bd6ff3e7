package app

import (
	"dispatch/internal/handlers/rest/admin_orders_get"
	"dispatch/internal/handlers/rest/assigned_deliveries_get"
	"dispatch/internal/handlers/rest/available_deliveries_get"
	"dispatch/internal/handlers/rest/check_address_post"
	"dispatch/internal/handlers/rest/delivery_accept_post"
	"dispatch/internal/handlers/rest/delivery_cancel_post"
	"dispatch/internal/handlers/rest/delivery_issue_post"
	"dispatch/internal/handlers/rest/delivery_post"
	"dispatch/internal/handlers/rest/driver_location_put"
	"dispatch/internal/handlers/rest/driver_orders_get"
	"dispatch/internal/handlers/rest/driver_stats_get"
	"dispatch/internal/handlers/rest/earning_config_get"
	"dispatch/internal/handlers/rest/earning_config_put"
	"dispatch/internal/handlers/rest/nearby_deliveries_get"
	"dispatch/internal/handlers/rest/order_get"
	"dispatch/internal/handlers/rest/order_patch"
	"dispatch/internal/handlers/rest/push_token_delete"
	"dispatch/internal/handlers/rest/push_token_post"
	"dispatch/internal/handlers/tasks/delivery_expiry"
	"dispatch/internal/pkg/middlewares/auth"
	deliveryService "dispatch/internal/service/delivery"
	"dispatch/pkg/background"
)

type Application struct {
	ServiceDelivery   ServiceDelivery
	ServiceDispatch   ServiceDispatch
	ServiceEarning    ServiceEarning
	ServiceEvents     ServiceEvents
	ServiceIssue      ServiceIssue
	ServicePushToken  ServicePushToken
	Authenticator     *auth.Authenticator
	BackgroundWorkers *background.Worker
}

type ServiceDelivery interface {
	delivery_post.Service
	check_address_post.Service
	delivery_cancel_post.Service
	delivery_accept_post.Service
	order_get.Service
	order_patch.Service
	assigned_deliveries_get.Service
	driver_orders_get.Service
	admin_orders_get.Service
	delivery_expiry.Service
}

type ServiceDispatch interface {
	available_deliveries_get.Service
	nearby_deliveries_get.Service
	driver_location_put.Service
}

type ServiceEarning interface {
	earning_config_get.Service
	earning_config_put.Service
}

type ServiceEvents interface {
	driver_stats_get.Service
}

type ServiceIssue interface {
	delivery_issue_post.Service
}

type ServicePushToken interface {
	push_token_post.Service
	push_token_delete.Service
}

type KafkaWorkerApp struct {
	DeliveryService *deliveryService.Delivery
}

type CLIApp struct {
	DeliveryService *deliveryService.Delivery
}
