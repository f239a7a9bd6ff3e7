package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DeliveryClaimsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_claims_total",
			Help: "Claim attempts by result",
		},
		[]string{"result"},
	)

	DeliveryTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_transitions_total",
			Help: "Committed status transitions",
		},
		[]string{"from", "to"},
	)

	DeliveryExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "delivery_expired_total",
			Help: "Deliveries failed by the expiry sweep",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_notifications_total",
			Help: "Lifecycle side effects by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)
)

const (
	ChannelPush    = "push"
	ChannelWebhook = "webhook"
	ChannelReward  = "reward"
	ChannelStats   = "stats"
	ChannelEvent   = "event"

	OutcomeSent    = "sent"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)
