// Package metrics exposes the Prometheus instruments for the chat subsystem.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worklink_ws_active_connections",
		Help: "Number of live WebSocket connections.",
	})

	MessagesDeliveredLive = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worklink_chat_messages_delivered_live_total",
		Help: "Messages pushed to at least one recipient connection.",
	})

	MessagesDeferred = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worklink_chat_messages_deferred_total",
		Help: "Messages persisted with an unread marker because no live delivery was confirmed.",
	})

	InvitationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "worklink_chat_invitations_created_total",
		Help: "Invitations created.",
	})
)
