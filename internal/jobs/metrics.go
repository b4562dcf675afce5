package jobs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	outboxRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workshop_outbox_events_published_total",
		Help: "The total number of outbox events published to Kafka",
	})
	outboxRelayErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workshop_outbox_publish_errors_total",
		Help: "The total number of failed outbox relay runs",
	})
	activeOrders = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "workshop_active_orders",
		Help: "Orders still on the workshop floor, by status",
	}, []string{"status"})
)
