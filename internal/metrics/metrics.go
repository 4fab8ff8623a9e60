package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ExpenseMutationsTotal counts expense mutations by operation (add, update,
// delete)
var ExpenseMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "expense_mutations_total",
	Help: "Total number of expense mutations processed, by operation.",
}, []string{"operation"})

// NotificationsTotal counts broadcast threshold notifications
var NotificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "notifications_broadcast_total",
	Help: "Total number of notifications broadcast to WebSocket clients.",
})

// ConnectedClients tracks the number of currently-open WebSocket connections
var ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "websocket_connected_clients",
	Help: "Number of currently connected WebSocket clients.",
})
