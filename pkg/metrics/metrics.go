package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OrdersPlaced counts placed orders by resulting status.
	OrdersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cafe",
		Subsystem: "order",
		Name:      "orders_placed_total",
		Help:      "Total number of placed orders by resulting status.",
	}, []string{"status"})

	// ReconcileTasks counts reconciler cancellation tasks by outcome.
	ReconcileTasks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cafe",
		Subsystem: "payment",
		Name:      "reconcile_tasks_total",
		Help:      "Total number of payment reconciliation tasks by outcome.",
	}, []string{"outcome"})
)

// Handler returns the prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
