// Package metrics provides Prometheus metrics for the billing server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all billing server metrics.
type Metrics struct {
	ConnectionsAccepted prometheus.Counter
	ActiveConnections   prometheus.Gauge
	BillsComputed       prometheus.Counter
	MalformedRequests   prometheus.Counter
	PatientsNotFound    prometheus.Counter
	StoreReadFailures   prometheus.Counter
	StoreWriteFailures  prometheus.Counter
	HandlerDuration     prometheus.Histogram
}

// New creates all metrics and registers them with reg. Passing a fresh
// registry keeps concurrent test servers from colliding.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ConnectionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "billing_connections_accepted_total",
			Help: "Total client connections accepted",
		}),
		ActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "billing_connections_active",
			Help: "Connections currently being handled",
		}),
		BillsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "billing_bills_computed_total",
			Help: "Total bills computed and sent",
		}),
		MalformedRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "billing_malformed_requests_total",
			Help: "Total request lines that failed to decode or validate",
		}),
		PatientsNotFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "billing_patients_not_found_total",
			Help: "Total requests for unknown patient IDs",
		}),
		StoreReadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "billing_store_read_failures_total",
			Help: "Total store lookups that failed for reasons other than not-found",
		}),
		StoreWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "billing_store_write_failures_total",
			Help: "Total bill writes that failed after a successful computation",
		}),
		HandlerDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "billing_handler_duration_seconds",
			Help:    "Per-connection handling duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
	}

	reg.MustRegister(
		m.ConnectionsAccepted,
		m.ActiveConnections,
		m.BillsComputed,
		m.MalformedRequests,
		m.PatientsNotFound,
		m.StoreReadFailures,
		m.StoreWriteFailures,
		m.HandlerDuration,
	)

	return m
}
