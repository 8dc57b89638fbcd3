// Package metrics registers the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters exported on /metrics.
type Metrics struct {
	DocumentsReceived *prometheus.CounterVec
	RecordsReconciled *prometheus.CounterVec
	AggregateRequests *prometheus.CounterVec
}

// New registers the service counters in the default Prometheus registry.
func New() *Metrics {
	return &Metrics{
		DocumentsReceived: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "markr_documents_received_total",
				Help: "Submitted result documents by outcome (accepted, malformed, invalid_schema, storage_error).",
			},
			[]string{"outcome"},
		),
		RecordsReconciled: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "markr_records_reconciled_total",
				Help: "Individual result records by reconciliation outcome (applied, skipped).",
			},
			[]string{"outcome"},
		),
		AggregateRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "markr_aggregate_requests_total",
				Help: "Aggregate requests by outcome (served, not_found, storage_error).",
			},
			[]string{"outcome"},
		),
	}
}
