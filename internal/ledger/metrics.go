package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	opsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minibank_ledger_operations_total",
		Help: "Ledger operations by name and outcome.",
	}, []string{"op", "status"})

	opLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "minibank_ledger_operation_latency_seconds",
		Help:    "Latency of ledger operations, durability commit included.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	saveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minibank_snapshot_save_failures_total",
		Help: "Snapshot saves that failed and were surfaced to callers.",
	})
)

// observe classifies an operation result for the metrics above.
func observe(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	opsTotal.WithLabelValues(op, status).Inc()
}
