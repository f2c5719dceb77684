package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Validation metrics
	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drove_spec_validations_total",
			Help: "Total number of spec validations by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// Store metrics
	StoreWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drove_store_writes_total",
			Help: "Total number of store writes by kind and operation",
		},
		[]string{"kind", "op"},
	)

	StoreConflictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drove_store_conflicts_total",
			Help: "Total number of optimistic-concurrency conflicts by kind",
		},
		[]string{"kind"},
	)

	SpecsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "drove_specs_total",
			Help: "Number of stored specs by kind",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(ValidationsTotal)
	prometheus.MustRegister(StoreWritesTotal)
	prometheus.MustRegister(StoreConflictsTotal)
	prometheus.MustRegister(SpecsTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
