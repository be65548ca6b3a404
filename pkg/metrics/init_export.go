package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initExportMetrics() {
	r.ExportsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "latticegraph_exports_total",
			Help: "Total number of network exports by target and outcome",
		},
		[]string{"target", "status"},
	)

	r.ExportBytes = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "latticegraph_export_bytes",
			Help:    "Size of exported network documents in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"target"},
	)
}
