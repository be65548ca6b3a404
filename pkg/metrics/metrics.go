package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initPipelineMetrics()
	r.initNetworkMetrics()
	r.initExportMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordRun counts a finished pipeline run; status is "success", "warning" or "error"
func (r *Registry) RecordRun(status string) {
	r.PipelineRunsTotal.WithLabelValues(status).Inc()
}

// RecordStage records how long one pipeline stage took
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordWarning counts a warning by its code
func (r *Registry) RecordWarning(code string) {
	r.WarningsTotal.WithLabelValues(code).Inc()
}

// RecordNeighbors observes the neighbor-list length of one atom
func (r *Registry) RecordNeighbors(n int) {
	r.NeighborCounts.Observe(float64(n))
}

// UpdateNetwork publishes the size of the most recent network
func (r *Registry) UpdateNetwork(supercellAtoms, nodes, edges, starts, cycles int) {
	r.SupercellAtoms.Set(float64(supercellAtoms))
	r.NetworkNodes.Set(float64(nodes))
	r.NetworkEdges.Set(float64(edges))
	r.StartAtoms.Set(float64(starts))
	r.CyclesDetected.Set(float64(cycles))
}

// RecordExport counts an export attempt and, on success, its size
func (r *Registry) RecordExport(target string, bytes int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.ExportsTotal.WithLabelValues(target, status).Inc()
	if err == nil {
		r.ExportBytes.WithLabelValues(target).Observe(float64(bytes))
	}
}

// WriteTextfile dumps the registry in the text exposition format, for the
// node_exporter textfile collector
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
