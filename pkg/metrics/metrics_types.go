package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Pipeline Metrics
	PipelineRunsTotal *prometheus.CounterVec
	StageDuration     *prometheus.HistogramVec
	WarningsTotal     *prometheus.CounterVec

	// Network Metrics (last completed run)
	SupercellAtoms prometheus.Gauge
	NetworkNodes   prometheus.Gauge
	NetworkEdges   prometheus.Gauge
	StartAtoms     prometheus.Gauge
	CyclesDetected prometheus.Gauge
	NeighborCounts prometheus.Histogram

	// Export Metrics
	ExportsTotal *prometheus.CounterVec
	ExportBytes  *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)
