package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPipelineMetrics() {
	r.PipelineRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "latticegraph_pipeline_runs_total",
			Help: "Total number of pipeline runs by outcome",
		},
		[]string{"status"},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "latticegraph_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
		[]string{"stage"},
	)

	r.WarningsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "latticegraph_warnings_total",
			Help: "Total number of non-fatal pipeline warnings by code",
		},
		[]string{"code"},
	)
}

func (r *Registry) initNetworkMetrics() {
	r.SupercellAtoms = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Name: "latticegraph_supercell_atoms",
		Help: "Atoms in the tiled supercell of the last run",
	})

	r.NetworkNodes = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Name: "latticegraph_network_nodes",
		Help: "Nodes in the last relabeled network",
	})

	r.NetworkEdges = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Name: "latticegraph_network_edges",
		Help: "Edges in the last relabeled network",
	})

	r.StartAtoms = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Name: "latticegraph_start_atoms",
		Help: "Start/end pairs in the last relabeled network",
	})

	r.CyclesDetected = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Name: "latticegraph_cycles_detected",
		Help: "Directed cycles found in the last assembled graph",
	})

	r.NeighborCounts = promauto.With(r.registry).NewHistogram(prometheus.HistogramOpts{
		Name:    "latticegraph_neighbors_per_atom",
		Help:    "Neighbor-list length of middle-replica atoms",
		Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
	})
}
