package conduction

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-latticegraph/pkg/algorithms"
	"github.com/dd0wney/cluso-latticegraph/pkg/digraph"
	"github.com/dd0wney/cluso-latticegraph/pkg/lattice"
	"github.com/dd0wney/cluso-latticegraph/pkg/logging"
	"github.com/dd0wney/cluso-latticegraph/pkg/metrics"
)

// StageTiming is the wall time of one stage
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Result holds every stage output of a run
type Result struct {
	RunID     string
	Options   Options
	Prepared  *PreparedCell
	Supercell *Supercell
	Neighbors *NeighborMap
	Terminals Terminals
	Graph     *digraph.Graph
	Network   *Network

	Warnings   []Warning
	Cycles     []algorithms.Cycle
	CycleStats algorithms.CycleStats
	// CyclicComponents are the strongly connected components that hold a
	// cycle, each listed once
	CyclicComponents [][]int
	// Order is a topological order of the graph nodes; nil when the
	// graph is cyclic or cycles were not checked
	Order []int
	// Paths holds the fewest-hop start->end path for each terminal pair,
	// parallel to Terminals.Start; nil entries have no path
	Paths   [][]int
	Timings []StageTiming
}

// HasWarning reports whether a warning with code was raised
func (r *Result) HasWarning(code WarningCode) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Pipeline runs the six extraction stages followed by optional analysis
type Pipeline struct {
	opts    Options
	logger  logging.Logger
	metrics *metrics.Registry
	tiler   lattice.Tiler
	runID   string
}

// PipelineOption configures a Pipeline
type PipelineOption func(*Pipeline)

// WithLogger sets the logger; the default is logging.DefaultLogger()
func WithLogger(logger logging.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithMetrics records run, stage and network metrics into r
func WithMetrics(r *metrics.Registry) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = r
	}
}

// WithTiler replaces the interleaved tiler
func WithTiler(t lattice.Tiler) PipelineOption {
	return func(p *Pipeline) {
		p.tiler = t
	}
}

// WithRunID fixes the run id instead of generating one
func WithRunID(id string) PipelineOption {
	return func(p *Pipeline) {
		p.runID = id
	}
}

// NewPipeline creates a pipeline. Options are validated by Run.
func NewPipeline(opts Options, options ...PipelineOption) *Pipeline {
	p := &Pipeline{
		opts:  opts,
		tiler: lattice.InterleavedTiler{},
	}
	for _, o := range options {
		o(p)
	}
	if p.logger == nil {
		p.logger = logging.DefaultLogger()
	}
	return p
}

// Run extracts the conduction network of cell. Only configuration, empty
// input and broken invariants are errors; everything else is reported in
// Result.Warnings.
func (p *Pipeline) Run(cell *lattice.Structure) (*Result, error) {
	res := &Result{RunID: p.runID, Options: p.opts}
	if res.RunID == "" {
		res.RunID = uuid.NewString()
	}
	log := p.logger.With(logging.Component("pipeline"), logging.RunID(res.RunID))

	if err := p.opts.Validate(); err != nil {
		log.Error("invalid options", logging.Error(err))
		p.recordRun("error")
		return nil, err
	}
	log.Info("pipeline started",
		logging.Axis(p.opts.Axis),
		logging.Cutoff(p.opts.Cutoff),
		logging.Count(siteCount(cell)))

	if err := p.runStages(res, cell, log); err != nil {
		p.recordRun("error")
		return nil, err
	}

	p.analyze(res, log)

	for _, w := range res.Warnings {
		log.Warn(w.Message, logging.String("code", string(w.Code)), logging.Any("atoms", w.Atoms))
		if p.metrics != nil {
			p.metrics.RecordWarning(string(w.Code))
		}
	}
	if p.metrics != nil {
		p.metrics.UpdateNetwork(res.Supercell.Len(), len(res.Network.Nodes),
			len(res.Network.Edges), len(res.Network.Start), len(res.Cycles))
	}

	status := "success"
	if len(res.Warnings) > 0 {
		status = "warning"
	}
	p.recordRun(status)
	log.Info("pipeline finished",
		logging.Int("nodes", len(res.Network.Nodes)),
		logging.Int("edges", len(res.Network.Edges)),
		logging.Int("warnings", len(res.Warnings)))
	return res, nil
}

func (p *Pipeline) runStages(res *Result, cell *lattice.Structure, log logging.Logger) error {
	opts := p.opts

	err := p.stage(res, log, StagePrepare, func() (int, error) {
		prepared, err := PrepareCell(cell, opts)
		if err != nil {
			return 0, err
		}
		res.Prepared = prepared
		return len(prepared.Folded), nil
	})
	if err != nil {
		return err
	}

	err = p.stage(res, log, StageSupercell, func() (int, error) {
		sc, err := BuildSupercell(res.Prepared, opts.Axis, p.tiler)
		if err != nil {
			return 0, err
		}
		res.Supercell = sc
		return sc.Len(), nil
	})
	if err != nil {
		return err
	}

	_ = p.stage(res, log, StageNeighbors, func() (int, error) {
		res.Neighbors = FindNeighbors(res.Supercell, opts.Cutoff)
		total := 0
		for _, idx := range res.Neighbors.Atoms() {
			n := len(res.Neighbors.Of(idx))
			total += n
			if p.metrics != nil {
				p.metrics.RecordNeighbors(n)
			}
		}
		return total, nil
	})

	_ = p.stage(res, log, StageClassify, func() (int, error) {
		res.Terminals = ClassifyBoundaryAtoms(res.Supercell, res.Neighbors, opts.StartFraction)
		for i, start := range res.Terminals.Start {
			log.Debug("start atom", logging.Atom(start), logging.Int("end", res.Terminals.End[i]))
		}
		if res.Terminals.Len() == 0 {
			res.Warnings = append(res.Warnings, newWarning(WarnNoStartAtoms, nil,
				"no start atoms at cutoff %g; the network has no terminals", opts.Cutoff))
		}
		return res.Terminals.Len(), nil
	})

	err = p.stage(res, log, StageAssemble, func() (int, error) {
		g, err := AssembleGraph(res.Supercell, res.Neighbors, res.Terminals, opts)
		if err != nil {
			return 0, err
		}
		res.Graph = g
		return g.EdgeCount(), nil
	})
	if err != nil {
		return err
	}

	return p.stage(res, log, StageRelabel, func() (int, error) {
		net, warnings := Relabel(res.Graph, res.Terminals)
		res.Network = net
		res.Warnings = append(res.Warnings, warnings...)
		return len(net.Nodes), nil
	})
}

// stage times fn, logs its outcome with the count it returns and records
// the duration
func (p *Pipeline) stage(res *Result, log logging.Logger, name string, fn func() (int, error)) error {
	timer := logging.StartTimer(log, "stage complete", logging.Stage(name))
	n, err := fn()
	var elapsed time.Duration
	if err != nil {
		elapsed = timer.EndError(err)
	} else {
		elapsed = timer.End(logging.Count(n))
	}
	res.Timings = append(res.Timings, StageTiming{Stage: name, Duration: elapsed})
	if p.metrics != nil {
		p.metrics.RecordStage(name, elapsed)
	}
	return err
}

// analyze runs the optional cycle and path checks over the assembled graph
func (p *Pipeline) analyze(res *Result, log logging.Logger) {
	if !p.opts.CheckCycles && !p.opts.CheckPaths {
		return
	}
	_ = p.stage(res, log, StageAnalyze, func() (int, error) {
		found := 0
		if p.opts.CheckCycles {
			found += p.checkCycles(res)
		}
		if p.opts.CheckPaths {
			found += p.checkPaths(res, log)
		}
		return found, nil
	})
}

func (p *Pipeline) checkCycles(res *Result) int {
	res.Cycles = algorithms.DetectCycles(res.Graph)
	res.CycleStats = algorithms.AnalyzeCycles(res.Cycles)
	if len(res.Cycles) == 0 {
		if order, err := algorithms.TopologicalSort(res.Graph); err == nil {
			res.Order = order
		}
		return 0
	}
	res.CyclicComponents = algorithms.StronglyConnectedComponents(res.Graph).Cyclic(res.Graph)
	res.Warnings = append(res.Warnings, newWarning(WarnCyclic, []int(res.Cycles[0]),
		"graph has %d directed cycles in %d components", len(res.Cycles), len(res.CyclicComponents)))
	return len(res.Cycles)
}

// checkPaths looks for a directed path between each terminal pair whose atoms
// are both graph nodes
func (p *Pipeline) checkPaths(res *Result, log logging.Logger) int {
	missing := 0
	res.Paths = make([][]int, res.Terminals.Len())
	for i, start := range res.Terminals.Start {
		end := res.Terminals.End[i]
		if !res.Graph.HasNode(start) || !res.Graph.HasNode(end) {
			continue
		}
		path := algorithms.ShortestPath(res.Graph, start, end)
		if path == nil {
			res.Warnings = append(res.Warnings, newWarning(WarnDisconnectedPair,
				[]int{start, end}, "no directed path from start to end atom"))
			missing++
			continue
		}
		res.Paths[i] = path
		log.Debug("terminal path", logging.Atom(start), logging.Int("hops", len(path)-1))
	}
	return missing
}

func (p *Pipeline) recordRun(status string) {
	if p.metrics != nil {
		p.metrics.RecordRun(status)
	}
}

func siteCount(cell *lattice.Structure) int {
	if cell == nil {
		return 0
	}
	return cell.Len()
}
