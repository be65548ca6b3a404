package conduction

import (
	"github.com/dd0wney/cluso-latticegraph/pkg/digraph"
)

// AssembleGraph builds the directed conduction graph over the middle replica.
//
// Edges out of a start atom point away from it. Any other middle pair is
// oriented from the lower to the higher axis coordinate, ties going from the
// queried site. Each end atom then receives an edge from every middle-replica
// neighbor. A pair already joined in either direction is never joined again.
// Every node carries its supercell position and self-loops are dropped.
func AssembleGraph(sc *Supercell, nm *NeighborMap, t Terminals, opts Options) (*digraph.Graph, error) {
	if err := t.Validate(sc); err != nil {
		return nil, err
	}

	g := digraph.New()
	w := opts.EdgeWeight
	axis := sc.Axis

	for _, idx := range nm.Atoms() {
		if t.IsStart(idx) {
			for _, nbr := range nm.Of(idx) {
				if sc.IsMiddle(nbr) {
					g.AddEdge(idx, nbr, w)
				}
			}
			continue
		}

		for _, nbr := range nm.Of(idx) {
			if !sc.IsMiddle(nbr) || g.HasPair(idx, nbr) {
				continue
			}
			if sc.Position(idx)[axis] <= sc.Position(nbr)[axis] {
				g.AddEdge(idx, nbr, w)
			} else {
				g.AddEdge(nbr, idx, w)
			}
		}
	}

	// end atoms are recomputed; most are outside the middle replica
	for _, end := range t.End {
		for _, nbr := range neighborsOf(sc, end, opts.Cutoff) {
			if sc.IsMiddle(nbr) {
				g.AddEdge(nbr, end, w)
			}
		}
	}

	for _, id := range g.Nodes() {
		g.SetPosition(id, sc.Position(id))
	}
	g.RemoveSelfLoops()
	return g, nil
}
