package algorithms

import (
	"errors"

	"github.com/dd0wney/cluso-latticegraph/pkg/digraph"
)

// ErrCyclic is returned by TopologicalSort when the graph is not a DAG
var ErrCyclic = errors.New("graph contains cycles, cannot perform topological sort")

// IsDAG reports whether the graph is a directed acyclic graph
func IsDAG(g *digraph.Graph) bool {
	return !HasCycle(g)
}

// TopologicalSort orders nodes with Kahn's algorithm so that u precedes v for
// every edge u->v. Among ready nodes the earlier-inserted one goes first.
func TopologicalSort(g *digraph.Graph) ([]int, error) {
	nodes := g.Nodes()
	inDegree := make(map[int]int, len(nodes))
	queue := make([]int, 0)
	for _, id := range nodes {
		inDegree[id] = g.InDegree(id)
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]int, 0, len(nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)

		for _, next := range g.Successors(current) {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(sorted) != len(nodes) {
		return nil, ErrCyclic
	}
	return sorted, nil
}
