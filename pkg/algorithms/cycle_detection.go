package algorithms

import "github.com/dd0wney/cluso-latticegraph/pkg/digraph"

// Cycle represents a detected cycle as a sequence of node IDs
type Cycle []int

const (
	white = iota // unvisited
	gray         // on the DFS stack
	black        // finished
)

// DetectCycles finds cycles using DFS with three-color marking.
// Roots are visited in node insertion order and successors in arc order, so
// the result is reproducible for a given graph.
//
// A back edge to a GRAY node closes a cycle; the cycle is recovered from the
// parent pointers of the current DFS path.
func DetectCycles(g *digraph.Graph) []Cycle {
	color := make(map[int]int, g.NodeCount())
	parent := make(map[int]int, g.NodeCount())
	cycles := make([]Cycle, 0)

	for _, id := range g.Nodes() {
		if color[id] == white {
			dfsDetectCycle(g, id, color, parent, &cycles)
		}
	}
	return cycles
}

func dfsDetectCycle(g *digraph.Graph, id int, color, parent map[int]int, cycles *[]Cycle) {
	color[id] = gray

	for _, next := range g.Successors(id) {
		if next == id {
			*cycles = append(*cycles, Cycle{id})
			continue
		}

		switch color[next] {
		case white:
			parent[next] = id
			dfsDetectCycle(g, next, color, parent, cycles)
		case gray:
			*cycles = append(*cycles, extractCycle(next, id, parent))
		}
		// black: forward or cross edge
	}

	color[id] = black
}

// extractCycle walks parent pointers from end back to start
func extractCycle(start, end int, parent map[int]int) Cycle {
	cycle := Cycle{start}
	for current := end; current != start; {
		cycle = append(cycle, current)
		p, ok := parent[current]
		if !ok {
			break
		}
		current = p
	}
	return cycle
}

// HasCycle reports whether the graph contains any cycle, stopping at the first
func HasCycle(g *digraph.Graph) bool {
	color := make(map[int]int, g.NodeCount())
	for _, id := range g.Nodes() {
		if color[id] == white && hasCycleDFS(g, id, color) {
			return true
		}
	}
	return false
}

func hasCycleDFS(g *digraph.Graph, id int, color map[int]int) bool {
	color[id] = gray
	for _, next := range g.Successors(id) {
		if next == id {
			return true
		}
		switch color[next] {
		case white:
			if hasCycleDFS(g, next, color) {
				return true
			}
		case gray:
			return true
		}
	}
	color[id] = black
	return false
}

// CycleStats summarises a set of cycles
type CycleStats struct {
	TotalCycles   int
	ShortestCycle int
	LongestCycle  int
	AverageLength float64
	SelfLoops     int
}

// AnalyzeCycles computes statistics about detected cycles
func AnalyzeCycles(cycles []Cycle) CycleStats {
	if len(cycles) == 0 {
		return CycleStats{}
	}

	stats := CycleStats{
		TotalCycles:   len(cycles),
		ShortestCycle: len(cycles[0]),
		LongestCycle:  len(cycles[0]),
	}

	total := 0
	for _, cycle := range cycles {
		n := len(cycle)
		total += n
		if n == 1 {
			stats.SelfLoops++
		}
		stats.ShortestCycle = min(stats.ShortestCycle, n)
		stats.LongestCycle = max(stats.LongestCycle, n)
	}

	stats.AverageLength = float64(total) / float64(len(cycles))
	return stats
}
