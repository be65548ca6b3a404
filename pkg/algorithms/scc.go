package algorithms

import "github.com/dd0wney/cluso-latticegraph/pkg/digraph"

// SCCResult holds the strongly connected components of a graph. Components
// are listed in the order Tarjan's algorithm closes them, which is a reverse
// topological order of the condensation.
type SCCResult struct {
	Components    [][]int
	NodeComponent map[int]int
	Largest       []int
	// SingletonCount is the number of single-node components
	SingletonCount int
}

// Cyclic returns the components that contain a directed cycle: every
// component with more than one node, plus single nodes with a self loop
func (r *SCCResult) Cyclic(g *digraph.Graph) [][]int {
	var cyclic [][]int
	for _, c := range r.Components {
		if len(c) > 1 || g.HasEdge(c[0], c[0]) {
			cyclic = append(cyclic, c)
		}
	}
	return cyclic
}

// tarjanState holds per-node state during Tarjan's DFS.
type tarjanState struct {
	index   int
	lowlink int
	onStack bool
}

// StronglyConnectedComponents finds all SCCs using Tarjan's algorithm in O(V+E) time.
// Roots are visited in node insertion order so the result is deterministic.
func StronglyConnectedComponents(g *digraph.Graph) *SCCResult {
	nodeIDs := g.Nodes()
	state := make(map[int]*tarjanState, len(nodeIDs))
	var stack []int
	indexCounter := 0
	result := &SCCResult{NodeComponent: make(map[int]int, len(nodeIDs))}

	var strongconnect func(u int)
	strongconnect = func(u int) {
		state[u] = &tarjanState{
			index:   indexCounter,
			lowlink: indexCounter,
			onStack: true,
		}
		indexCounter++
		stack = append(stack, u)

		for _, v := range g.Successors(u) {
			if _, exists := state[v]; !exists {
				strongconnect(v)
				state[u].lowlink = min(state[u].lowlink, state[v].lowlink)
			} else if state[v].onStack {
				state[u].lowlink = min(state[u].lowlink, state[v].index)
			}
		}

		// u is a root: pop its component
		if state[u].lowlink == state[u].index {
			id := len(result.Components)
			var members []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				state[w].onStack = false
				members = append(members, w)
				result.NodeComponent[w] = id
				if w == u {
					break
				}
			}
			result.Components = append(result.Components, members)
		}
	}

	for _, id := range nodeIDs {
		if _, exists := state[id]; !exists {
			strongconnect(id)
		}
	}

	for _, c := range result.Components {
		if len(c) == 1 {
			result.SingletonCount++
		}
		if len(c) > len(result.Largest) {
			result.Largest = c
		}
	}
	return result
}
