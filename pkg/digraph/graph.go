// Package digraph is a directed graph with a stable node registry.
//
// Nodes live in an arena in the order they were first seen; an index maps a
// node id to its arena slot. Every edge also records its unordered node pair
// in a side set so that duplicate and antiparallel edges are rejected in O(1).
// Iteration over nodes and edges never depends on map order.
package digraph

import "github.com/dd0wney/cluso-latticegraph/pkg/lattice"

// Arc is an outgoing edge stored on its source node
type Arc struct {
	To     int
	Weight int
}

// Edge is a directed edge with its weight
type Edge struct {
	From   int
	To     int
	Weight int
}

// Node is an arena entry
type Node struct {
	ID          int
	Position    lattice.Vec3
	HasPosition bool
}

type pairKey struct {
	lo, hi int
}

func newPairKey(u, v int) pairKey {
	if u > v {
		u, v = v, u
	}
	return pairKey{lo: u, hi: v}
}

// Graph is not safe for concurrent mutation
type Graph struct {
	nodes    []Node
	index    map[int]int
	out      [][]Arc
	in       [][]int
	inDegree []int
	pairs    map[pairKey]struct{}
	edges    int
}

// New returns an empty graph
func New() *Graph {
	return &Graph{
		index: make(map[int]int),
		pairs: make(map[pairKey]struct{}),
	}
}

// AddNode registers id if it is new. It returns the arena slot of id and
// whether the node was added by this call.
func (g *Graph) AddNode(id int) (int, bool) {
	if slot, ok := g.index[id]; ok {
		return slot, false
	}
	slot := len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id})
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	g.inDegree = append(g.inDegree, 0)
	g.index[id] = slot
	return slot, true
}

// AddEdge adds from->to unless an edge between the two nodes already exists
// in either direction. Both endpoints are registered, from first.
func (g *Graph) AddEdge(from, to, weight int) bool {
	key := newPairKey(from, to)
	if _, exists := g.pairs[key]; exists {
		return false
	}

	src, _ := g.AddNode(from)
	dst, _ := g.AddNode(to)
	g.out[src] = append(g.out[src], Arc{To: to, Weight: weight})
	g.in[dst] = append(g.in[dst], from)
	g.inDegree[dst]++
	g.pairs[key] = struct{}{}
	g.edges++
	return true
}

// HasNode reports whether id is registered
func (g *Graph) HasNode(id int) bool {
	_, ok := g.index[id]
	return ok
}

// HasPair reports whether an edge joins u and v in either direction
func (g *Graph) HasPair(u, v int) bool {
	_, ok := g.pairs[newPairKey(u, v)]
	return ok
}

// HasEdge reports whether the directed edge u->v exists
func (g *Graph) HasEdge(u, v int) bool {
	slot, ok := g.index[u]
	if !ok {
		return false
	}
	for _, arc := range g.out[slot] {
		if arc.To == v {
			return true
		}
	}
	return false
}

// SetPosition attaches a position to a registered node
func (g *Graph) SetPosition(id int, pos lattice.Vec3) bool {
	slot, ok := g.index[id]
	if !ok {
		return false
	}
	g.nodes[slot].Position = pos
	g.nodes[slot].HasPosition = true
	return true
}

// Node returns the arena entry for id
func (g *Graph) Node(id int) (Node, bool) {
	slot, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[slot], true
}

// InsertionRank returns the 0-based position of id in the node registry
func (g *Graph) InsertionRank(id int) (int, bool) {
	slot, ok := g.index[id]
	return slot, ok
}

// Nodes returns node ids in first-insertion order
func (g *Graph) Nodes() []int {
	ids := make([]int, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// Edges returns all edges grouped by source node in insertion order, each
// group in the order its arcs were added
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edges)
	for slot, arcs := range g.out {
		from := g.nodes[slot].ID
		for _, arc := range arcs {
			edges = append(edges, Edge{From: from, To: arc.To, Weight: arc.Weight})
		}
	}
	return edges
}

// Successors returns the targets of the outgoing edges of id
func (g *Graph) Successors(id int) []int {
	slot, ok := g.index[id]
	if !ok {
		return nil
	}
	succ := make([]int, len(g.out[slot]))
	for i, arc := range g.out[slot] {
		succ[i] = arc.To
	}
	return succ
}

// Predecessors returns the sources of the incoming edges of id in the order
// the edges were added
func (g *Graph) Predecessors(id int) []int {
	slot, ok := g.index[id]
	if !ok {
		return nil
	}
	return append([]int(nil), g.in[slot]...)
}

// OutDegree returns the number of outgoing edges of id
func (g *Graph) OutDegree(id int) int {
	slot, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.out[slot])
}

// InDegree returns the number of incoming edges of id
func (g *Graph) InDegree(id int) int {
	slot, ok := g.index[id]
	if !ok {
		return 0
	}
	return g.inDegree[slot]
}

// RemoveSelfLoops deletes every u->u edge and returns how many were removed.
// Nodes are kept.
func (g *Graph) RemoveSelfLoops() int {
	removed := 0
	for slot, arcs := range g.out {
		id := g.nodes[slot].ID
		kept := arcs[:0]
		for _, arc := range arcs {
			if arc.To == id {
				removed++
				g.inDegree[slot]--
				g.in[slot] = removeFirst(g.in[slot], id)
				delete(g.pairs, newPairKey(id, id))
				continue
			}
			kept = append(kept, arc)
		}
		g.out[slot] = kept
	}
	g.edges -= removed
	return removed
}

func removeFirst(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// NodeCount returns the number of registered nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	return g.edges
}
