package conduction

import (
	"github.com/dd0wney/cluso-latticegraph/pkg/digraph"
	"github.com/dd0wney/cluso-latticegraph/pkg/lattice"
)

// NetworkNode is a graph node under its dense label
type NetworkNode struct {
	Label    int          `json:"label" yaml:"label"`
	Source   int          `json:"source" yaml:"source"`
	Position lattice.Vec3 `json:"position" yaml:"position"`
}

// NetworkEdge is a weighted edge between two labels
type NetworkEdge struct {
	From   int `json:"from" yaml:"from"`
	To     int `json:"to" yaml:"to"`
	Weight int `json:"weight" yaml:"weight"`
}

// Network is the relabeled graph handed to downstream consumers. Labels run
// 1..N in the order the nodes were first added to the graph.
type Network struct {
	Nodes []NetworkNode
	Edges []NetworkEdge
	Start []int
	End   []int

	labels map[int]int
}

// Label returns the label of supercell site source
func (n *Network) Label(source int) (int, bool) {
	label, ok := n.labels[source]
	return label, ok
}

// Source returns the supercell site behind label
func (n *Network) Source(label int) (int, bool) {
	if label < 1 || label > len(n.Nodes) {
		return 0, false
	}
	return n.Nodes[label-1].Source, true
}

// Relabel maps the nodes of g onto 1..N in insertion order and re-expresses
// the terminals under those labels. A pair with an atom that is not a node is
// dropped and reported.
func Relabel(g *digraph.Graph, t Terminals) (*Network, []Warning) {
	ids := g.Nodes()
	net := &Network{
		Nodes:  make([]NetworkNode, len(ids)),
		labels: make(map[int]int, len(ids)),
	}
	for i, id := range ids {
		node, _ := g.Node(id)
		net.Nodes[i] = NetworkNode{Label: i + 1, Source: id, Position: node.Position}
		net.labels[id] = i + 1
	}

	edges := g.Edges()
	net.Edges = make([]NetworkEdge, len(edges))
	for i, e := range edges {
		net.Edges[i] = NetworkEdge{From: net.labels[e.From], To: net.labels[e.To], Weight: e.Weight}
	}

	var warnings []Warning
	net.Start = make([]int, 0, t.Len())
	net.End = make([]int, 0, t.Len())
	for i := range t.Start {
		start, okStart := net.labels[t.Start[i]]
		end, okEnd := net.labels[t.End[i]]
		if !okStart || !okEnd {
			warnings = append(warnings, newWarning(WarnUnlabeledTerminal,
				[]int{t.Start[i], t.End[i]},
				"start/end pair is not part of the graph, dropped"))
			continue
		}
		net.Start = append(net.Start, start)
		net.End = append(net.End, end)
	}
	return net, warnings
}
