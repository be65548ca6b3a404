package export

import (
	"github.com/dd0wney/cluso-latticegraph/pkg/conduction"
	"github.com/dd0wney/cluso-latticegraph/pkg/lattice"
)

// Document is the serialised form of a relabeled network. It is the only
// artifact downstream circuit emitters read.
type Document struct {
	RunID       string                   `json:"run_id" yaml:"run_id"`
	Axis        int                      `json:"axis" yaml:"axis"`
	Cutoff      float64                  `json:"cutoff" yaml:"cutoff"`
	Translation lattice.Vec3             `json:"translation" yaml:"translation"`
	Nodes       []conduction.NetworkNode `json:"nodes" yaml:"nodes"`
	Edges       []conduction.NetworkEdge `json:"edges" yaml:"edges"`
	Start       []int                    `json:"start" yaml:"start"`
	End         []int                    `json:"end" yaml:"end"`
	// Order is a topological order of the labels, present for acyclic graphs
	Order []int `json:"order,omitempty" yaml:"order,omitempty"`
	// Paths are the fewest-hop start->end label paths of connected pairs
	Paths    [][]int              `json:"paths,omitempty" yaml:"paths,omitempty"`
	Warnings []conduction.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewDocument captures the network and run parameters of res
func NewDocument(res *conduction.Result) Document {
	net := res.Network
	doc := Document{
		RunID:       res.RunID,
		Axis:        res.Options.Axis,
		Cutoff:      res.Options.Cutoff,
		Translation: res.Options.Translation,
		Nodes:       nonNil(net.Nodes),
		Edges:       nonNil(net.Edges),
		Start:       nonNil(net.Start),
		End:         nonNil(net.End),
		Warnings:    res.Warnings,
	}
	doc.Order = toLabels(net, res.Order)
	for _, path := range res.Paths {
		if labels := toLabels(net, path); len(labels) == len(path) && len(path) > 0 {
			doc.Paths = append(doc.Paths, labels)
		}
	}
	return doc
}

func toLabels(net *conduction.Network, atoms []int) []int {
	var labels []int
	for _, id := range atoms {
		if label, ok := net.Label(id); ok {
			labels = append(labels, label)
		}
	}
	return labels
}

// nonNil keeps empty lists as [] rather than null in JSON
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
