package conduction

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-latticegraph/pkg/lattice"
	"github.com/dd0wney/cluso-latticegraph/pkg/logging"
)

// randomCell builds a small orthorhombic cell with 1-8 random sites
func randomCell(seed int64) *lattice.Structure {
	rng := rand.New(rand.NewSource(seed))
	lat, err := lattice.Orthorhombic(2+4*rng.Float64(), 2+4*rng.Float64(), 2+4*rng.Float64())
	if err != nil {
		panic(err)
	}
	n := 1 + rng.Intn(8)
	species := make([]string, n)
	fracs := make([]lattice.Vec3, n)
	for i := range fracs {
		species[i] = "X"
		fracs[i] = lattice.Vec3{rng.Float64(), rng.Float64(), rng.Float64()}
	}
	s, err := lattice.NewStructure(lat, species, fracs)
	if err != nil {
		panic(err)
	}
	return s
}

func runProperty(seed int64, axis int, cutoff float64) *Result {
	opts := DefaultOptions(cutoff)
	opts.Axis = axis
	res, err := NewPipeline(opts, WithLogger(logging.NewNopLogger()), WithRunID("prop")).Run(randomCell(seed))
	if err != nil {
		panic(err)
	}
	return res
}

// TestNetworkInvariants checks the structural guarantees of the pipeline on
// random cells
func TestNetworkInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	seeds := gen.Int64()
	axes := gen.IntRange(0, 2)
	cutoffs := gen.Float64Range(0.3, 3.5)

	properties.Property("no self-loops", prop.ForAll(
		func(seed int64, axis int, cutoff float64) bool {
			for _, e := range runProperty(seed, axis, cutoff).Network.Edges {
				if e.From == e.To {
					return false
				}
			}
			return true
		},
		seeds, axes, cutoffs,
	))

	properties.Property("no pair joined in both directions", prop.ForAll(
		func(seed int64, axis int, cutoff float64) bool {
			seen := make(map[[2]int]bool)
			for _, e := range runProperty(seed, axis, cutoff).Network.Edges {
				if seen[[2]int{e.To, e.From}] || seen[[2]int{e.From, e.To}] {
					return false
				}
				seen[[2]int{e.From, e.To}] = true
			}
			return true
		},
		seeds, axes, cutoffs,
	))

	properties.Property("start and end lists stay parallel", prop.ForAll(
		func(seed int64, axis int, cutoff float64) bool {
			res := runProperty(seed, axis, cutoff)
			return len(res.Terminals.Start) == len(res.Terminals.End) &&
				len(res.Network.Start) == len(res.Network.End)
		},
		seeds, axes, cutoffs,
	))

	properties.Property("relabeling preserves insertion order", prop.ForAll(
		func(seed int64, axis int, cutoff float64) bool {
			res := runProperty(seed, axis, cutoff)
			for i, node := range res.Network.Nodes {
				rank, ok := res.Graph.InsertionRank(node.Source)
				if !ok || rank != i || node.Label != i+1 {
					return false
				}
			}
			return true
		},
		seeds, axes, cutoffs,
	))

	properties.Property("relabeled end maps back to start+1", prop.ForAll(
		func(seed int64, axis int, cutoff float64) bool {
			net := runProperty(seed, axis, cutoff).Network
			for i := range net.Start {
				start, ok1 := net.Source(net.Start[i])
				end, ok2 := net.Source(net.End[i])
				if !ok1 || !ok2 || end != start+1 {
					return false
				}
			}
			return true
		},
		seeds, axes, cutoffs,
	))

	properties.Property("nodes come from the middle replica or are end atoms", prop.ForAll(
		func(seed int64, axis int, cutoff float64) bool {
			res := runProperty(seed, axis, cutoff)
			ends := make(map[int]bool)
			for _, e := range res.Terminals.End {
				ends[e] = true
			}
			for _, id := range res.Graph.Nodes() {
				if !res.Supercell.IsMiddle(id) && !ends[id] {
					return false
				}
			}
			return true
		},
		seeds, axes, cutoffs,
	))

	properties.Property("edge count never drops as cutoff grows", prop.ForAll(
		func(seed int64, axis int, cutoff, extra float64) bool {
			small := runProperty(seed, axis, cutoff)
			large := runProperty(seed, axis, cutoff+extra)
			return small.Graph.EdgeCount() <= large.Graph.EdgeCount()
		},
		seeds, axes, cutoffs, gen.Float64Range(0, 2),
	))

	properties.TestingRun(t)
}
