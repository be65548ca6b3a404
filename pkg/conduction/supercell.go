package conduction

import (
	"github.com/dd0wney/cluso-latticegraph/pkg/lattice"
)

// Supercell is the prepared cell tiled Replicas times along one axis. Site
// indices are interleaved by replica: index mod Replicas is the replica.
type Supercell struct {
	Structure *lattice.Structure
	Axis      int
	First     []int
	Middle    []int
	Last      []int
}

// Len returns the number of sites in the supercell
func (sc *Supercell) Len() int {
	return sc.Structure.Len()
}

// Replica returns which replica (0 first, 1 middle, 2 last) idx belongs to
func (sc *Supercell) Replica(idx int) int {
	return idx % Replicas
}

// IsMiddle reports whether idx lies in the middle replica
func (sc *Supercell) IsMiddle(idx int) bool {
	return idx >= 0 && idx < sc.Len() && idx%Replicas == 1
}

// Position returns the cartesian coordinate of site idx
func (sc *Supercell) Position(idx int) lattice.Vec3 {
	return sc.Structure.Sites[idx].Cart
}

// Length returns the supercell lattice length along its axis
func (sc *Supercell) Length() float64 {
	return sc.Structure.Lattice.Abc()[sc.Axis]
}

// BuildSupercell tiles the prepared cell Replicas times along axis with tiler
// and partitions the indices into first, middle and last replicas
func BuildSupercell(prepared *PreparedCell, axis int, tiler lattice.Tiler) (*Supercell, error) {
	if prepared == nil || prepared.Len() == 0 {
		return nil, NewError(StageSupercell).Cause(ErrEmptyInput).Err()
	}
	if err := lattice.CheckAxis(axis); err != nil {
		return nil, configError(err)
	}
	if tiler == nil {
		tiler = lattice.InterleavedTiler{}
	}

	tiled, err := tiler.Tile(prepared.Structure, axis, Replicas)
	if err != nil {
		return nil, NewError(StageSupercell).Context("tile: %v", err).Cause(ErrInvariant).Err()
	}
	if tiled == nil || tiled.Len() != Replicas*prepared.Len() {
		got := 0
		if tiled != nil {
			got = tiled.Len()
		}
		return nil, invariantError(StageSupercell, "tiled %d sites, want %d", got, Replicas*prepared.Len())
	}

	n := prepared.Len()
	sc := &Supercell{
		Structure: tiled,
		Axis:      axis,
		First:     make([]int, 0, n),
		Middle:    make([]int, 0, n),
		Last:      make([]int, 0, n),
	}
	for idx := 0; idx < tiled.Len(); idx++ {
		switch idx % Replicas {
		case 0:
			sc.First = append(sc.First, idx)
		case 1:
			sc.Middle = append(sc.Middle, idx)
		default:
			sc.Last = append(sc.Last, idx)
		}
	}
	if len(sc.Middle) != n {
		return nil, invariantError(StageSupercell, "middle replica has %d sites, want %d", len(sc.Middle), n)
	}
	return sc, nil
}
