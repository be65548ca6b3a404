package conduction

import (
	"github.com/dd0wney/cluso-latticegraph/pkg/lattice"
)

// NeighborMap holds the neighbor indices of every middle-replica site
type NeighborMap struct {
	atoms []int
	lists map[int][]int
}

// Of returns the neighbors of idx, or nil when idx was not queried
func (nm *NeighborMap) Of(idx int) []int {
	return nm.lists[idx]
}

// Atoms returns the queried sites in query order
func (nm *NeighborMap) Atoms() []int {
	return nm.atoms
}

// Len returns the number of queried sites
func (nm *NeighborMap) Len() int {
	return len(nm.atoms)
}

// FindNeighbors finds, for every middle-replica site, the supercell sites
// within cutoff under periodic boundary conditions. A site is never its own
// neighbor.
func FindNeighbors(sc *Supercell, cutoff float64) *NeighborMap {
	nm := &NeighborMap{
		atoms: make([]int, 0, len(sc.Middle)),
		lists: make(map[int][]int, len(sc.Middle)),
	}
	for _, idx := range sc.Middle {
		nm.atoms = append(nm.atoms, idx)
		nm.lists[idx] = neighborsOf(sc, idx, cutoff)
	}
	return nm
}

func neighborsOf(sc *Supercell, idx int, cutoff float64) []int {
	return lattice.NeighborIndices(sc.Structure.Neighbors(idx, cutoff))
}
