package lattice

import (
	"math"
	"sort"
)

// distances closer than this are ordered by index
const distanceTolerance = 1e-8

// Neighbor is a site found within a cutoff of a query point. Image is the
// lattice translation of the nearest periodic image that was matched.
type Neighbor struct {
	Index    int
	Distance float64
	Image    [3]int
}

// Neighbors returns every site other than i that has a periodic image within
// cutoff of site i. Each index appears once, at its nearest image, and the
// result is ordered by distance then index.
func (s *Structure) Neighbors(i int, cutoff float64) []Neighbor {
	return s.neighborsOf(s.Sites[i].Frac, cutoff, i)
}

// NeighborsOfPoint is Neighbors for an arbitrary cartesian point; no site is
// excluded.
func (s *Structure) NeighborsOfPoint(cart Vec3, cutoff float64) []Neighbor {
	return s.neighborsOf(s.Lattice.CartToFrac(cart), cutoff, -1)
}

func (s *Structure) neighborsOf(origin Vec3, cutoff float64, exclude int) []Neighbor {
	if cutoff <= 0 {
		return nil
	}

	var reach [3]int
	for axis := range reach {
		reach[axis] = int(math.Ceil(cutoff / s.Lattice.PlaneSpacing(axis)))
	}

	found := make([]Neighbor, 0)
	for j, site := range s.Sites {
		if j == exclude {
			continue
		}

		// centre the fractional offset so the image window is symmetric
		delta := site.Frac.Sub(origin)
		var base [3]int
		for axis := range delta {
			base[axis] = -int(math.Round(delta[axis]))
			delta[axis] += float64(base[axis])
		}

		best := Neighbor{Index: j, Distance: math.Inf(1)}
		for na := -reach[0]; na <= reach[0]; na++ {
			for nb := -reach[1]; nb <= reach[1]; nb++ {
				for nc := -reach[2]; nc <= reach[2]; nc++ {
					shifted := delta.Add(Vec3{float64(na), float64(nb), float64(nc)})
					d := s.Lattice.FracToCart(shifted).Norm()
					if d < best.Distance {
						best.Distance = d
						best.Image = [3]int{base[0] + na, base[1] + nb, base[2] + nc}
					}
				}
			}
		}

		if best.Distance <= cutoff {
			found = append(found, best)
		}
	}

	sort.SliceStable(found, func(a, b int) bool {
		if math.Abs(found[a].Distance-found[b].Distance) > distanceTolerance {
			return found[a].Distance < found[b].Distance
		}
		return found[a].Index < found[b].Index
	})
	return found
}

// NeighborIndices strips distances from a neighbor list
func NeighborIndices(neighbors []Neighbor) []int {
	out := make([]int, len(neighbors))
	for i, n := range neighbors {
		out[i] = n.Index
	}
	return out
}
