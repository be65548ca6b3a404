package lattice

import "fmt"

// Tiler produces an n-fold replicate of a structure along one axis
type Tiler interface {
	Tile(s *Structure, axis, n int) (*Structure, error)
}

// InterleavedTiler keeps the images of a site next to each other: the images
// of original site i occupy indices n*i .. n*i+n-1, ordered by their offset
// along axis.
type InterleavedTiler struct{}

// Tile implements Tiler
func (InterleavedTiler) Tile(s *Structure, axis, n int) (*Structure, error) {
	if err := CheckAxis(axis); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("replica count %d must be positive", n)
	}

	lat, err := s.Lattice.Scaled(axis, n)
	if err != nil {
		return nil, fmt.Errorf("scale lattice: %w", err)
	}

	shift := s.Lattice.Matrix[axis]
	tiled := &Structure{Lattice: lat, Sites: make([]Site, 0, n*len(s.Sites))}
	for _, site := range s.Sites {
		for k := 0; k < n; k++ {
			frac := site.Frac
			frac[axis] = (frac[axis] + float64(k)) / float64(n)
			tiled.Sites = append(tiled.Sites, Site{
				Species: site.Species,
				Frac:    frac,
				// integer multiples of the basis vector keep image positions exact
				Cart: site.Cart.Add(shift.Scale(float64(k))),
			})
		}
	}
	return tiled, nil
}
