package lattice

import (
	"fmt"
	"math"
)

// unitCellSnap folds fractional coordinates this close to 1 back to 0
const unitCellSnap = 1e-8

// Site is an atom of a structure. Cart is always derived from Frac and the
// lattice of the owning structure.
type Site struct {
	Species string
	Frac    Vec3
	Cart    Vec3
}

// Structure is a periodic cell with its sites. The index of a site in Sites is
// its identity within the structure.
type Structure struct {
	Lattice *Lattice
	Sites   []Site
}

// NewStructure creates a structure from fractional coordinates
func NewStructure(lat *Lattice, species []string, fracs []Vec3) (*Structure, error) {
	if lat == nil {
		return nil, fmt.Errorf("nil lattice: %w", ErrInvalidDocument)
	}
	if len(species) != len(fracs) {
		return nil, fmt.Errorf("%d species for %d coordinates: %w", len(species), len(fracs), ErrInvalidDocument)
	}

	s := &Structure{Lattice: lat, Sites: make([]Site, len(fracs))}
	for i, frac := range fracs {
		s.Sites[i] = Site{Species: species[i], Frac: frac, Cart: lat.FracToCart(frac)}
	}
	return s, nil
}

// Len returns the number of sites
func (s *Structure) Len() int {
	return len(s.Sites)
}

// Site returns the site at index i
func (s *Structure) Site(i int) Site {
	return s.Sites[i]
}

// Copy returns a deep copy sharing the (immutable) lattice
func (s *Structure) Copy() *Structure {
	sites := make([]Site, len(s.Sites))
	copy(sites, s.Sites)
	return &Structure{Lattice: s.Lattice, Sites: sites}
}

// SetFrac replaces the fractional coordinate of site i and recomputes its
// cartesian coordinate
func (s *Structure) SetFrac(i int, frac Vec3) {
	s.Sites[i].Frac = frac
	s.Sites[i].Cart = s.Lattice.FracToCart(frac)
}

// TranslateSites moves every site by a cartesian vector. With toUnitCell the
// resulting fractional coordinates are wrapped into [0, 1).
func (s *Structure) TranslateSites(vec Vec3, toUnitCell bool) {
	for i := range s.Sites {
		frac := s.Lattice.CartToFrac(s.Sites[i].Cart.Add(vec))
		if toUnitCell {
			frac = WrapUnit(frac)
		}
		s.SetFrac(i, frac)
	}
}

// WrapUnit maps every component of frac into [0, 1)
func WrapUnit(frac Vec3) Vec3 {
	for k := range frac {
		f := frac[k] - math.Floor(frac[k])
		if 1-f < unitCellSnap {
			f = 0
		}
		frac[k] = f
	}
	return frac
}
