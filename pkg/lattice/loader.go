package lattice

import (
	"fmt"

	"golang.org/x/exp/mmap"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk YAML form of a structure. The lattice is given
// either by parameters or by an explicit matrix; each site by frac or cart.
type Document struct {
	Lattice LatticeDocument `yaml:"lattice"`
	Sites   []SiteDocument  `yaml:"sites"`
}

// LatticeDocument describes the cell of a Document
type LatticeDocument struct {
	A      float64      `yaml:"a,omitempty"`
	B      float64      `yaml:"b,omitempty"`
	C      float64      `yaml:"c,omitempty"`
	Alpha  float64      `yaml:"alpha,omitempty"`
	Beta   float64      `yaml:"beta,omitempty"`
	Gamma  float64      `yaml:"gamma,omitempty"`
	Matrix [][3]float64 `yaml:"matrix,omitempty"`
}

// SiteDocument describes one site of a Document
type SiteDocument struct {
	Species string      `yaml:"species"`
	Frac    *[3]float64 `yaml:"frac,omitempty"`
	Cart    *[3]float64 `yaml:"cart,omitempty"`
}

// LoadFile reads a YAML structure document through a read-only memory map
func LoadFile(path string) (*Structure, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open structure %s: %w", path, err)
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil {
		return nil, fmt.Errorf("read structure %s: %w", path, err)
	}

	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode structure %s: %w", path, err)
	}
	return s, nil
}

// Decode parses a YAML structure document
func Decode(data []byte) (*Structure, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidDocument)
	}
	return doc.Structure()
}

// Structure converts the document into a Structure
func (d Document) Structure() (*Structure, error) {
	lat, err := d.Lattice.build()
	if err != nil {
		return nil, err
	}

	species := make([]string, len(d.Sites))
	fracs := make([]Vec3, len(d.Sites))
	for i, site := range d.Sites {
		switch {
		case site.Frac != nil && site.Cart != nil:
			return nil, fmt.Errorf("site %d has both frac and cart: %w", i, ErrInvalidDocument)
		case site.Frac != nil:
			fracs[i] = Vec3(*site.Frac)
		case site.Cart != nil:
			fracs[i] = lat.CartToFrac(Vec3(*site.Cart))
		default:
			return nil, fmt.Errorf("site %d has no coordinates: %w", i, ErrInvalidDocument)
		}
		species[i] = site.Species
	}
	return NewStructure(lat, species, fracs)
}

func (d LatticeDocument) build() (*Lattice, error) {
	if len(d.Matrix) > 0 {
		if len(d.Matrix) != 3 {
			return nil, fmt.Errorf("lattice matrix has %d rows: %w", len(d.Matrix), ErrInvalidDocument)
		}
		return NewLattice([3]Vec3{Vec3(d.Matrix[0]), Vec3(d.Matrix[1]), Vec3(d.Matrix[2])})
	}

	alpha, beta, gamma := d.Alpha, d.Beta, d.Gamma
	if alpha == 0 && beta == 0 && gamma == 0 {
		alpha, beta, gamma = 90, 90, 90
	}
	return FromParameters(d.A, d.B, d.C, alpha, beta, gamma)
}

// ToDocument renders a structure in the document form, lattice as a matrix
func ToDocument(s *Structure) Document {
	doc := Document{
		Lattice: LatticeDocument{Matrix: [][3]float64{
			s.Lattice.Matrix[0], s.Lattice.Matrix[1], s.Lattice.Matrix[2],
		}},
		Sites: make([]SiteDocument, len(s.Sites)),
	}
	for i, site := range s.Sites {
		frac := [3]float64(site.Frac)
		doc.Sites[i] = SiteDocument{Species: site.Species, Frac: &frac}
	}
	return doc
}
