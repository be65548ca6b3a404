package lattice

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrSingularLattice = errors.New("lattice vectors are linearly dependent")
	ErrInvalidAxis     = errors.New("axis must be 0, 1 or 2")
	ErrInvalidDocument = errors.New("invalid structure document")
)

// singularTolerance is the smallest cell volume accepted by NewLattice
const singularTolerance = 1e-10

// Lattice describes a periodic cell by its three basis vectors (rows of Matrix).
// The reciprocal rows are cached so coordinate conversion is a dot product.
type Lattice struct {
	Matrix     [3]Vec3
	reciprocal [3]Vec3
	volume     float64
}

// NewLattice builds a lattice from three row vectors
func NewLattice(matrix [3]Vec3) (*Lattice, error) {
	a, b, c := matrix[0], matrix[1], matrix[2]
	volume := a.Dot(b.Cross(c))
	if math.Abs(volume) < singularTolerance {
		return nil, fmt.Errorf("volume %g: %w", volume, ErrSingularLattice)
	}

	return &Lattice{
		Matrix: matrix,
		reciprocal: [3]Vec3{
			b.Cross(c).Scale(1 / volume),
			c.Cross(a).Scale(1 / volume),
			a.Cross(b).Scale(1 / volume),
		},
		volume: math.Abs(volume),
	}, nil
}

// FromParameters builds a lattice from lengths a, b, c and angles alpha, beta,
// gamma in degrees. a lies along x and b in the xy-plane.
func FromParameters(a, b, c, alpha, beta, gamma float64) (*Lattice, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, fmt.Errorf("lengths (%g, %g, %g) must be positive: %w", a, b, c, ErrSingularLattice)
	}

	cosA := math.Cos(alpha * math.Pi / 180)
	cosB := math.Cos(beta * math.Pi / 180)
	cosG := math.Cos(gamma * math.Pi / 180)
	sinG := math.Sin(gamma * math.Pi / 180)
	if math.Abs(sinG) < singularTolerance {
		return nil, fmt.Errorf("gamma %g: %w", gamma, ErrSingularLattice)
	}

	cy := (cosA - cosB*cosG) / sinG
	cz2 := 1 - cosB*cosB - cy*cy
	if cz2 <= 0 {
		return nil, fmt.Errorf("angles (%g, %g, %g): %w", alpha, beta, gamma, ErrSingularLattice)
	}

	return NewLattice([3]Vec3{
		{a, 0, 0},
		{b * cosG, b * sinG, 0},
		{c * cosB, c * cy, c * math.Sqrt(cz2)},
	})
}

// Orthorhombic builds a lattice with orthogonal axes of the given lengths
func Orthorhombic(a, b, c float64) (*Lattice, error) {
	return NewLattice([3]Vec3{{a, 0, 0}, {0, b, 0}, {0, 0, c}})
}

// Abc returns the lengths of the three lattice vectors
func (l *Lattice) Abc() Vec3 {
	return Vec3{l.Matrix[0].Norm(), l.Matrix[1].Norm(), l.Matrix[2].Norm()}
}

// Angles returns alpha, beta, gamma in degrees
func (l *Lattice) Angles() Vec3 {
	angle := func(u, v Vec3) float64 {
		cos := u.Dot(v) / (u.Norm() * v.Norm())
		cos = math.Max(-1, math.Min(1, cos))
		return math.Acos(cos) * 180 / math.Pi
	}
	return Vec3{
		angle(l.Matrix[1], l.Matrix[2]),
		angle(l.Matrix[0], l.Matrix[2]),
		angle(l.Matrix[0], l.Matrix[1]),
	}
}

// Volume returns the cell volume
func (l *Lattice) Volume() float64 {
	return l.volume
}

// FracToCart converts fractional coordinates to cartesian
func (l *Lattice) FracToCart(frac Vec3) Vec3 {
	return l.Matrix[0].Scale(frac[0]).
		Add(l.Matrix[1].Scale(frac[1])).
		Add(l.Matrix[2].Scale(frac[2]))
}

// CartToFrac converts cartesian coordinates to fractional
func (l *Lattice) CartToFrac(cart Vec3) Vec3 {
	return Vec3{
		l.reciprocal[0].Dot(cart),
		l.reciprocal[1].Dot(cart),
		l.reciprocal[2].Dot(cart),
	}
}

// PlaneSpacing returns the distance between neighbouring lattice planes
// normal to the reciprocal vector of axis
func (l *Lattice) PlaneSpacing(axis int) float64 {
	return 1 / l.reciprocal[axis].Norm()
}

// Scaled returns a copy of the lattice with the vector on axis multiplied by n
func (l *Lattice) Scaled(axis, n int) (*Lattice, error) {
	if err := CheckAxis(axis); err != nil {
		return nil, err
	}
	matrix := l.Matrix
	matrix[axis] = matrix[axis].Scale(float64(n))
	return NewLattice(matrix)
}

// CheckAxis reports whether axis names one of the three lattice vectors
func CheckAxis(axis int) error {
	if axis < 0 || axis > 2 {
		return fmt.Errorf("axis %d: %w", axis, ErrInvalidAxis)
	}
	return nil
}
