package conduction

import (
	"github.com/dd0wney/cluso-latticegraph/pkg/lattice"
)

// PreparedCell is the input cell after translation and boundary folding,
// with the box the conduction path is measured in
type PreparedCell struct {
	Structure *lattice.Structure
	Lower     lattice.Vec3
	Upper     lattice.Vec3
	// Folded lists the (site, axis) coordinates that crossed the wrap
	// threshold and were moved to coord-1
	Folded []Fold
}

// Fold records one coordinate moved back across the cell boundary
type Fold struct {
	Site int
	Axis int
	From float64
}

// Len returns the number of sites in the prepared cell
func (p *PreparedCell) Len() int {
	return p.Structure.Len()
}

// PrepareCell translates every site of cell by opts.Translation, wraps the
// result into the unit cell and then folds fractional coordinates at or above
// opts.WrapThreshold to coord-1 on each axis. cell is not modified.
func PrepareCell(cell *lattice.Structure, opts Options) (*PreparedCell, error) {
	if cell == nil || cell.Len() == 0 {
		return nil, NewError(StagePrepare).Cause(ErrEmptyInput).Err()
	}
	if err := lattice.CheckAxis(opts.Axis); err != nil {
		return nil, configError(err)
	}

	s := cell.Copy()
	s.TranslateSites(opts.Translation, true)

	abc := s.Lattice.Abc()
	lower := lattice.Vec3{}
	upper := abc
	lower[opts.Axis] += abc[opts.Axis]
	upper[opts.Axis] += abc[opts.Axis]

	var folded []Fold
	for axis := 0; axis < 3; axis++ {
		for i := range s.Sites {
			frac := s.Sites[i].Frac
			if frac[axis] < opts.WrapThreshold {
				continue
			}
			folded = append(folded, Fold{Site: i, Axis: axis, From: frac[axis]})
			frac[axis]--
			s.SetFrac(i, frac)
		}
		lower[axis] += opts.Translation[axis]
	}

	return &PreparedCell{Structure: s, Lower: lower, Upper: upper, Folded: folded}, nil
}
