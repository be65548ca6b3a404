package conduction

import (
	"github.com/dd0wney/cluso-latticegraph/pkg/lattice"
	"github.com/dd0wney/cluso-latticegraph/pkg/validation"
)

// Replicas is the number of images the supercell holds along the axis. The
// middle one is the original cell; the outer two expose its periodic
// boundary.
const Replicas = 3

// Default heuristic thresholds
const (
	DefaultWrapThreshold = 0.98
	DefaultStartFraction = 0.5
	DefaultEdgeWeight    = 1
)

// Options configures one pipeline run
type Options struct {
	// Axis is the lattice vector the conduction path follows
	Axis int `yaml:"axis" validate:"oneof=0 1 2"`
	// Cutoff is the bonding radius in cartesian units
	Cutoff float64 `yaml:"cutoff" validate:"gt=0"`
	// Translation shifts every site, in cartesian units, before wrapping
	Translation lattice.Vec3 `yaml:"translation"`
	// WrapThreshold: fractional coordinates at or above it fold to coord-1
	WrapThreshold float64 `yaml:"wrap" validate:"gt=0,lte=1"`
	// StartFraction: start atoms lie below this fraction of the supercell
	// length along Axis
	StartFraction float64 `yaml:"start_fraction" validate:"gt=0,lte=1"`
	// EdgeWeight is attached to every edge
	EdgeWeight int `yaml:"edge_weight" validate:"gte=1"`

	CheckCycles bool `yaml:"cycles"`
	CheckPaths  bool `yaml:"paths"`
}

// DefaultOptions returns options with the documented defaults and the given
// cutoff
func DefaultOptions(cutoff float64) Options {
	return Options{
		Axis:          0,
		Cutoff:        cutoff,
		WrapThreshold: DefaultWrapThreshold,
		StartFraction: DefaultStartFraction,
		EdgeWeight:    DefaultEdgeWeight,
		CheckCycles:   true,
		CheckPaths:    true,
	}
}

// Validate checks every field; failures wrap ErrConfiguration
func (o Options) Validate() error {
	if err := validation.Struct(&o); err != nil {
		return configError(err)
	}
	return nil
}
