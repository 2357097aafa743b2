// Package placement implements the constraint-satisfying multi-object pose
// search: each image, objects are assigned random poses drawn from
// configured ranges and accepted only when they satisfy containment,
// in-frame, 3D non-overlap, and 2D silhouette non-overlap constraints.
package placement

import (
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/scenegen/scenegen/spatialmath"
	"github.com/scenegen/scenegen/utils"
)

// DefaultAttemptBudget is how many random pose candidates are tried per
// object before it is declared unplaceable.
const DefaultAttemptBudget = 100

// RangeBox is a per-axis uniform sampling range. Min == Max on an axis
// collapses that axis to a fixed value, which is valid, not an error.
type RangeBox struct {
	Min r3.Vector
	Max r3.Vector
}

// Sample draws one point uniformly from the box, consuming exactly three
// draws from r regardless of collapsed axes.
func (rb *RangeBox) Sample(r *rand.Rand) r3.Vector {
	return r3.Vector{
		X: utils.SampleRandomFloatRange(rb.Min.X, rb.Max.X, r),
		Y: utils.SampleRandomFloatRange(rb.Min.Y, rb.Max.Y, r),
		Z: utils.SampleRandomFloatRange(rb.Min.Z, rb.Max.Z, r),
	}
}

// Config is the shared constraint configuration for one placement engine.
// The zero value places at each object's current pose with no constraints.
type Config struct {
	// LocationRange is the world-space box locations are drawn from. Nil
	// leaves object locations untouched and consumes no draws.
	LocationRange *RangeBox

	// RotationRange holds Euler angle ranges in radians, X=roll, Y=pitch,
	// Z=yaw. Nil leaves rotations untouched and consumes no draws.
	RotationRange *RangeBox

	// Bounds, when set, requires every world-space bounding-box corner of a
	// candidate (including descendants) to fall inside it.
	Bounds *spatialmath.BoundingBox

	// PreventOverlap3D rejects candidates whose mesh comes within
	// CollisionBuffer of any already-placed object's mesh.
	PreventOverlap3D bool

	// PreventOverlap2D rejects candidates whose rasterized silhouette
	// shares any pixel with an already-placed silhouette.
	PreventOverlap2D bool

	// CollisionBuffer widens the 3D overlap test; zero means meshes must
	// actually touch to collide.
	CollisionBuffer float64

	// MaxCornersOutsideImage, when set, rejects candidates whose silhouette
	// has more than this many vertices outside the image rectangle.
	MaxCornersOutsideImage *int

	// FarAway, when set, parks unplaceable objects at this location instead
	// of hiding them. The point should be far outside every camera frustum.
	FarAway *r3.Vector

	// MakeOccupancyMap forces building the silhouette raster even when
	// PreventOverlap2D is off, so downstream handlers can read it.
	MakeOccupancyMap bool

	// AttemptBudget caps pose candidates per object. Zero means
	// DefaultAttemptBudget.
	AttemptBudget int

	// StopOnFirstFailure aborts the remaining objects as soon as one
	// exhausts its attempt budget, leaving them hidden and untried.
	StopOnFirstFailure bool
}

func (c *Config) attemptBudget() int {
	if c.AttemptBudget <= 0 {
		return DefaultAttemptBudget
	}
	return c.AttemptBudget
}

// needsSilhouette reports whether any active constraint or output requires
// projecting silhouettes, and therefore a camera projector.
func (c *Config) needsSilhouette() bool {
	return c.PreventOverlap2D || c.MakeOccupancyMap || c.MaxCornersOutsideImage != nil
}

func (c *Config) validate() error {
	if c.AttemptBudget < 0 {
		return errors.Errorf("attempt budget must be non-negative, got %d", c.AttemptBudget)
	}
	if c.MaxCornersOutsideImage != nil && *c.MaxCornersOutsideImage < 0 {
		return errors.Errorf("max corners outside image must be non-negative, got %d", *c.MaxCornersOutsideImage)
	}
	return nil
}
