package placement

import (
	"image"
	"math/rand"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/scenegen/scenegen/camera"
	"github.com/scenegen/scenegen/raster"
	"github.com/scenegen/scenegen/scene"
	"github.com/scenegen/scenegen/spatialmath"
)

// Result records one object's outcome for one placement call.
type Result struct {
	Object *scene.Object
	// Placed is true when a candidate pose satisfying every active
	// constraint was found within the attempt budget.
	Placed bool
	// Attempts is how many candidates were tried; zero when the object was
	// never reached because an earlier failure aborted the call.
	Attempts int
}

// Engine places a fixed set of objects each image. One Place call is one
// image's worth of work: it mutates the objects' poses and visibility in
// place and reports per-object outcomes.
type Engine struct {
	cfg     Config
	objects []*scene.Object
	logger  golog.Logger
}

// NewEngine validates the configuration and returns an engine over the
// given objects.
func NewEngine(cfg Config, objects []*scene.Object, logger golog.Logger) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, errors.New("placement engine needs at least one object")
	}
	return &Engine{cfg: cfg, objects: objects, logger: logger}, nil
}

// Objects returns the objects the engine places.
func (e *Engine) Objects() []*scene.Object {
	return e.objects
}

// Place runs one image's placement. Objects are processed in a random
// permutation so that, when 2D overlap is disallowed, which object wins a
// contested region varies across images; the permutation always consumes
// the stream so replay with the same seed stays aligned. The returned
// occupancy map is non-nil only when 2D constraints or MakeOccupancyMap
// requested it, and is valid until the next Place call renders it stale.
//
// Per object, up to the attempt budget: draw a candidate pose from the
// configured ranges, then reject it if any bounding corner escapes Bounds,
// too many silhouette vertices leave the image, its mesh overlaps an
// already-placed mesh, or its silhouette overlaps an already-filled pixel.
// The first surviving candidate is accepted and its silhouette is filled
// into the map with the object's 1-based processing-order label, atomically
// with the placed outcome. Objects exhausting the budget are hidden, or
// parked at FarAway when configured; with StopOnFirstFailure the remaining
// objects are left hidden and untried.
func (e *Engine) Place(r *rand.Rand, proj *camera.Projector) ([]Result, *raster.OccupancyMap, error) {
	if e.cfg.needsSilhouette() && proj == nil {
		return nil, nil, errors.New("image-space constraints configured but no camera projector given")
	}

	var occ *raster.OccupancyMap
	var width, height int
	if proj != nil {
		width = proj.Intrinsics().Width
		height = proj.Intrinsics().Height
	}
	if e.cfg.PreventOverlap2D || e.cfg.MakeOccupancyMap {
		occ = raster.NewOccupancyMap(width, height)
	}

	for _, obj := range e.objects {
		obj.Hidden = true
	}

	order := r.Perm(len(e.objects))
	oracle := NewMeshOverlapOracle(e.cfg.CollisionBuffer)
	budget := e.cfg.attemptBudget()

	results := make([]Result, len(e.objects))
	for i, obj := range e.objects {
		results[i] = Result{Object: obj}
	}

	var placed []*scene.Object
	for processed, idx := range order {
		obj := e.objects[idx]
		obj.Hidden = false
		label := int32(processed + 1)

		placedThis := false
		attempts := 0
		for attempt := 0; attempt < budget; attempt++ {
			attempts++
			if e.cfg.LocationRange != nil {
				obj.Location = e.cfg.LocationRange.Sample(r)
			}
			if e.cfg.RotationRange != nil {
				angles := e.cfg.RotationRange.Sample(r)
				obj.Rotation = spatialmath.EulerAngles{Roll: angles.X, Pitch: angles.Y, Yaw: angles.Z}
			}
			oracle.Invalidate(obj)

			var hull []image.Point
			hullComputed := false
			silhouette := func() []image.Point {
				if !hullComputed {
					hull = Silhouette(obj, proj)
					hullComputed = true
				}
				return hull
			}

			if e.cfg.Bounds != nil && !e.allCornersInside(obj) {
				continue
			}
			if e.cfg.MaxCornersOutsideImage != nil &&
				countOutsideImage(silhouette(), width, height) > *e.cfg.MaxCornersOutsideImage {
				continue
			}
			if e.cfg.PreventOverlap3D && oracle.AnyOverlap([]*scene.Object{obj}, placed) {
				continue
			}
			if e.cfg.PreventOverlap2D && occ.Overlaps(silhouette(), 0) {
				continue
			}

			placed = append(placed, obj)
			if occ != nil {
				occ.Fill(silhouette(), label)
			}
			placedThis = true
			break
		}

		results[idx].Placed = placedThis
		results[idx].Attempts = attempts
		if placedThis {
			continue
		}

		if e.cfg.FarAway != nil {
			obj.Location = *e.cfg.FarAway
			oracle.Invalidate(obj)
		} else {
			obj.Hidden = true
		}
		e.logger.Debugw("object unplaceable", "object", obj.Name(), "attempts", attempts)
		if e.cfg.StopOnFirstFailure {
			e.logger.Debugw("stopping placement early", "untried", len(e.objects)-processed-1)
			break
		}
	}
	return results, occ, nil
}

// allCornersInside reports whether every world-space bounding corner of the
// object and its descendants lies within the configured bounds box.
func (e *Engine) allCornersInside(obj *scene.Object) bool {
	for _, c := range scene.WorldBoundCorners(obj) {
		if !e.cfg.Bounds.Contains(c) {
			return false
		}
	}
	return true
}
