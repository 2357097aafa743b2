package generator

import (
	"github.com/pkg/errors"

	"github.com/scenegen/scenegen/camera"
	"github.com/scenegen/scenegen/placement"
	"github.com/scenegen/scenegen/raster"
	"github.com/scenegen/scenegen/scene"
	"github.com/scenegen/scenegen/spatialmath"
	"github.com/scenegen/scenegen/utils"
)

// PlaceObjectHandler gives one object a fresh random pose each image with
// no constraint checking. Use PlaceMultipleObjectsHandler when containment
// or overlap constraints matter.
type PlaceObjectHandler struct {
	NoopHandler
	obj           *scene.Object
	locationRange *placement.RangeBox
	rotationRange *placement.RangeBox
}

// NewPlaceObjectHandler returns a handler repositioning obj within the
// given ranges. Either range may be nil to leave that part of the pose
// alone.
func NewPlaceObjectHandler(obj *scene.Object, locationRange, rotationRange *placement.RangeBox) *PlaceObjectHandler {
	return &PlaceObjectHandler{obj: obj, locationRange: locationRange, rotationRange: rotationRange}
}

// ImageBegin draws and applies the pose, and makes the object visible.
func (h *PlaceObjectHandler) ImageBegin(ctx *Context) error {
	if h.locationRange != nil {
		h.obj.Location = h.locationRange.Sample(ctx.Rng)
	}
	if h.rotationRange != nil {
		angles := h.rotationRange.Sample(ctx.Rng)
		h.obj.Rotation = spatialmath.EulerAngles{Roll: angles.X, Pitch: angles.Y, Yaw: angles.Z}
	}
	h.obj.Hidden = false
	return nil
}

// PlaceMultipleObjectsHandler runs the constraint-satisfying placement
// engine each image. The camera's projector is derived once at scene
// begin; the per-image occupancy map is exposed to later handlers through
// Map2D until image end.
type PlaceMultipleObjectsHandler struct {
	NoopHandler
	engine *placement.Engine
	cam    *scene.Camera
	proj   *camera.Projector
	map2d  *raster.OccupancyMap
}

// NewPlaceMultipleObjectsHandler wires the engine to the camera it
// projects through.
func NewPlaceMultipleObjectsHandler(engine *placement.Engine, cam *scene.Camera) *PlaceMultipleObjectsHandler {
	return &PlaceMultipleObjectsHandler{engine: engine, cam: cam}
}

// SceneBegin derives the camera intrinsics. Failure here is fatal for the
// run: projection math cannot express scaled render resolutions.
func (h *PlaceMultipleObjectsHandler) SceneBegin(*Context) error {
	proj, err := h.cam.Projector()
	if err != nil {
		return err
	}
	h.proj = proj
	return nil
}

// ImageBegin places all objects for this image.
func (h *PlaceMultipleObjectsHandler) ImageBegin(ctx *Context) error {
	results, occ, err := h.engine.Place(ctx.Rng, h.proj)
	if err != nil {
		return err
	}
	h.map2d = occ
	for _, res := range results {
		if !res.Placed {
			ctx.Logger.Debugw("object not placed this frame",
				"frame", ctx.FrameIndex, "object", res.Object.Name())
		}
	}
	return nil
}

// ImageEnd discards the per-image occupancy map.
func (h *PlaceMultipleObjectsHandler) ImageEnd(*Context) error {
	h.map2d = nil
	return nil
}

// Map2D returns the current image's occupancy map. It is nil outside the
// image cycle and when the engine was not asked to build one.
func (h *PlaceMultipleObjectsHandler) Map2D() *raster.OccupancyMap {
	return h.map2d
}

// SetMaterialHandler assigns one object a material drawn uniformly from a
// fixed palette each image.
type SetMaterialHandler struct {
	NoopHandler
	obj       *scene.Object
	materials []string
}

// NewSetMaterialHandler returns a handler cycling obj through materials.
func NewSetMaterialHandler(obj *scene.Object, materials []string) (*SetMaterialHandler, error) {
	if len(materials) == 0 {
		return nil, errors.Errorf("no materials to choose from for object %q", obj.Name())
	}
	return &SetMaterialHandler{obj: obj, materials: materials}, nil
}

// ImageBegin draws the material. One draw per image, even with a single
// material, so adding materials later does not shift downstream draws.
func (h *SetMaterialHandler) ImageBegin(ctx *Context) error {
	h.obj.Material = h.materials[utils.SampleRandomIntRange(0, len(h.materials)-1, ctx.Rng)]
	return nil
}

// SetLightHandler randomizes a light's power and color each image.
type SetLightHandler struct {
	NoopHandler
	light              *scene.Light
	powerMin, powerMax float64
	colorRange         *placement.RangeBox
}

// NewSetLightHandler returns a handler drawing power from [powerMin,
// powerMax] and, when colorRange is non-nil, RGB from its axes.
func NewSetLightHandler(light *scene.Light, powerMin, powerMax float64, colorRange *placement.RangeBox) *SetLightHandler {
	return &SetLightHandler{light: light, powerMin: powerMin, powerMax: powerMax, colorRange: colorRange}
}

// ImageBegin draws the light parameters.
func (h *SetLightHandler) ImageBegin(ctx *Context) error {
	h.light.Power = utils.SampleRandomFloatRange(h.powerMin, h.powerMax, ctx.Rng)
	if h.colorRange != nil {
		c := h.colorRange.Sample(ctx.Rng)
		h.light.Color = [3]float64{c.X, c.Y, c.Z}
	}
	return nil
}
