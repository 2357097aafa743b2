package scene

import (
	"github.com/golang/geo/r3"

	"github.com/scenegen/scenegen/camera"
	"github.com/scenegen/scenegen/spatialmath"
)

// Camera describes the physical camera the scene is viewed through.
type Camera struct {
	// FocalLengthMM and SensorWidthMM describe the lens.
	FocalLengthMM float64
	SensorWidthMM float64

	// Width and Height are the render resolution in pixels; ScalePercent is
	// the renderer's resolution percentage. Intrinsics require 100.
	Width        int
	Height       int
	ScalePercent float64

	// Pose places the camera in the world, looking along its local -Z axis
	// with +Y up.
	Pose spatialmath.Pose
}

// Intrinsics derives the camera's pinhole intrinsics. It fails when the
// render resolution is scaled, which the projection math cannot express.
func (c *Camera) Intrinsics() (*camera.PinholeCameraIntrinsics, error) {
	return camera.NewPinholeCameraIntrinsics(c.FocalLengthMM, c.SensorWidthMM, c.Width, c.Height, c.ScalePercent)
}

// Projector returns a projector through this camera at its current pose.
func (c *Camera) Projector() (*camera.Projector, error) {
	intrinsics, err := c.Intrinsics()
	if err != nil {
		return nil, err
	}
	return camera.NewProjector(intrinsics, c.Pose)
}

// Light is a point light with adjustable power and color.
type Light struct {
	Name     string
	Location r3.Vector
	Power    float64
	Color    [3]float64 // RGB in [0,1]
}

// Scene bundles everything the pipeline operates on: the object registry,
// the camera, and the lights. The caller owns all of it; handlers only
// mutate poses, visibility, materials and light parameters.
type Scene struct {
	Objects *Registry
	Camera  *Camera
	Lights  []*Light
}
