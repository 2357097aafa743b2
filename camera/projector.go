package camera

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/scenegen/scenegen/spatialmath"
)

// The view-space depth below which a point counts as being on or behind the
// camera plane. Such points have no meaningful pinhole projection; they are
// pushed to this depth so they project far outside the frame instead of
// dividing by zero.
const minViewDepth = 1e-9

// Projector maps world-space points to continuous image-plane coordinates
// through a posed pinhole camera. The camera looks along its local -Z axis
// with +Y up; image Y grows downward, so the projection flips the vertical
// axis. Integer pixel coordinates name pixel centers: the top-left corner of
// the image is (-0.5, -0.5) and the bottom-right is (width-0.5, height-0.5).
// Output is never clamped; off-screen points project to coordinates outside
// the image bounds and out-of-frame detection happens downstream.
type Projector struct {
	intrinsics *PinholeCameraIntrinsics
	worldToCam spatialmath.Pose
}

// NewProjector returns a projector for a camera with the given intrinsics
// posed at cameraPose in the world.
func NewProjector(intrinsics *PinholeCameraIntrinsics, cameraPose spatialmath.Pose) (*Projector, error) {
	if err := intrinsics.CheckValid(); err != nil {
		return nil, err
	}
	return &Projector{
		intrinsics: intrinsics,
		worldToCam: cameraPose.Invert(),
	}, nil
}

// Intrinsics returns the intrinsics the projector was built with.
func (p *Projector) Intrinsics() *PinholeCameraIntrinsics {
	return p.intrinsics
}

// ProjectPoint maps one world-space point to image coordinates.
func (p *Projector) ProjectPoint(world r3.Vector) r2.Point {
	view := p.worldToCam.TransformPoint(world)
	depth := -view.Z
	if depth < minViewDepth {
		depth = minViewDepth
	}
	return r2.Point{
		X: (view.X/depth)*p.intrinsics.Fx + p.intrinsics.Ppx,
		Y: -(view.Y/depth)*p.intrinsics.Fy + p.intrinsics.Ppy,
	}
}

// ProjectPoints maps a batch of world-space points to image coordinates.
func (p *Projector) ProjectPoints(world []r3.Vector) []r2.Point {
	out := make([]r2.Point, 0, len(world))
	for _, pt := range world {
		out = append(out, p.ProjectPoint(pt))
	}
	return out
}
