// Package camera derives pinhole intrinsics from physical camera
// parameters and projects world-space points onto the image plane.
package camera

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrScaledResolution is returned when intrinsics are requested for a render
// configured with a resolution percentage other than 100. The projection
// math has no provision for partial-resolution rendering.
var ErrScaledResolution = errors.New("render resolution percentage other than 100 is not supported")

// PinholeCameraIntrinsics holds the parameters necessary to do a perspective
// projection of a 3D scene to the 2D image plane.
type PinholeCameraIntrinsics struct {
	Width  int     `json:"width_px"`
	Height int     `json:"height_px"`
	Fx     float64 `json:"fx"`
	Fy     float64 `json:"fy"`
	Ppx    float64 `json:"ppx"`
	Ppy    float64 `json:"ppy"`
}

// NewPinholeCameraIntrinsics derives intrinsics from a lens focal length and
// sensor width, both in millimeters, and the render resolution in pixels.
// scalePercent is the renderer's resolution percentage; anything other than
// 100 fails with ErrScaledResolution. The principal point is placed at the
// center of the pixel grid, (size-1)/2, so that integer pixel coordinates
// name pixel centers.
func NewPinholeCameraIntrinsics(focalLengthMM, sensorWidthMM float64, width, height int, scalePercent float64) (*PinholeCameraIntrinsics, error) {
	if scalePercent != 100 {
		return nil, errors.Wrapf(ErrScaledResolution, "got %v%%", scalePercent)
	}
	if focalLengthMM <= 0 || sensorWidthMM <= 0 {
		return nil, errors.Errorf("invalid lens parameters: focal length %vmm, sensor width %vmm", focalLengthMM, sensorWidthMM)
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid image size (%d, %d)", width, height)
	}
	focalPx := focalLengthMM / sensorWidthMM * float64(width)
	return &PinholeCameraIntrinsics{
		Width:  width,
		Height: height,
		Fx:     focalPx,
		Fy:     focalPx,
		Ppx:    float64(width-1) / 2,
		Ppy:    float64(height-1) / 2,
	}, nil
}

// CheckValid checks if the fields for PinholeCameraIntrinsics have valid inputs.
func (params *PinholeCameraIntrinsics) CheckValid() error {
	if params == nil {
		return errors.New("intrinsics do not exist")
	}
	if params.Width == 0 || params.Height == 0 {
		return errors.Errorf("invalid size (%#v, %#v)", params.Width, params.Height)
	}
	if params.Fx <= 0 {
		return errors.Errorf("invalid focal length Fx = %#v", params.Fx)
	}
	if params.Fy <= 0 {
		return errors.Errorf("invalid focal length Fy = %#v", params.Fy)
	}
	if params.Ppx < 0 {
		return errors.Errorf("invalid principal X point Ppx = %#v", params.Ppx)
	}
	if params.Ppy < 0 {
		return errors.Errorf("invalid principal Y point Ppy = %#v", params.Ppy)
	}
	return nil
}

// GetCameraMatrix creates a new camera matrix and returns it.
// Camera matrix:
// [[fx 0 ppx],
//
//	[0 fy ppy],
//	[0 0  1]]
func (params *PinholeCameraIntrinsics) GetCameraMatrix() *mat.Dense {
	if params == nil {
		return nil
	}
	cameraMatrix := mat.NewDense(3, 3, nil)
	cameraMatrix.Set(0, 0, params.Fx)
	cameraMatrix.Set(1, 1, params.Fy)
	cameraMatrix.Set(0, 2, params.Ppx)
	cameraMatrix.Set(1, 2, params.Ppy)
	cameraMatrix.Set(2, 2, 1)
	return cameraMatrix
}
