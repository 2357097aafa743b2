package render

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/scenegen/scenegen/scene"
	"github.com/scenegen/scenegen/spatialmath"
)

func TestPreviewRenderer(t *testing.T) {
	cube := scene.NewObject("cube")
	cube.SetBoundBox(spatialmath.NewBoundingBox(
		r3.Vector{X: -0.5, Y: -0.5, Z: -0.5},
		r3.Vector{X: 0.5, Y: 0.5, Z: 0.5},
	))
	cube.Material = "red"
	registry, err := scene.NewRegistry(cube)
	test.That(t, err, test.ShouldBeNil)
	sc := &scene.Scene{
		Objects: registry,
		Camera: &scene.Camera{
			FocalLengthMM: 35,
			SensorWidthMM: 32,
			Width:         640,
			Height:        480,
			ScalePercent:  100,
			Pose:          spatialmath.NewPoseFromPoint(r3.Vector{Z: 10}),
		},
	}
	renderer := NewPreviewRenderer(sc, map[string]Material{
		"red": {Color: color.RGBA{R: 255, A: 255}},
	}, color.Black)

	path := filepath.Join(t.TempDir(), "out.png")
	test.That(t, renderer.Render(path), test.ShouldBeNil)

	f, err := os.Open(path)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	img, err := png.Decode(f)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, img.Bounds().Dx(), test.ShouldEqual, 640)
	test.That(t, img.Bounds().Dy(), test.ShouldEqual, 480)

	// the cube sits at the image center, the corners stay background
	r, g, b, _ := img.At(320, 240).RGBA()
	test.That(t, r, test.ShouldBeGreaterThan, g)
	test.That(t, r, test.ShouldBeGreaterThan, b)
	cr, cg, cb, _ := img.At(5, 5).RGBA()
	test.That(t, cr, test.ShouldEqual, uint32(0))
	test.That(t, cg, test.ShouldEqual, uint32(0))
	test.That(t, cb, test.ShouldEqual, uint32(0))
}

func TestPreviewRendererSkipsHidden(t *testing.T) {
	cube := scene.NewObject("cube")
	cube.SetBoundBox(spatialmath.NewBoundingBox(
		r3.Vector{X: -0.5, Y: -0.5, Z: -0.5},
		r3.Vector{X: 0.5, Y: 0.5, Z: 0.5},
	))
	cube.Hidden = true
	registry, err := scene.NewRegistry(cube)
	test.That(t, err, test.ShouldBeNil)
	sc := &scene.Scene{
		Objects: registry,
		Camera: &scene.Camera{
			FocalLengthMM: 35,
			SensorWidthMM: 32,
			Width:         64,
			Height:        48,
			ScalePercent:  100,
			Pose:          spatialmath.NewPoseFromPoint(r3.Vector{Z: 10}),
		},
	}
	renderer := NewPreviewRenderer(sc, nil, color.Black)
	path := filepath.Join(t.TempDir(), "out.png")
	test.That(t, renderer.Render(path), test.ShouldBeNil)

	f, err := os.Open(path)
	test.That(t, err, test.ShouldBeNil)
	defer f.Close()
	img, err := png.Decode(f)
	test.That(t, err, test.ShouldBeNil)
	r, g, b, _ := img.At(32, 24).RGBA()
	test.That(t, r+g+b, test.ShouldEqual, uint32(0))
}
