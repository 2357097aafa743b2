package render

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"github.com/scenegen/scenegen/placement"
	"github.com/scenegen/scenegen/scene"
)

// PreviewRenderer rasterizes each visible object's silhouette as a filled
// polygon, colored by the object's current material. It is deliberately
// flat shaded; its purpose is verifying placement and label output, not
// producing training pixels.
type PreviewRenderer struct {
	scene      *scene.Scene
	materials  map[string]Material
	background color.Color
}

// NewPreviewRenderer returns a renderer over the scene. Objects whose
// material has no entry in materials are drawn mid-gray.
func NewPreviewRenderer(sc *scene.Scene, materials map[string]Material, background color.Color) *PreviewRenderer {
	if background == nil {
		background = color.Black
	}
	return &PreviewRenderer{
		scene:      sc,
		materials:  materials,
		background: background,
	}
}

// Render draws every visible root object's silhouette and writes a PNG.
func (r *PreviewRenderer) Render(path string) error {
	proj, err := r.scene.Camera.Projector()
	if err != nil {
		return err
	}
	dc := gg.NewContext(r.scene.Camera.Width, r.scene.Camera.Height)
	dc.SetColor(r.background)
	dc.Clear()

	for _, obj := range r.scene.Objects.Roots() {
		if obj.Hidden {
			continue
		}
		hull := placement.Silhouette(obj, proj)
		if len(hull) < 3 {
			continue
		}
		dc.MoveTo(float64(hull[0].X), float64(hull[0].Y))
		for _, p := range hull[1:] {
			dc.LineTo(float64(p.X), float64(p.Y))
		}
		dc.ClosePath()
		dc.SetColor(r.materialColor(obj.Material))
		dc.Fill()
	}

	if err := dc.SavePNG(path); err != nil {
		return errors.Wrapf(err, "cannot write preview image %q", path)
	}
	return nil
}

func (r *PreviewRenderer) materialColor(name string) color.Color {
	if m, ok := r.materials[name]; ok && m.Color != nil {
		return m.Color
	}
	return color.Gray{Y: 128}
}
