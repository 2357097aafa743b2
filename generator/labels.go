package generator

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/scenegen/scenegen/camera"
	"github.com/scenegen/scenegen/scene"
)

// ObjectLabel is one object's ground truth in one image: its class, its
// origin projected to image coordinates, and its yaw in radians.
type ObjectLabel struct {
	CategoryIndex int     `json:"category_index"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Angle         float64 `json:"angle"`
}

// ImageLabelRecord is the ground truth for one rendered image.
type ImageLabelRecord struct {
	Image   string        `json:"image"`
	Objects []ObjectLabel `json:"objects"`
}

// LabelWriter records ground truth for every rendered image and persists
// the accumulated list after each frame, keeping the previous file as a
// .bak alongside so an interrupted write never loses more than one frame.
// Place it after the placement handler so it observes final object state.
type LabelWriter struct {
	NoopHandler
	objects []*scene.Object
	cam     *scene.Camera
	path    string

	proj    *camera.Projector
	records []ImageLabelRecord
}

// NewLabelWriter returns a writer labeling the given objects, persisting
// to path.
func NewLabelWriter(objects []*scene.Object, cam *scene.Camera, path string) *LabelWriter {
	return &LabelWriter{objects: objects, cam: cam, path: path}
}

// Records returns the accumulated label records.
func (w *LabelWriter) Records() []ImageLabelRecord {
	return w.records
}

// SceneBegin derives the projector. On an incremental run an existing
// label file is loaded so the run extends it; a fresh run starts from
// empty records and the first persist displaces the old file to .bak.
func (w *LabelWriter) SceneBegin(ctx *Context) error {
	proj, err := w.cam.Projector()
	if err != nil {
		return err
	}
	w.proj = proj

	w.records = nil
	if !ctx.Incremental {
		return nil
	}
	data, err := os.ReadFile(w.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "cannot read existing label file %q", w.path)
	}
	if err := json.Unmarshal(data, &w.records); err != nil {
		return errors.Wrapf(err, "cannot parse existing label file %q", w.path)
	}
	return nil
}

// ImageEnd records every visible object's label for the frame just
// rendered and persists the list. Records name images by their sharded
// path relative to the image root, keeping the dataset relocatable.
func (w *LabelWriter) ImageEnd(ctx *Context) error {
	record := ImageLabelRecord{Image: ctx.ImageRelPath}
	for _, obj := range w.objects {
		if obj.Hidden {
			continue
		}
		origin := w.proj.ProjectPoint(obj.Location)
		record.Objects = append(record.Objects, ObjectLabel{
			CategoryIndex: obj.CategoryIndex,
			X:             origin.X,
			Y:             origin.Y,
			Angle:         obj.Rotation.Yaw,
		})
	}
	w.records = append(w.records, record)
	return w.persist()
}

// persist writes the record list, first rotating any existing file to
// path.bak.
func (w *LabelWriter) persist() error {
	if _, err := os.Stat(w.path); err == nil {
		if err := os.Rename(w.path, w.path+".bak"); err != nil {
			return errors.Wrapf(err, "cannot back up label file %q", w.path)
		}
	}
	data, err := json.MarshalIndent(w.records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode labels")
	}
	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return errors.Wrapf(err, "cannot write label file %q", w.path)
	}
	return nil
}
