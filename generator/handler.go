// Package generator drives dataset production: a per-frame lifecycle over
// an ordered list of handlers that randomize the scene, place objects,
// trigger the render, and record labels.
package generator

import (
	"math/rand"

	"github.com/edaniels/golog"
)

// Context carries the per-run and per-frame state the driver shares with
// every handler: the single random stream, the current frame index and
// image path, and the run logger. Handlers must draw randomness only from
// Rng so a seed replays the whole dataset.
type Context struct {
	Rng    *rand.Rand
	Logger golog.Logger

	// Incremental is true when the run extends an existing dataset;
	// handlers that persist state should resume it only then.
	Incremental bool

	// FrameIndex and ImagePath identify the image being produced; they are
	// only meaningful inside ImageBegin/ImageEnd. ImageRelPath is the
	// sharded path relative to the image root, the form persisted records
	// should use so a dataset stays relocatable.
	FrameIndex   int
	ImagePath    string
	ImageRelPath string
}

// Handler is one stage of the generation pipeline. SceneBegin and
// ImageBegin fire in handler-list order, ImageEnd and SceneEnd in reverse
// order, so handlers nest like scoped resources: a later handler can read
// state an earlier one established before that state is torn down.
type Handler interface {
	SceneBegin(ctx *Context) error
	ImageBegin(ctx *Context) error
	ImageEnd(ctx *Context) error
	SceneEnd(ctx *Context) error
}

// NoopHandler implements every hook as a no-op; embed it to implement only
// the hooks a handler cares about.
type NoopHandler struct{}

// SceneBegin does nothing.
func (NoopHandler) SceneBegin(*Context) error { return nil }

// ImageBegin does nothing.
func (NoopHandler) ImageBegin(*Context) error { return nil }

// ImageEnd does nothing.
func (NoopHandler) ImageEnd(*Context) error { return nil }

// SceneEnd does nothing.
func (NoopHandler) SceneEnd(*Context) error { return nil }
