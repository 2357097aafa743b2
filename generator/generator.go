package generator

import (
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/scenegen/scenegen/render"
)

// Generator produces a dataset: for each frame it runs every handler's
// ImageBegin in order, calls the renderer, then runs every ImageEnd in
// reverse order, bracketed by one SceneBegin/SceneEnd pass for the whole
// run. It owns the single random stream, so a fixed Seed and handler list
// reproduce the dataset exactly.
type Generator struct {
	// OutputDir is the image tree root; frames are sharded into it by
	// FramePath.
	OutputDir string

	// ImageExt is the rendered file extension without the dot; "png" when
	// empty.
	ImageExt string

	// Incremental appends after the highest existing frame index instead
	// of clearing OutputDir.
	Incremental bool

	Seed     int64
	Handlers []Handler

	// Renderer may be nil for dry runs that only exercise handlers.
	Renderer render.Renderer

	Logger golog.Logger
}

// FramePath returns the sharded relative path for a frame index: frame
// 1234 becomes "0001/0001234.png". The directory is the index divided by
// 1000, keeping at most a thousand files per directory.
func FramePath(index int, ext string) string {
	return filepath.Join(
		fmt.Sprintf("%04d", index/1000),
		fmt.Sprintf("%07d.%s", index, ext),
	)
}

// MakeCleanDirectory ensures path exists and is empty.
func MakeCleanDirectory(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errors.Wrapf(err, "cannot clear directory %q", path)
	}
	return errors.Wrapf(os.MkdirAll(path, 0o755), "cannot create directory %q", path)
}

// maxFrameIndex scans an output tree for the highest frame index already
// rendered with the given extension.
func maxFrameIndex(dir, ext string) (int, bool, error) {
	maxIndex := 0
	found := false
	suffix := "." + ext
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}
		index, convErr := strconv.Atoi(strings.TrimSuffix(d.Name(), suffix))
		if convErr != nil {
			return nil
		}
		if !found || index > maxIndex {
			maxIndex = index
			found = true
		}
		return nil
	})
	if err != nil {
		return 0, false, errors.Wrapf(err, "cannot scan output directory %q", dir)
	}
	return maxIndex, found, nil
}

// GenerateImages renders count frames. Entry hooks run in handler order,
// exit hooks in reverse order; an exit hook runs whenever its entry hook
// succeeded, even when a later handler or the render failed, so handlers
// can pair setup with teardown. The first failing frame aborts the run.
func (g *Generator) GenerateImages(count int) error {
	logger := g.Logger
	if logger == nil {
		logger = golog.NewDevelopmentLogger("generator")
	}
	ext := g.ImageExt
	if ext == "" {
		ext = "png"
	}

	start := 0
	if g.Incremental {
		if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
			return errors.Wrapf(err, "cannot create output directory %q", g.OutputDir)
		}
		last, found, err := maxFrameIndex(g.OutputDir, ext)
		if err != nil {
			return err
		}
		if found {
			start = last + 1
			logger.Infow("resuming after existing frames", "next", start)
		}
	} else if err := MakeCleanDirectory(g.OutputDir); err != nil {
		return err
	}

	ctx := &Context{
		Rng:         rand.New(rand.NewSource(g.Seed)), //nolint:gosec
		Logger:      logger,
		Incremental: g.Incremental,
	}

	begun, err := runForward(g.Handlers, func(h Handler) error { return h.SceneBegin(ctx) })
	if err != nil {
		err = errors.Wrap(err, "scene begin failed")
		return multierr.Append(err, runReverse(begun, func(h Handler) error { return h.SceneEnd(ctx) }))
	}

	frameErr := g.generateFrames(ctx, start, count, ext)
	endErr := runReverse(begun, func(h Handler) error { return h.SceneEnd(ctx) })
	return multierr.Append(frameErr, endErr)
}

func (g *Generator) generateFrames(ctx *Context, start, count int, ext string) error {
	for index := start; index < start+count; index++ {
		relPath := FramePath(index, ext)
		path := filepath.Join(g.OutputDir, relPath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return errors.Wrapf(err, "cannot create frame directory for %q", path)
		}
		ctx.FrameIndex = index
		ctx.ImagePath = path
		ctx.ImageRelPath = relPath

		begun, beginErr := runForward(g.Handlers, func(h Handler) error { return h.ImageBegin(ctx) })
		var renderErr error
		if beginErr == nil && g.Renderer != nil {
			renderErr = errors.Wrapf(g.Renderer.Render(path), "render failed for %q", path)
		}
		endErr := runReverse(begun, func(h Handler) error { return h.ImageEnd(ctx) })

		if err := multierr.Combine(beginErr, renderErr, endErr); err != nil {
			return errors.Wrapf(err, "frame %d failed", index)
		}
		ctx.Logger.Debugw("frame complete", "index", index, "path", path)
	}
	return nil
}

// runForward invokes fn on each handler in order, stopping at the first
// failure; it returns the handlers whose fn succeeded.
func runForward(handlers []Handler, fn func(Handler) error) ([]Handler, error) {
	for i, h := range handlers {
		if err := fn(h); err != nil {
			return handlers[:i], err
		}
	}
	return handlers, nil
}

// runReverse invokes fn on each handler in reverse order, always visiting
// all of them and combining any errors.
func runReverse(handlers []Handler, fn func(Handler) error) error {
	var err error
	for i := len(handlers) - 1; i >= 0; i-- {
		err = multierr.Append(err, fn(handlers[i]))
	}
	return err
}
