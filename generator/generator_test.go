package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

// recordingHandler appends a tag per hook call so tests can assert
// invocation order.
type recordingHandler struct {
	name   string
	calls  *[]string
	frames *[]int
}

func (h *recordingHandler) record(hook string) {
	*h.calls = append(*h.calls, h.name+"."+hook)
}

func (h *recordingHandler) SceneBegin(*Context) error { h.record("sceneBegin"); return nil }

func (h *recordingHandler) ImageBegin(ctx *Context) error {
	h.record("imageBegin")
	if h.frames != nil {
		*h.frames = append(*h.frames, ctx.FrameIndex)
	}
	return nil
}

func (h *recordingHandler) ImageEnd(*Context) error { h.record("imageEnd"); return nil }
func (h *recordingHandler) SceneEnd(*Context) error { h.record("sceneEnd"); return nil }

func TestFramePath(t *testing.T) {
	test.That(t, FramePath(0, "png"), test.ShouldEqual, filepath.Join("0000", "0000000.png"))
	test.That(t, FramePath(999, "png"), test.ShouldEqual, filepath.Join("0000", "0000999.png"))
	test.That(t, FramePath(1000, "png"), test.ShouldEqual, filepath.Join("0001", "0001000.png"))
	test.That(t, FramePath(1234, "jpg"), test.ShouldEqual, filepath.Join("0001", "0001234.jpg"))
	test.That(t, FramePath(1234567, "png"), test.ShouldEqual, filepath.Join("1234", "1234567.png"))
}

func TestHookOrdering(t *testing.T) {
	var calls []string
	a := &recordingHandler{name: "a", calls: &calls}
	b := &recordingHandler{name: "b", calls: &calls}
	gen := &Generator{
		OutputDir: t.TempDir(),
		Handlers:  []Handler{a, b},
		Logger:    golog.NewTestLogger(t),
	}
	test.That(t, gen.GenerateImages(2), test.ShouldBeNil)
	test.That(t, calls, test.ShouldResemble, []string{
		"a.sceneBegin", "b.sceneBegin",
		"a.imageBegin", "b.imageBegin", "b.imageEnd", "a.imageEnd",
		"a.imageBegin", "b.imageBegin", "b.imageEnd", "a.imageEnd",
		"b.sceneEnd", "a.sceneEnd",
	})
}

// failingHandler fails its ImageBegin; earlier handlers' ImageEnd hooks
// must still run.
type failingHandler struct {
	NoopHandler
}

func (failingHandler) ImageBegin(*Context) error { return errors.New("boom") }

func TestExitHooksRunOnEntryFailure(t *testing.T) {
	var calls []string
	a := &recordingHandler{name: "a", calls: &calls}
	gen := &Generator{
		OutputDir: t.TempDir(),
		Handlers:  []Handler{a, failingHandler{}},
		Logger:    golog.NewTestLogger(t),
	}
	err := gen.GenerateImages(1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "boom")
	test.That(t, calls, test.ShouldResemble, []string{
		"a.sceneBegin",
		"a.imageBegin", "a.imageEnd",
		"a.sceneEnd",
	})
}

func TestMakeCleanDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	test.That(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755), test.ShouldBeNil)
	stale := filepath.Join(dir, "sub", "stale.txt")
	test.That(t, os.WriteFile(stale, []byte("x"), 0o644), test.ShouldBeNil)

	test.That(t, MakeCleanDirectory(dir), test.ShouldBeNil)
	entries, err := os.ReadDir(dir)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, entries, test.ShouldBeEmpty)
}

func TestIncrementalResumesAfterExistingFrames(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, FramePath(4, "png"))
	test.That(t, os.MkdirAll(filepath.Dir(existing), 0o755), test.ShouldBeNil)
	test.That(t, os.WriteFile(existing, []byte("img"), 0o644), test.ShouldBeNil)

	var calls []string
	var frames []int
	h := &recordingHandler{name: "h", calls: &calls, frames: &frames}
	gen := &Generator{
		OutputDir:   dir,
		Incremental: true,
		Handlers:    []Handler{h},
		Logger:      golog.NewTestLogger(t),
	}
	test.That(t, gen.GenerateImages(3), test.ShouldBeNil)
	test.That(t, frames, test.ShouldResemble, []int{5, 6, 7})

	// the pre-existing frame survives
	_, err := os.Stat(existing)
	test.That(t, err, test.ShouldBeNil)
}

func TestNonIncrementalCleansOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	stale := filepath.Join(dir, "stale.txt")
	test.That(t, os.MkdirAll(dir, 0o755), test.ShouldBeNil)
	test.That(t, os.WriteFile(stale, []byte("x"), 0o644), test.ShouldBeNil)

	var calls []string
	gen := &Generator{
		OutputDir: dir,
		Handlers:  []Handler{&recordingHandler{name: "h", calls: &calls}},
		Logger:    golog.NewTestLogger(t),
	}
	test.That(t, gen.GenerateImages(1), test.ShouldBeNil)
	_, err := os.Stat(stale)
	test.That(t, os.IsNotExist(err), test.ShouldBeTrue)
}

func TestMaxFrameIndex(t *testing.T) {
	dir := t.TempDir()
	_, found, err := maxFrameIndex(dir, "png")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, found, test.ShouldBeFalse)

	for _, index := range []int{0, 3, 1001} {
		path := filepath.Join(dir, FramePath(index, "png"))
		test.That(t, os.MkdirAll(filepath.Dir(path), 0o755), test.ShouldBeNil)
		test.That(t, os.WriteFile(path, []byte("img"), 0o644), test.ShouldBeNil)
	}
	// files with other extensions or names are ignored
	test.That(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644), test.ShouldBeNil)

	last, found, err := maxFrameIndex(dir, "png")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, last, test.ShouldEqual, 1001)
}
