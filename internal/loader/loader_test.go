package loader

import (
	"context"
	"errors"
	"io/fs"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/menubar"
	"github.com/atomicstack/menubar/internal/metrics"
)

const fileMenuYAML = `
title: Demo
menus:
  - title: File
    hotkey: f
    options:
      - title: Open
        value: open
        onclick: file.open
`

const editMenuJSON = `{"title":"Edit bar","menus":[{"title":"Edit","hotkey":"e","options":[]}]}`

// gatedFS counts opens and blocks them until release is closed. When
// entered is set, each open is signalled on it without blocking.
type gatedFS struct {
	fs      fs.FS
	opens   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (g *gatedFS) Open(name string) (fs.File, error) {
	g.opens.Add(1)
	if g.entered != nil {
		select {
		case g.entered <- struct{}{}:
		default:
		}
	}
	if g.release != nil {
		<-g.release
	}
	return g.fs.Open(name)
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"menuBar.yaml": {Data: []byte(fileMenuYAML)},
		"edit.json":    {Data: []byte(editMenuJSON)},
		"broken.yml":   {Data: []byte("title: x\nmenus: []\n")},
	}
}

func newTestLoader(fsys fs.FS, opts ...Option) *Loader {
	l := New(fsys, opts...)
	l.Register(KindMenuBar, MenuBarFactory(menu.NewRegistry()))
	return l
}

func TestLoadConstructsMenuBar(t *testing.T) {
	l := newTestLoader(testFS())
	bar, err := l.MenuBar(context.Background(), "menuBar")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if bar.Title != "Demo" || len(bar.Menus()) != 1 {
		t.Fatalf("unexpected bar %q with %d menus", bar.Title, len(bar.Menus()))
	}

	edit, err := l.MenuBar(context.Background(), "edit")
	if err != nil {
		t.Fatalf("json load failed: %v", err)
	}
	if edit.Title != "Edit bar" {
		t.Fatalf("expected json spec title, got %q", edit.Title)
	}
}

func TestConcurrentLoadsFetchOnce(t *testing.T) {
	gated := &gatedFS{fs: testFS(), release: make(chan struct{})}
	l := newTestLoader(gated)

	const callers = 8
	var wg sync.WaitGroup
	bars := make([]*menubar.Bar, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bars[i], errs[i] = l.MenuBar(context.Background(), "menuBar")
		}(i)
	}
	close(gated.release)
	wg.Wait()

	for i := range errs {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
	}
	if got := gated.opens.Load(); got != 1 {
		t.Fatalf("expected a single read, got %d", got)
	}
	if bars[0] == bars[1] {
		t.Fatalf("expected each load to construct its own widget")
	}

	l.Forget("menuBar")
	if _, err := l.MenuBar(context.Background(), "menuBar"); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got := gated.opens.Load(); got != 2 {
		t.Fatalf("expected Forget to force a second read, got %d", got)
	}
}

func TestForgetDuringReadDropsResult(t *testing.T) {
	gated := &gatedFS{fs: testFS(), entered: make(chan struct{}, 1), release: make(chan struct{})}
	l := newTestLoader(gated)

	done := make(chan error, 1)
	go func() {
		_, err := l.Fetch(context.Background(), "menuBar")
		done <- err
	}()
	<-gated.entered
	l.Forget("menuBar")
	close(gated.release)
	if err := <-done; err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if _, err := l.Fetch(context.Background(), "menuBar"); err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if got := gated.opens.Load(); got != 2 {
		t.Fatalf("expected the forgotten read not to be cached, got %d reads", got)
	}
	if _, err := l.Fetch(context.Background(), "menuBar"); err != nil {
		t.Fatalf("third fetch failed: %v", err)
	}
	if got := gated.opens.Load(); got != 2 {
		t.Fatalf("expected the fresh read to be cached, got %d reads", got)
	}
}

func TestLoadErrors(t *testing.T) {
	rec := metrics.New()
	l := newTestLoader(testFS(), WithRecorder(rec))
	ctx := context.Background()

	if _, err := l.Load(ctx, "tabGroup", "menuBar"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if _, err := l.Load(ctx, KindMenuBar, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := l.Load(ctx, KindMenuBar, "broken"); !errors.Is(err, menu.ErrMalformed) {
		t.Fatalf("expected construction error to propagate, got %v", err)
	}
	if _, err := l.Load(ctx, KindMenuBar, "../escape"); err == nil {
		t.Fatalf("expected invalid name to fail")
	}
}

func TestLoadHonoursContext(t *testing.T) {
	gated := &gatedFS{fs: testFS(), release: make(chan struct{})}
	l := newTestLoader(gated)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx, KindMenuBar, "menuBar"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	close(gated.release)
}

func TestLoadAll(t *testing.T) {
	l := newTestLoader(testFS())
	widgets, err := l.LoadAll(context.Background(), KindMenuBar, []string{"menuBar", "edit"})
	if err != nil {
		t.Fatalf("load all failed: %v", err)
	}
	if len(widgets) != 2 {
		t.Fatalf("expected 2 widgets, got %d", len(widgets))
	}
	if _, ok := widgets["edit"].(*menubar.Bar); !ok {
		t.Fatalf("expected a menu bar for edit, got %T", widgets["edit"])
	}

	if _, err := l.LoadAll(context.Background(), KindMenuBar, []string{"menuBar", "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from LoadAll, got %v", err)
	}
}
