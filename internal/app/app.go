package app

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/backend"
	"github.com/atomicstack/menubar/internal/loader"
	"github.com/atomicstack/menubar/internal/logging"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/menubar"
	"github.com/atomicstack/menubar/internal/metrics"
	"github.com/atomicstack/menubar/internal/script"
	"github.com/atomicstack/menubar/internal/ui"
)

//go:embed widgets
var bundled embed.FS

// DefaultWidget names the bundled menu bar.
const DefaultWidget = "menuBar"

// Config describes user-provided application options.
type Config struct {
	SpecPath       string
	WidgetDir      string
	Widget         string
	ScriptPath     string
	Width          int
	Height         int
	ShowFooter     bool
	BlurDelay      time.Duration
	ReloadInterval time.Duration
	MetricsAddr    string
	Dump           bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var recorder metrics.Recorder = metrics.Nop{}
	if cfg.MetricsAddr != "" {
		prom := metrics.New()
		recorder = prom
		go func() {
			if err := prom.Serve(ctx, cfg.MetricsAddr); err != nil {
				logging.Error(err)
			}
		}()
	}

	registry, engine, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	if engine != nil {
		defer engine.Close()
	}

	bar, err := loadBar(ctx, cfg, registry, recorder)
	if err != nil {
		return err
	}

	opts := ui.Options{
		Bar:        bar,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		BlurDelay:  cfg.BlurDelay,
		Recorder:   recorder,
	}
	if cfg.ReloadInterval > 0 && cfg.SpecPath != "" {
		watcher := backend.NewWatcher(cfg.SpecPath, cfg.ReloadInterval)
		defer watcher.Stop()
		opts.Watcher = watcher
		opts.Rebuild = rebuilder(registry)
	}

	model := ui.NewModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Dump writes the attribute markup of the configured bar to w.
func Dump(cfg Config, w io.Writer) error {
	registry, engine, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	if engine != nil {
		defer engine.Close()
	}
	bar, err := loadBar(context.Background(), cfg, registry, metrics.Nop{})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, bar.Markup())
	return err
}

// newRegistry registers the built-in actions, then any script functions on
// top of them.
func newRegistry(cfg Config) (*menu.Registry, *script.Engine, error) {
	reg := menu.NewRegistry()
	registerBuiltins(reg)
	if cfg.ScriptPath == "" {
		return reg, nil, nil
	}
	engine := script.New()
	if err := engine.LoadFile(cfg.ScriptPath); err != nil {
		engine.Close()
		return nil, nil, err
	}
	if err := engine.Register(reg); err != nil {
		engine.Close()
		return nil, nil, err
	}
	return reg, engine, nil
}

func loadBar(ctx context.Context, cfg Config, reg *menu.Registry, recorder metrics.Recorder) (*menubar.Bar, error) {
	if cfg.SpecPath != "" {
		data, err := os.ReadFile(cfg.SpecPath)
		if err != nil {
			recorder.Load(loader.KindMenuBar, err)
			return nil, fmt.Errorf("read spec: %w", err)
		}
		bar, err := rebuilder(reg)(cfg.SpecPath, data)
		recorder.Load(loader.KindMenuBar, err)
		return bar, err
	}

	var fsys fs.FS
	if cfg.WidgetDir != "" {
		fsys = os.DirFS(cfg.WidgetDir)
	} else {
		sub, err := fs.Sub(bundled, "widgets")
		if err != nil {
			return nil, err
		}
		fsys = sub
	}
	name := cfg.Widget
	if name == "" {
		name = DefaultWidget
	}
	l := loader.New(fsys, loader.WithRecorder(recorder))
	l.Register(loader.KindMenuBar, loader.MenuBarFactory(reg))
	return l.MenuBar(ctx, name)
}

// rebuilder decodes spec files by extension and builds them against reg.
func rebuilder(reg *menu.Registry) ui.RebuildFunc {
	return func(path string, data []byte) (*menubar.Bar, error) {
		format, err := menu.FormatForPath(path)
		if err != nil {
			return nil, err
		}
		spec, err := menu.Decode(data, format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return menubar.Build(spec, reg)
	}
}
