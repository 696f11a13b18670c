// Package loader fetches named widget configurations on demand and turns
// them into live components. Each configuration is fetched once; every
// Load constructs a fresh widget from the cached document.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/metrics"
)

var (
	// ErrNotFound reports that no configuration file exists for a name.
	ErrNotFound = errors.New("widget configuration not found")
	// ErrUnknownKind reports a kind with no registered factory.
	ErrUnknownKind = errors.New("unknown widget kind")
)

// extensions are tried in order when resolving a name to a file.
var extensions = []string{".yaml", ".yml", ".json"}

// Document is a fetched, not yet decoded, widget configuration.
type Document struct {
	Name   string
	File   string
	Format menu.Format
	Data   []byte
}

// Factory constructs a live widget from a configuration document.
type Factory func(doc Document) (interface{}, error)

// Option configures a Loader.
type Option func(*Loader)

// WithRecorder counts constructions on r.
func WithRecorder(r metrics.Recorder) Option {
	return func(l *Loader) {
		if r != nil {
			l.recorder = r
		}
	}
}

// Loader is safe for concurrent use.
type Loader struct {
	fsys     fs.FS
	recorder metrics.Recorder
	group    singleflight.Group

	mu        sync.Mutex
	factories map[string]Factory
	docs      map[string]Document
	gens      map[string]uint64
}

// New creates a loader reading configurations from fsys.
func New(fsys fs.FS, opts ...Option) *Loader {
	l := &Loader{
		fsys:      fsys,
		recorder:  metrics.Nop{},
		factories: make(map[string]Factory),
		docs:      make(map[string]Document),
		gens:      make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Register binds kind to f, replacing any previous factory.
func (l *Loader) Register(kind string, f Factory) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.factories[kind] = f
}

func (l *Loader) factory(kind string) (Factory, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, ok := l.factories[kind]
	return f, ok
}

// Fetch returns the configuration document for name, reading it at most
// once however many callers ask concurrently.
func (l *Loader) Fetch(ctx context.Context, name string) (Document, error) {
	l.mu.Lock()
	doc, ok := l.docs[name]
	l.mu.Unlock()
	if ok {
		return doc, nil
	}

	ch := l.group.DoChan(name, func() (interface{}, error) {
		l.mu.Lock()
		gen := l.gens[name]
		l.mu.Unlock()
		doc, err := l.read(name)
		if err != nil {
			return Document{}, err
		}
		l.mu.Lock()
		// A Forget during the read invalidates it.
		if l.gens[name] == gen {
			l.docs[name] = doc
		}
		l.mu.Unlock()
		return doc, nil
	})
	select {
	case <-ctx.Done():
		return Document{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Document{}, res.Err
		}
		doc := res.Val.(Document)
		events.Loader.Fetch(name, doc.File, res.Shared)
		return doc, nil
	}
}

func (l *Loader) read(name string) (Document, error) {
	if !fs.ValidPath(name) {
		return Document{}, fmt.Errorf("invalid widget name %q", name)
	}
	for _, ext := range extensions {
		file := name + ext
		data, err := fs.ReadFile(l.fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Document{}, fmt.Errorf("read %s: %w", file, err)
		}
		format, err := menu.FormatForPath(file)
		if err != nil {
			return Document{}, err
		}
		return Document{Name: name, File: file, Format: format, Data: data}, nil
	}
	return Document{}, fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Load fetches name and constructs a widget of the given kind from it.
func (l *Loader) Load(ctx context.Context, kind, name string) (interface{}, error) {
	f, ok := l.factory(kind)
	if !ok {
		return nil, fmt.Errorf("%s: %w", kind, ErrUnknownKind)
	}
	doc, err := l.Fetch(ctx, name)
	if err != nil {
		l.recorder.Load(kind, err)
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	widget, err := f(doc)
	events.Loader.Construct(kind, name, err)
	l.recorder.Load(kind, err)
	if err != nil {
		return nil, fmt.Errorf("construct %s %s: %w", kind, name, err)
	}
	return widget, nil
}

// LoadAll loads every name concurrently. The first failure cancels the
// rest and is returned.
func (l *Loader) LoadAll(ctx context.Context, kind string, names []string) (map[string]interface{}, error) {
	results := make([]interface{}, len(names))
	g, gCtx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			widget, err := l.Load(gCtx, kind, name)
			if err != nil {
				return err
			}
			results[i] = widget
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[string]interface{}, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out, nil
}

// Forget drops the cached document for name so the next Load reads it
// again.
func (l *Loader) Forget(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.docs, name)
	l.gens[name]++
	l.group.Forget(name)
}
