package backend

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event conveys a changed spec file, or the error hit while reading it.
type Event struct {
	Path    string
	Data    []byte
	ModTime time.Time
	Err     error
}

// Watcher polls a file at a fixed interval and publishes an event whenever
// its modification time or size changes.
type Watcher struct {
	path     string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts polling path every interval. The first poll only
// records the current state; events follow later changes.
func NewWatcher(path string, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	w.wg.Add(1)
	go w.poll(newDebounce(interval / 2))

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

type fileState struct {
	modTime time.Time
	size    int64
	err     string
}

func (w *Watcher) stat() fileState {
	info, err := os.Stat(w.path)
	if err != nil {
		return fileState{err: err.Error()}
	}
	return fileState{modTime: info.ModTime(), size: info.Size()}
}

func (w *Watcher) poll(debounce *debounce) {
	defer w.wg.Done()

	last := w.stat()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
		}
		cur := w.stat()
		if cur == last {
			continue
		}
		cur, ok := debounce.settle(w.ctx, cur, w.stat)
		if !ok {
			return
		}
		last = cur
		evt := Event{Path: w.path, ModTime: cur.modTime}
		if cur.err != "" {
			evt.Err = fmt.Errorf("stat %s: %s", w.path, cur.err)
		} else if evt.Data, evt.Err = os.ReadFile(w.path); evt.Err != nil {
			evt.Err = fmt.Errorf("read %s: %w", w.path, evt.Err)
		}
		select {
		case <-w.ctx.Done():
			return
		case w.events <- evt:
		}
	}
}
