package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/backend"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/menubar"
)

func TestWindowSizeHonoursFixedDimensions(t *testing.T) {
	m := newTestModel(t, Options{Width: 40})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.width != 40 {
		t.Fatalf("expected fixed width 40, got %d", m.width)
	}
	if m.height != 30 {
		t.Fatalf("expected height from the terminal, got %d", m.height)
	}
}

func TestHistoryIsBounded(t *testing.T) {
	m := newTestModel(t, Options{})
	for i := 0; i < historyLimit+3; i++ {
		m.note(strings.Repeat("x", i+1))
	}
	if len(m.history) != historyLimit {
		t.Fatalf("expected %d history lines, got %d", historyLimit, len(m.history))
	}
	if m.history[historyLimit-1] != strings.Repeat("x", historyLimit+3) {
		t.Fatalf("expected newest entry last, got %q", m.history[historyLimit-1])
	}
}

func TestReloadSwapsBar(t *testing.T) {
	var gotPath string
	m := newTestModel(t, Options{Rebuild: func(path string, data []byte) (*menubar.Bar, error) {
		gotPath = path
		spec, err := menu.Decode(data, menu.FormatYAML)
		if err != nil {
			return nil, err
		}
		return menubar.Build(spec, nil)
	}})
	old := m.Bar()
	data := []byte("title: Fresh\nmenus:\n  - title: Tools\n    options:\n      - title: Lint\n")
	m.Update(reloadMsg{event: backend.Event{Path: "bar.yaml", Data: data}})

	if gotPath != "bar.yaml" {
		t.Fatalf("expected rebuild for bar.yaml, got %q", gotPath)
	}
	if m.Bar() == old || m.Bar().Title != "Fresh" {
		t.Fatalf("expected the rebuilt bar to be installed")
	}
	if !strings.Contains(m.View(), "Tools") || !strings.Contains(m.View(), "Reloaded Fresh") {
		t.Fatalf("expected reloaded bar in view, got:\n%s", m.View())
	}
}

func TestReloadFailureKeepsBar(t *testing.T) {
	m := newTestModel(t, Options{Rebuild: func(string, []byte) (*menubar.Bar, error) {
		return nil, errors.New("bad yaml")
	}})
	old := m.Bar()
	m.Update(reloadMsg{event: backend.Event{Path: "bar.yaml", Data: []byte("x")}})
	if m.Bar() != old {
		t.Fatalf("expected old bar kept")
	}
	if !strings.Contains(m.View(), "reload: bad yaml") {
		t.Fatalf("expected reload error, got:\n%s", m.View())
	}

	m.Update(reloadMsg{event: backend.Event{Path: "bar.yaml", Err: errors.New("gone")}})
	if !strings.Contains(m.View(), "reload: gone") {
		t.Fatalf("expected watcher error, got:\n%s", m.View())
	}
}

func TestReloadCancelsPendingChecks(t *testing.T) {
	m := newTestModel(t, Options{Rebuild: func(string, []byte) (*menubar.Bar, error) {
		return menubar.Build(testSpec(), nil)
	}})
	h := NewHarness(m)
	h.Send(press(tea.KeyDown))
	check := blurCheck(t, m)
	m.Update(reloadMsg{event: backend.Event{Path: "bar.yaml"}})
	m.Bar().Click(nodeID(t, m.Bar(), "File"))

	h.Send(check)
	if !expanded(m.Bar(), nodeID(t, m.Bar(), "File")) {
		t.Fatalf("a check from the old bar must not collapse the new one")
	}
}
