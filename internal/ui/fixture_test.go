package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/menubar"
)

func testSpec() menu.Spec {
	autosave := menu.Option{Title: "Autosave", Value: "autosave", OnClick: "file.autosave", Checked: menu.Bool(false)}
	return menu.Spec{
		Title: "Editor",
		Menus: []menu.Menu{
			{Title: "File", Hotkey: "f", Options: []menu.Option{
				{Title: "New", Value: "new", Hotkey: "n", OnClick: "file.new"},
				{Title: "Open Recent", Options: []menu.Option{
					{Title: "a.txt", Value: "a.txt", OnClick: "file.open"},
				}},
				autosave,
			}},
			{Title: "Edit", Hotkey: "e", Options: []menu.Option{
				{Title: "Undo", Value: "undo", Hotkey: "u", OnClick: "edit.undo"},
				{Title: "Explode", Value: "boom", OnClick: "edit.explode"},
			}},
			{Title: "Help", Hotkey: "h", Options: []menu.Option{}},
		},
	}
}

func testRegistry() *menu.Registry {
	reg := menu.NewRegistry()
	reg.MustRegister("file.new", func(inv menu.Invocation) tea.Cmd {
		return func() tea.Msg {
			return menu.ActionResult{Name: inv.Name, Info: "Created document"}
		}
	})
	reg.MustRegister("file.autosave", func(menu.Invocation) tea.Cmd { return nil })
	reg.MustRegister("file.open", func(inv menu.Invocation) tea.Cmd {
		return func() tea.Msg {
			return menu.ActionResult{Name: inv.Name, Info: "Opened " + inv.Value}
		}
	})
	reg.MustRegister("edit.explode", func(inv menu.Invocation) tea.Cmd {
		return func() tea.Msg {
			return menu.ActionResult{Name: inv.Name, Err: errors.New("kaboom")}
		}
	})
	return reg
}

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	bar, err := menubar.Build(testSpec(), testRegistry())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	opts.Bar = bar
	if opts.BlurDelay == 0 {
		opts.BlurDelay = time.Millisecond
	}
	if opts.Width == 0 {
		opts.Width = 80
	}
	return NewModel(opts)
}

func nodeID(t *testing.T, b *menubar.Bar, title string) menubar.NodeID {
	t.Helper()
	for i := 0; i < b.Len(); i++ {
		if n, _ := b.Node(menubar.NodeID(i)); n.Title == title {
			return n.ID
		}
	}
	t.Fatalf("no node titled %q", title)
	return menubar.NoNode
}

func press(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func expanded(b *menubar.Bar, id menubar.NodeID) bool {
	n, _ := b.Node(id)
	return n.Expanded
}
