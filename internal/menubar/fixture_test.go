package menubar

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/menu"
)

type recorder struct {
	calls []menu.Invocation
}

func (r *recorder) action(inv menu.Invocation) tea.Cmd {
	r.calls = append(r.calls, inv)
	return nil
}

func (r *recorder) last(t *testing.T) menu.Invocation {
	t.Helper()
	if len(r.calls) == 0 {
		t.Fatalf("expected a callback invocation")
	}
	return r.calls[len(r.calls)-1]
}

func action(title, value, hotkey, onclick string) menu.Option {
	return menu.Option{Title: title, Value: value, Hotkey: hotkey, OnClick: onclick}
}

func toggle(title, value string, checked bool, onclick string) menu.Option {
	o := action(title, value, "", onclick)
	o.Checked = menu.Bool(checked)
	return o
}

func choice(title, value string, selected bool, onclick string) menu.Option {
	o := action(title, value, "", onclick)
	o.Selected = menu.Bool(selected)
	return o
}

func carrier(title string, children ...menu.Option) menu.Option {
	o := action(title, "", "", "")
	o.Options = children
	return o
}

func editorSpec() menu.Spec {
	return menu.Spec{
		Title: "Editor",
		Menus: []menu.Menu{
			{Title: "File", Hotkey: "f", Options: []menu.Option{
				action("New", "new", "n", "file.new"),
				carrier("Open Recent",
					action("a.txt", "a.txt", "a", "file.open"),
					action("b.txt", "b.txt", "b", "file.open"),
				),
				toggle("Autosave", "autosave", false, "file.autosave"),
			}},
			{Title: "Edit", Hotkey: "e", Options: []menu.Option{
				action("Undo", "undo", "u", "edit.undo"),
				action("Redo", "redo", "r", "edit.redo"),
			}},
			{Title: "View", Hotkey: "v", Options: []menu.Option{
				carrier("Theme",
					choice("Light", "light", true, "view.theme"),
					choice("Dark", "dark", false, "view.theme"),
					choice("High contrast", "contrast", false, "view.theme"),
				),
				toggle("Word wrap", "wrap", true, "view.wrap"),
				carrier("Zoom",
					action("In", "in", "i", "view.zoom"),
					action("Out", "out", "o", "view.zoom"),
					carrier("Presets",
						action("50%", "50", "5", "view.zoom"),
						action("100%", "100", "1", "view.zoom"),
					),
				),
			}},
		},
	}
}

func newEditorBar(t *testing.T) (*Bar, *recorder) {
	t.Helper()
	rec := &recorder{}
	reg := menu.NewRegistry()
	for _, name := range []string{"file.new", "file.open", "file.autosave", "edit.undo", "edit.redo", "view.theme", "view.wrap", "view.zoom"} {
		reg.MustRegister(name, rec.action)
	}
	b, err := Build(editorSpec(), reg)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	assertInvariants(t, b)
	return b, rec
}

// flatSpec builds menus menus, each holding options plain options.
func flatSpec(menus, options int) menu.Spec {
	spec := menu.Spec{Title: "Flat"}
	for m := 0; m < menus; m++ {
		mn := menu.Menu{Title: fmt.Sprintf("M%d", m), Options: []menu.Option{}}
		for o := 0; o < options; o++ {
			mn.Options = append(mn.Options, action(fmt.Sprintf("M%d-O%d", m, o), fmt.Sprint(o), "", ""))
		}
		spec.Menus = append(spec.Menus, mn)
	}
	return spec
}

func idOf(t *testing.T, b *Bar, title string) NodeID {
	t.Helper()
	for i := 0; i < b.Len(); i++ {
		n, _ := b.Node(NodeID(i))
		if n.Title == title {
			return n.ID
		}
	}
	t.Fatalf("no node titled %q", title)
	return NoNode
}

func node(t *testing.T, b *Bar, id NodeID) Node {
	t.Helper()
	n, ok := b.Node(id)
	if !ok {
		t.Fatalf("no node %d", id)
	}
	return n
}

// assertInvariants checks single expansion per sibling group, radio
// exclusivity and the single roving tab stop.
func assertInvariants(t *testing.T, b *Bar) {
	t.Helper()
	groups := [][]NodeID{b.Menus()}
	tabStops := 0
	for i := 0; i < b.Len(); i++ {
		n := node(t, b, NodeID(i))
		if n.TabIndex == 0 {
			tabStops++
			if n.ID != b.Roving() {
				t.Fatalf("node %d has tabindex 0 but roving is %d", n.ID, b.Roving())
			}
		} else if n.TabIndex != -1 {
			t.Fatalf("node %d has tabindex %d", n.ID, n.TabIndex)
		}
		if len(n.Children) > 0 {
			groups = append(groups, n.Children)
		}
	}
	if tabStops != 1 {
		t.Fatalf("expected exactly one tab stop, got %d", tabStops)
	}
	for _, group := range groups {
		expanded, checkedRadios := 0, 0
		for _, id := range group {
			n := node(t, b, id)
			if n.Expanded {
				expanded++
			}
			if n.Kind == menu.KindChoice && n.Checked {
				checkedRadios++
			}
		}
		if expanded > 1 {
			t.Fatalf("sibling group %v has %d expanded nodes", group, expanded)
		}
		if checkedRadios > 1 {
			t.Fatalf("radio group %v has %d checked nodes", group, checkedRadios)
		}
	}
}
