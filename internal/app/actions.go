package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/menu"
)

// builtinActions are the callbacks the bundled menu bar refers to. Lua
// scripts registered later replace any of them by name.
var builtinActions = map[string]func(menu.Invocation) string{
	"file.new":       func(menu.Invocation) string { return "New document" },
	"file.open":      func(inv menu.Invocation) string { return fmt.Sprintf("Opened %s", inv.Value) },
	"file.save":      func(menu.Invocation) string { return "Saved" },
	"file.autosave":  switchLine("Autosave"),
	"edit.undo":      func(menu.Invocation) string { return "Nothing to undo" },
	"edit.redo":      func(menu.Invocation) string { return "Nothing to redo" },
	"edit.clipboard": func(inv menu.Invocation) string { return fmt.Sprintf("Clipboard: %s", inv.Value) },
	"view.theme":     func(inv menu.Invocation) string { return fmt.Sprintf("Theme set to %s", inv.Value) },
	"view.wrap":      switchLine("Word wrap"),
	"view.zoom":      func(inv menu.Invocation) string { return fmt.Sprintf("Zoom: %s", inv.Value) },
	"help.about":     func(menu.Invocation) string { return "menubar: a nested menu bar for the terminal" },
}

func switchLine(label string) func(menu.Invocation) string {
	return func(inv menu.Invocation) string {
		if inv.Checked {
			return label + " on"
		}
		return label + " off"
	}
}

func report(describe func(menu.Invocation) string) menu.Action {
	return func(inv menu.Invocation) tea.Cmd {
		return func() tea.Msg {
			return menu.ActionResult{Name: inv.Name, Info: describe(inv)}
		}
	}
}

func registerBuiltins(reg *menu.Registry) {
	for name, describe := range builtinActions {
		reg.MustRegister(name, report(describe))
	}
}
