package menu

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Spec is the declarative description of a menu bar.
type Spec struct {
	Title string `json:"title" yaml:"title"`
	Menus []Menu `json:"menus" yaml:"menus"`
}

// Menu is a top-level, always visible activator.
type Menu struct {
	Title   string   `json:"title" yaml:"title"`
	Hotkey  string   `json:"hotkey" yaml:"hotkey"`
	Options []Option `json:"options" yaml:"options"`
}

// Option is an entry inside a menu. Checked marks a toggle, Selected marks a
// choice among its siblings; an option carrying neither is a plain action.
type Option struct {
	Title    string   `json:"title" yaml:"title"`
	Value    string   `json:"value" yaml:"value"`
	Hotkey   string   `json:"hotkey" yaml:"hotkey"`
	Checked  *bool    `json:"checked,omitempty" yaml:"checked,omitempty"`
	Selected *bool    `json:"selected,omitempty" yaml:"selected,omitempty"`
	Options  []Option `json:"options,omitempty" yaml:"options,omitempty"`
	OnClick  string   `json:"onclick" yaml:"onclick"`
}

// Kind classifies how activating an option affects its state.
type Kind int

const (
	KindAction Kind = iota
	KindToggle
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindToggle:
		return "toggle"
	case KindChoice:
		return "choice"
	default:
		return "action"
	}
}

// Kind reports the option kind derived from which state flag is present.
func (o Option) Kind() Kind {
	switch {
	case o.Checked != nil:
		return KindToggle
	case o.Selected != nil:
		return KindChoice
	default:
		return KindAction
	}
}

// HasSubmenu reports whether activating the option opens nested options.
func (o Option) HasSubmenu() bool {
	return len(o.Options) > 0
}

// Invocation is passed to an Action when an option is activated.
type Invocation struct {
	Name  string
	Value string
	// Checked carries the new state of a toggle; HasChecked is false for
	// choices and plain actions, which receive the value only.
	Checked    bool
	HasChecked bool
}

// Action is a registered callback. The returned command runs off the event
// loop and may report back with an ActionResult.
type Action func(Invocation) tea.Cmd

// ActionResult communicates the outcome of executing a menu action.
type ActionResult struct {
	Name string
	Info string
	Err  error
}

// Bool returns a pointer to v, for building specs in code.
func Bool(v bool) *bool {
	return &v
}
