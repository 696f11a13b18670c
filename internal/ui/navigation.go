package ui

import (
	"fmt"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/menubar"
	"github.com/atomicstack/menubar/internal/ui/command"
)

type keyMap struct {
	Enter     key.Binding
	Space     key.Binding
	Escape    key.Binding
	Home      key.Binding
	End       key.Binding
	Left      key.Binding
	Up        key.Binding
	Right     key.Binding
	Down      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
		Space:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev menu")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next menu")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "leave bar")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "to bar")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp is part of help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Down, k.Enter, k.Escape, k.Next, k.Quit}
}

// FullHelp is part of help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Home, k.End, k.Enter, k.Space, k.Escape},
		{k.Next, k.Prev, k.Quit},
	}
}

// barKey maps a key press to the bar's key vocabulary.
func (k keyMap) barKey(msg tea.KeyMsg) menubar.Key {
	switch {
	case key.Matches(msg, k.Enter):
		return menubar.KeyEnter
	case key.Matches(msg, k.Space):
		return menubar.KeySpace
	case key.Matches(msg, k.Escape):
		return menubar.KeyEscape
	case key.Matches(msg, k.Home):
		return menubar.KeyHome
	case key.Matches(msg, k.End):
		return menubar.KeyEnd
	case key.Matches(msg, k.Left):
		return menubar.KeyLeft
	case key.Matches(msg, k.Up):
		return menubar.KeyUp
	case key.Matches(msg, k.Right):
		return menubar.KeyRight
	case key.Matches(msg, k.Down):
		return menubar.KeyDown
	}
	return menubar.KeyNone
}

// typed returns the printable text of a single-rune key press.
func typed(msg tea.KeyMsg) (string, bool) {
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) != 1 {
		return "", false
	}
	r := msg.Runes[0]
	if !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return "", false
	}
	return string(r), true
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.ForceQuit) {
		return tea.Quit
	}
	if m.owner == OwnerBar {
		if handled, cmd := m.barKeyMsg(keyMsg); handled {
			return cmd
		}
	}
	return m.hostKeyMsg(keyMsg)
}

// barKeyMsg gives the focused bar node the first chance at a key press.
func (m *Model) barKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	focused := m.bar.Roving()
	var res menubar.Result
	if k := m.keys.barKey(msg); k != menubar.KeyNone {
		res = m.bar.DispatchKey(focused, k)
		m.recorder.Key(k.String(), res.Handled)
	} else if text, ok := typed(msg); ok {
		res = m.bar.TypeAhead(focused, text)
		m.recorder.Key("typeahead", res.Handled)
		// Unmatched text never reaches host shortcuts while the bar has focus.
		return true, nil
	}
	if !res.Handled {
		return false, nil
	}
	return true, m.afterBarResult(focused, res)
}

func (m *Model) afterBarResult(source menubar.NodeID, res menubar.Result) tea.Cmd {
	node, _ := m.bar.Node(source)
	switch {
	case res.Invocation != nil:
		m.recorder.Activation(res.Invocation.Name, true)
		m.errMsg = ""
		m.note(activationLine(node.Title, res.Invocation.Value, res.Invocation.HasChecked, res.Invocation.Checked))
		m.setInfo(fmt.Sprintf("Activated %s", node.Title))
		return m.bus.Execute(command.Request{ID: res.Invocation.Name, Label: node.Title, Cmd: res.Cmd})
	case res.Unresolved:
		name := ""
		if opt, ok := node.Option(); ok {
			name = opt.OnClick
		}
		m.recorder.Activation(name, false)
		m.note(fmt.Sprintf("%s (no action)", node.Title))
	}
	return nil
}

func activationLine(title, value string, hasChecked, checked bool) string {
	line := title
	if value != "" {
		line = fmt.Sprintf("%s = %s", title, value)
	}
	if hasChecked {
		line = fmt.Sprintf("%s [%t]", line, checked)
	}
	return line
}

// hostKeyMsg handles keys the bar did not consume.
func (m *Model) hostKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Next):
		if m.owner == OwnerBar {
			return m.blurBar(OwnerContent)
		}
	case key.Matches(msg, m.keys.Prev):
		if m.owner != OwnerBar {
			m.focusBar(menubar.NoNode)
		}
	case key.Matches(msg, m.keys.Escape):
		if m.owner == OwnerBar {
			return m.blurBar(OwnerContent)
		}
	case key.Matches(msg, m.keys.Quit):
		if m.owner == OwnerContent {
			return tea.Quit
		}
	}
	return nil
}
