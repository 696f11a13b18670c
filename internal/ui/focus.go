package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/menubar"
)

// focusSettledMsg completes a focus handoff started by blurBar.
type focusSettledMsg struct {
	owner Owner
}

func settleFocus(owner Owner) tea.Cmd {
	return func() tea.Msg {
		return focusSettledMsg{owner: owner}
	}
}

// blurBar starts moving focus from the bar to target. Until the handoff
// settles nothing is focused, and the monitor re-checks after its delay.
func (m *Model) blurBar(target Owner) tea.Cmd {
	check := m.monitor.Blur(m.bar.Roving())
	m.setOwner(OwnerNone)
	return tea.Batch(settleFocus(target), m.monitor.Schedule(check))
}

// focusBar gives host focus to the bar, optionally moving the roving node
// to id first.
func (m *Model) focusBar(id menubar.NodeID) {
	if id != menubar.NoNode {
		m.bar.Focus(id)
	}
	m.setOwner(OwnerBar)
}

func (m *Model) focusTarget() menubar.Target {
	switch m.owner {
	case OwnerBar:
		return menubar.Target{Kind: menubar.TargetNode, Node: m.bar.Roving()}
	case OwnerContent:
		return menubar.Target{Kind: menubar.TargetOutside, Node: menubar.NoNode}
	default:
		return menubar.Target{Kind: menubar.TargetNone, Node: menubar.NoNode}
	}
}

func (m *Model) handleFocusSettledMsg(msg tea.Msg) tea.Cmd {
	settled, ok := msg.(focusSettledMsg)
	if !ok {
		return nil
	}
	if m.owner == OwnerNone {
		m.setOwner(settled.owner)
	}
	return nil
}

func (m *Model) handleCheckMsg(msg tea.Msg) tea.Cmd {
	check, ok := msg.(menubar.Check)
	if !ok {
		return nil
	}
	verdict, next := m.monitor.Resolve(check, m.focusTarget())
	switch verdict {
	case menubar.VerdictRetry:
		return m.monitor.Schedule(next)
	case menubar.VerdictCollapse:
		m.recorder.Collapse("focus-lost")
	}
	return nil
}
