package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/backend"
	"github.com/atomicstack/menubar/internal/logging"
	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/menubar"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		logging.Error(fmt.Errorf("action %s: %w", result.Name, result.Err))
		return nil
	}
	m.errMsg = ""
	if result.Info != "" {
		m.setInfo(result.Info)
		m.note(result.Info)
	}
	events.Action.Success(result.Info)
	return nil
}

func waitForReload(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return reloadDoneMsg{}
		}
		return reloadMsg{event: evt}
	}
}

type reloadMsg struct {
	event backend.Event
}

type reloadDoneMsg struct{}

func (m *Model) handleReloadMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(reloadMsg)
	if !ok {
		return nil
	}
	m.applyReload(update.event)
	if m.watcher != nil {
		return waitForReload(m.watcher)
	}
	return nil
}

func (m *Model) handleReloadDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

// applyReload swaps in a bar rebuilt from a changed spec. The old bar's
// pending focus checks are cancelled; a failed rebuild keeps the old bar.
func (m *Model) applyReload(evt backend.Event) {
	err := evt.Err
	var next *menubar.Bar
	if err == nil {
		if m.rebuild == nil {
			return
		}
		next, err = m.rebuild(evt.Path, evt.Data)
	}
	events.App.Reload(evt.Path, err)
	if err != nil {
		m.errMsg = fmt.Sprintf("reload: %v", err)
		logging.Error(fmt.Errorf("reload %s: %w", evt.Path, err))
		return
	}
	m.monitor.Reset(next)
	m.bar = next
	m.errMsg = ""
	m.setInfo(fmt.Sprintf("Reloaded %s", next.Title))
}
