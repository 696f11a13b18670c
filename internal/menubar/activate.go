package menubar

import (
	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/menu"
)

// Activate performs the option's action. Submenu carriers toggle instead.
// Otherwise checkbox/radio state is applied, the registered callback (if
// any) is invoked, the whole open chain collapses and focus returns to the
// enclosing top-level menu. An unregistered callback is a no-op.
func (b *Bar) Activate(id NodeID) Result {
	if !b.valid(id) || b.nodes[id].isMenu {
		return b.result(false)
	}
	n := &b.nodes[id]
	if n.option.HasSubmenu() {
		b.Toggle(id)
		return b.result(true)
	}

	inv := menu.Invocation{Name: n.option.OnClick, Value: n.option.Value}
	switch n.Kind {
	case menu.KindToggle:
		n.Checked = !n.Checked
		inv.Checked = n.Checked
		inv.HasChecked = true
	case menu.KindChoice:
		for _, sib := range b.siblings(id) {
			if sib != id && b.nodes[sib].Kind == menu.KindChoice {
				b.nodes[sib].Checked = false
			}
		}
		n.Checked = true
	}

	res := Result{Handled: true}
	if action, ok := b.registry.Resolve(inv.Name); ok {
		var checked interface{}
		if inv.HasChecked {
			checked = inv.Checked
		}
		events.Action.Invoke(inv.Name, inv.Value, checked)
		res.Cmd = action(inv)
		res.Invocation = &inv
	} else {
		events.Action.Unresolved(inv.Name, inv.Value)
		res.Unresolved = true
	}

	top := b.TopMenu(id)
	b.close(top)
	b.focus(top)
	res.Focus = b.roving
	return res
}
