package menubar

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/menu"
)

// Result describes the outcome of an input event. Handled means the event
// was consumed and must not reach any other handler.
type Result struct {
	Handled bool
	Focus   NodeID
	Cmd     tea.Cmd
	// Invocation is set when an activation resolved and invoked a callback.
	Invocation *menu.Invocation
	// Unresolved is set when an activation named a callback that is not
	// registered; the activation still applied its state change.
	Unresolved bool
}

func (b *Bar) result(handled bool) Result {
	return Result{Handled: handled, Focus: b.roving}
}

// Toggle flips the expansion of a menu or submenu carrier. Opening closes
// expanded siblings and focuses the first child; closing collapses every
// descendant. It reports false for nodes that cannot expand.
func (b *Bar) Toggle(id NodeID) bool {
	if !b.valid(id) || !b.nodes[id].CanExpand() {
		return false
	}
	if b.nodes[id].Expanded {
		b.close(id)
	} else {
		b.open(id)
	}
	return true
}

func (b *Bar) open(id NodeID) {
	for _, sib := range b.siblings(id) {
		if sib != id && b.nodes[sib].Expanded {
			b.close(sib)
		}
	}
	b.nodes[id].Expanded = true
	events.Menu.Expand(int(id), b.nodes[id].Title)
	if kids := b.nodes[id].Children; len(kids) > 0 {
		b.focus(kids[0])
	} else if !b.Contains(id, b.roving) {
		b.focus(id)
	}
}

// close collapses id and everything beneath it. Focus held inside the
// collapsed subtree returns to id.
func (b *Bar) close(id NodeID) {
	b.collapse(id)
	if b.roving != id && b.Contains(id, b.roving) {
		b.focus(id)
	}
}

func (b *Bar) collapse(id NodeID) {
	if b.nodes[id].Expanded {
		b.nodes[id].Expanded = false
		events.Menu.Collapse(int(id), b.nodes[id].Title)
	}
	for _, child := range b.nodes[id].Children {
		b.collapse(child)
	}
}

func (b *Bar) focus(id NodeID) {
	if id == b.roving {
		return
	}
	if b.valid(b.roving) {
		b.nodes[b.roving].TabIndex = -1
	}
	b.nodes[id].TabIndex = 0
	b.roving = id
	events.Menu.Focus(int(id), b.nodes[id].Title)
}

// Focus moves the roving tab stop to id and closes any expanded sibling, so
// an open submenu never lingers beside the focused node.
func (b *Bar) Focus(id NodeID) bool {
	if !b.valid(id) {
		return false
	}
	for _, sib := range b.siblings(id) {
		if sib != id && b.nodes[sib].Expanded {
			b.close(sib)
		}
	}
	b.focus(id)
	return true
}

// MoveFocus moves focus within the sibling set of id, wrapping at both
// ends. A sibling set of one is left untouched.
func (b *Bar) MoveFocus(id NodeID, dir Direction) NodeID {
	target := b.neighbour(id, dir)
	if target == NoNode || target == id {
		return id
	}
	b.Focus(target)
	return target
}

func (b *Bar) neighbour(id NodeID, dir Direction) NodeID {
	set := b.siblings(id)
	n := len(set)
	idx := b.indexOf(id, set)
	if n == 0 || idx < 0 {
		return NoNode
	}
	switch dir {
	case Next:
		return set[(idx+1)%n]
	case Prev:
		return set[(idx-1+n)%n]
	case First:
		return set[0]
	case Last:
		return set[n-1]
	}
	return NoNode
}

// Click handles a pointer activation: menus toggle, options activate.
func (b *Bar) Click(id NodeID) Result {
	if !b.valid(id) {
		return b.result(false)
	}
	if b.nodes[id].isMenu {
		b.Focus(id)
		b.Toggle(id)
		return b.result(true)
	}
	b.focus(id)
	return b.Activate(id)
}

// DispatchKey interprets key pressed while id holds focus.
func (b *Bar) DispatchKey(id NodeID, key Key) Result {
	if !b.valid(id) {
		return b.result(false)
	}
	var res Result
	if b.nodes[id].isMenu {
		res = b.menuKey(id, key)
	} else {
		res = b.optionKey(id, key)
	}
	events.Menu.Key(int(id), key.String(), res.Handled)
	return res
}

func (b *Bar) menuKey(id NodeID, key Key) Result {
	n := &b.nodes[id]
	switch key {
	case KeyEnter, KeySpace:
		b.Toggle(id)
	case KeyDown:
		if !n.Expanded {
			b.open(id)
		} else if len(n.Children) > 0 {
			b.focus(n.Children[0])
		}
	case KeyUp:
		if !n.Expanded {
			b.open(id)
		}
		if kids := b.nodes[id].Children; len(kids) > 0 {
			b.focus(kids[len(kids)-1])
		}
	case KeyRight:
		b.MoveFocus(id, Next)
	case KeyLeft:
		b.MoveFocus(id, Prev)
	case KeyHome:
		b.MoveFocus(id, First)
	case KeyEnd:
		b.MoveFocus(id, Last)
	case KeyEscape:
		if !n.Expanded {
			return b.result(false)
		}
		b.close(id)
	default:
		return b.result(false)
	}
	return b.result(true)
}

func (b *Bar) optionKey(id NodeID, key Key) Result {
	n := &b.nodes[id]
	switch key {
	case KeyEnter, KeySpace:
		return b.Activate(id)
	case KeyDown:
		b.MoveFocus(id, Next)
	case KeyUp:
		b.MoveFocus(id, Prev)
	case KeyHome:
		b.MoveFocus(id, First)
	case KeyEnd:
		b.MoveFocus(id, Last)
	case KeyRight:
		if len(n.Children) > 0 {
			if n.Expanded {
				b.focus(n.Children[0])
			} else {
				b.open(id)
			}
		} else {
			b.openAdjacentMenu(id, Next)
		}
	case KeyLeft:
		if parent := n.Parent; !b.nodes[parent].isMenu {
			b.close(parent)
			b.focus(parent)
		} else {
			b.openAdjacentMenu(id, Prev)
		}
	case KeyEscape:
		parent := n.Parent
		b.close(parent)
		b.focus(parent)
	default:
		return b.result(false)
	}
	return b.result(true)
}

// openAdjacentMenu opens the top-level menu beside the one enclosing id.
// With a single menu there is nothing to move to.
func (b *Bar) openAdjacentMenu(id NodeID, dir Direction) {
	top := b.TopMenu(id)
	target := b.neighbour(top, dir)
	if target == NoNode || target == top {
		return
	}
	if b.nodes[target].Expanded {
		b.Focus(target)
		return
	}
	b.open(target)
}

// CollapseAll closes every expanded node and returns the roving tab stop to
// the first menu. It reports how many top-level menus were open.
func (b *Bar) CollapseAll() int {
	closed := 0
	for _, id := range b.menus {
		if b.nodes[id].Expanded {
			closed++
		}
		b.collapse(id)
	}
	if len(b.menus) > 0 {
		b.focus(b.menus[0])
	}
	return closed
}
