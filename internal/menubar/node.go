// Package menubar implements an accessible, keyboard-navigable menu bar as
// an arena of rendered nodes plus the state machine that drives them.
//
// Nodes are addressed by NodeID and never destroyed while the Bar lives.
// Expansion, checked state and the roving tab stop are mutated only through
// Bar methods so the invariants hold after every transition:
//   - at most one expanded node per sibling group;
//   - at most one checked node per group of radio siblings;
//   - exactly one node with tab index 0.
package menubar

import "github.com/atomicstack/menubar/internal/menu"

// NodeID addresses a node in a Bar's arena.
type NodeID int

// NoNode is the parent of every top-level menu.
const NoNode NodeID = -1

// Role is the ARIA role exposed for a node.
type Role string

const (
	RoleMenu             Role = "menu"
	RoleMenuItem         Role = "menuitem"
	RoleMenuItemCheckbox Role = "menuitemcheckbox"
	RoleMenuItemRadio    Role = "menuitemradio"
)

func roleForKind(kind menu.Kind) Role {
	switch kind {
	case menu.KindToggle:
		return RoleMenuItemCheckbox
	case menu.KindChoice:
		return RoleMenuItemRadio
	default:
		return RoleMenuItem
	}
}

// Node is the live state of a menu or option.
type Node struct {
	ID         NodeID
	Role       Role
	Title      string
	Hotkey     string
	Kind       menu.Kind
	Parent     NodeID
	Children   []NodeID
	Expanded   bool
	Checked    bool
	HasChecked bool
	TabIndex   int

	option menu.Option
	isMenu bool
}

// IsMenu reports whether the node is a top-level menu.
func (n Node) IsMenu() bool {
	return n.isMenu
}

// CanExpand reports whether the node opens a popup.
func (n Node) CanExpand() bool {
	return n.isMenu || len(n.Children) > 0
}

// Option returns the originating option; ok is false for top-level menus.
func (n Node) Option() (menu.Option, bool) {
	if n.isMenu {
		return menu.Option{}, false
	}
	return n.option, true
}

// Bar owns the rendered tree of a single menu bar.
type Bar struct {
	Title string

	nodes    []Node
	menus    []NodeID
	roving   NodeID
	registry *menu.Registry
}

func (b *Bar) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(b.nodes)
}

// Len returns the number of nodes in the arena.
func (b *Bar) Len() int {
	return len(b.nodes)
}

// Node returns a copy of the node state.
func (b *Bar) Node(id NodeID) (Node, bool) {
	if !b.valid(id) {
		return Node{}, false
	}
	n := b.nodes[id]
	n.Children = append([]NodeID(nil), n.Children...)
	return n, true
}

// Menus lists the top-level menus in display order.
func (b *Bar) Menus() []NodeID {
	return append([]NodeID(nil), b.menus...)
}

// Roving returns the node currently holding tab index 0.
func (b *Bar) Roving() NodeID {
	return b.roving
}

// Parent returns the parent of id, or NoNode for top-level menus.
func (b *Bar) Parent(id NodeID) NodeID {
	if !b.valid(id) {
		return NoNode
	}
	return b.nodes[id].Parent
}

// Children returns the direct children of id.
func (b *Bar) Children(id NodeID) []NodeID {
	if !b.valid(id) {
		return nil
	}
	return append([]NodeID(nil), b.nodes[id].Children...)
}

// Siblings returns the sibling set of id including id itself: the top-level
// menus for a menu, the parent's children otherwise.
func (b *Bar) Siblings(id NodeID) []NodeID {
	return append([]NodeID(nil), b.siblings(id)...)
}

func (b *Bar) siblings(id NodeID) []NodeID {
	if !b.valid(id) {
		return nil
	}
	parent := b.nodes[id].Parent
	if parent == NoNode {
		return b.menus
	}
	return b.nodes[parent].Children
}

// TopMenu returns the top-level menu enclosing id.
func (b *Bar) TopMenu(id NodeID) NodeID {
	if !b.valid(id) {
		return NoNode
	}
	for b.nodes[id].Parent != NoNode {
		id = b.nodes[id].Parent
	}
	return id
}

// Contains reports whether id lies in the subtree rooted at ancestor,
// ancestor included.
func (b *Bar) Contains(ancestor, id NodeID) bool {
	if !b.valid(ancestor) || !b.valid(id) {
		return false
	}
	for id != NoNode {
		if id == ancestor {
			return true
		}
		id = b.nodes[id].Parent
	}
	return false
}

// Expanded lists every expanded node in arena order.
func (b *Bar) Expanded() []NodeID {
	var out []NodeID
	for _, n := range b.nodes {
		if n.Expanded {
			out = append(out, n.ID)
		}
	}
	return out
}

// OpenChain returns the path of expanded nodes from the open top-level menu
// down to the deepest open submenu.
func (b *Bar) OpenChain() []NodeID {
	var chain []NodeID
	level := b.menus
	for {
		next := NoNode
		for _, id := range level {
			if b.nodes[id].Expanded {
				next = id
				break
			}
		}
		if next == NoNode {
			return chain
		}
		chain = append(chain, next)
		level = b.nodes[next].Children
	}
}

func (b *Bar) indexOf(id NodeID, set []NodeID) int {
	for i, candidate := range set {
		if candidate == id {
			return i
		}
	}
	return -1
}
