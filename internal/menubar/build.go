package menubar

import (
	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/menu"
)

// Build validates spec and produces the rendered tree. The first menu holds
// the roving tab stop; everything starts closed. Callbacks are resolved
// against registry at activation time, so registry may be populated later
// or be nil.
func Build(spec menu.Spec, registry *menu.Registry) (*Bar, error) {
	if err := menu.Validate(spec); err != nil {
		return nil, err
	}
	b := &Bar{
		Title:    spec.Title,
		roving:   NoNode,
		registry: registry,
	}
	for i, m := range spec.Menus {
		id := b.reserve()
		children := b.buildOptions(id, m.Options)
		tabIndex := -1
		if i == 0 {
			tabIndex = 0
			b.roving = id
		}
		b.nodes[id] = Node{
			ID:       id,
			Role:     RoleMenu,
			Title:    m.Title,
			Hotkey:   m.Hotkey,
			Parent:   NoNode,
			Children: children,
			TabIndex: tabIndex,
			isMenu:   true,
		}
		b.menus = append(b.menus, id)
	}
	events.Menu.Build(b.Title, len(b.nodes), len(b.menus))
	return b, nil
}

// reserve appends a placeholder so parents are numbered before children.
func (b *Bar) reserve() NodeID {
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{ID: id})
	return id
}

func (b *Bar) buildOptions(parent NodeID, options []menu.Option) []NodeID {
	if len(options) == 0 {
		return nil
	}
	ids := make([]NodeID, 0, len(options))
	for _, opt := range options {
		id := b.reserve()
		children := b.buildOptions(id, opt.Options)
		kind := opt.Kind()
		n := Node{
			ID:       id,
			Role:     roleForKind(kind),
			Title:    opt.Title,
			Hotkey:   opt.Hotkey,
			Kind:     kind,
			Parent:   parent,
			Children: children,
			TabIndex: -1,
			option:   opt,
		}
		switch kind {
		case menu.KindToggle:
			n.HasChecked = true
			n.Checked = *opt.Checked
		case menu.KindChoice:
			n.HasChecked = true
			n.Checked = *opt.Selected
		}
		b.nodes[id] = n
		ids = append(ids, id)
	}
	return ids
}
