package menubar

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// Attribute names exposed for every node, in render order.
const (
	AttrRole     = "role"
	AttrHasPopup = "aria-haspopup"
	AttrExpanded = "aria-expanded"
	AttrChecked  = "aria-checked"
	AttrTabIndex = "tabindex"
	AttrHotkey   = "data-hotkey"
)

var attrOrder = []string{AttrRole, AttrHasPopup, AttrExpanded, AttrChecked, AttrTabIndex, AttrHotkey}

// AttributeNames lists every attribute name in render order.
func AttributeNames() []string {
	return append([]string(nil), attrOrder...)
}

// Attributes returns the declarative attribute surface of id. aria-expanded
// appears only on nodes that can open, aria-checked only on checkbox and
// radio items.
func (b *Bar) Attributes(id NodeID) map[string]string {
	if !b.valid(id) {
		return nil
	}
	n := b.nodes[id]
	attrs := map[string]string{
		AttrRole:     string(n.Role),
		AttrHasPopup: strconv.FormatBool(n.CanExpand()),
		AttrTabIndex: strconv.Itoa(n.TabIndex),
		AttrHotkey:   n.Hotkey,
	}
	if n.CanExpand() {
		attrs[AttrExpanded] = strconv.FormatBool(n.Expanded)
	}
	if n.HasChecked {
		attrs[AttrChecked] = strconv.FormatBool(n.Checked)
	}
	return attrs
}

// Markup dumps the tree as indented elements carrying the attribute
// surface, one element per line.
func (b *Bar) Markup() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<div class=\"menuBar\" aria-label=\"%s\">\n", html.EscapeString(b.Title))
	for _, id := range b.menus {
		b.writeMarkup(&sb, id, 1)
	}
	sb.WriteString("</div>\n")
	return sb.String()
}

func (b *Bar) writeMarkup(sb *strings.Builder, id NodeID, depth int) {
	indent := strings.Repeat("  ", depth)
	attrs := b.Attributes(id)
	sb.WriteString(indent)
	sb.WriteString("<div")
	for _, name := range attrOrder {
		if value, ok := attrs[name]; ok {
			fmt.Fprintf(sb, " %s=\"%s\"", name, html.EscapeString(value))
		}
	}
	sb.WriteString(">")
	sb.WriteString(html.EscapeString(b.nodes[id].Title))
	kids := b.nodes[id].Children
	if len(kids) == 0 {
		sb.WriteString("</div>\n")
		return
	}
	sb.WriteString("\n")
	for _, child := range kids {
		b.writeMarkup(sb, child, depth+1)
	}
	sb.WriteString(indent)
	sb.WriteString("</div>\n")
}
