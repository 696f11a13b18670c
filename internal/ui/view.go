package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/menubar/internal/format/table"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/menubar"
)

// hitBox maps a screen cell range on row y to a bar node or the content
// region. x1 is exclusive.
type hitBox struct {
	y       int
	x0, x1  int
	node    menubar.NodeID
	content bool
}

type frame struct {
	lines []string
	hits  []hitBox
}

// View implements tea.Model.
func (m *Model) View() string {
	return strings.Join(m.layout().lines, "\n")
}

func (m *Model) layout() frame {
	var f frame
	menuX := m.layoutBar(&f)
	m.layoutDropdowns(&f, menuX)
	m.layoutContent(&f)

	if m.errMsg != "" {
		f.lines = append(f.lines, styles.Error.Render(fmt.Sprintf("Error: %s", m.errMsg)))
	} else if info := m.currentInfo(); info != "" {
		f.lines = append(f.lines, styles.Info.Render(info))
	}
	if m.showFooter {
		f.lines = append(f.lines, m.help.View(m.keys))
	}
	total := len(f.lines)
	f.lines = limitHeight(f.lines, m.height, m.width)
	visible := len(f.lines)
	if visible < total {
		// the last row is the overflow marker
		visible--
	}
	f.hits = clipHits(f.hits, f.lines, visible, m.width)
	f.lines = applyWidth(f.lines, m.width)
	return f
}

// layoutBar renders the bar row and returns the x offset of every menu.
func (m *Model) layoutBar(f *frame) map[menubar.NodeID]int {
	var sb strings.Builder
	title := styles.BarTitle.Render(" " + m.bar.Title + " ")
	sb.WriteString(title)
	x := lipgloss.Width(title)
	menuX := make(map[menubar.NodeID]int)
	for _, id := range m.bar.Menus() {
		n, _ := m.bar.Node(id)
		style := styles.Menu
		switch {
		case m.owner == OwnerBar && m.bar.Roving() == id:
			style = styles.MenuFocused
		case n.Expanded:
			style = styles.MenuOpen
		}
		cell := style.Render(n.Title)
		w := lipgloss.Width(cell)
		menuX[id] = x
		f.hits = append(f.hits, hitBox{y: 0, x0: x, x1: x + w, node: id})
		sb.WriteString(cell)
		x += w
	}
	if m.width > x {
		sb.WriteString(styles.Bar.Render(strings.Repeat(" ", m.width-x)))
	}
	f.lines = append(f.lines, sb.String())
	return menuX
}

type column struct {
	x     int
	top   int
	width int
	cells []string
	ids   []menubar.NodeID
}

// layoutDropdowns renders the open chain as adjacent columns below the
// open menu. Each submenu column starts on the row of its carrier.
func (m *Model) layoutDropdowns(f *frame, menuX map[menubar.NodeID]int) {
	chain := m.bar.OpenChain()
	if len(chain) == 0 {
		return
	}
	cols := make([]column, 0, len(chain))
	x, top, rows := menuX[chain[0]], 0, 0
	for depth, parent := range chain {
		if depth > 0 {
			for row, id := range m.bar.Children(chain[depth-1]) {
				if id == parent {
					top += row
					break
				}
			}
		}
		col := column{x: x, top: top}
		kids := m.bar.Children(parent)
		labels := make([]string, len(kids))
		for i, id := range kids {
			n, _ := m.bar.Node(id)
			labels[i] = optionLabel(n)
			if w := lipgloss.Width(labels[i]); w > col.width {
				col.width = w
			}
		}
		if len(kids) == 0 {
			labels = []string{"(empty)"}
			col.width = lipgloss.Width(labels[0])
		}
		col.width += 2
		for i, label := range labels {
			style := styles.Option
			id := menubar.NoNode
			if i < len(kids) {
				id = kids[i]
				if m.owner == OwnerBar && m.bar.Roving() == id {
					style = styles.OptionFocused
				}
			} else {
				style = styles.Hotkey
			}
			col.cells = append(col.cells, style.Width(col.width).Render(" "+label))
			col.ids = append(col.ids, id)
		}
		if end := col.top + len(col.cells); end > rows {
			rows = end
		}
		cols = append(cols, col)
		x += col.width
	}

	first := len(f.lines)
	for r := 0; r < rows; r++ {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", cols[0].x))
		for _, col := range cols {
			idx := r - col.top
			if idx < 0 || idx >= len(col.cells) {
				sb.WriteString(styles.Dropdown.Render(strings.Repeat(" ", col.width)))
				continue
			}
			sb.WriteString(col.cells[idx])
			if col.ids[idx] != menubar.NoNode {
				f.hits = append(f.hits, hitBox{y: first + r, x0: col.x, x1: col.x + col.width, node: col.ids[idx]})
			}
		}
		f.lines = append(f.lines, strings.TrimRight(sb.String(), " "))
	}
}

func optionLabel(n menubar.Node) string {
	marker := "    "
	switch n.Kind {
	case menu.KindToggle:
		marker = "[ ] "
		if n.Checked {
			marker = "[x] "
		}
	case menu.KindChoice:
		marker = "( ) "
		if n.Checked {
			marker = "(•) "
		}
	}
	label := marker + n.Title
	if n.CanExpand() {
		label += " ▸"
	}
	return label
}

func (m *Model) layoutContent(f *frame) {
	body := []string{"Document"}
	if len(m.history) == 0 {
		body = append(body, "(nothing activated yet)")
	} else {
		body = append(body, m.history...)
	}
	if m.owner == OwnerBar {
		body = append(body, "")
		body = append(body, m.inspect(m.bar.Roving())...)
	}
	style := styles.Content
	if m.owner == OwnerContent {
		style = styles.ContentActive
	}
	if m.width > 2 {
		style = ptrStyle(style.Width(m.width - 2))
	}
	box := strings.Split(style.Render(strings.Join(body, "\n")), "\n")
	top := len(f.lines)
	for i := range box {
		f.hits = append(f.hits, hitBox{y: top + i, x0: 0, x1: lipgloss.Width(box[i]), content: true})
	}
	f.lines = append(f.lines, box...)
}

// inspect lists the attribute surface of id as an aligned table.
func (m *Model) inspect(id menubar.NodeID) []string {
	n, ok := m.bar.Node(id)
	if !ok {
		return nil
	}
	attrs := m.bar.Attributes(id)
	rows := [][]string{{"focused", n.Title}}
	for _, name := range menubar.AttributeNames() {
		if value, ok := attrs[name]; ok {
			rows = append(rows, []string{name, value})
		}
	}
	return table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft})
}

func ptrStyle(s lipgloss.Style) *lipgloss.Style {
	return &s
}

// handleMouseMsg routes left clicks: bar cells click the node, anything
// else moves focus out of the bar.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return nil
	}
	for _, hit := range m.layout().hits {
		if hit.content || hit.y != ev.Y || ev.X < hit.x0 || ev.X >= hit.x1 {
			continue
		}
		m.setOwner(OwnerBar)
		res := m.bar.Click(hit.node)
		m.recorder.Key("click", res.Handled)
		return m.afterBarResult(hit.node, res)
	}
	switch m.owner {
	case OwnerBar:
		return m.blurBar(OwnerContent)
	case OwnerNone:
		m.setOwner(OwnerContent)
	}
	return nil
}

// clipHits drops hit boxes on rows past visible and trims those running
// into the tail of a row that applyWidth will truncate.
func clipHits(hits []hitBox, lines []string, visible, width int) []hitBox {
	kept := hits[:0]
	for _, hit := range hits {
		if hit.y >= visible {
			continue
		}
		if width > 0 && lipgloss.Width(lines[hit.y]) > width {
			if limit := width - 1; hit.x1 > limit {
				hit.x1 = limit
			}
		}
		if hit.x0 >= hit.x1 {
			continue
		}
		kept = append(kept, hit)
	}
	return kept
}

func limitHeight(lines []string, height, width int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []string{truncateText("…", width)}
	}
	trimmed := make([]string, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, truncateText("…", width))
	return trimmed
}

func applyWidth(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	result := make([]string, len(lines))
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			line = truncate.StringWithTail(line, uint(width), "…")
		}
		result[i] = line
	}
	return result
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
