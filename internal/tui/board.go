package tui

import (
	"fmt"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"triage-cli/internal/drag"
	"triage-cli/internal/layout"
	"triage-cli/internal/logging"
	"triage-cli/internal/model"
	"triage-cli/internal/store"
)

type rowKind int

const (
	rowListHeader rowKind = iota
	rowItem
	rowEndSlot
	rowSpacer
)

// boardRow is one line of board content, before scrolling is applied.
type boardRow struct {
	kind      rowKind
	listID    string
	item      model.Item // rowItem only
	count     int        // rowListHeader only
	collapsed bool       // rowListHeader only
}

// buildBoardRows flattens the board into its line layout: per list a header,
// the item rows (unless collapsed), and a trailing end-of-list drop row that
// doubles as the drop zone for empty lists. The dragged item's row is left
// out so the list closes the gap under the ghost.
func buildBoardRows(b *store.Board, collapsed map[string]bool, draggingItemID string) []boardRow {
	rows := make([]boardRow, 0, len(b.Items)+4*len(b.Lists))
	for _, l := range b.Lists {
		items := model.ItemsInList(b.Items, l.ID)
		rows = append(rows, boardRow{
			kind: rowListHeader, listID: l.ID,
			count: len(items), collapsed: collapsed[l.ID],
		})
		if !collapsed[l.ID] {
			for _, it := range items {
				if it.ID == draggingItemID {
					continue
				}
				rows = append(rows, boardRow{kind: rowItem, listID: l.ID, item: it})
			}
			rows = append(rows, boardRow{kind: rowEndSlot, listID: l.ID})
		}
		rows = append(rows, boardRow{kind: rowSpacer, listID: l.ID})
	}
	return rows
}

// registerLayout records the current row layout into the registry. This is
// the layout pass of the system: it runs whenever content, collapse state, or
// geometry changed, and stamps every entry with the scroll offset it was
// measured at so the hit-tester can correct for later scrolling.
func registerLayout(reg *layout.Registry, rows []boardRow, boardTop, scrollOffset int) {
	listStart := -1
	listID := ""
	flush := func(end int) {
		if listID == "" || listStart < 0 {
			return
		}
		reg.RecordList(layout.ListEntry{
			ListID:       listID,
			Y:            boardTop + listStart - scrollOffset,
			Height:       end - listStart,
			ScrollOffset: scrollOffset,
		})
	}
	for i, r := range rows {
		switch r.kind {
		case rowListHeader:
			flush(i)
			if r.collapsed {
				// A zero-height span overwrites any earlier droppable one, so
				// collapsing a list removes it as a drop target.
				reg.RecordList(layout.ListEntry{
					ListID:       r.listID,
					Y:            boardTop + i - scrollOffset,
					Height:       0,
					ScrollOffset: scrollOffset,
				})
				listStart = -1
				listID = ""
				continue
			}
			listStart = i
			listID = r.listID
		case rowItem:
			reg.RecordItem(layout.ItemEntry{
				ItemID:       r.item.ID,
				ListID:       r.listID,
				Y:            boardTop + i - scrollOffset,
				Height:       1,
				Order:        r.item.Order,
				ScrollOffset: scrollOffset,
			})
		case rowSpacer:
			// The spacer sits outside the list's droppable span.
			flush(i)
			listStart = -1
			listID = ""
		}
	}
	flush(len(rows))
}

// renderBoardRow renders one content line at the given width.
func (m *appModel) renderBoardRow(r boardRow, width int) string {
	switch r.kind {
	case rowListHeader:
		l, _ := model.FindList(m.board.Lists, r.listID)
		chevron := "▾"
		if m.collapsed[r.listID] {
			chevron = "▸"
		}
		head := fmt.Sprintf("%s %s %s (%d)", chevron, l.Icon, l.Name, r.count)
		return styleListHeader.Width(width).Render(truncate(head, width))

	case rowItem:
		selected := !m.session.Active() && r.item.ID == m.selItemID
		targeted := m.session.Dragging() && m.session.TargetSlot.BeforeItemID == r.item.ID

		text := "  • " + r.item.Title
		if meta := itemMeta(r.item); meta != "" {
			text += "  " + styleMeta.Render(meta)
		}
		switch {
		case targeted:
			return styleIndicator.Render("▸ ") + truncate(text, width-2)
		case selected:
			return styleSelected.Width(width).Render(truncate(text, width))
		default:
			return styleItem.Render(truncate(text, width))
		}

	case rowEndSlot:
		targeted := m.session.Dragging() &&
			m.session.TargetSlot.IsEnd() && m.session.TargetSlot.ListID == r.listID
		if targeted {
			return styleIndicator.Render("▸ " + strings.Repeat("┄", max(0, width-4)))
		}
		if m.session.Dragging() {
			return styleMuted().Render("  " + strings.Repeat("┄", max(0, width-4)))
		}
		return ""

	default:
		return ""
	}
}

func itemMeta(it model.Item) string {
	parts := make([]string, 0, 2)
	if it.ScheduledAt != nil {
		parts = append(parts, *it.ScheduledAt)
	}
	if it.TimeSlot != model.TimeSlotNone {
		parts = append(parts, string(it.TimeSlot))
	}
	return strings.Join(parts, " · ")
}

// renderBoard renders the visible viewport and overlays the ghost row.
func (m *appModel) renderBoard() string {
	vp := m.scroll.Viewport()
	offset := m.scroll.Offset()

	lines := make([]string, vp.Height)
	for i := 0; i < vp.Height; i++ {
		idx := offset + i
		if idx >= 0 && idx < len(m.rows) {
			lines[i] = m.renderBoardRow(m.rows[idx], m.width)
		}
	}

	if m.session.Active() {
		m.overlayGhost(lines, vp)
	}
	return strings.Join(lines, "\n")
}

// overlayGhost paints the floating proxy for the dragged item over the
// rendered viewport, mirroring the session's ghost rectangle.
func (m *appModel) overlayGhost(lines []string, vp drag.Viewport) {
	it, ok := model.FindItem(m.board.Items, m.session.ItemID)
	if !ok {
		logging.Debug().Str("item", m.session.ItemID).Msg("ghost for unknown item")
		return
	}
	row := m.session.GhostY - vp.Top
	if row < 0 {
		row = 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
	}
	if row < 0 {
		return
	}

	indent := m.session.GhostX
	if indent < 0 {
		indent = 0
	}
	if indent > 8 {
		indent = 8
	}
	ghost := styleGhost.Render(" ≡ " + it.Title + " ")
	lines[row] = strings.Repeat(" ", indent) + truncate(ghost, m.width-indent)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	return xansi.Truncate(s, width-1, "…")
}
