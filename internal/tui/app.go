package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"triage-cli/internal/drag"
	"triage-cli/internal/layout"
	"triage-cli/internal/model"
	"triage-cli/internal/mutate"
	"triage-cli/internal/store"
)

type mode int

const (
	modeBoard mode = iota
	modeAdd
	modeSchedule
	modeDetail
)

// boardTop is the screen row where the scrollable board viewport starts
// (row 0 is the title bar).
const boardTop = 1

// footerRows is the status line plus the help line.
const footerRows = 2

type boardMsg struct{ board store.Board }
type sessionMsg struct{}
type pendingMsg struct{ req mutate.DropRequest }
type externalChangeMsg struct{}
type flashExpireMsg struct{ at time.Time }

type appModel struct {
	st     store.Store
	board  *store.Board
	reg    *layout.Registry
	scroll *drag.ScrollState
	eng    *drag.Engine
	ctrl   *controller

	width, height int
	session       drag.State
	rows          []boardRow
	collapsed     map[string]bool
	selItemID     string

	mode  mode
	add   addForm
	sched scheduleForm
	// detailID is the item shown in the detail pane.
	detailID string

	flash     string
	flashWarn bool
	flashAt   time.Time
}

func newAppModel(s store.Store, b *store.Board, reg *layout.Registry, scroll *drag.ScrollState, eng *drag.Engine, ctrl *controller) appModel {
	// The controller goroutine owns and mutates its board; the model reads
	// its own copy and swaps it out wholesale on each published snapshot.
	return appModel{
		st:        s,
		board:     b.Clone(),
		reg:       reg,
		scroll:    scroll,
		eng:       eng,
		ctrl:      ctrl,
		collapsed: map[string]bool{},
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncLayout()
		return m, nil

	case boardMsg:
		b := msg.board
		m.board = &b
		m.syncLayout()
		return m, nil

	case sessionMsg:
		prevActive := m.session.Active()
		m.session = m.eng.Session().Load()
		if prevActive != m.session.Active() {
			// The dragged item's row appears/disappears: full layout pass.
			m.syncLayout()
		} else {
			m.registerLayoutOnly()
		}
		return m, nil

	case pendingMsg:
		it, _ := model.FindItem(m.board.Items, msg.req.ItemID)
		m.sched = newScheduleForm(it.Title)
		m.mode = modeSchedule
		return m, nil

	case externalChangeMsg:
		// Don't yank the board out from under an active drag or open form.
		if m.mode == modeBoard && !m.session.Active() {
			m.ctrl.Reload()
		}
		return m, nil

	case feedbackMsg:
		return m.applyFeedback(msg)

	case flashExpireMsg:
		if msg.at.Equal(m.flashAt) {
			m.flash = ""
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m appModel) applyFeedback(msg feedbackMsg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case feedbackPickup:
		m.setFlash("dragging — release on a slot, esc cancels", false)
	case feedbackSlotChanged:
		return m, nil // the indicator itself is the cue
	case feedbackDropSuccess:
		m.setFlash("moved", false)
	case feedbackDropRejected:
		m.setFlash("no drop target there", true)
	}
	at := m.flashAt
	return m, tea.Tick(1500*time.Millisecond, func(time.Time) tea.Msg {
		return flashExpireMsg{at: at}
	})
}

func (m *appModel) setFlash(text string, warn bool) {
	m.flash = text
	m.flashWarn = warn
	m.flashAt = time.Now()
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAdd:
		done, submitted, cmd := m.add.update(msg)
		if done {
			if submitted {
				listID := m.add.listID
				title := m.add.title.Value()
				desc := m.add.desc.Value()
				m.ctrl.Do(func(b *store.Board) bool {
					_, err := store.AddItem(b, listID, title, desc, time.Now().UTC())
					return err == nil
				})
			}
			m.mode = modeBoard
		}
		return m, cmd

	case modeSchedule:
		done, confirmed, cmd := m.sched.update(msg)
		if done {
			if confirmed {
				m.ctrl.ConfirmPending(m.sched.patch())
			} else {
				m.ctrl.CancelPending()
				m.setFlash("drop cancelled", false)
			}
			m.mode = modeBoard
		}
		return m, cmd

	case modeDetail:
		switch msg.String() {
		case "esc", "enter", "q":
			m.mode = modeBoard
		}
		return m, nil
	}

	// Board mode.
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		if m.session.Active() {
			m.eng.Pointer(drag.PointerEvent{Kind: drag.PointerCancel})
		}
		return m, nil
	case "j", "down":
		m.moveSelection(1)
		return m, nil
	case "k", "up":
		m.moveSelection(-1)
		return m, nil
	case "pgdown", "ctrl+d":
		m.scrollBy(5)
		return m, nil
	case "pgup", "ctrl+u":
		m.scrollBy(-5)
		return m, nil
	case "c":
		if listID := m.selectedListID(); listID != "" {
			m.collapsed[listID] = !m.collapsed[listID]
			m.syncLayout()
		}
		return m, nil
	case "a":
		listID := m.selectedListID()
		if listID == "" && len(m.board.Lists) > 0 {
			listID = m.board.Lists[0].ID
		}
		if listID != "" {
			m.add = newAddForm(listID)
			m.mode = modeAdd
		}
		return m, nil
	case "enter":
		if m.selItemID != "" {
			m.detailID = m.selItemID
			m.mode = modeDetail
		}
		return m, nil
	case "x":
		if id := m.selItemID; id != "" {
			m.ctrl.Do(func(b *store.Board) bool { return store.DeleteItem(b, id) })
			m.selItemID = ""
		}
		return m, nil
	case "r":
		m.ctrl.Reload()
		return m, nil
	}
	return m, nil
}

// visibleItemIDs lists item rows in board order (what j/k walk over).
func (m *appModel) visibleItemIDs() []string {
	out := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		if r.kind == rowItem {
			out = append(out, r.item.ID)
		}
	}
	return out
}

func (m *appModel) moveSelection(delta int) {
	ids := m.visibleItemIDs()
	if len(ids) == 0 {
		m.selItemID = ""
		return
	}
	cur := -1
	for i, id := range ids {
		if id == m.selItemID {
			cur = i
			break
		}
	}
	next := cur + delta
	if cur < 0 {
		next = 0
		if delta < 0 {
			next = len(ids) - 1
		}
	}
	if next < 0 {
		next = 0
	}
	if next >= len(ids) {
		next = len(ids) - 1
	}
	m.selItemID = ids[next]
	m.scrollSelectionIntoView()
}

func (m *appModel) scrollSelectionIntoView() {
	for i, r := range m.rows {
		if r.kind == rowItem && r.item.ID == m.selItemID {
			vp := m.scroll.Viewport()
			offset := m.scroll.Offset()
			if i < offset {
				m.scroll.SetOffset(i)
				m.registerLayoutOnly()
			} else if i >= offset+vp.Height {
				m.scroll.SetOffset(i - vp.Height + 1)
				m.registerLayoutOnly()
			}
			return
		}
	}
}

func (m *appModel) selectedListID() string {
	if m.selItemID != "" {
		if it, ok := model.FindItem(m.board.Items, m.selItemID); ok {
			return it.ListID
		}
	}
	if len(m.board.Lists) > 0 {
		return m.board.Lists[0].ID
	}
	return ""
}

func (m *appModel) scrollBy(delta int) {
	if !m.scroll.NativeEnabled() {
		return
	}
	m.scroll.SetOffset(m.scroll.Offset() + delta)
	m.registerLayoutOnly()
}

// syncLayout rebuilds the row layout and re-records it in the registry: the
// system's "layout event". Runs on every content, collapse, drag-visibility,
// or geometry change.
func (m *appModel) syncLayout() {
	dragging := ""
	if m.session.Active() {
		dragging = m.session.ItemID
	}
	m.rows = buildBoardRows(m.board, m.collapsed, dragging)

	vpHeight := m.height - boardTop - footerRows
	if vpHeight < 0 {
		vpHeight = 0
	}
	m.scroll.SetGeometry(drag.Viewport{Top: boardTop, Height: vpHeight}, len(m.rows))
	m.registerLayoutOnly()
}

// registerLayoutOnly re-records the existing rows at the current scroll
// offset without rebuilding them (pure scroll moves).
func (m *appModel) registerLayoutOnly() {
	registerLayout(m.reg, m.rows, boardTop, m.scroll.Offset())
}

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := styleListHeader.Width(m.width).Render(" triage — " + m.st.Dir)

	var body string
	switch m.mode {
	case modeAdd:
		body = m.add.view(m.width)
	case modeSchedule:
		body = m.sched.view(m.width)
	case modeDetail:
		body = m.renderDetail()
	default:
		body = m.renderBoard()
	}
	body = padToHeight(body, m.height-boardTop-footerRows)

	status := " "
	if m.flash != "" {
		if m.flashWarn {
			status = styleWarn.Render(" " + m.flash)
		} else {
			status = styleFlash.Render(" " + m.flash)
		}
	}
	help := styleMuted().Render(" hold+drag move · j/k select · enter detail · a add · c collapse · x delete · q quit")

	return title + "\n" + body + "\n" + status + "\n" + help
}

func (m *appModel) renderDetail() string {
	it, ok := model.FindItem(m.board.Items, m.detailID)
	if !ok {
		return styleMuted().Render("  (item gone)")
	}
	var b strings.Builder
	b.WriteString("  " + styleSelected.Render(" "+it.Title+" "))
	if meta := itemMeta(it); meta != "" {
		b.WriteString("  " + styleMeta.Render(meta))
	}
	b.WriteString("\n\n")
	if it.Description == "" {
		b.WriteString(styleMuted().Render("  no description"))
	} else {
		b.WriteString(renderMarkdown(it.Description, m.width-4))
	}
	return b.String()
}

func padToHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
