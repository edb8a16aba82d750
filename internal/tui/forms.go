package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"triage-cli/internal/model"
)

// addForm collects a title and optional description for a new item.
type addForm struct {
	listID string
	title  textinput.Model
	desc   textinput.Model
	focus  int // 0=title 1=desc
	errMsg string
}

func newAddForm(listID string) addForm {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "Description (markdown, optional)"
	desc.CharLimit = 2000

	return addForm{listID: listID, title: title, desc: desc}
}

// update returns (done, submitted). On submit the caller reads Title/Desc.
func (f *addForm) update(msg tea.Msg) (bool, bool, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return true, false, nil
		case "tab", "shift+tab":
			f.focus = 1 - f.focus
			if f.focus == 0 {
				f.title.Focus()
				f.desc.Blur()
			} else {
				f.title.Blur()
				f.desc.Focus()
			}
			return false, false, nil
		case "enter":
			if strings.TrimSpace(f.title.Value()) == "" {
				f.errMsg = "title required"
				return false, false, nil
			}
			return true, true, nil
		}
	}
	var cmd tea.Cmd
	if f.focus == 0 {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.desc, cmd = f.desc.Update(msg)
	}
	return false, false, cmd
}

func (f addForm) view(width int) string {
	var b strings.Builder
	b.WriteString(styleListHeader.Width(width).Render(" New item → " + f.listID))
	b.WriteString("\n\n  " + f.title.View())
	b.WriteString("\n  " + f.desc.View())
	if f.errMsg != "" {
		b.WriteString("\n\n  " + styleWarn.Render(f.errMsg))
	}
	b.WriteString("\n\n  " + styleMuted().Render("enter save · tab switch field · esc cancel"))
	return b.String()
}

// scheduleForm collects the time and time-of-day bucket a pending drop into
// Today is waiting on.
type scheduleForm struct {
	itemTitle string
	timeInput textinput.Model
	slotIdx   int
	errMsg    string
}

func newScheduleForm(itemTitle string) scheduleForm {
	ti := textinput.New()
	ti.Placeholder = "HH:MM"
	ti.CharLimit = 5
	ti.Width = 7
	ti.Focus()
	return scheduleForm{itemTitle: itemTitle, timeInput: ti}
}

// update returns (done, confirmed). A done-without-confirm is a cancellation.
func (f *scheduleForm) update(msg tea.Msg) (bool, bool, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return true, false, nil
		case "left", "shift+tab":
			f.slotIdx = (f.slotIdx + len(model.TimeSlots) - 1) % len(model.TimeSlots)
			return false, false, nil
		case "right", "tab":
			f.slotIdx = (f.slotIdx + 1) % len(model.TimeSlots)
			return false, false, nil
		case "enter":
			if _, err := time.Parse("15:04", strings.TrimSpace(f.timeInput.Value())); err != nil {
				f.errMsg = "time must be HH:MM"
				return false, false, nil
			}
			return true, true, nil
		}
	}
	var cmd tea.Cmd
	f.timeInput, cmd = f.timeInput.Update(msg)
	return false, false, cmd
}

// patch builds the extra data merged into the pending drop's commit.
func (f scheduleForm) patch() *model.ItemPatch {
	t := strings.TrimSpace(f.timeInput.Value())
	slot := model.TimeSlots[f.slotIdx]
	return &model.ItemPatch{ScheduledAt: &t, TimeSlot: &slot}
}

func (f scheduleForm) view(width int) string {
	slots := make([]string, len(model.TimeSlots))
	for i, s := range model.TimeSlots {
		label := " " + string(s) + " "
		if i == f.slotIdx {
			slots[i] = styleSelected.Render(label)
		} else {
			slots[i] = styleMuted().Render(label)
		}
	}

	var b strings.Builder
	b.WriteString(styleListHeader.Width(width).Render(" Schedule for Today"))
	b.WriteString("\n\n  " + truncate(f.itemTitle, width-4))
	b.WriteString("\n\n  Time: " + f.timeInput.View())
	b.WriteString("\n  Slot: " + lipgloss.JoinHorizontal(lipgloss.Top, slots...))
	if f.errMsg != "" {
		b.WriteString("\n\n  " + styleWarn.Render(f.errMsg))
	}
	b.WriteString("\n\n  " + styleMuted().Render("enter confirm · ←/→ slot · esc cancel (no move)"))
	return b.String()
}
