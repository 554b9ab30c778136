package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/slotlog/internal/duration"
	"github.com/verte-zerg/slotlog/internal/model"
)

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != m.confirmKey {
		m.confirmKey = ""
	}
	switch key {
	case "q":
		if m.needsConfirm(key, "quit") {
			return m, nil
		}
		return m, tea.Quit
	case "left", "h":
		m.moveTab(-1)
		return m, tea.ClearScreen
	case "right", "l", "tab":
		m.moveTab(1)
		return m, tea.ClearScreen
	case "[", "]":
		if m.needsConfirm(key, "discard them") {
			return m, nil
		}
		discarded := m.session.Dirty()
		if key == "[" {
			m.session.Prev()
		} else {
			m.session.Next()
		}
		m.afterNavigate()
		if discarded {
			m.setStatus("Unsaved edits discarded")
		}
		return m, nil
	case "s":
		if err := m.session.Save(m.ctx); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Saved %s", m.session.DateKey()))
		m.refresh()
		return m, nil
	case "t":
		if err := m.session.SaveAsTemplate(m.ctx); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Saved current slots as template")
		return m, nil
	}

	if m.activeTab != tabDaily {
		vp := m.viewports[m.activeTab]
		var cmd tea.Cmd
		vp, cmd = vp.Update(msg)
		m.viewports[m.activeTab] = vp
		return m, cmd
	}

	switch key {
	case "e":
		if slot, ok := m.selectedSlot(); ok {
			m.editID = slot.ID
			return m, m.startInput(inputStudied, "Studied (HH:MM[:SS]): ", duration.Format(slot.StudiedSeconds))
		}
		return m, nil
	case "n":
		if slot, ok := m.selectedSlot(); ok {
			m.editID = slot.ID
			return m, m.startInput(inputNote, "Note: ", slot.Note)
		}
		return m, nil
	case "a":
		return m, m.startInput(inputAddLabel, "Label: ", "")
	case "d":
		if slot, ok := m.selectedSlot(); ok {
			if err := m.session.RemoveSlot(slot.ID); err != nil {
				m.setError(err)
				return m, nil
			}
			m.setStatus(fmt.Sprintf("Removed %s", slot.Label))
			m.refresh()
		}
		return m, nil
	case "r":
		m.session.ResetToTemplate()
		m.setStatus("Reset slots from template")
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.slots, cmd = m.slots.Update(msg)
	return m, cmd
}

// needsConfirm arms a second-press confirmation for key while the working
// day has unsaved edits. It reports false once the key is pressed again.
func (m *Model) needsConfirm(key, action string) bool {
	if !m.session.Dirty() || m.confirmKey == key {
		m.confirmKey = ""
		return false
	}
	m.confirmKey = key
	m.errMsg = fmt.Sprintf("Unsaved changes. Press s to save or %s again to %s.", key, action)
	return true
}

func (m *Model) afterNavigate() {
	m.slots.SetCursor(0)
	m.status = ""
	m.errMsg = ""
	m.refresh()
}

func (m *Model) selectedSlot() (model.Slot, bool) {
	slots := m.session.Working().Slots()
	idx := m.slots.Cursor()
	if idx < 0 || idx >= len(slots) {
		return model.Slot{}, false
	}
	return slots[idx], true
}

func (m *Model) startInput(mode inputMode, prompt, value string) tea.Cmd {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.errMsg = ""
	m.slots.Blur()
	return m.input.Focus()
}

func (m *Model) stopInput() {
	m.mode = inputNone
	m.input.Blur()
	m.input.SetValue("")
	m.pendingLabel = ""
	m.slots.Focus()
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopInput()
		return m, nil
	case tea.KeyEnter:
		return m, m.applyInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// applyInput commits the active prompt. Invalid input keeps the prompt open
// with the error shown.
func (m *Model) applyInput() tea.Cmd {
	value := m.input.Value()
	switch m.mode {
	case inputStudied:
		seconds, err := duration.ParseClock(value)
		if err != nil {
			m.setError(err)
			return nil
		}
		if _, err := m.session.LogStudied(m.editID, seconds); err != nil {
			m.setError(err)
			return nil
		}
		m.setStatus("Studied time updated")
	case inputNote:
		if _, err := m.session.SetNote(m.editID, value); err != nil {
			m.setError(err)
			return nil
		}
		m.setStatus("Note updated")
	case inputAddLabel:
		if value == "" {
			m.errMsg = "Label is required"
			return nil
		}
		label := value
		cmd := m.startInput(inputAddTarget, "Target (HH:MM[:SS], blank for 01:00:00): ", "")
		m.pendingLabel = label
		return cmd
	case inputAddTarget:
		target := model.DefaultTargetSeconds
		if value != "" {
			seconds, err := duration.ParseClock(value)
			if err != nil {
				m.setError(err)
				return nil
			}
			target = seconds
		}
		slot, err := m.session.AddSlot(m.pendingLabel, target)
		if err != nil {
			m.setError(err)
			return nil
		}
		m.setStatus(fmt.Sprintf("Added %s", slot.Label))
		m.stopInput()
		m.refresh()
		m.slots.SetCursor(len(m.slots.Rows()) - 1)
		return nil
	}
	m.stopInput()
	m.refresh()
	return nil
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.errMsg = ""
}

func (m *Model) setError(err error) {
	m.errMsg = err.Error()
	m.status = ""
}
