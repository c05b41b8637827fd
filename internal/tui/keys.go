package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress processes keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.modal != modalNone {
		return m.handleModalKeys(msg)
	}
	if m.inputFocused {
		return m.handleSearchInputKeys(msg)
	}
	if m.detail.Open() {
		return m.handleDetailKeys(msg)
	}
	return m.handleListKeys(msg)
}

// handleSearchInputKeys handles keys while the search box has focus.
func (m Model) handleSearchInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.SetIngredientText(m.searchInput.Value())
		if strings.TrimSpace(m.searchInput.Value()) == "" {
			return m.showFlash("Type an ingredient to search")
		}
		m.inputFocused = false
		m.searchInput.Blur()
		return m.commitSearch(m.search.CommitSearch())

	case "esc":
		// Leave the box without searching; the typed text is kept
		m.inputFocused = false
		m.searchInput.Blur()
		return m, nil

	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.search.SetIngredientText(m.searchInput.Value())
		return m, cmd
	}
}

// handleListKeys handles keys on the result list.
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.results()
	key := msg.String()

	switch key {
	case "q":
		m.modal = modalQuitConfirm
		return m, nil

	case "?":
		m.modal = modalHelp
		m.helpScroll = 0
		return m, nil

	case "/":
		m.inputFocused = true
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case "r":
		// Retry the active query after a failure
		if !m.search.State().IsFailure() {
			return m, nil
		}
		m.search.SetIngredientText(m.search.Query())
		m.searchInput.SetValue(m.search.Query())
		return m.commitSearch(m.search.CommitSearch())

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}

	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}

	case "pgup", "ctrl+u":
		m.cursor -= m.pageSize
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.ensureCursorVisible()

	case "pgdown", "ctrl+d":
		m.cursor += m.pageSize
		if m.cursor >= len(rows) {
			m.cursor = len(rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.ensureCursorVisible()

	case "home", "g":
		m.cursor = 0
		m.scrollOffset = 0

	case "end", "G":
		if len(rows) > 0 {
			m.cursor = len(rows) - 1
			m.ensureCursorVisible()
		}

	case "enter":
		return m.selectRecipe()

	default:
		// 1-9 select chips one through nine, 0 selects the tenth
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			i := int(key[0] - '1')
			if key == "0" {
				i = 9
			}
			return m.selectChip(i)
		}
	}

	return m, nil
}

// handleDetailKeys handles keys while the recipe modal is open.
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter", "backspace":
		m.detail.Dismiss()
		m.detailScroll = 0
		return m, nil

	case "?":
		m.modal = modalHelp
		m.helpScroll = 0
		return m, nil

	case "r":
		if !m.detail.State().IsFailure() {
			return m, nil
		}
		f := m.detail.Select(m.detail.SelectedID())
		if f == nil {
			return m, nil
		}
		spinCmd := m.startSpinner()
		return m, tea.Batch(spinCmd, detailCmd(f))

	case "up", "k":
		m.detailScroll--
		m.clampDetailScroll()

	case "down", "j":
		m.detailScroll++
		m.clampDetailScroll()

	case "pgup", "ctrl+u":
		m.detailScroll -= m.detailMaxVisible()
		m.clampDetailScroll()

	case "pgdown", "ctrl+d", " ":
		m.detailScroll += m.detailMaxVisible()
		m.clampDetailScroll()

	case "home", "g":
		m.detailScroll = 0

	case "end", "G":
		m.detailScroll = len(m.detailBodyLines())
		m.clampDetailScroll()
	}
	return m, nil
}

// handleModalKeys handles keys when the help or quit modal is displayed.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalQuitConfirm:
		switch msg.String() {
		case "y", "Y", "enter":
			m.quitting = true
			return m, tea.Quit
		case "n", "N", "esc", "q":
			m.modal = modalNone
		}

	case modalHelp:
		switch msg.String() {
		case "up", "k":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		case "down", "j":
			maxScroll := len(rawHelpLines) - m.helpMaxVisible()
			if m.helpScroll < maxScroll {
				m.helpScroll++
			}
		default:
			// Any other key closes help
			m.modal = modalNone
			m.helpScroll = 0
		}
	}
	return m, nil
}
