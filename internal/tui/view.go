package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wesm/recipeideas/internal/recipes"
)

// Monochrome theme - adaptive for light and dark terminals
var (
	bgBase   = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}
	bgAlt    = lipgloss.AdaptiveColor{Light: "#f0f0f0", Dark: "#181818"}
	bgCursor = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#282828"}

	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#333333"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"}).
			Padding(0, 1)

	statsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"}).
			Background(bgBase).
			Padding(0, 1)

	// Spinner style - NOT faint so it's visible
	spinnerStyle = lipgloss.NewStyle().
			Bold(true).
			Background(bgBase)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Background(bgBase)

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"}).
			Background(bgBase)

	// Active chip: the committed query
	activeChipStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Background(bgBase)

	// Cursor row: subtle lighter background
	cursorRowStyle = lipgloss.NewStyle().
			Bold(true).
			Background(bgCursor)

	// Normal rows need background to clear old content
	normalRowStyle = lipgloss.NewStyle().
			Background(bgBase)

	// Alternating rows: very subtle gray background
	altRowStyle = lipgloss.NewStyle().
			Background(bgAlt)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#999999"}).
			Background(bgBase).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Background(bgBase)

	loadingStyle = lipgloss.NewStyle().
			Italic(true).
			Background(bgBase)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Background(bgBase)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	faintStyle = lipgloss.NewStyle().
			Faint(true)

	flashStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#996600", Dark: "#ffcc00"}). // Amber for visibility
			Background(bgBase)
)

func (m Model) buildTitleBar() string {
	titleText := "recipeideas"
	if m.version != "" && m.version != "dev" && m.version != "unknown" {
		titleText = fmt.Sprintf("recipeideas [%s]", m.version)
	}

	subtitle := "Search recipes by ingredient"
	if q := m.search.Query(); q != "" {
		subtitle = fmt.Sprintf("Ingredient: %s", q)
	}

	return titleBarStyle.Render(padRight(titleText+" - "+subtitle, m.width-2)) // -2 for padding
}

// searchLineView renders the ingredient box. When unfocused it shows the
// stored text and a hint instead of the live input.
func (m Model) searchLineView() string {
	label := labelStyle.Render(" Search: ")
	avail := m.width - lipgloss.Width(label)
	if avail < 1 {
		avail = 1
	}

	var content string
	if m.inputFocused {
		content = m.searchInput.View() + faintStyle.Render("  [Enter] search  [Esc] cancel")
	} else {
		text := m.search.Input()
		if strings.TrimSpace(text) == "" {
			text = faintStyle.Render(m.searchInput.Placeholder)
		} else {
			text = truncateRunes(text, max(avail-14, 1))
		}
		content = text + faintStyle.Render("  [/] edit")
	}
	return label + normalRowStyle.Render(padRight(content, avail))
}

// chipsView renders the popular ingredient chips with their digit keys.
func (m Model) chipsView() string {
	if len(m.popular) == 0 {
		return normalRowStyle.Render(strings.Repeat(" ", m.width))
	}

	active := strings.ToLower(m.search.Query())
	parts := make([]string, 0, len(m.popular))
	for i, term := range m.popular {
		key := fmt.Sprintf("%d", (i+1)%10)
		label := chipLabel(term)
		if strings.ToLower(strings.TrimSpace(term)) == active {
			parts = append(parts, chipStyle.Render(key+" ")+activeChipStyle.Render(label))
		} else {
			parts = append(parts, chipStyle.Render(key+" "+label))
		}
	}
	return normalRowStyle.Render(padRight(" "+strings.Join(parts, chipStyle.Render("  ")), m.width))
}

// resultListView renders the Result Renderer: a message for loading,
// failure and empty states, otherwise the page of rows around the cursor.
func (m Model) resultListView() string {
	st := m.search.State()
	rows := st.Value

	switch {
	case st.IsFailure():
		return m.fillList(errorStyle.Render(padRight(" "+st.Reason+"  [r] retry", m.width)), 1)
	case st.IsLoading() && len(rows) == 0:
		return m.fillList(loadingStyle.Render(padRight(" "+m.spinnerIndicator()+" Loading recipes…", m.width)), 1)
	case st.IsSuccess() && len(rows) == 0:
		return m.fillList(normalRowStyle.Render(padRight(" "+noResultsMessage(m.search.Query()), m.width)), 1)
	case st.IsIdle():
		return m.fillList(normalRowStyle.Render(padRight(" Press / and type an ingredient, or pick a chip.", m.width)), 1)
	}

	var sb strings.Builder
	used := 0
	end := min(m.scrollOffset+m.pageSize, len(rows))
	for i := m.scrollOffset; i < end; i++ {
		if used > 0 {
			sb.WriteString("\n")
		}
		indicator := "  "
		style := normalRowStyle
		if i == m.cursor {
			indicator = "▶ "
			style = cursorRowStyle
		} else if i%2 == 1 {
			style = altRowStyle
		}

		idWidth := 8
		nameWidth := m.width - len(indicator) - idWidth - 3
		if nameWidth < 1 {
			nameWidth = 1
		}
		line := fmt.Sprintf(" %s%s %s",
			indicator,
			padRight(truncateRunes(rows[i].Name, nameWidth), nameWidth),
			padRight(rows[i].ID, idWidth),
		)
		sb.WriteString(style.Render(padRight(line, m.width)))
		used++
	}
	return m.fillList(sb.String(), used)
}

// noResultsMessage is shown for an empty successful search.
func noResultsMessage(query string) string {
	return fmt.Sprintf("No recipes found for %q", query)
}

// fillList pads the list area with blank lines up to the page size.
func (m Model) fillList(content string, usedLines int) string {
	// Guard against zero/negative width (can happen before first resize)
	if m.width <= 0 {
		return content
	}
	var sb strings.Builder
	sb.WriteString(content)
	for i := usedLines; i < m.pageSize; i++ {
		sb.WriteString("\n")
		sb.WriteString(normalRowStyle.Render(strings.Repeat(" ", m.width)))
	}
	return sb.String()
}

// spinnerIndicator returns the current spinner frame string.
func (m Model) spinnerIndicator() string {
	if m.spinnerFrame < len(spinnerFrames) {
		return spinnerFrames[m.spinnerFrame]
	}
	return spinnerFrames[0]
}

// infoLineView shows a flash message, or a summary of the current search,
// with a right-aligned spinner while anything is loading.
func (m Model) infoLineView() string {
	if m.flashMessage != "" {
		return flashStyle.Render(padRight(" "+m.flashMessage, m.width))
	}

	var content string
	st := m.search.State()
	switch {
	case st.IsLoading():
		content = fmt.Sprintf("Searching %q…", m.search.Query())
	case st.IsSuccess() && len(st.Value) > 0:
		noun := "recipes"
		if len(st.Value) == 1 {
			noun = "recipe"
		}
		content = fmt.Sprintf("%d %s with %q", len(st.Value), noun, m.search.Query())
	}
	return m.renderInfoLine(content, m.loading())
}

// renderInfoLine renders the info/notification line with optional right-aligned loading spinner.
func (m Model) renderInfoLine(content string, loading bool) string {
	// statsStyle has Padding(0, 1) which adds 2 characters, so content should be m.width-2
	contentWidth := m.width - 2
	if contentWidth < 1 {
		contentWidth = 1
	}

	if content == "" && !loading {
		return statsStyle.Render(strings.Repeat(" ", contentWidth))
	}
	if loading {
		indicator := m.spinnerIndicator()
		gap := contentWidth - lipgloss.Width(content) - lipgloss.Width(indicator)
		if gap < 1 {
			gap = 1
		}
		content += strings.Repeat(" ", gap) + spinnerStyle.Render(indicator)
	}
	return statsStyle.Render(padRight(content, contentWidth))
}

func (m Model) footerView() string {
	var keys []string
	var posStr string

	switch {
	case m.inputFocused:
		keys = []string{"Enter search", "Esc cancel", "ctrl+c quit"}
	case m.detail.Open():
		keys = []string{"↑/↓ scroll", "Esc close"}
		if m.detail.State().IsFailure() {
			keys = append(keys, "r retry")
		}
		keys = append(keys, "? help")
	default:
		keys = []string{"↑/k", "↓/j", "Enter open", "/ search", "1-0 chips", "? help", "q quit"}
		if rows := m.results(); len(rows) > 0 {
			posStr = fmt.Sprintf(" %d/%d ", m.cursor+1, len(rows))
		}
	}

	keysStr := strings.Join(keys, " │ ")

	// Use lipgloss.Width for ANSI-aware width calculation (handles Unicode arrows ↑↓ correctly)
	gap := m.width - lipgloss.Width(keysStr) - lipgloss.Width(posStr) - 2
	if gap < 0 {
		gap = 0
	}
	return footerStyle.Render(keysStr + strings.Repeat(" ", gap) + posStr)
}

// detailModalWidth returns the inner width of the recipe modal.
func (m Model) detailModalWidth() int {
	// Border (2) + padding (4) + a margin so the list stays visible on both sides
	w := m.width - 10
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// detailBodyLines builds the scrollable part of the recipe modal for the
// current detail state.
func (m Model) detailBodyLines() []string {
	st := m.detail.State()
	width := m.detailModalWidth()

	switch {
	case st.IsLoading():
		return []string{m.spinnerIndicator() + " Loading recipe…"}
	case st.IsFailure():
		return []string{st.Reason}
	case !st.IsSuccess() || st.Value == nil:
		return nil
	}

	d := st.Value
	var lines []string

	var meta []string
	if d.Area != "" {
		meta = append(meta, d.Area)
	}
	if d.Category != "" {
		meta = append(meta, d.Category)
	}
	if len(meta) > 0 {
		lines = append(lines, strings.Join(meta, " · "))
	}
	if tags := d.TagList(); len(tags) > 0 {
		lines = append(lines, wrapText("#"+strings.Join(tags, " #"), width)...)
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}

	lines = append(lines, sectionStyle.Render("Ingredients"))
	ingredients := recipes.IngredientLines(d)
	if len(ingredients) == 0 {
		lines = append(lines, faintStyle.Render("(none listed)"))
	}
	for _, ing := range ingredients {
		lines = append(lines, wrapText("• "+ing, width)...)
	}

	lines = append(lines, "", sectionStyle.Render("Instructions"))
	instructions := strings.TrimSpace(strings.ReplaceAll(d.Instructions, "\r\n", "\n"))
	instructions = strings.ReplaceAll(instructions, "\r", "")
	if instructions == "" {
		lines = append(lines, faintStyle.Render("(none provided)"))
	} else {
		lines = append(lines, wrapText(instructions, width)...)
	}

	if d.SourceURL != "" || d.VideoURL != "" {
		lines = append(lines, "")
	}
	if d.SourceURL != "" {
		lines = append(lines, truncateRunes("Source: "+d.SourceURL, width))
	}
	if d.VideoURL != "" {
		lines = append(lines, truncateRunes("Video:  "+d.VideoURL, width))
	}
	return lines
}

// renderDetailModal renders the Modal Renderer: title, the visible window
// of body lines, and key hints.
func (m Model) renderDetailModal() string {
	st := m.detail.State()
	width := m.detailModalWidth()

	title := "Recipe " + m.detail.SelectedID()
	if st.IsSuccess() && st.Value != nil && st.Value.Name != "" {
		title = st.Value.Name
	}

	body := m.detailBodyLines()
	maxVisible := m.detailMaxVisible()
	start := m.detailScroll
	if start > len(body) {
		start = len(body)
	}
	end := min(start+maxVisible, len(body))

	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render(truncateRunes(title, width)))
	sb.WriteString("\n\n")
	for _, line := range body[start:end] {
		sb.WriteString(padRight(line, width))
		sb.WriteString("\n")
	}

	hint := "[Esc] Close"
	if st.IsFailure() {
		hint = "[r] Retry  [Esc] Close"
	}
	if len(body) > maxVisible {
		hint = fmt.Sprintf("[↑/↓] Scroll %d/%d  ", end, len(body)) + hint
	}
	sb.WriteString("\n")
	sb.WriteString(faintStyle.Render(hint))
	return sb.String()
}

// rawHelpLines contains the help modal content. The first line is the title
// (rendered with modalTitleStyle at display time). This is a package-level
// variable so len() can be used without rebuilding the slice on every call.
var rawHelpLines = []string{
	"Keyboard Shortcuts", // rendered with modalTitleStyle in overlayModal
	"",
	"Results",
	"  ↑/k, ↓/j    Move cursor up/down",
	"  PgUp/PgDn   Page up/down",
	"  Home/End    Go to first/last",
	"  Enter       Open recipe",
	"  r           Retry a failed search",
	"",
	"Search",
	"  /           Edit ingredient",
	"  Enter       Search (while editing)",
	"  Esc         Stop editing",
	"  1-9, 0      Search a popular ingredient",
	"",
	"Recipe",
	"  ↑/↓         Scroll",
	"  r           Retry a failed lookup",
	"  Esc/q       Close",
	"",
	"Other",
	"  ?           This help",
	"  q           Quit",
	"",
	"[↑/↓] Scroll  [Any other key] Close",
}

// helpMaxVisible returns the max visible lines for the help modal given terminal height.
func (m Model) helpMaxVisible() int {
	v := m.height - 6
	if v < 1 {
		v = 1
	}
	if v > len(rawHelpLines) {
		v = len(rawHelpLines)
	}
	return v
}

// renderQuitConfirmModal renders the quit confirmation modal content.
func (m Model) renderQuitConfirmModal() string {
	return modalTitleStyle.Render("Quit?") + "\n\n" +
		"Are you sure you want to quit?\n\n" +
		"[Y] Yes    [N] No"
}

// renderHelpModal renders the help modal content with scrolling support.
func (m Model) renderHelpModal() string {
	maxVisible := m.helpMaxVisible()

	maxScroll := len(rawHelpLines) - maxVisible
	if maxScroll < 0 {
		maxScroll = 0
	}
	scroll := min(m.helpScroll, maxScroll)

	visible := rawHelpLines[scroll : scroll+maxVisible]
	rendered := make([]string, len(visible))
	for i, line := range visible {
		if scroll+i == 0 {
			rendered[i] = modalTitleStyle.Render(line)
		} else {
			rendered[i] = line
		}
	}
	return strings.Join(rendered, "\n")
}

// overlayModal renders the active modal centered over the background.
// Help and quit take precedence over the recipe modal.
func (m Model) overlayModal(background string) string {
	var modalContent string

	switch m.modal {
	case modalQuitConfirm:
		modalContent = m.renderQuitConfirmModal()
	case modalHelp:
		modalContent = m.renderHelpModal()
	default:
		if m.detail.Open() {
			modalContent = m.renderDetailModal()
		}
	}

	if modalContent == "" {
		return background
	}

	modal := modalStyle.Render(modalContent)

	bgLines := strings.Split(background, "\n")
	modalLines := strings.Split(modal, "\n")

	// Calculate vertical centering
	startLine := (len(bgLines) - len(modalLines)) / 2
	if startLine < 0 {
		startLine = 0
	}

	// Calculate horizontal centering
	modalWidth := lipgloss.Width(modal)
	leftPadding := (m.width - modalWidth) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	// Overlay modal onto background, preserving background where modal doesn't cover
	for i, modalLine := range modalLines {
		lineIdx := startLine + i
		if lineIdx >= len(bgLines) {
			break
		}
		bgLine := bgLines[lineIdx]
		bgWidth := lipgloss.Width(bgLine)

		var composite strings.Builder
		if leftPadding > 0 {
			leftBg := truncateToWidth(bgLine, leftPadding)
			composite.WriteString(leftBg)
			if w := lipgloss.Width(leftBg); w < leftPadding {
				composite.WriteString(strings.Repeat(" ", leftPadding-w))
			}
		}
		composite.WriteString(modalLine)

		rightStart := leftPadding + modalWidth
		if rightStart < bgWidth {
			composite.WriteString(skipToWidth(bgLine, rightStart))
		}
		bgLines[lineIdx] = composite.String()
	}

	return strings.Join(bgLines, "\n")
}
