// Package tui provides a terminal user interface for recipeideas.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wesm/recipeideas/internal/mealdb"
	"github.com/wesm/recipeideas/internal/recipes"
)

// Source is the recipe backend the TUI reads from. *mealdb.Client satisfies it.
type Source interface {
	recipes.SearchSource
	recipes.DetailSource
}

// Options configuration for TUI.
type Options struct {
	Version           string
	DefaultIngredient string   // Committed on startup; empty starts idle
	Popular           []string // Chip terms, selectable with 1-9 and 0
	Logger            *slog.Logger
}

// modalType represents the type of modal dialog drawn over everything else.
type modalType int

const (
	modalNone modalType = iota
	modalQuitConfirm
	modalHelp
)

// maxChips is the number of chips reachable from the digit keys.
const maxChips = 10

// Model is the main TUI model following the Elm architecture.
type Model struct {
	search recipes.SearchController
	detail recipes.DetailController

	// Version info for title bar
	version string
	popular []string
	logger  *slog.Logger

	// Search input
	searchInput  textinput.Model
	inputFocused bool

	// Result list
	cursor       int
	scrollOffset int
	pageSize     int // Rows visible per page

	// Recipe modal
	detailScroll int

	// Overlay modal state
	modal      modalType
	helpScroll int

	// Terminal dimensions
	width  int
	height int

	// Initial search issued by Init
	startFetch *recipes.Fetch[[]mealdb.MealSummary]

	spinnerFrame  int  // Current frame index into spinnerFrames
	spinnerActive bool // True when spinner tick is running

	// Flash message (temporary notification)
	flashMessage   string
	flashExpiresAt time.Time

	// Quit flag
	quitting bool
}

// New creates a new TUI model. The default ingredient, if any, is committed
// immediately and fetched once the program starts.
func New(source Source, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "ingredient (e.g. chicken)"
	ti.Prompt = ""
	ti.CharLimit = 100
	ti.Width = 40

	popular := opts.Popular
	if len(popular) > maxChips {
		popular = popular[:maxChips]
	}

	m := Model{
		search:      recipes.NewSearchController(source, opts.DefaultIngredient, logger),
		detail:      recipes.NewDetailController(source, logger),
		version:     opts.Version,
		popular:     popular,
		logger:      logger,
		searchInput: ti,
		pageSize:    20,
	}
	m.startFetch = m.search.Start()
	m.searchInput.SetValue(m.search.Input())
	if m.startFetch != nil {
		m.spinnerActive = true
	} else {
		// Nothing to show yet; start in the search box.
		m.inputFocused = true
		m.searchInput.Focus()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.startFetch == nil {
		return textinput.Blink
	}
	return tea.Batch(
		searchCmd(m.startFetch),
		spinnerTick(), // Start spinner for initial load
	)
}

// searchResultMsg is sent when a filter request settles.
type searchResultMsg struct {
	result recipes.Result[[]mealdb.MealSummary]
}

// detailResultMsg is sent when a lookup settles.
type detailResultMsg struct {
	result recipes.Result[*mealdb.MealDetail]
}

// flashClearMsg clears the flash message after timeout.
type flashClearMsg struct{}

// spinnerTickMsg advances the loading spinner animation.
type spinnerTickMsg struct{}

// spinnerFrames are the Braille dot animation frames for the loading spinner.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerInterval is how fast the spinner animates.
const spinnerInterval = 80 * time.Millisecond

// flashDuration is how long flash messages are displayed.
const flashDuration = 4 * time.Second

// fetchCmd runs f off the event loop and wraps its outcome with wrap. A nil
// fetch yields a nil command.
func fetchCmd[T any](f *recipes.Fetch[T], wrap func(recipes.Result[T]) tea.Msg) tea.Cmd {
	if f == nil {
		return nil
	}
	return func() (msg tea.Msg) {
		// Recover from panics to prevent TUI from becoming unresponsive
		defer func() {
			if r := recover(); r != nil {
				msg = wrap(recipes.Result[T]{
					Generation: f.Generation,
					Key:        f.Key,
					Err:        fmt.Errorf("fetch panic: %v", r),
				})
			}
		}()
		return wrap(f.Run(context.Background()))
	}
}

func searchCmd(f *recipes.Fetch[[]mealdb.MealSummary]) tea.Cmd {
	return fetchCmd(f, func(r recipes.Result[[]mealdb.MealSummary]) tea.Msg {
		return searchResultMsg{result: r}
	})
}

func detailCmd(f *recipes.Fetch[*mealdb.MealDetail]) tea.Cmd {
	return fetchCmd(f, func(r recipes.Result[*mealdb.MealDetail]) tea.Msg {
		return detailResultMsg{result: r}
	})
}

// spinnerTick returns a command that fires a spinnerTickMsg after the spinner interval.
func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// startSpinner returns a spinnerTick command if the spinner isn't already active,
// and marks it as active. Call this when loading begins.
func (m *Model) startSpinner() tea.Cmd {
	if m.spinnerActive {
		return nil
	}
	m.spinnerActive = true
	m.spinnerFrame = 0
	return spinnerTick()
}

// loading reports whether either controller has a request in flight.
func (m Model) loading() bool {
	return m.search.State().IsLoading() || m.detail.State().IsLoading()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Clamp dimensions to prevent panics from strings.Repeat with negative count
		if m.width < 0 {
			m.width = 0
		}
		if m.height < 0 {
			m.height = 0
		}
		// Reserve space for: title (1) + search (1) + chips (1) + info (1) + footer (1) = 5
		m.pageSize = m.height - 5
		if m.pageSize < 1 {
			m.pageSize = 1
		}
		m.searchInput.Width = max(m.width-12, 10)
		m.clampCursor()
		m.clampDetailScroll()
		return m, nil

	case searchResultMsg:
		// The controller drops results from superseded queries
		if m.search.Apply(msg.result) {
			m.cursor = 0
			m.scrollOffset = 0
		}
		return m, nil

	case detailResultMsg:
		if m.detail.Apply(msg.result) {
			m.detailScroll = 0
		}
		return m, nil

	case spinnerTickMsg:
		if m.loading() {
			m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
			return m, spinnerTick()
		}
		m.spinnerActive = false
		return m, nil

	case flashClearMsg:
		if !m.flashExpiresAt.IsZero() && !time.Now().Before(m.flashExpiresAt) {
			m.flashMessage = ""
		}
		return m, nil
	}

	// Forward anything else (cursor blink) to the focused input
	if m.inputFocused {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// commitSearch dispatches the controller's pending search, if any.
func (m Model) commitSearch(f *recipes.Fetch[[]mealdb.MealSummary]) (tea.Model, tea.Cmd) {
	if f == nil {
		return m, nil
	}
	spinCmd := m.startSpinner()
	return m, tea.Batch(spinCmd, searchCmd(f))
}

// selectRecipe opens the recipe under the cursor.
func (m Model) selectRecipe() (tea.Model, tea.Cmd) {
	rows := m.results()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return m, nil
	}
	m.detailScroll = 0
	f := m.detail.Select(rows[m.cursor].ID)
	if f == nil {
		return m, nil
	}
	spinCmd := m.startSpinner()
	return m, tea.Batch(spinCmd, detailCmd(f))
}

// selectChip commits popular term i.
func (m Model) selectChip(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.popular) {
		return m, nil
	}
	term := m.popular[i]
	m.searchInput.SetValue(term)
	return m.commitSearch(m.search.SelectPopularTerm(term))
}

// results returns the rows the list shows. A search keeps its previous
// rows visible while the next one loads.
func (m Model) results() []mealdb.MealSummary {
	return m.search.State().Value
}

// showFlash displays a temporary flash message.
func (m Model) showFlash(message string) (tea.Model, tea.Cmd) {
	m.flashMessage = message
	m.flashExpiresAt = time.Now().Add(flashDuration)
	return m, tea.Tick(flashDuration, func(t time.Time) tea.Msg {
		return flashClearMsg{}
	})
}

// ensureCursorVisible adjusts scroll offset to keep cursor in view.
func (m *Model) ensureCursorVisible() {
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+m.pageSize {
		m.scrollOffset = m.cursor - m.pageSize + 1
	}
}

// clampCursor keeps the cursor on an existing row after the list or the page shrinks.
func (m *Model) clampCursor() {
	n := len(m.results())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

// detailMaxVisible returns how many body lines the recipe modal shows.
func (m Model) detailMaxVisible() int {
	// Border (2) + padding (2) + title (1) + blank (1) + hint (1) + frame margin (2)
	v := m.height - 9
	if v < 3 {
		v = 3
	}
	return v
}

// clampDetailScroll ensures detailScroll stays within valid bounds.
func (m *Model) clampDetailScroll() {
	maxScroll := len(m.detailBodyLines()) - m.detailMaxVisible()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.detailScroll > maxScroll {
		m.detailScroll = maxScroll
	}
	if m.detailScroll < 0 {
		m.detailScroll = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	return m.overlayModal(m.renderView())
}

// renderView renders the search screen beneath any modal.
func (m Model) renderView() string {
	return strings.Join([]string{
		m.buildTitleBar(),
		m.searchLineView(),
		m.chipsView(),
		m.resultListView(),
		m.infoLineView(),
		m.footerView(),
	}, "\n")
}
