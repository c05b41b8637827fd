package tui

import (
	"io"
	"log/slog"
	"regexp"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/wesm/recipeideas/internal/mealdb/mealdbtest"
	"github.com/wesm/recipeideas/internal/testutil"
)

// ansiStart is the escape sequence prefix found in styled terminal output.
const ansiStart = "\x1b["

// colorProfileMu serializes tests that mutate the global lipgloss color profile.
var colorProfileMu sync.Mutex

// forceColorProfile sets lipgloss to ANSI color output for tests that assert
// on styled output, restoring the original profile via t.Cleanup.
func forceColorProfile(t *testing.T) {
	t.Helper()
	colorProfileMu.Lock()
	orig := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(orig)
		colorProfileMu.Unlock()
	})
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newMockSource returns a mock with a small fixture catalogue:
// chicken has two recipes, rice has one, paneer none.
func newMockSource() *mealdbtest.MockClient {
	mock := mealdbtest.NewMockClient()
	mock.AddMeal(testutil.NewMealDetail("52772").
		WithName("Teriyaki Chicken Casserole").
		WithArea("Japanese").
		WithCategory("Chicken").
		WithTags("Meat,Casserole").
		WithInstructions("Preheat oven to 350.\r\nBake for 35 minutes.").
		WithSource("https://www.recipetineats.com/teriyaki").
		WithVideo("https://www.youtube.com/watch?v=4aZr5hZXP_s").
		WithIngredient("soy sauce", "3/4 cup").
		WithIngredient("water", " 1/2 cup ").
		WithIngredient("", "ignored").
		WithIngredient("brown sugar", "").
		Build(), "chicken")
	mock.AddMeal(testutil.NewMealDetail("52795").WithName("Chicken Handi").Build(), "chicken")
	mock.AddMeal(testutil.NewMealDetail("52963").WithName("Egg Fried Rice").Build(), "rice", "egg")
	return mock
}

var testPopular = []string{"chicken", "paneer", "rice", "egg"}

// newTestModel builds a sized model. Unless defaultTerm is empty, the
// initial search is run and applied.
func newTestModel(t *testing.T, src Source, defaultTerm string) Model {
	t.Helper()
	m := New(src, Options{
		Version:           "test123",
		DefaultIngredient: defaultTerm,
		Popular:           testPopular,
		Logger:            testLogger(),
	})
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 24})
	if defaultTerm != "" {
		m = deliver(m, m.Init())
	}
	return m
}

// keyMsg builds a key message for the given key name or runes.
func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

// press sends a key and returns the new model and its command.
func press(m Model, k string) (Model, tea.Cmd) {
	next, cmd := m.Update(keyMsg(k))
	return next.(Model), cmd
}

// pressAll sends keys in order, discarding commands.
func pressAll(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = press(m, k)
	}
	return m
}

// fetchMsgs runs cmd and returns the fetch results it produces. Batches are
// flattened; ticks and other messages are dropped.
func fetchMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, fetchMsgs(c)...)
		}
		return out
	case searchResultMsg, detailResultMsg:
		return []tea.Msg{msg}
	default:
		return nil
	}
}

// deliver runs cmd and feeds its fetch results back into m.
func deliver(m Model, cmd tea.Cmd) Model {
	for _, msg := range fetchMsgs(cmd) {
		m = update(m, msg)
	}
	return m
}
