package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wesm/recipeideas/internal/mealdb"
	"github.com/wesm/recipeideas/internal/recipes"
	"github.com/wesm/recipeideas/internal/testutil"
)

func TestInitialSearchLoadsDefault(t *testing.T) {
	m := newTestModel(t, newMockSource(), "chicken")

	if m.search.Query() != "chicken" {
		t.Errorf("Query() = %q, want chicken", m.search.Query())
	}
	if got := len(m.results()); got != 2 {
		t.Fatalf("results = %d, want 2", got)
	}
	view := stripANSI(m.View())
	testutil.AssertContainsAll(t, view,
		"Teriyaki Chicken Casserole",
		"Chicken Handi",
		"Ingredient: chicken",
		"2 recipes with \"chicken\"",
	)
}

func TestInitialViewBeforeResults(t *testing.T) {
	m := New(newMockSource(), Options{DefaultIngredient: "chicken", Logger: testLogger()})
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() should start the default search")
	}
	if !m.spinnerActive {
		t.Error("spinner should run while the default search loads")
	}
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 20})
	if view := stripANSI(m.View()); !strings.Contains(view, "Loading recipes") {
		t.Errorf("view should show loading text:\n%s", view)
	}
}

func TestNoDefaultStartsInSearchBox(t *testing.T) {
	mock := newMockSource()
	m := newTestModel(t, mock, "")

	if !m.inputFocused {
		t.Error("search box should have focus without a default ingredient")
	}
	if len(mock.FilterCalls) != 0 {
		t.Errorf("FilterCalls = %v, want none", mock.FilterCalls)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "Press / and type an ingredient") {
		t.Errorf("idle view missing prompt:\n%s", view)
	}
}

func TestTypeAndCommitSearch(t *testing.T) {
	mock := newMockSource()
	m := newTestModel(t, mock, "")

	m = pressAll(m, " rice ")
	if m.search.Input() != " rice " {
		t.Errorf("Input() = %q, want raw text stored", m.search.Input())
	}
	if m.search.Query() != "" {
		t.Errorf("Query() = %q, typing must not commit", m.search.Query())
	}

	m, cmd := press(m, "enter")
	if m.inputFocused {
		t.Error("enter should leave the search box")
	}
	if m.search.Query() != "rice" {
		t.Errorf("Query() = %q, want trimmed rice", m.search.Query())
	}
	m = deliver(m, cmd)

	testutil.AssertStrings(t, mock.FilterCalls, "rice")
	if rows := m.results(); len(rows) != 1 || rows[0].Name != "Egg Fried Rice" {
		t.Errorf("results = %+v", rows)
	}
}

func TestBlankCommitKeepsResults(t *testing.T) {
	mock := newMockSource()
	m := newTestModel(t, mock, "chicken")

	m = pressAll(m, "/")
	m.searchInput.SetValue("   ")
	m, _ = press(m, "enter")

	if m.search.Query() != "chicken" {
		t.Errorf("Query() = %q, want chicken", m.search.Query())
	}
	if len(m.results()) != 2 {
		t.Errorf("results = %d, want previous 2 kept", len(m.results()))
	}
	if m.flashMessage == "" {
		t.Error("blank search should flash a hint")
	}
	if len(mock.FilterCalls) != 1 {
		t.Errorf("FilterCalls = %v, want only the initial search", mock.FilterCalls)
	}
}

func TestEscLeavesSearchBoxWithoutSearching(t *testing.T) {
	mock := newMockSource()
	m := newTestModel(t, mock, "chicken")

	m = pressAll(m, "/", "e", "g", "g")
	m, cmd := press(m, "esc")
	if m.inputFocused {
		t.Error("esc should blur the search box")
	}
	if cmd != nil {
		t.Error("esc should not dispatch anything")
	}
	if m.search.Query() != "chicken" {
		t.Errorf("Query() = %q, want chicken", m.search.Query())
	}
}

func TestStaleSearchResultIgnored(t *testing.T) {
	m := newTestModel(t, newMockSource(), "")

	// egg is committed first, rice (chip 3) second; egg settles last.
	m = pressAll(m, "egg")
	m, eggCmd := press(m, "enter")
	m, riceCmd := press(m, "3")

	m = deliver(m, riceCmd)
	m = deliver(m, eggCmd)

	if m.search.Query() != "rice" {
		t.Errorf("Query() = %q, want rice", m.search.Query())
	}
	if m.searchInput.Value() != "rice" {
		t.Errorf("input = %q, want chip term", m.searchInput.Value())
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, `1 recipe with "rice"`) {
		t.Errorf("view should reflect rice only:\n%s", view)
	}
}

func TestEmptyResultShowsNoMatches(t *testing.T) {
	m := newTestModel(t, newMockSource(), "nonexistentfood123")

	st := m.search.State()
	if !st.IsSuccess() || len(st.Value) != 0 {
		t.Fatalf("state = %+v, want empty success", st)
	}
	view := stripANSI(m.View())
	testutil.AssertContainsAll(t, view, `No recipes found for "nonexistentfood123"`)
	testutil.AssertContainsNone(t, view, recipes.ReasonSearchFailed)
}

func TestSearchFailureAndRetry(t *testing.T) {
	mock := newMockSource()
	mock.FilterError = errors.New("connection refused")
	m := newTestModel(t, mock, "chicken")

	view := stripANSI(m.View())
	testutil.AssertContainsAll(t, view, recipes.ReasonSearchFailed)
	testutil.AssertContainsNone(t, view, "Teriyaki")

	mock.FilterError = nil
	m, cmd := press(m, "r")
	if cmd == nil {
		t.Fatal("r should retry the failed search")
	}
	m = deliver(m, cmd)
	if len(m.results()) != 2 {
		t.Errorf("results = %d after retry, want 2", len(m.results()))
	}

	// r does nothing once the search succeeded
	if _, cmd := press(m, "r"); cmd != nil {
		t.Error("r should be a no-op after success")
	}
}

func TestChipKeys(t *testing.T) {
	mock := newMockSource()
	m := newTestModel(t, mock, "chicken")

	m, cmd := press(m, "2")
	if m.search.Query() != "paneer" {
		t.Errorf("Query() = %q, want paneer", m.search.Query())
	}
	m = deliver(m, cmd)
	if view := stripANSI(m.View()); !strings.Contains(view, `No recipes found for "paneer"`) {
		t.Errorf("view:\n%s", view)
	}

	// Keys past the configured chips do nothing
	if _, cmd := press(m, "9"); cmd != nil {
		t.Error("chip 9 is not configured and should be ignored")
	}
	if _, cmd := press(m, "0"); cmd != nil {
		t.Error("chip 0 is not configured and should be ignored")
	}
}

func TestTenthChipIsZero(t *testing.T) {
	popular := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "rice", "extra"}
	m := New(newMockSource(), Options{Popular: popular, Logger: testLogger()})
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 24})
	m = pressAll(m, "esc")

	if len(m.popular) != maxChips {
		t.Errorf("popular = %d chips, want %d", len(m.popular), maxChips)
	}
	m, _ = press(m, "0")
	if m.search.Query() != "rice" {
		t.Errorf("Query() = %q, want rice", m.search.Query())
	}
}

func TestCursorNavigation(t *testing.T) {
	mock := newMockSource()
	for i := 0; i < 30; i++ {
		mock.AddMeal(testutil.NewMealDetail(strconv.Itoa(60000+i)).Build(), "bulk")
	}
	m := newTestModel(t, mock, "bulk")
	rows := len(m.results())

	m = pressAll(m, "up")
	if m.cursor != 0 {
		t.Errorf("up at top: cursor = %d", m.cursor)
	}
	m = pressAll(m, "down", "j")
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	m = pressAll(m, "k")
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
	m = pressAll(m, "end")
	if m.cursor != rows-1 {
		t.Errorf("end: cursor = %d, want %d", m.cursor, rows-1)
	}
	if m.scrollOffset == 0 {
		t.Error("end should scroll the list")
	}
	m = pressAll(m, "down")
	if m.cursor != rows-1 {
		t.Errorf("down at bottom: cursor = %d", m.cursor)
	}
	m = pressAll(m, "home")
	if m.cursor != 0 || m.scrollOffset != 0 {
		t.Errorf("home: cursor=%d offset=%d", m.cursor, m.scrollOffset)
	}
	m = pressAll(m, "pgdown")
	if m.cursor != m.pageSize {
		t.Errorf("pgdown: cursor = %d, want %d", m.cursor, m.pageSize)
	}
	m = pressAll(m, "pgup")
	if m.cursor != 0 {
		t.Errorf("pgup: cursor = %d, want 0", m.cursor)
	}
}

func TestNewResultsResetCursor(t *testing.T) {
	m := newTestModel(t, newMockSource(), "chicken")
	m = pressAll(m, "down")

	m, cmd := press(m, "3")
	m = deliver(m, cmd)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after new results", m.cursor)
	}
}

func TestOpenRecipeModal(t *testing.T) {
	m := newTestModel(t, newMockSource(), "chicken")

	m, cmd := press(m, "enter")
	if !m.detail.Open() || m.detail.SelectedID() != "52772" {
		t.Fatalf("SelectedID() = %q, want 52772", m.detail.SelectedID())
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "Loading recipe") {
		t.Errorf("modal should show loading:\n%s", view)
	}

	m = deliver(m, cmd)
	view := stripANSI(m.View())
	testutil.AssertContainsAll(t, view,
		"Teriyaki Chicken Casserole",
		"Japanese · Chicken",
		"#Meat #Casserole",
		"Ingredients",
		"• 3/4 cup soy sauce",
		"• 1/2 cup water",
		"• brown sugar",
		"Instructions",
		"Preheat oven to 350.",
		"Source: https://www.recipetineats.com/teriyaki",
	)
	testutil.AssertContainsNone(t, view, "ignored", "\r")
}

func TestDismissRecipeModal(t *testing.T) {
	for _, k := range []string{"esc", "q", "enter", "backspace"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel(t, newMockSource(), "chicken")
			m, cmd := press(m, "enter")
			m = deliver(m, cmd)

			m, _ = press(m, k)
			if m.detail.Open() {
				t.Errorf("%s should close the recipe modal", k)
			}
			if m.modal != modalNone {
				t.Errorf("%s opened another modal", k)
			}
		})
	}
}

func TestDismissBeforeLookupSettles(t *testing.T) {
	m := newTestModel(t, newMockSource(), "chicken")

	m, cmd := press(m, "enter")
	m, _ = press(m, "esc")
	m = deliver(m, cmd)

	if m.detail.Open() {
		t.Error("late lookup reopened the modal")
	}
	if st := m.detail.State(); !st.IsIdle() || st.Value != nil {
		t.Errorf("detail state = %+v, want idle", st)
	}
	if view := stripANSI(m.View()); strings.Contains(view, "Ingredients") {
		t.Errorf("recipe leaked into view:\n%s", view)
	}
}

func TestLookupFailureKeepsModalOpen(t *testing.T) {
	mock := newMockSource()
	delete(mock.Details, "52772")
	m := newTestModel(t, mock, "chicken")

	m, cmd := press(m, "enter")
	m = deliver(m, cmd)

	if !m.detail.Open() {
		t.Fatal("failure should keep the modal open")
	}
	view := stripANSI(m.View())
	testutil.AssertContainsAll(t, view, recipes.ReasonNotFound, "[r] Retry")

	mock.LookupError["52772"] = errors.New("timeout")
	m, cmd = press(m, "r")
	m = deliver(m, cmd)
	if got := m.detail.State().Reason; got != recipes.ReasonDetailFailed {
		t.Errorf("Reason = %q, want %q", got, recipes.ReasonDetailFailed)
	}
}

func TestDetailScroll(t *testing.T) {
	mock := newMockSource()
	b := testutil.NewMealDetail("1").WithName("Long One")
	for i := 0; i < 20; i++ {
		b.WithIngredient("item", "1 unit")
	}
	b.WithInstructions(strings.Repeat("Stir well. ", 200))
	mock.AddMeal(b.Build(), "long")
	m := newTestModel(t, mock, "long")

	m, cmd := press(m, "enter")
	m = deliver(m, cmd)

	m = pressAll(m, "down", "down")
	if m.detailScroll != 2 {
		t.Errorf("detailScroll = %d, want 2", m.detailScroll)
	}
	m = pressAll(m, "up", "up", "up")
	if m.detailScroll != 0 {
		t.Errorf("detailScroll = %d, want clamped to 0", m.detailScroll)
	}
	m = pressAll(m, "end")
	want := len(m.detailBodyLines()) - m.detailMaxVisible()
	if m.detailScroll != want {
		t.Errorf("end: detailScroll = %d, want %d", m.detailScroll, want)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "[↑/↓] Scroll") {
		t.Errorf("long recipe should show scroll hint:\n%s", view)
	}
}

func TestQuitConfirm(t *testing.T) {
	m := newTestModel(t, newMockSource(), "chicken")

	m, _ = press(m, "q")
	if m.modal != modalQuitConfirm {
		t.Fatalf("modal = %v, want quit confirm", m.modal)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "Are you sure you want to quit?") {
		t.Errorf("quit modal not rendered:\n%s", view)
	}

	m, _ = press(m, "n")
	if m.modal != modalNone {
		t.Error("n should close the quit modal")
	}

	m, _ = press(m, "q")
	m, cmd := press(m, "y")
	if !m.quitting || cmd == nil {
		t.Fatal("y should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("y should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestCtrlCQuitsEverywhere(t *testing.T) {
	m := newTestModel(t, newMockSource(), "")
	if !m.inputFocused {
		t.Fatal("precondition: search box focused")
	}
	m, cmd := press(m, "ctrl+c")
	if !m.quitting || cmd == nil {
		t.Error("ctrl+c should quit from the search box")
	}
}

func TestHelpModal(t *testing.T) {
	m := newTestModel(t, newMockSource(), "chicken")
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 12})

	m, _ = press(m, "?")
	if m.modal != modalHelp {
		t.Fatalf("modal = %v, want help", m.modal)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Errorf("help not rendered:\n%s", view)
	}

	m = pressAll(m, "j", "j")
	if m.helpScroll != 2 {
		t.Errorf("helpScroll = %d, want 2", m.helpScroll)
	}
	m, _ = press(m, "x")
	if m.modal != modalNone || m.helpScroll != 0 {
		t.Errorf("any other key should close help: modal=%v scroll=%d", m.modal, m.helpScroll)
	}
}

func TestHelpOverRecipeModal(t *testing.T) {
	m := newTestModel(t, newMockSource(), "chicken")
	m, cmd := press(m, "enter")
	m = deliver(m, cmd)

	m, _ = press(m, "?")
	if m.modal != modalHelp || !m.detail.Open() {
		t.Fatalf("modal=%v open=%v", m.modal, m.detail.Open())
	}
	m, _ = press(m, "esc")
	if !m.detail.Open() {
		t.Error("closing help should leave the recipe open")
	}
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t, newMockSource(), "chicken")

	m = update(m, tea.WindowSizeMsg{Width: 60, Height: 30})
	if m.pageSize != 25 {
		t.Errorf("pageSize = %d, want 25", m.pageSize)
	}
	m = update(m, tea.WindowSizeMsg{Width: -1, Height: 2})
	if m.width != 0 || m.pageSize != 1 {
		t.Errorf("width=%d pageSize=%d, want clamped", m.width, m.pageSize)
	}
}

func TestSpinnerStopsWhenIdle(t *testing.T) {
	m := newTestModel(t, newMockSource(), "chicken")
	m.spinnerActive = true

	next, cmd := m.Update(spinnerTickMsg{})
	m = next.(Model)
	if cmd != nil || m.spinnerActive {
		t.Error("spinner should stop when nothing is loading")
	}

	m, _ = press(m, "3")
	next, cmd = m.Update(spinnerTickMsg{})
	if cmd == nil {
		t.Error("spinner should keep ticking while a search loads")
	}
	if next.(Model).spinnerFrame != m.spinnerFrame+1 {
		t.Error("spinner frame should advance")
	}
}

// panicSource panics on every call.
type panicSource struct{}

func (panicSource) FilterByIngredient(context.Context, string) ([]mealdb.MealSummary, error) {
	panic("boom")
}

func (panicSource) LookupMeal(context.Context, string) (*mealdb.MealDetail, error) {
	panic("boom")
}

func TestFetchPanicBecomesFailure(t *testing.T) {
	m := newTestModel(t, panicSource{}, "chicken")

	st := m.search.State()
	if !st.IsFailure() {
		t.Fatalf("phase = %v, want failure", st.Phase)
	}
	if st.Err == nil || !strings.Contains(st.Err.Error(), "panic") {
		t.Errorf("Err = %v, want recovered panic", st.Err)
	}
}
