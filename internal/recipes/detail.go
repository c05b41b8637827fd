package recipes

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wesm/recipeideas/internal/mealdb"
)

// DetailSource looks up a full record by id. *mealdb.Client satisfies it.
type DetailSource interface {
	LookupMeal(ctx context.Context, id string) (*mealdb.MealDetail, error)
}

// DetailController owns the selected recipe id and the state of its lookup.
// An empty selection means the modal is closed.
type DetailController struct {
	source DetailSource
	logger *slog.Logger

	selected   string
	generation uint64
	state      State[*mealdb.MealDetail]
}

// NewDetailController returns a controller with nothing selected.
func NewDetailController(source DetailSource, logger *slog.Logger) DetailController {
	if logger == nil {
		logger = slog.Default()
	}
	return DetailController{source: source, logger: logger}
}

// SelectedID returns the selected id, or "" when the modal is closed.
func (c *DetailController) SelectedID() string { return c.selected }

// Open reports whether a recipe is selected.
func (c *DetailController) Open() bool { return c.selected != "" }

// State returns the state of the latest lookup.
func (c *DetailController) State() State[*mealdb.MealDetail] { return c.state }

// Generation returns the id of the latest trigger.
func (c *DetailController) Generation() uint64 { return c.generation }

// Select makes id the selection and returns the lookup to run. A blank id
// behaves like Dismiss. Reselecting the current id is a no-op unless its
// last lookup failed.
func (c *DetailController) Select(id string) *Fetch[*mealdb.MealDetail] {
	id = strings.TrimSpace(id)
	if id == "" {
		c.Dismiss()
		return nil
	}
	if id == c.selected && (c.state.IsLoading() || c.state.IsSuccess()) {
		return nil
	}

	c.generation++
	c.selected = id
	c.state = State[*mealdb.MealDetail]{Phase: PhaseLoading}
	c.logger.Debug("lookup dispatched", "id", id, "generation", c.generation)

	return &Fetch[*mealdb.MealDetail]{
		Generation: c.generation,
		Key:        id,
		run:        c.source.LookupMeal,
	}
}

// Dismiss clears the selection. A lookup still in flight is not aborted; its
// result no longer matches and is dropped by Apply.
func (c *DetailController) Dismiss() {
	if c.selected == "" && c.state.IsIdle() {
		return
	}
	c.generation++
	c.selected = ""
	c.state = State[*mealdb.MealDetail]{}
}

// Apply records res if it belongs to the latest selection and reports
// whether it did.
func (c *DetailController) Apply(res Result[*mealdb.MealDetail]) bool {
	if res.Generation != c.generation || res.Key != c.selected {
		c.logger.Debug("stale lookup result dropped",
			"id", res.Key, "generation", res.Generation, "current", c.generation)
		return false
	}

	switch {
	case res.Err != nil:
		reason := ReasonDetailFailed
		if mealdb.IsNotFound(res.Err) {
			reason = ReasonNotFound
		}
		c.logger.Warn("lookup failed", "id", res.Key, "error", res.Err)
		c.state = State[*mealdb.MealDetail]{Phase: PhaseFailure, Reason: reason, Err: res.Err}
	case res.Value == nil:
		c.state = State[*mealdb.MealDetail]{
			Phase:  PhaseFailure,
			Reason: ReasonNotFound,
			Err:    &mealdb.NotFoundError{ID: res.Key},
		}
	default:
		c.state = State[*mealdb.MealDetail]{Phase: PhaseSuccess, Value: res.Value}
	}
	return true
}
