package recipes

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wesm/recipeideas/internal/mealdb"
)

// SearchSource lists meals by ingredient. *mealdb.Client satisfies it.
type SearchSource interface {
	FilterByIngredient(ctx context.Context, ingredient string) ([]mealdb.MealSummary, error)
}

// SearchController owns the ingredient text, the committed query and the
// state of the latest filter request.
type SearchController struct {
	source      SearchSource
	logger      *slog.Logger
	defaultTerm string

	input      string
	query      string
	generation uint64
	state      State[[]mealdb.MealSummary]
}

// NewSearchController returns an idle controller. defaultTerm is committed by Start.
func NewSearchController(source SearchSource, defaultTerm string, logger *slog.Logger) SearchController {
	if logger == nil {
		logger = slog.Default()
	}
	return SearchController{
		source:      source,
		logger:      logger,
		defaultTerm: strings.TrimSpace(defaultTerm),
	}
}

// Input returns the raw, uncommitted ingredient text.
func (c *SearchController) Input() string { return c.input }

// Query returns the committed query, or "" before the first commit.
func (c *SearchController) Query() string { return c.query }

// State returns the state of the latest filter request.
func (c *SearchController) State() State[[]mealdb.MealSummary] { return c.state }

// Generation returns the id of the latest trigger.
func (c *SearchController) Generation() uint64 { return c.generation }

// SetIngredientText stores raw input without validating or fetching.
func (c *SearchController) SetIngredientText(text string) {
	c.input = text
}

// Start commits the default term. It returns nil when there is none.
func (c *SearchController) Start() *Fetch[[]mealdb.MealSummary] {
	if c.defaultTerm == "" {
		return nil
	}
	c.input = c.defaultTerm
	return c.CommitSearch()
}

// CommitSearch makes the trimmed input the active query and returns the
// fetch to run. Blank input is a no-op, as is recommitting the active query
// unless its last attempt failed.
func (c *SearchController) CommitSearch() *Fetch[[]mealdb.MealSummary] {
	q := strings.TrimSpace(c.input)
	if q == "" {
		return nil
	}
	if q == c.query && (c.state.IsLoading() || c.state.IsSuccess()) {
		return nil
	}

	c.generation++
	c.query = q
	c.state = State[[]mealdb.MealSummary]{Phase: PhaseLoading, Value: c.state.Value}
	c.logger.Debug("search dispatched", "query", q, "generation", c.generation)

	return &Fetch[[]mealdb.MealSummary]{
		Generation: c.generation,
		Key:        q,
		run:        c.source.FilterByIngredient,
	}
}

// SelectPopularTerm sets the input to term and commits it.
func (c *SearchController) SelectPopularTerm(term string) *Fetch[[]mealdb.MealSummary] {
	c.SetIngredientText(term)
	return c.CommitSearch()
}

// Apply records res if it belongs to the latest trigger and reports whether
// it did. Results from superseded triggers are dropped.
func (c *SearchController) Apply(res Result[[]mealdb.MealSummary]) bool {
	if res.Generation != c.generation || res.Key != c.query {
		c.logger.Debug("stale search result dropped",
			"query", res.Key, "generation", res.Generation, "current", c.generation)
		return false
	}

	if res.Err != nil {
		c.logger.Warn("search failed", "query", res.Key, "error", res.Err)
		c.state = State[[]mealdb.MealSummary]{
			Phase:  PhaseFailure,
			Reason: ReasonSearchFailed,
			Err:    res.Err,
		}
		return true
	}

	meals := res.Value
	if meals == nil {
		meals = []mealdb.MealSummary{}
	}
	c.state = State[[]mealdb.MealSummary]{Phase: PhaseSuccess, Value: meals}
	return true
}
