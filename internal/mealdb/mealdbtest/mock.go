package mealdbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/wesm/recipeideas/internal/mealdb"
)

// MockClient is an in-memory stand-in for *mealdb.Client.
type MockClient struct {
	mu sync.Mutex

	// Summaries indexed by lowercase ingredient
	Summaries map[string][]mealdb.MealSummary

	// Details indexed by ID
	Details map[string]*mealdb.MealDetail

	// Error injection
	FilterError error
	LookupError map[string]error // Per-id errors

	// Call tracking for assertions
	FilterCalls []string
	LookupCalls []string
}

// NewMockClient creates a mock client with empty state.
func NewMockClient() *MockClient {
	return &MockClient{
		Summaries:   make(map[string][]mealdb.MealSummary),
		Details:     make(map[string]*mealdb.MealDetail),
		LookupError: make(map[string]error),
	}
}

// AddMeal registers detail and lists it under each ingredient.
func (m *MockClient) AddMeal(detail *mealdb.MealDetail, ingredients ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Details[detail.ID] = detail
	for _, ing := range ingredients {
		key := strings.ToLower(ing)
		m.Summaries[key] = append(m.Summaries[key], detail.Summary())
	}
}

// FilterByIngredient returns the registered summaries, or an empty list.
func (m *MockClient) FilterByIngredient(_ context.Context, ingredient string) ([]mealdb.MealSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return nil, mealdb.ErrEmptyQuery
	}
	m.FilterCalls = append(m.FilterCalls, ingredient)
	if m.FilterError != nil {
		return nil, m.FilterError
	}
	list := m.Summaries[strings.ToLower(ingredient)]
	return append([]mealdb.MealSummary{}, list...), nil
}

// LookupMeal returns the registered record or a *mealdb.NotFoundError.
func (m *MockClient) LookupMeal(_ context.Context, id string) (*mealdb.MealDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, mealdb.ErrEmptyID
	}
	m.LookupCalls = append(m.LookupCalls, id)
	if err := m.LookupError[id]; err != nil {
		return nil, err
	}
	detail, ok := m.Details[id]
	if !ok {
		return nil, &mealdb.NotFoundError{ID: id}
	}
	cp := *detail
	return &cp, nil
}

// LookupMeals looks up each id in order, stopping at the first error.
func (m *MockClient) LookupMeals(ctx context.Context, ids []string) ([]*mealdb.MealDetail, error) {
	out := make([]*mealdb.MealDetail, 0, len(ids))
	for _, id := range ids {
		detail, err := m.LookupMeal(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("lookup %q: %w", id, err)
		}
		out = append(out, detail)
	}
	return out, nil
}
