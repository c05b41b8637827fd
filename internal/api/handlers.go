package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/wesm/recipeideas/internal/mealdb"
	"github.com/wesm/recipeideas/internal/recipes"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PopularResponse lists the configured popular ingredients.
type PopularResponse struct {
	Ingredients []string `json:"ingredients"`
}

// SearchResponse is the result of an ingredient search.
type SearchResponse struct {
	Ingredient string            `json:"ingredient"`
	Count      int               `json:"count"`
	Recipes    []recipes.Summary `json:"recipes"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, err string, message string) {
	writeJSON(w, status, ErrorResponse{Error: err, Message: message})
}

// handlePopular returns the configured popular ingredients.
func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	popular := s.cfg.Search.Popular
	if popular == nil {
		popular = []string{}
	}
	writeJSON(w, http.StatusOK, PopularResponse{Ingredients: popular})
}

// handleSearchRecipes returns the recipes that use an ingredient.
func (s *Server) handleSearchRecipes(w http.ResponseWriter, r *http.Request) {
	ingredient := strings.TrimSpace(r.URL.Query().Get("ingredient"))
	if ingredient == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Query parameter 'ingredient' is required")
		return
	}

	meals, err := s.source.FilterByIngredient(r.Context(), ingredient)
	if err != nil {
		s.logger.Warn("recipe search failed", "ingredient", ingredient, "error", err)
		writeError(w, http.StatusBadGateway, "upstream_error", recipes.ReasonSearchFailed)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Ingredient: ingredient,
		Count:      len(meals),
		Recipes:    recipes.NewSummaries(meals),
	})
}

// handleGetRecipe returns one recipe by id.
func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Recipe id is required")
		return
	}

	meal, err := s.source.LookupMeal(r.Context(), id)
	if mealdb.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "not_found", recipes.ReasonNotFound)
		return
	}
	if err != nil {
		s.logger.Warn("recipe lookup failed", "id", id, "error", err)
		writeError(w, http.StatusBadGateway, "upstream_error", recipes.ReasonDetailFailed)
		return
	}
	if meal == nil {
		writeError(w, http.StatusNotFound, "not_found", recipes.ReasonNotFound)
		return
	}

	writeJSON(w, http.StatusOK, recipes.NewRecipe(meal))
}
