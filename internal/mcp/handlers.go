package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wesm/recipeideas/internal/mealdb"
	"github.com/wesm/recipeideas/internal/recipes"
)

// maxIDs bounds a single get_recipes call.
const maxIDs = 25

type handlers struct {
	source  RecipeSource
	popular []string
}

// getIDArg extracts a recipe id. Ids are numeric strings upstream, so a JSON
// number is accepted as well.
func getIDArg(v any, key string) (string, error) {
	switch id := v.(type) {
	case string:
		if id = strings.TrimSpace(id); id != "" {
			return id, nil
		}
	case float64:
		if id == math.Trunc(id) && id >= 1 && id <= math.MaxInt32 {
			return strconv.FormatInt(int64(id), 10), nil
		}
		return "", fmt.Errorf("%s must be a positive integer or string", key)
	}
	return "", fmt.Errorf("%s parameter is required", key)
}

// getIDsArg extracts a non-empty list of recipe ids.
func getIDsArg(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key].([]any)
	if !ok || len(raw) == 0 {
		return nil, fmt.Errorf("%s parameter is required", key)
	}
	if len(raw) > maxIDs {
		return nil, fmt.Errorf("too many ids: %d (max %d)", len(raw), maxIDs)
	}
	ids := make([]string, 0, len(raw))
	for i, v := range raw {
		id, err := getIDArg(v, fmt.Sprintf("%s[%d]", key, i))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *handlers) searchRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	ingredient, _ := args["ingredient"].(string)
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return mcp.NewToolResultError("ingredient parameter is required"), nil
	}

	meals, err := h.source.FilterByIngredient(ctx, ingredient)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	resp := struct {
		Ingredient string            `json:"ingredient"`
		Count      int               `json:"count"`
		Recipes    []recipes.Summary `json:"recipes"`
	}{
		Ingredient: ingredient,
		Count:      len(meals),
		Recipes:    recipes.NewSummaries(meals),
	}
	return jsonResult(resp)
}

func (h *handlers) getRecipe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := getIDArg(req.GetArguments()["id"], "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	meal, err := h.source.LookupMeal(ctx, id)
	if mealdb.IsNotFound(err) || (err == nil && meal == nil) {
		return mcp.NewToolResultError(fmt.Sprintf("recipe not found: %s", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get recipe failed: %v", err)), nil
	}

	return jsonResult(recipes.NewRecipe(meal))
}

func (h *handlers) getRecipes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := getIDsArg(req.GetArguments(), "ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	meals, err := h.source.LookupMeals(ctx, ids)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get recipes failed: %v", err)), nil
	}

	out := make([]recipes.Recipe, 0, len(meals))
	for _, m := range meals {
		out = append(out, recipes.NewRecipe(m))
	}
	return jsonResult(out)
}

func (h *handlers) popularIngredients(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	popular := h.popular
	if popular == nil {
		popular = []string{}
	}
	resp := struct {
		Ingredients []string `json:"ingredients"`
	}{Ingredients: popular}
	return jsonResult(resp)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
