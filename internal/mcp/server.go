// Package mcp exposes recipe search and lookup as Model Context Protocol tools.
package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wesm/recipeideas/internal/mealdb"
)

// Tool name constants.
const (
	ToolSearchRecipes      = "search_recipes"
	ToolGetRecipe          = "get_recipe"
	ToolGetRecipes         = "get_recipes"
	ToolPopularIngredients = "popular_ingredients"
)

// RecipeSource is the recipe backend the tools read from.
// *mealdb.Client satisfies it.
type RecipeSource interface {
	FilterByIngredient(ctx context.Context, ingredient string) ([]mealdb.MealSummary, error)
	LookupMeal(ctx context.Context, id string) (*mealdb.MealDetail, error)
	LookupMeals(ctx context.Context, ids []string) ([]*mealdb.MealDetail, error)
}

// NewServer creates an MCP server with the recipe tools registered.
func NewServer(source RecipeSource, popular []string, version string) *server.MCPServer {
	if version == "" {
		version = "dev"
	}
	s := server.NewMCPServer(
		"recipeideas",
		version,
		server.WithToolCapabilities(false),
	)

	h := &handlers{source: source, popular: popular}

	s.AddTool(searchRecipesTool(), h.searchRecipes)
	s.AddTool(getRecipeTool(), h.getRecipe)
	s.AddTool(getRecipesTool(), h.getRecipes)
	s.AddTool(popularIngredientsTool(), h.popularIngredients)
	return s
}

// Serve creates an MCP server with recipe tools and serves over stdio.
// It blocks until stdin is closed or the context is cancelled.
func Serve(ctx context.Context, source RecipeSource, popular []string, version string) error {
	stdio := server.NewStdioServer(NewServer(source, popular, version))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func searchRecipesTool() mcp.Tool {
	return mcp.NewTool(ToolSearchRecipes,
		mcp.WithDescription("Find recipes (TheMealDB) that use an ingredient. Returns id, name and thumbnail for each match."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("ingredient",
			mcp.Required(),
			mcp.Description("Ingredient name, e.g. 'chicken' or 'soy sauce'"),
		),
	)
}

func getRecipeTool() mcp.Tool {
	return mcp.NewTool(ToolGetRecipe,
		mcp.WithDescription("Get a full recipe by id: area, category, tags, ingredient lines with measures, instructions and links."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Recipe id from search_recipes (e.g. '52772')"),
		),
	)
}

func getRecipesTool() mcp.Tool {
	return mcp.NewTool(ToolGetRecipes,
		mcp.WithDescription("Get several full recipes by id in one call. Results keep the order of ids."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithArray("ids",
			mcp.Required(),
			mcp.Description("Recipe ids from search_recipes"),
			mcp.WithStringItems(),
		),
	)
}

func popularIngredientsTool() mcp.Tool {
	return mcp.NewTool(ToolPopularIngredients,
		mcp.WithDescription("List the configured popular ingredients, useful as search suggestions."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}
