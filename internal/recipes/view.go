package recipes

import "github.com/wesm/recipeideas/internal/mealdb"

// Summary is the flattened form of a search hit used by JSON outputs
// (HTTP API, MCP tools, `search --json`).
type Summary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Recipe is the flattened form of a full record with derived ingredient lines.
type Recipe struct {
	Summary
	Area         string   `json:"area,omitempty"`
	Category     string   `json:"category,omitempty"`
	Tags         []string `json:"tags"`
	Instructions string   `json:"instructions,omitempty"`
	SourceURL    string   `json:"source_url,omitempty"`
	VideoURL     string   `json:"video_url,omitempty"`
	Ingredients  []string `json:"ingredients"`
}

func NewSummary(m mealdb.MealSummary) Summary {
	return Summary{ID: m.ID, Name: m.Name, ThumbnailURL: m.ThumbnailURL}
}

// NewSummaries converts a result list. The result is never nil so it
// encodes as an empty array.
func NewSummaries(meals []mealdb.MealSummary) []Summary {
	out := make([]Summary, 0, len(meals))
	for _, m := range meals {
		out = append(out, NewSummary(m))
	}
	return out
}

// NewRecipe converts a record. Tags and Ingredients are never nil.
func NewRecipe(d *mealdb.MealDetail) Recipe {
	tags := d.TagList()
	if tags == nil {
		tags = []string{}
	}
	ingredients := IngredientLines(d)
	if ingredients == nil {
		ingredients = []string{}
	}
	return Recipe{
		Summary:      NewSummary(d.Summary()),
		Area:         d.Area,
		Category:     d.Category,
		Tags:         tags,
		Instructions: d.Instructions,
		SourceURL:    d.SourceURL,
		VideoURL:     d.VideoURL,
		Ingredients:  ingredients,
	}
}
