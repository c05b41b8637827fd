package recipes

import (
	"strings"

	"github.com/wesm/recipeideas/internal/mealdb"
)

// IngredientLines pairs each populated ingredient slot with its measure, in
// slot order. Slots with a blank ingredient are skipped; a blank measure is
// omitted rather than padded.
func IngredientLines(d *mealdb.MealDetail) []string {
	if d == nil {
		return nil
	}
	var lines []string
	for _, slot := range d.Slots {
		ingredient := strings.TrimSpace(slot.Ingredient)
		if ingredient == "" {
			continue
		}
		line := strings.TrimSpace(strings.TrimSpace(slot.Measure) + " " + ingredient)
		lines = append(lines, line)
	}
	return lines
}
