package mealdb

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SlotCount is the number of indexed ingredient/measure field pairs in a lookup record.
const SlotCount = 20

// MealSummary is one entry of a filter-by-ingredient response.
type MealSummary struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	ThumbnailURL string `json:"strMealThumb"`
}

// Slot is one strIngredientN/strMeasureN pair. Missing or null fields are empty.
type Slot struct {
	Ingredient string
	Measure    string
}

// MealDetail is a full lookup-by-id record. Optional fields are empty when
// the API returns null or omits them.
type MealDetail struct {
	ID           string
	Name         string
	ThumbnailURL string
	Area         string
	Category     string
	Tags         string // comma-separated, as delivered
	Instructions string
	SourceURL    string
	VideoURL     string
	Slots        [SlotCount]Slot
}

// TagList splits Tags on commas, trimming and dropping empty entries.
func (d *MealDetail) TagList() []string {
	if strings.TrimSpace(d.Tags) == "" {
		return nil
	}
	parts := strings.Split(d.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func ingredientKey(i int) string { return fmt.Sprintf("strIngredient%d", i) }
func measureKey(i int) string    { return fmt.Sprintf("strMeasure%d", i) }

// UnmarshalJSON decodes TheMealDB's flat record. Every field is a string or
// null; anything else is ignored rather than failing the whole record.
func (d *MealDetail) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("meal record is null")
	}
	str := func(key string) string {
		s, _ := raw[key].(string)
		return s
	}

	*d = MealDetail{
		ID:           str("idMeal"),
		Name:         str("strMeal"),
		ThumbnailURL: str("strMealThumb"),
		Area:         str("strArea"),
		Category:     str("strCategory"),
		Tags:         str("strTags"),
		Instructions: str("strInstructions"),
		SourceURL:    str("strSource"),
		VideoURL:     str("strYoutube"),
	}
	for i := range d.Slots {
		d.Slots[i] = Slot{
			Ingredient: str(ingredientKey(i + 1)),
			Measure:    str(measureKey(i + 1)),
		}
	}
	return nil
}

// MarshalJSON encodes the record in TheMealDB wire format, with empty
// optional fields written as null.
func (d MealDetail) MarshalJSON() ([]byte, error) {
	nullable := func(s string) any {
		if s == "" {
			return nil
		}
		return s
	}
	out := map[string]any{
		"idMeal":          d.ID,
		"strMeal":         d.Name,
		"strMealThumb":    d.ThumbnailURL,
		"strArea":         nullable(d.Area),
		"strCategory":     nullable(d.Category),
		"strTags":         nullable(d.Tags),
		"strInstructions": nullable(d.Instructions),
		"strSource":       nullable(d.SourceURL),
		"strYoutube":      nullable(d.VideoURL),
	}
	for i, s := range d.Slots {
		out[ingredientKey(i+1)] = nullable(s.Ingredient)
		out[measureKey(i+1)] = nullable(s.Measure)
	}
	return json.Marshal(out)
}

// Summary returns the list-view projection of the record.
func (d *MealDetail) Summary() MealSummary {
	return MealSummary{ID: d.ID, Name: d.Name, ThumbnailURL: d.ThumbnailURL}
}
