package testutil

import (
	"github.com/wesm/recipeideas/internal/mealdb"
)

// MealDetailBuilder provides a fluent API for constructing mealdb.MealDetail in tests.
type MealDetailBuilder struct {
	d    mealdb.MealDetail
	next int // next free slot for WithIngredient
}

// NewMealDetail creates a builder with sensible defaults.
func NewMealDetail(id string) *MealDetailBuilder {
	return &MealDetailBuilder{
		d: mealdb.MealDetail{
			ID:           id,
			Name:         "Test Meal " + id,
			ThumbnailURL: "https://img.example/" + id + ".jpg",
		},
	}
}

func (b *MealDetailBuilder) WithName(n string) *MealDetailBuilder {
	b.d.Name = n
	return b
}

func (b *MealDetailBuilder) WithThumbnail(u string) *MealDetailBuilder {
	b.d.ThumbnailURL = u
	return b
}

func (b *MealDetailBuilder) WithArea(a string) *MealDetailBuilder {
	b.d.Area = a
	return b
}

func (b *MealDetailBuilder) WithCategory(c string) *MealDetailBuilder {
	b.d.Category = c
	return b
}

func (b *MealDetailBuilder) WithTags(tags string) *MealDetailBuilder {
	b.d.Tags = tags
	return b
}

func (b *MealDetailBuilder) WithInstructions(s string) *MealDetailBuilder {
	b.d.Instructions = s
	return b
}

func (b *MealDetailBuilder) WithSource(u string) *MealDetailBuilder {
	b.d.SourceURL = u
	return b
}

func (b *MealDetailBuilder) WithVideo(u string) *MealDetailBuilder {
	b.d.VideoURL = u
	return b
}

// WithIngredient fills the next unused slot. Extra calls past the last slot
// are ignored.
func (b *MealDetailBuilder) WithIngredient(ingredient, measure string) *MealDetailBuilder {
	if b.next < mealdb.SlotCount {
		b.d.Slots[b.next] = mealdb.Slot{Ingredient: ingredient, Measure: measure}
		b.next++
	}
	return b
}

// WithSlot sets slot n (1-based) directly, leaving gaps as they are.
func (b *MealDetailBuilder) WithSlot(n int, ingredient, measure string) *MealDetailBuilder {
	if n >= 1 && n <= mealdb.SlotCount {
		b.d.Slots[n-1] = mealdb.Slot{Ingredient: ingredient, Measure: measure}
		if n > b.next {
			b.next = n
		}
	}
	return b
}

// Build returns a fresh copy of the record.
func (b *MealDetailBuilder) Build() *mealdb.MealDetail {
	d := b.d
	return &d
}

// Summaries projects details to their list-view form, in order.
func Summaries(details ...*mealdb.MealDetail) []mealdb.MealSummary {
	out := make([]mealdb.MealSummary, len(details))
	for i, d := range details {
		out[i] = d.Summary()
	}
	return out
}
