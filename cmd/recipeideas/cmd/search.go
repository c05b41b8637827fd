package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/wesm/recipeideas/internal/mealdb"
	"github.com/wesm/recipeideas/internal/recipes"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <ingredient>",
	Short: "List recipes that use an ingredient",
	Long: `List recipes from TheMealDB that use an ingredient.

Arguments are joined with spaces, so multi-word ingredients need no quotes.

Examples:
  recipeideas search chicken
  recipeideas search soy sauce
  recipeideas search --json paneer`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ingredient := strings.TrimSpace(strings.Join(args, " "))
		if ingredient == "" {
			return fmt.Errorf("empty ingredient")
		}

		client, err := newClient(logger)
		if err != nil {
			return err
		}

		meals, err := client.FilterByIngredient(cmd.Context(), ingredient)
		if err != nil {
			return fmt.Errorf("search %q: %w", ingredient, err)
		}

		out := cmd.OutOrStdout()
		if searchJSON {
			return outputSearchResultsJSON(out, ingredient, meals)
		}
		if len(meals) == 0 {
			fmt.Fprintf(out, "No recipes found for %q.\n", ingredient)
			return nil
		}
		return outputSearchResultsTable(out, meals)
	},
}

func outputSearchResultsTable(out io.Writer, meals []mealdb.MealSummary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	fmt.Fprintln(w, "──\t────")
	for _, m := range meals {
		fmt.Fprintf(w, "%s\t%s\n", m.ID, truncate(m.Name, 60))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nShowing %d results\n", len(meals))
	return nil
}

func outputSearchResultsJSON(out io.Writer, ingredient string, meals []mealdb.MealSummary) error {
	resp := struct {
		Ingredient string            `json:"ingredient"`
		Count      int               `json:"count"`
		Recipes    []recipes.Summary `json:"recipes"`
	}{
		Ingredient: ingredient,
		Count:      len(meals),
		Recipes:    recipes.NewSummaries(meals),
	}
	return writeJSON(out, resp)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")
}
