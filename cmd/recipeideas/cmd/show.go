package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wesm/recipeideas/internal/mealdb"
	"github.com/wesm/recipeideas/internal/recipes"
)

var showJSON bool

const (
	heavyRule = "═══════════════════════════════════════════════════════════════════════════════"
	lightRule = "───────────────────────────────────────────────────────────────────────────────"
)

var showCmd = &cobra.Command{
	Use:   "show <id> [id...]",
	Short: "Show full recipes by id",
	Long: `Show full recipes by id: ingredients with measures, instructions and links.

Ids come from 'recipeideas search'. Several ids are fetched in parallel and
printed in the order given.

Examples:
  recipeideas show 52772
  recipeideas show --json 52772 52795`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]string, 0, len(args))
		for _, a := range args {
			if id := strings.TrimSpace(a); id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return fmt.Errorf("no recipe ids given")
		}

		client, err := newClient(logger)
		if err != nil {
			return err
		}

		meals, err := client.LookupMeals(cmd.Context(), ids)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if showJSON {
			list := make([]recipes.Recipe, 0, len(meals))
			for _, m := range meals {
				list = append(list, recipes.NewRecipe(m))
			}
			if len(ids) == 1 {
				return writeJSON(out, list[0])
			}
			return writeJSON(out, list)
		}
		for _, m := range meals {
			outputRecipeText(out, m)
		}
		return nil
	},
}

func outputRecipeText(out io.Writer, m *mealdb.MealDetail) {
	name := m.Name
	if name == "" {
		name = "Recipe " + m.ID
	}

	fmt.Fprintln(out, heavyRule)
	fmt.Fprintf(out, "%s (id %s)\n", name, m.ID)
	fmt.Fprintln(out, lightRule)

	var meta []string
	for _, s := range []string{m.Area, m.Category} {
		if s != "" {
			meta = append(meta, s)
		}
	}
	if len(meta) > 0 {
		fmt.Fprintf(out, "Cuisine: %s\n", strings.Join(meta, " · "))
	}
	if tags := m.TagList(); len(tags) > 0 {
		fmt.Fprintf(out, "Tags:    %s\n", strings.Join(tags, ", "))
	}
	if m.SourceURL != "" {
		fmt.Fprintf(out, "Source:  %s\n", m.SourceURL)
	}
	if m.VideoURL != "" {
		fmt.Fprintf(out, "Video:   %s\n", m.VideoURL)
	}

	fmt.Fprintln(out, "\nIngredients:")
	lines := recipes.IngredientLines(m)
	if len(lines) == 0 {
		fmt.Fprintln(out, "  (none listed)")
	}
	for _, line := range lines {
		fmt.Fprintf(out, "  • %s\n", line)
	}

	fmt.Fprintln(out, "\nInstructions:")
	if instructions := strings.TrimSpace(m.Instructions); instructions != "" {
		fmt.Fprintln(out, instructions)
	} else {
		fmt.Fprintln(out, "(none provided)")
	}
	fmt.Fprintln(out, heavyRule)
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
}
