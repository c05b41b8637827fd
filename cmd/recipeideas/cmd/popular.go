package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var popularJSON bool

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List the popular ingredients shown as chips in the UI",
	Long: `List the popular ingredients. The list comes from [search] popular in
config.toml and falls back to a built-in set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if popularJSON {
			popular := cfg.Search.Popular
			if popular == nil {
				popular = []string{}
			}
			return writeJSON(out, struct {
				Ingredients []string `json:"ingredients"`
			}{popular})
		}
		for i, p := range cfg.Search.Popular {
			fmt.Fprintf(out, "%s  %s\n", chipKey(i), p)
		}
		return nil
	},
}

// chipKey is the UI key bound to the i-th chip, or blank past the tenth.
func chipKey(i int) string {
	switch {
	case i < 9:
		return fmt.Sprintf("%d", i+1)
	case i == 9:
		return "0"
	}
	return " "
}

func init() {
	rootCmd.AddCommand(popularCmd)
	popularCmd.Flags().BoolVar(&popularJSON, "json", false, "Output as JSON")
}
