package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/wesm/recipeideas/internal/config"
	"github.com/wesm/recipeideas/internal/mealdb"
)

var (
	cfgFile string
	homeDir string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "recipeideas",
	Short: "Find recipes by ingredient",
	Long: `recipeideas searches TheMealDB for recipes that use an ingredient and
shows full recipes with their ingredient lists and instructions.

Run without a subcommand to open the interactive terminal UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" {
			return nil
		}

		// Set up logging
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: logLevel(),
		}))

		// Load config (--home is passed through so it influences
		// where config.toml is loaded from, like RECIPEIDEAS_HOME).
		var err error
		cfg, err = config.Load(cfgFile, homeDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
}

func logLevel() slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Execute runs the root command with a background context.
// Prefer ExecuteContext for signal-aware execution.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with the given context,
// enabling graceful shutdown when the context is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newClient builds a recipe API client from the loaded config.
func newClient(l *slog.Logger) (*mealdb.Client, error) {
	client, err := mealdb.New(mealdb.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.Timeout(),
		UserAgent: cfg.API.UserAgent,
	}, mealdb.WithLogger(l), mealdb.WithConcurrency(cfg.API.Concurrency))
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func init() {
	rootCmd.RunE = runTUI
	rootCmd.Flags().StringVarP(&tuiIngredient, "ingredient", "i", "", "ingredient to search on startup (default from config)")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.recipeideas/config.toml)")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "home directory (overrides RECIPEIDEAS_HOME)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
