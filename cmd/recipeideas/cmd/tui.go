package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/wesm/recipeideas/internal/tui"
)

var tuiIngredient string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal UI",
	Long: `Open an interactive terminal UI for finding recipes by ingredient.

The screen shows a search box, a row of popular ingredients and the
matching recipes. Opening a recipe shows its ingredients, measures and
instructions in a scrollable window.

Navigation:
  /           Edit the ingredient (Enter searches, Esc cancels)
  1-9, 0      Search a popular ingredient
  ↑/k, ↓/j    Move up/down
  PgUp/PgDn   Page up/down
  Enter       Open recipe
  Esc         Close recipe
  r           Retry after a failure
  ?           Help
  q           Quit

Logs are written to <home>/logs/recipeideas.log while the UI is open.`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return fmt.Errorf("the terminal UI needs an interactive terminal\n\n" +
			"Use 'recipeideas search <ingredient>' for plain output")
	}

	// The UI owns the terminal, so logs go to a file
	tuiLogger, closeLog, err := openLogFile()
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := newClient(tuiLogger)
	if err != nil {
		return err
	}

	ingredient := cfg.Search.DefaultIngredient
	if cmd.Flags().Changed("ingredient") {
		ingredient = strings.TrimSpace(tuiIngredient)
	}

	model := tui.New(client, tui.Options{
		Version:           Version,
		DefaultIngredient: ingredient,
		Popular:           cfg.Search.Popular,
		Logger:            tuiLogger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// openLogFile opens <home>/logs/recipeideas.log for appending and returns a
// logger writing to it.
func openLogFile() (*slog.Logger, func(), error) {
	if err := cfg.EnsureHomeDir(); err != nil {
		return nil, nil, fmt.Errorf("create home directory %s: %w", cfg.HomeDir, err)
	}
	dir := cfg.LogsDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, nil, fmt.Errorf("create logs directory: %w", err)
	}
	path := filepath.Join(dir, "recipeideas.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel()}))
	return l, func() { _ = f.Close() }, nil
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVarP(&tuiIngredient, "ingredient", "i", "", "ingredient to search on startup (default from config)")
}
