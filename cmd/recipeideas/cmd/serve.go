package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/wesm/recipeideas/internal/api"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run a read-only HTTP API in the foreground that proxies recipe search
and lookup.

Endpoints:
  GET /health
  GET /api/v1/popular
  GET /api/v1/recipes?ingredient=<name>
  GET /api/v1/recipes/{id}

Configure in config.toml:
  [server]
  api_port = 8080
  bind_addr = "127.0.0.1"
  api_key = "..."          # required when bind_addr is not loopback

Use Ctrl+C to stop the server gracefully.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "API port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if servePort != 0 {
		cfg.Server.APIPort = servePort
	}

	// Validate security posture before doing any work
	if err := cfg.Server.ValidateSecure(); err != nil {
		return err
	}

	client, err := newClient(logger)
	if err != nil {
		return err
	}

	apiServer := api.NewServer(cfg, client, logger)

	serverErr := make(chan error, 1)
	go func() {
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "recipeideas API started\n")
	fmt.Fprintf(out, "  API server: http://%s\n", apiServer.Addr())
	fmt.Fprintf(out, "  Upstream:   %s\n", client.BaseURL())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Press Ctrl+C to stop.")

	// Wait for shutdown signal or server error
	var runErr error
	select {
	case <-cmd.Context().Done():
		logger.Info("context cancelled")
	case err := <-serverErr:
		logger.Error("API server error", "error", err)
		runErr = fmt.Errorf("api server: %w", err)
	}

	fmt.Fprintln(out, "Shutting down API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server shutdown error", "error", err)
	}
	return runErr
}
