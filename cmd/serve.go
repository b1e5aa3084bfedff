package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lehigh-university-libraries/entryeval/internal/config"
	"github.com/lehigh-university-libraries/entryeval/internal/handlers"
	"github.com/lehigh-university-libraries/entryeval/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       string
		dbPath     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the review API",
		Long: `Starts the review API on the specified port.

The API lists stored evaluation runs, serves their summaries and single rows
with per-field edit distances, and can evaluate the configured inputs on
request. Prometheus metrics are served on /metrics.`,
		Example: `  # Start server on default port 8888
  entryeval serve

  # Start server on custom port with a different database
  entryeval serve --port 3000 --db /var/lib/entryeval/runs.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("db") || cfg.DB == "" {
				cfg.DB = dbPath
			}

			store, err := storage.Open(cfg.DB)
			if err != nil {
				return err
			}
			defer store.Close()

			gin.SetMode(gin.ReleaseMode)
			handler := handlers.New(store, cfg, slog.Default())

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:    addr,
				Handler: handler.Router(),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Review API available", "addr", addr, "url", "http://localhost"+addr, "db", cfg.DB)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&dbPath, "db", "data/entryeval.db", "SQLite database of stored runs")

	return cmd
}
