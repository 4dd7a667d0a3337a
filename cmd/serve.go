package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/repograde/internal/iocache"
	"github.com/huangsam/repograde/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultMemoryCacheSize bounds the in-memory layer in front of the SQL cache.
const defaultMemoryCacheSize = 256

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assessment API over HTTP.",
	Long: `Start an HTTP server exposing the assessment pipeline.

Endpoints:
  POST /api/analyze  body {"repoUrl": "https://github.com/owner/repo"}
  GET  /healthz

Repository data is cached in memory in front of the configured cache backend.
The server shuts down gracefully on SIGINT or SIGTERM.

Examples:
  # Listen on the default :8080
  repograde serve

  # Custom address without persistent cache
  repograde serve --addr 127.0.0.1:9000 --cache-backend none`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

		if size := viper.GetInt("memory-cache-size"); size > 0 {
			if err := iocache.EnableMemoryLayer(size); err != nil {
				return fmt.Errorf("failed to enable memory cache: %w", err)
			}
		}

		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		handler := server.NewHandler(cfg, newFetcher(logger), cacheManager, logger)
		return server.New(cfg.Addr, handler, logger).Run(ctx)
	},
}
