package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/imagecraft/internal/config"
	"github.com/kiesman99/imagecraft/internal/kernel"
	"github.com/kiesman99/imagecraft/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for the image processing API",
	Long: `Start an HTTP server that applies filter chains to uploaded images.

Endpoints:
  GET  /api/v1/health
  POST /api/v1/process?filter=gs&filter=blur:1.5&format=png
  POST /api/v1/validate

Examples:
  # Start server on default port 8080
  imagecraft serve

  # Start server on custom port
  imagecraft serve --port 3000

  # Start server with custom bind address
  imagecraft serve --bind 0.0.0.0 --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server configuration
	serveCmd.Flags().StringP("bind", "b", config.DefaultBind, "bind address")
	serveCmd.Flags().IntP("port", "p", config.DefaultPort, "port to listen on")
	serveCmd.Flags().Duration("timeout", config.DefaultTimeout, "request timeout")
	serveCmd.Flags().Int64("max-body", config.DefaultMaxBodyBytes, "maximum upload size in bytes")

	// Bind flags to viper
	viper.BindPFlag("bind", serveCmd.Flags().Lookup("bind"))
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("timeout", serveCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("max_body_bytes", serveCmd.Flags().Lookup("max-body"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cmd.Context())
	if err != nil {
		return err
	}
	kernel.Workers = cfg.Workers

	addr := cfg.Addr()
	apiServer := server.NewServer(version, cfg.MaxBodyBytes)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.NewRouter(apiServer, cfg.Timeout),
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		slog.Info("Shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Starting imagecraft server",
		"addr", addr,
		"timeout", cfg.Timeout,
		"max_body", humanize.Bytes(uint64(cfg.MaxBodyBytes)),
		"workers", cfg.Workers)
	fmt.Fprintf(cmd.ErrOrStderr(), "Health check: http://%s/api/v1/health\n", addr)
	fmt.Fprintf(cmd.ErrOrStderr(), "Process endpoint: http://%s/api/v1/process\n", addr)

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
