package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/order-dashboard/internal/export"
	"github.com/iwvelando/order-dashboard/internal/server"
	"github.com/iwvelando/order-dashboard/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	configPath string
	address    string
	logLevel   string
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the interactive order dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", constants.DefaultServerConfigFile, "path to server configuration file")
	flags.StringVar(&opts.address, "address", "", "listen address override, e.g. :8080")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	return cmd
}

func runServe(ctx context.Context, opts serveOptions) error {
	cfg, err := server.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load server configuration at %s: %w", opts.configPath, err)
	}
	if opts.address != "" {
		cfg.Address = opts.address
	}

	logger, err := initializeLogger(cfg.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	handler := server.NewHandler(logger, cfg.UploadSizeBytes(), version,
		server.WithChartOptions(export.ChartOptions{Width: cfg.Chart.Width, Height: cfg.Chart.Height}),
	)

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dashboard listening",
			zap.String("op", "main.runServe"),
			zap.String("address", cfg.Address),
			zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
			zap.String("version", version),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down",
		zap.String("op", "main.runServe"),
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
