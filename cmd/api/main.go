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

	"github.com/spf13/cobra"

	"restaurant/pkg/api"
	"restaurant/pkg/config"
	"restaurant/pkg/logger"
	"restaurant/pkg/order/memory"
	"restaurant/pkg/otel"
)

// @title Restaurant Orders API
// @version 1.0
// @description Tracks the items currently ordered for each restaurant table.
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile  string
		addr     string
		logLevel string
	)
	cmd := &cobra.Command{
		Use:           "restaurant-api",
		Short:         "Serve the restaurant table order API",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if logLevel != "" {
				if cfg.LogLevel, err = logger.ParseLevel(logLevel); err != nil {
					return err
				}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to seed the environment from")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ORDERS_ADDR)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.ServiceName, otel.GetTraceID)
	defer log.Sync()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.ServiceName,
		Host:        cfg.OtelHost,
		Probability: cfg.OtelSampleRate,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdown(context.Background())

	store := memory.New()
	handler := api.New(store, log, tp.Tracer(cfg.ServiceName))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error(ctx, "server closed", "error", err)
		return err
	case <-ctx.Done():
		log.Info(context.Background(), "shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
