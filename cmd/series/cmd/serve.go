package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dora-network/series-utils/config"
	"github.com/dora-network/series-utils/evaluator"
	"github.com/dora-network/series-utils/logger"
	"github.com/dora-network/series-utils/metrics"
	"github.com/dora-network/series-utils/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serves the evaluation HTTP API and Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := logger.Init(cfg.Log); err != nil {
		return err
	}
	defer logger.Close()
	logger.AddFieldsToGlobal(map[string]any{"version": cfg.Version})
	log := *logger.Global()

	instrumentation := metrics.NewSeriesInstrumentation("series")
	metricsSvr, err := metrics.StartMetricsServer(cfg.Metrics, instrumentation, log, cfg.Version)
	if err != nil {
		return err
	}

	e := evaluator.New(
		evaluator.WithMaxOrder(cfg.MaxOrder),
		evaluator.WithLogger(log),
		evaluator.WithInstrumentation(instrumentation),
	)
	api := server.New(cfg.HTTP, e, server.WithLogger(log), server.WithInstrumentation(instrumentation))
	if err := api.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := api.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to stop api server")
	}
	if cfg.Metrics.Enabled {
		if err := metricsSvr.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop metrics server")
		}
	}
	return nil
}
