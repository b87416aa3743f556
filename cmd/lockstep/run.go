package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/lockstep"
	"github.com/aretw0/lockstep/internal/presentation/tui"
	httpAdapter "github.com/aretw0/lockstep/pkg/adapters/http"
	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/aretw0/lockstep/pkg/observability"
	"github.com/aretw0/lockstep/pkg/parking"
	"github.com/aretw0/lockstep/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the parking garage",
	Long: `Connects to the configured transport and runs the parking garage configuration
until interrupted or until a tick faults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGarage(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("transport", "", "Transport to use (mqtt, redis, memory)")
	runCmd.Flags().Duration("tick", 0, "Tick interval (overrides tick_interval_ms)")
	runCmd.Flags().Int("total-spaces", 0, "Number of parking spaces")
	runCmd.Flags().String("metrics-addr", "", "Address of the introspection HTTP server (empty disables it)")
	runCmd.Flags().Uint64("max-ticks", 0, "Stop after this many ticks (0 runs forever)")
	runCmd.Flags().Bool("no-banner", false, "Do not print the startup banner")
}

func runGarage(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	if noBanner, _ := cmd.Flags().GetBool("no-banner"); !noBanner {
		tui.PrintBanner(cmd.ErrOrStderr())
	}

	sm := runner.NewSignalManager(cmd.Context())
	defer sm.Stop()
	ctx := sm.Context()

	transport, err := dialTransport(ctx, cfg)
	if err != nil {
		return err
	}
	defer transport.Close()
	logger.Info("transport connected", "transport", cfg.Transport)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)
	logDrop := observability.LogDrop(logger)

	app, err := parking.NewApp(transport, cfg.TotalSpaces, bridgeOptions(logger, func(ctx context.Context, e *domain.DropEvent) {
		metrics.Drop(ctx, e)
		logDrop(ctx, e)
	})...)
	if err != nil {
		return err
	}

	eng, err := lockstep.New(app.Configuration(),
		lockstep.WithName("parking"),
		lockstep.WithLogger(logger),
		lockstep.WithLifecycleHooks(metrics.Hooks()),
		lockstep.WithLifecycleHooks(observability.Logging(logger)),
	)
	if err != nil {
		return err
	}

	maxTicks, _ := cmd.Flags().GetUint64("max-ticks")
	r := runner.NewRunner(
		runner.WithEngine(eng, app.Starts()...),
		runner.WithLogger(logger),
		runner.WithInterval(cfg.TickInterval()),
		runner.WithOverrunHook(metrics.Overrun),
		runner.WithMaxTicks(maxTicks),
	)
	if err := r.Init(); err != nil {
		return err
	}
	if err := app.Subscribe(ctx); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           httpAdapter.NewHandler(app.Configuration(), r, reg, logger),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("introspection server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("introspection server failed", "error", err)
			}
		}()
		defer func() {
			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				_ = srv.Close()
			}
		}()
	}

	logger.Info("garage running",
		"run_id", r.RunID(),
		"total_spaces", cfg.TotalSpaces,
		"interval", cfg.TickInterval(),
	)
	return r.Run(ctx)
}
