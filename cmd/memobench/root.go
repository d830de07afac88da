package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/IvanBrykalov/memocache/internal/bench"
	"github.com/IvanBrykalov/memocache/internal/config"
	"github.com/IvanBrykalov/memocache/internal/logger"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfgFile     string
	logLevel    string
	format      string
	metricsAddr string
	seed        int64
	parallel    int

	cfg   *config.Config
	log   *zap.Logger
	reg   *prometheus.Registry
	srv   *http.Server
	runID string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "memobench",
		Short:         "Benchmark LRU and splay-tree memoization",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML config file (default: conf/memobench.yaml when present)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug | info | warn | error")
	pf.StringVar(&a.format, "format", "", "report format: table | json | yaml")
	pf.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus /metrics at addr (e.g. :9090)")
	pf.Int64Var(&a.seed, "seed", 0, "workload seed")
	pf.IntVar(&a.parallel, "parallel", 0, "concurrent trials")

	root.AddCommand(newRangeSumCmd(a), newFibCmd(a))
	return root
}

// setup loads config, applies flags, builds the logger and starts the
// metrics endpoint. Flags override every config layer.
func (a *app) setup(cmd *cobra.Command) error {
	boot, err := logger.New(logger.Options{Level: a.logLevel, Out: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(boot)

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		boot.Error("config load failed", zap.Error(err))
		return err
	}

	fl := cmd.Flags()
	if fl.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if fl.Changed("format") {
		cfg.Report.Format = a.format
	}
	if fl.Changed("metrics-addr") {
		cfg.Metrics.Addr = a.metricsAddr
	}
	if fl.Changed("seed") {
		cfg.Seed = a.seed
	}
	if fl.Changed("parallel") {
		cfg.Parallel = a.parallel
	}
	if err := cfg.Validate(); err != nil {
		boot.Error("invalid flags", zap.Error(err))
		return err
	}
	a.cfg = cfg

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Out:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.runID = uuid.NewString()
	a.log = log.With(zap.String("cmd", cmd.Name()))
	zap.ReplaceGlobals(log)

	a.reg = prometheus.NewRegistry()
	a.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if cfg.Metrics.Addr != "" {
		a.serveMetrics(cfg.Metrics.Addr)
	}
	return nil
}

func (a *app) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.reg, promhttp.HandlerOpts{Registry: a.reg}))
	a.srv = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		a.log.Info("metrics: serving", zap.String("addr", addr))
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics: server stopped", zap.Error(err))
		}
	}()
}

func (a *app) teardown(ctx context.Context) error {
	if a.srv != nil {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(sctx); err != nil {
			a.log.Warn("metrics: shutdown", zap.Error(err))
		}
	}
	if a.log != nil {
		_ = a.log.Sync() // stderr sync fails on some platforms
	}
	return nil
}

func (a *app) benchOptions() bench.Options {
	return bench.Options{
		Log:      a.log,
		Parallel: a.cfg.Parallel,
		RunID:    a.runID,
	}
}

func (a *app) render(cmd *cobra.Command, r bench.Report) error {
	if err := bench.Render(cmd.OutOrStdout(), a.cfg.Report.Format, r); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
