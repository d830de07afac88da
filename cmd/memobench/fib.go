package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/IvanBrykalov/memocache/internal/bench"
	pmet "github.com/IvanBrykalov/memocache/metrics/prom"
)

func newFibCmd(a *app) *cobra.Command {
	var maxN, step, repeat, cacheSize int
	cmd := &cobra.Command{
		Use:   "fib",
		Short: "Time memoized Fibonacci over an LRU cache and a splay tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Fib
			fl := cmd.Flags()
			if fl.Changed("max-n") {
				cfg.MaxN = maxN
			}
			if fl.Changed("step") {
				cfg.Step = step
			}
			if fl.Changed("repeat") {
				cfg.Repeat = repeat
			}
			if fl.Changed("cache-size") {
				cfg.CacheSize = cacheSize
			}
			full := *a.cfg
			full.Fib = cfg
			if err := full.Validate(); err != nil {
				return err
			}

			ns := a.cfg.Metrics.Namespace
			opt := a.benchOptions()
			opt.LRUMetrics = pmet.New(a.reg, ns, "fib", prometheus.Labels{"structure": "lru"})
			opt.SplayMetrics = pmet.New(a.reg, ns, "fib", prometheus.Labels{"structure": "splay"})

			res, err := bench.RunFib(cmd.Context(), cfg, opt)
			if err != nil {
				a.log.Error("fib failed", zap.Error(err))
				return err
			}
			return a.render(cmd, bench.Report{Fib: res})
		},
	}
	cmd.Flags().IntVar(&maxN, "max-n", 0, "largest n")
	cmd.Flags().IntVar(&step, "step", 0, "distance between successive n")
	cmd.Flags().IntVar(&repeat, "repeat", 0, "warm calls averaged per n")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 0, "LRU capacity (0 = max-n+1, minimum 3)")
	return cmd
}
