package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/IvanBrykalov/memocache/internal/bench"
	pmet "github.com/IvanBrykalov/memocache/metrics/prom"
)

func newRangeSumCmd(a *app) *cobra.Command {
	var arraySize, queries, cacheSize int
	cmd := &cobra.Command{
		Use:   "rangesum",
		Short: "Time range-sum queries with and without an LRU cache",
		Long: `Generates a random array and a shuffled mix of point updates and
repeated range queries, then replays it against a plain summing loop and
against an LRU-cached one. An update invalidates every cached range that
covers the written index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.RangeSum
			fl := cmd.Flags()
			if fl.Changed("array-size") {
				cfg.ArraySize = arraySize
			}
			if fl.Changed("queries") {
				cfg.Queries = queries
			}
			if fl.Changed("cache-size") {
				cfg.CacheSize = cacheSize
			}
			full := *a.cfg
			full.RangeSum = cfg
			if err := full.Validate(); err != nil {
				return err
			}

			opt := a.benchOptions()
			opt.CacheMetrics = pmet.New(a.reg, a.cfg.Metrics.Namespace, "rangesum", nil)

			res, err := bench.RunRangeSum(cmd.Context(), cfg, a.cfg.Seed, opt)
			if err != nil {
				a.log.Error("rangesum failed", zap.Error(err))
				return err
			}
			return a.render(cmd, bench.Report{RangeSum: res})
		},
	}
	cmd.Flags().IntVar(&arraySize, "array-size", 0, "number of array elements")
	cmd.Flags().IntVar(&queries, "queries", 0, "number of queries (updates included)")
	cmd.Flags().IntVar(&cacheSize, "cache-size", 0, "LRU cache capacity")
	return cmd
}
