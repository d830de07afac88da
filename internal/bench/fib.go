package bench

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/memocache/cache"
	"github.com/IvanBrykalov/memocache/internal/config"
	"github.com/IvanBrykalov/memocache/memo"
	"github.com/IvanBrykalov/memocache/splay"
)

// FibRow holds timings for one n. Cold is the first computation on an empty
// store; Warm is the mean over Repeat further calls on the filled store.
type FibRow struct {
	N              int     `json:"n" yaml:"n"`
	LRUColdSec     float64 `json:"lru_cold_sec" yaml:"lru_cold_sec"`
	SplayColdSec   float64 `json:"splay_cold_sec" yaml:"splay_cold_sec"`
	LRUWarmSec     float64 `json:"lru_warm_sec" yaml:"lru_warm_sec"`
	SplayWarmSec   float64 `json:"splay_warm_sec" yaml:"splay_warm_sec"`
	SplayRotations uint64  `json:"splay_rotations" yaml:"splay_rotations"`
	Digits         int     `json:"digits" yaml:"digits"`
}

// FibResult is the full Fibonacci comparison.
type FibResult struct {
	RunID     string   `json:"run_id" yaml:"run_id"`
	CacheSize int      `json:"cache_size" yaml:"cache_size"`
	Repeat    int      `json:"repeat" yaml:"repeat"`
	Rows      []FibRow `json:"rows" yaml:"rows"`

	LRUTotalSec   float64 `json:"lru_total_sec" yaml:"lru_total_sec"`
	SplayTotalSec float64 `json:"splay_total_sec" yaml:"splay_total_sec"`
	// Ratio is SplayTotalSec / LRUTotalSec over cold runs.
	Ratio  float64 `json:"ratio" yaml:"ratio"`
	Faster string  `json:"faster" yaml:"faster"`
}

// FibInputs returns 0, step, 2*step, ... up to maxN inclusive.
func FibInputs(maxN, step int) []int {
	if step <= 0 || maxN < 0 {
		return nil
	}
	ns := make([]int, 0, maxN/step+1)
	for n := 0; n <= maxN; n += step {
		ns = append(ns, n)
	}
	return ns
}

// FibCacheSize resolves the LRU capacity for a run: cfg.CacheSize when set,
// otherwise MaxN+1. Never below 3; with two slots the memoized recursion
// keeps evicting the operand it needs next and degrades to exponential time.
func FibCacheSize(cfg config.Fib) int {
	size := cfg.CacheSize
	if size == 0 {
		size = cfg.MaxN + 1
	}
	return max(size, 3)
}

// RunFib times memoized Fibonacci for every n in FibInputs, one trial per n,
// each with fresh stores. LRU and splay results must agree.
func RunFib(ctx context.Context, cfg config.Fib, opt Options) (*FibResult, error) {
	opt = opt.withDefaults()
	log := opt.Log.With(zap.String("run_id", opt.RunID), zap.String("bench", "fib"))

	ns := FibInputs(cfg.MaxN, cfg.Step)
	repeat := max(cfg.Repeat, 1)
	res := &FibResult{
		RunID:     opt.RunID,
		CacheSize: FibCacheSize(cfg),
		Repeat:    repeat,
		Rows:      make([]FibRow, len(ns)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opt.Parallel)
	for i, n := range ns {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, err := fibTrial(n, res.CacheSize, repeat, opt)
			if err != nil {
				return err
			}
			res.Rows[i] = row
			log.Debug("fib trial",
				zap.Int("n", n),
				zap.Float64("lru_cold_sec", row.LRUColdSec),
				zap.Float64("splay_cold_sec", row.SplayColdSec),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range res.Rows {
		res.LRUTotalSec += r.LRUColdSec
		res.SplayTotalSec += r.SplayColdSec
	}
	if res.LRUTotalSec > 0 {
		res.Ratio = res.SplayTotalSec / res.LRUTotalSec
	}
	res.Faster = "splay"
	if res.LRUTotalSec < res.SplayTotalSec {
		res.Faster = "lru"
	}
	log.Info("fib finished",
		zap.Int("trials", len(ns)),
		zap.String("faster", res.Faster),
		zap.Float64("ratio", res.Ratio),
	)
	return res, nil
}

func fibTrial(n, capacity, repeat int, opt Options) (FibRow, error) {
	lru, err := cache.New(cache.Options[int, *big.Int]{Capacity: capacity, Metrics: opt.LRUMetrics})
	if err != nil {
		return FibRow{}, err
	}
	var splayOpts []splay.Option
	if opt.SplayMetrics != nil {
		splayOpts = append(splayOpts, splay.WithMetrics(opt.SplayMetrics))
	}
	tree := memo.NewSplayStore(splay.New[int, *big.Int](splayOpts...))

	lruCold, lruWarm, a, err := timeFib(n, lru, repeat)
	if err != nil {
		return FibRow{}, err
	}
	splayCold, splayWarm, b, err := timeFib(n, tree, repeat)
	if err != nil {
		return FibRow{}, err
	}
	if a.Cmp(b) != 0 {
		return FibRow{}, fmt.Errorf("%w: fib(%d) differs between lru and splay", ErrMismatch, n)
	}

	return FibRow{
		N:              n,
		LRUColdSec:     lruCold.Seconds(),
		SplayColdSec:   splayCold.Seconds(),
		LRUWarmSec:     lruWarm.Seconds(),
		SplayWarmSec:   splayWarm.Seconds(),
		SplayRotations: tree.Tree().Rotations(),
		Digits:         len(a.String()),
	}, nil
}

// timeFib returns the cold duration, the mean warm duration and the value.
func timeFib(n int, s memo.Store[int, *big.Int], repeat int) (cold, warm time.Duration, v *big.Int, err error) {
	start := time.Now()
	if v, err = memo.Fibonacci(n, s); err != nil {
		return 0, 0, nil, err
	}
	cold = time.Since(start)

	start = time.Now()
	for i := 0; i < repeat; i++ {
		if _, err = memo.Fibonacci(n, s); err != nil {
			return 0, 0, nil, err
		}
	}
	warm = time.Since(start) / time.Duration(repeat)
	return cold, warm, v, nil
}
