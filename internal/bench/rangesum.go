package bench

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/memocache/cache"
	"github.com/IvanBrykalov/memocache/internal/config"
	"github.com/IvanBrykalov/memocache/internal/workload"
	"github.com/IvanBrykalov/memocache/memo"
)

// RangeSumResult compares replaying one workload with and without the cache.
type RangeSumResult struct {
	RunID     string `json:"run_id" yaml:"run_id"`
	Seed      int64  `json:"seed" yaml:"seed"`
	ArraySize int    `json:"array_size" yaml:"array_size"`
	Queries   int    `json:"queries" yaml:"queries"`
	Updates   int    `json:"updates" yaml:"updates"`
	Windows   int    `json:"windows" yaml:"windows"`
	CacheSize int    `json:"cache_size" yaml:"cache_size"`

	NoCacheSec   float64 `json:"no_cache_sec" yaml:"no_cache_sec"`
	WithCacheSec float64 `json:"with_cache_sec" yaml:"with_cache_sec"`
	Speedup      float64 `json:"speedup" yaml:"speedup"`

	Hits        uint64  `json:"hits" yaml:"hits"`
	Misses      uint64  `json:"misses" yaml:"misses"`
	HitRate     float64 `json:"hit_rate" yaml:"hit_rate"`
	Evictions   uint64  `json:"evictions" yaml:"evictions"`
	Invalidated int     `json:"invalidated" yaml:"invalidated"`
	Checksum    int64   `json:"checksum" yaml:"checksum"`
}

// RunRangeSum generates a workload from seed and replays it against an
// uncached Direct querier and a cached RangeSum. Both must return the same
// sums. With Parallel >= 2 the two replays overlap, which skews timings.
func RunRangeSum(ctx context.Context, cfg config.RangeSum, seed int64, opt Options) (*RangeSumResult, error) {
	opt = opt.withDefaults()
	log := opt.Log.With(zap.String("run_id", opt.RunID), zap.String("bench", "rangesum"))

	w, err := workload.Generate(workload.Spec{
		ArraySize:    cfg.ArraySize,
		Queries:      cfg.Queries,
		UpdateRatio:  cfg.UpdateRatio,
		UniqueRanges: cfg.UniqueRanges,
		MaxSpan:      cfg.MaxSpan,
	}, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	log.Info("workload generated",
		zap.Int("array_size", len(w.Data)),
		zap.Int("queries", len(w.Queries)),
		zap.Int("updates", w.Updates),
		zap.Int("windows", w.Windows),
	)

	t := newTally(opt.CacheMetrics)
	c, err := cache.New(cache.Options[memo.Range, int64]{Capacity: cfg.CacheSize, Metrics: t})
	if err != nil {
		return nil, err
	}
	direct := memo.NewDirect(w.Data, memo.WithComputeDelay(cfg.ComputeDelay))
	cached := memo.NewRangeSum(w.Data, c, memo.WithComputeDelay(cfg.ComputeDelay), memo.WithLogger(log))

	var (
		plain, fast replayResult
		g, gctx     = errgroup.WithContext(ctx)
	)
	g.SetLimit(opt.Parallel)
	g.Go(func() (err error) {
		plain, err = replay(gctx, direct, w.Queries, nil)
		return err
	})
	g.Go(func() (err error) {
		fast, err = replay(gctx, cached, w.Queries, cached.LastInvalidated)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if plain.checksum != fast.checksum {
		return nil, fmt.Errorf("%w: range sums %d (direct) vs %d (cached)", ErrMismatch, plain.checksum, fast.checksum)
	}

	res := &RangeSumResult{
		RunID:        opt.RunID,
		Seed:         seed,
		ArraySize:    len(w.Data),
		Queries:      len(w.Queries),
		Updates:      w.Updates,
		Windows:      w.Windows,
		CacheSize:    cfg.CacheSize,
		NoCacheSec:   plain.elapsed.Seconds(),
		WithCacheSec: fast.elapsed.Seconds(),
		Hits:         t.hits,
		Misses:       t.misses,
		HitRate:      t.hitRate(),
		Evictions:    t.evictions,
		Invalidated:  fast.invalidated,
		Checksum:     plain.checksum,
	}
	if fast.elapsed > 0 {
		res.Speedup = plain.elapsed.Seconds() / fast.elapsed.Seconds()
	}
	log.Info("rangesum finished",
		zap.Duration("no_cache", plain.elapsed),
		zap.Duration("with_cache", fast.elapsed),
		zap.Float64("hit_rate", res.HitRate),
		zap.Int("invalidated", res.Invalidated),
	)
	return res, nil
}

type replayResult struct {
	elapsed     time.Duration
	checksum    int64
	invalidated int
}

// ctxCheckEvery bounds how often replay polls the context.
const ctxCheckEvery = 1024

// replay runs qs against q. purged, when set, is read after every update.
func replay(ctx context.Context, q memo.Querier, qs []workload.Query, purged func() int) (replayResult, error) {
	var res replayResult
	start := time.Now()
	for i, op := range qs {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		switch op.Kind {
		case workload.KindRange:
			s, err := q.Sum(op.A, op.B)
			if err != nil {
				return res, err
			}
			res.checksum += s
		case workload.KindUpdate:
			if err := q.Update(op.A, int64(op.B)); err != nil {
				return res, err
			}
			if purged != nil {
				res.invalidated += purged()
			}
		}
	}
	res.elapsed = time.Since(start)
	return res, nil
}
