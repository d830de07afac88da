// Package bench times the memoization structures against their baselines:
// cached versus uncached range sums, and Fibonacci memoized in an LRU cache
// versus a splay tree. Trials are independent and may run in parallel.
package bench

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/IvanBrykalov/memocache/cache"
	"github.com/IvanBrykalov/memocache/splay"
)

// ErrMismatch is returned when the structure under test disagrees with its
// baseline.
var ErrMismatch = errors.New("bench: result mismatch")

// Options wires logging, metrics and parallelism into a run.
// Zero values are usable.
type Options struct {
	Log      *zap.Logger
	Parallel int // concurrent trials; <= 0 means 1
	RunID    string

	CacheMetrics cache.Metrics // range-sum cache
	LRUMetrics   cache.Metrics // Fibonacci LRU stores
	SplayMetrics splay.Metrics // Fibonacci splay stores
}

func (o Options) withDefaults() Options {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Parallel <= 0 {
		o.Parallel = 1
	}
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	return o
}

// tally counts cache signals for the report and forwards them.
type tally struct {
	next                    cache.Metrics
	hits, misses, evictions uint64
}

func newTally(next cache.Metrics) *tally {
	if next == nil {
		next = cache.NoopMetrics{}
	}
	return &tally{next: next}
}

func (t *tally) Hit()  { t.hits++; t.next.Hit() }
func (t *tally) Miss() { t.misses++; t.next.Miss() }
func (t *tally) Evict(r cache.EvictReason) {
	t.evictions++
	t.next.Evict(r)
}
func (t *tally) Size(n int) { t.next.Size(n) }

func (t *tally) hitRate() float64 {
	if t.hits+t.misses == 0 {
		return 0
	}
	return float64(t.hits) / float64(t.hits+t.misses)
}
