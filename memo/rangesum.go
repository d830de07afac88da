package memo

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/IvanBrykalov/memocache/cache"
)

// ErrOutOfRange is returned for bounds outside the array or with L > R.
var ErrOutOfRange = errors.New("memo: index out of range")

// Range is an inclusive [L, R] query window. It doubles as the cache key.
type Range struct {
	L, R int
}

// Covers reports whether i lies inside the window.
func (r Range) Covers(i int) bool { return r.L <= i && i <= r.R }

func (r Range) String() string { return fmt.Sprintf("range_%d_%d", r.L, r.R) }

// Querier answers range-sum queries over a mutable array.
type Querier interface {
	Sum(l, r int) (int64, error)
	Update(index int, value int64) error
	Len() int
}

// Option tunes a Querier.
type Option func(*querierOpts)

type querierOpts struct {
	log   *zap.Logger
	delay time.Duration
}

// WithLogger sets the logger used for invalidation events (debug level).
func WithLogger(l *zap.Logger) Option {
	return func(o *querierOpts) {
		if l != nil {
			o.log = l
		}
	}
}

// WithComputeDelay adds a fixed pause to every computed (uncached) sum,
// standing in for an expensive aggregate.
func WithComputeDelay(d time.Duration) Option {
	return func(o *querierOpts) { o.delay = d }
}

func buildOpts(opts []Option) querierOpts {
	o := querierOpts{log: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// arraySum holds the array and the uncached computation shared by both
// Querier implementations.
type arraySum struct {
	data  []int64
	delay time.Duration
}

func (a *arraySum) Len() int { return len(a.data) }

func (a *arraySum) checkRange(l, r int) error {
	if l < 0 || r >= len(a.data) || l > r {
		return fmt.Errorf("sum [%d, %d] over %d elements: %w", l, r, len(a.data), ErrOutOfRange)
	}
	return nil
}

func (a *arraySum) checkIndex(i int) error {
	if i < 0 || i >= len(a.data) {
		return fmt.Errorf("update index %d over %d elements: %w", i, len(a.data), ErrOutOfRange)
	}
	return nil
}

func (a *arraySum) compute(l, r int) int64 {
	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	var s int64
	for _, v := range a.data[l : r+1] {
		s += v
	}
	return s
}

// Direct recomputes every query. It is the baseline for RangeSum.
type Direct struct {
	arraySum
}

// NewDirect copies data and returns an uncached Querier over it.
func NewDirect(data []int64, opts ...Option) *Direct {
	o := buildOpts(opts)
	return &Direct{arraySum{data: slices.Clone(data), delay: o.delay}}
}

// Sum returns data[l] + ... + data[r].
func (d *Direct) Sum(l, r int) (int64, error) {
	if err := d.checkRange(l, r); err != nil {
		return 0, err
	}
	return d.compute(l, r), nil
}

// Update sets data[index] = value.
func (d *Direct) Update(index int, value int64) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.data[index] = value
	return nil
}

// RangeSum serves sums from an LRU cache keyed by Range.
//
// Invalidation is coarse: a write to index i deletes every cached range
// with L <= i <= R instead of patching the cached sums.
type RangeSum struct {
	arraySum
	cache *cache.Cache[Range, int64]
	log   *zap.Logger

	lastInvalidated int
}

// NewRangeSum copies data and caches its range sums in c, which must be
// non-nil and should be used by this RangeSum only.
func NewRangeSum(data []int64, c *cache.Cache[Range, int64], opts ...Option) *RangeSum {
	o := buildOpts(opts)
	return &RangeSum{
		arraySum: arraySum{data: slices.Clone(data), delay: o.delay},
		cache:    c,
		log:      o.log,
	}
}

// Sum returns data[l] + ... + data[r], computing and caching it on a miss.
func (q *RangeSum) Sum(l, r int) (int64, error) {
	if err := q.checkRange(l, r); err != nil {
		return 0, err
	}
	key := Range{L: l, R: r}
	if v, ok := q.cache.Get(key); ok {
		return v, nil
	}
	v := q.compute(l, r)
	q.cache.Put(key, v)
	return v, nil
}

// Update sets data[index] = value and deletes every cached range covering index.
func (q *RangeSum) Update(index int, value int64) error {
	if err := q.checkIndex(index); err != nil {
		return err
	}
	q.data[index] = value

	n := q.cache.DeleteFunc(func(k Range, _ int64) bool { return k.Covers(index) })
	q.lastInvalidated = n
	if n > 0 {
		q.log.Debug("range sums invalidated",
			zap.Int("index", index),
			zap.Int("purged", n),
			zap.Int("resident", q.cache.Len()),
		)
	}
	return nil
}

// LastInvalidated returns how many cached ranges the latest Update purged.
func (q *RangeSum) LastInvalidated() int { return q.lastInvalidated }

// Cache returns the backing cache.
func (q *RangeSum) Cache() *cache.Cache[Range, int64] { return q.cache }

var (
	_ Querier = (*Direct)(nil)
	_ Querier = (*RangeSum)(nil)
)
