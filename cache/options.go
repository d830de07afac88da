package cache

import "github.com/IvanBrykalov/memocache/policy"

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictCapacity: the LRU tail was dropped to admit a new key.
	EvictCapacity EvictReason = iota
	// EvictInvalidate: removed by an explicit Delete (e.g., stale data).
	EvictInvalidate
)

// String returns a stable lowercase name, suitable as a metric label.
func (r EvictReason) String() string {
	switch r {
	case EvictInvalidate:
		return "invalidate"
	default:
		return "capacity"
	}
}

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// Options configures the cache behavior. Zero values are safe except
// Capacity, which must be positive. Defaults applied in New():
//   - nil Policy   => LRU
//   - nil Metrics  => NoopMetrics
type Options[K comparable, V any] struct {
	// Capacity is the entry count limit. Immutable after construction.
	Capacity int

	// Policy orders the recency list; nil => LRU.
	Policy policy.Policy[K, V]

	// OnEvict is called after an entry left the cache, either by capacity
	// eviction or by Delete. Keep callbacks lightweight and do not call
	// back into the cache from them.
	OnEvict func(k K, v V, reason EvictReason)

	Metrics Metrics
}
