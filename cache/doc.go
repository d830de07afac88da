// Package cache provides a generic, fixed-capacity LRU cache meant to sit in
// front of an expensive computation (memoization, query results).
//
// Design
//
//   - Storage: a map[K]*dlist.Node for lookups and an intrusive MRU↔LRU
//     doubly linked list (package dlist) for ordering. The map only aliases
//     nodes; the list owns them. All operations are O(1) expected.
//
//   - Policies: list ordering is driven through the policy package. LRU is
//     the default: Get and Put promote to MRU, a new key at full capacity
//     evicts the tail first.
//
//   - Invalidation: Delete and DeleteFunc drop entries whose backing data
//     changed. Deleting an absent key is not an error.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals.
//     By default NoopMetrics is used; plug the Prometheus adapter from
//     metrics/prom to export them.
//
//   - Callbacks: Options.OnEvict(k, v, reason) is called for every removal
//     (reason is EvictCapacity or EvictInvalidate).
//
// Basic usage
//
//	c, err := cache.New[string, int](cache.Options[string, int]{Capacity: 1024})
//	if err != nil {
//	    return err
//	}
//	c.Put("a", 1)
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Delete("a")
//
// Exporting metrics
//
//	m := prom.New(nil, "memocache", "demo", nil) // implements Metrics
//	c, _ := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Capacity: 10_000,
//	    Metrics:  m,
//	})
//
// Thread-safety
//
// A Cache is meant for single-goroutine use and does no locking. Callers
// that share one across goroutines must serialize access themselves.
package cache
