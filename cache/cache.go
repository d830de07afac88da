package cache

import (
	"errors"
	"fmt"

	"github.com/IvanBrykalov/memocache/dlist"
	"github.com/IvanBrykalov/memocache/policy"
	"github.com/IvanBrykalov/memocache/policy/lru"
)

// ErrInvalidCapacity is returned by New when Options.Capacity is not positive.
var ErrInvalidCapacity = errors.New("cache: capacity must be > 0")

// Cache is a fixed-capacity in-memory KV store: a hash index over an
// intrusive MRU↔LRU list. It is not safe for concurrent use.
//
// Invariant: every key in index names exactly one node in list and every
// node in list is indexed, so len(index) == list.Len() <= capacity.
type Cache[K comparable, V any] struct {
	index map[K]*dlist.Node[K, V] // lookup alias; list owns the nodes
	list  *dlist.List[K, V]       // head is MRU, tail is LRU
	cap   int

	pol policy.ListPolicy[K, V]
	opt Options[K, V]
}

// New constructs a cache with the provided Options.
// A non-positive Capacity is rejected with ErrInvalidCapacity.
func New[K comparable, V any](opt Options[K, V]) (*Cache[K, V], error) {
	if opt.Capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, opt.Capacity)
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = lru.New[K, V]()
	}

	c := &Cache[K, V]{
		index: make(map[K]*dlist.Node[K, V], opt.Capacity),
		list:  dlist.New[K, V](),
		cap:   opt.Capacity,
		opt:   opt,
	}
	c.pol = opt.Policy.New(listHooks[K, V]{l: c.list})
	return c, nil
}

// Get returns the value for k and a presence flag.
// On hit, the entry is promoted according to the policy; a miss leaves the
// order untouched.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	n, ok := c.index[k]
	if !ok {
		c.opt.Metrics.Miss()
		var zero V
		return zero, false
	}
	c.pol.OnGet(n)
	c.opt.Metrics.Hit()
	return *n.Value(), true
}

// Put inserts or updates k→v.
// An existing entry is overwritten in place and promoted. A new entry at
// full capacity first evicts the current LRU tail.
func (c *Cache[K, V]) Put(k K, v V) {
	if n, ok := c.index[k]; ok {
		*n.Value() = v
		c.pol.OnUpdate(n)
		return
	}

	if len(c.index) >= c.cap {
		c.evictOldest()
	}

	n := dlist.NewNode(k, v)
	c.index[k] = n
	c.pol.OnAdd(n)
	c.opt.Metrics.Size(len(c.index))
}

// Delete removes k if present and reports whether it was.
// Deleting an absent key is a no-op.
func (c *Cache[K, V]) Delete(k K) bool {
	n, ok := c.index[k]
	if !ok {
		return false
	}
	c.pol.OnRemove(n)
	c.list.Remove(n)
	delete(c.index, k)
	c.evicted(n, EvictInvalidate)
	return true
}

// DeleteFunc deletes every entry for which pred returns true and returns
// how many were removed. Matching keys are collected before any deletion.
func (c *Cache[K, V]) DeleteFunc(pred func(k K, v V) bool) int {
	var doomed []K
	for n := c.list.Front(); n != nil; n = n.Next() {
		if pred(n.Key(), *n.Value()) {
			doomed = append(doomed, n.Key())
		}
	}
	for _, k := range doomed {
		c.Delete(k)
	}
	return len(doomed)
}

// Peek returns the value for k without promoting it or touching metrics.
func (c *Cache[K, V]) Peek(k K) (V, bool) {
	if n, ok := c.index[k]; ok {
		return *n.Value(), true
	}
	var zero V
	return zero, false
}

// Contains reports whether k is resident, without promoting it.
func (c *Cache[K, V]) Contains(k K) bool {
	_, ok := c.index[k]
	return ok
}

// Keys returns resident keys in MRU -> LRU order.
func (c *Cache[K, V]) Keys() []K {
	out := make([]K, 0, c.list.Len())
	for n := c.list.Front(); n != nil; n = n.Next() {
		out = append(out, n.Key())
	}
	return out
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int { return len(c.index) }

// Cap returns the configured capacity.
func (c *Cache[K, V]) Cap() int { return c.cap }

// Purge drops every entry without invoking OnEvict.
func (c *Cache[K, V]) Purge() {
	clear(c.index)
	c.list.Init()
	c.opt.Metrics.Size(0)
}

// -------------------- internals --------------------

// evictOldest drops the LRU tail from both the list and the index.
func (c *Cache[K, V]) evictOldest() {
	tail := c.list.Back()
	if tail == nil {
		return
	}
	c.pol.OnRemove(tail)
	c.list.RemoveLast()
	delete(c.index, tail.Key())
	c.evicted(tail, EvictCapacity)
}

// evicted reports a removed node to metrics and the OnEvict callback.
func (c *Cache[K, V]) evicted(n *dlist.Node[K, V], reason EvictReason) {
	c.opt.Metrics.Evict(reason)
	c.opt.Metrics.Size(len(c.index))
	if cb := c.opt.OnEvict; cb != nil {
		cb(n.Key(), *n.Value(), reason)
	}
}
