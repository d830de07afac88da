// Package lru orders a cache list by recency of use.
package lru

import "github.com/IvanBrykalov/memocache/policy"

// New returns the least-recently-used ordering. Admissions, hits and
// overwrites all move the entry to the head, so the tail is the entry left
// untouched the longest, which is the one the cache evicts.
func New[K comparable, V any]() policy.Policy[K, V] { return factory[K, V]{} }

type factory[K comparable, V any] struct{}

func (factory[K, V]) New(h policy.Hooks[K, V]) policy.ListPolicy[K, V] {
	return recency[K, V]{h: h}
}

type recency[K comparable, V any] struct {
	h policy.Hooks[K, V]
}

func (r recency[K, V]) OnAdd(n policy.Node[K, V])    { r.h.PushFront(n) }
func (r recency[K, V]) OnGet(n policy.Node[K, V])    { r.h.MoveToFront(n) }
func (r recency[K, V]) OnUpdate(n policy.Node[K, V]) { r.h.MoveToFront(n) }

// OnRemove keeps no state to drop.
func (recency[K, V]) OnRemove(policy.Node[K, V]) {}
