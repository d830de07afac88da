// Package memo binds the cache structures to concrete computations.
//
// RangeSum caches sums over a mutable []int64 in an LRU cache keyed by the
// query bounds and purges every cached range that covers a written index.
// Fibonacci memoizes the recursive definition in any Store, such as an
// LRU cache or a splay tree (via SplayStore).
package memo
