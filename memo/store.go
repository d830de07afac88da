package memo

import (
	"cmp"

	"github.com/IvanBrykalov/memocache/splay"
)

// Store is the lookup surface memoized functions need.
// *cache.Cache satisfies it directly.
type Store[K comparable, V any] interface {
	Get(k K) (V, bool)
	Put(k K, v V)
}

// SplayStore adapts a splay tree to Store.
type SplayStore[K cmp.Ordered, V any] struct {
	tree *splay.Tree[K, V]
}

// NewSplayStore wraps t. A nil t gets a fresh empty tree.
func NewSplayStore[K cmp.Ordered, V any](t *splay.Tree[K, V]) *SplayStore[K, V] {
	if t == nil {
		t = splay.New[K, V]()
	}
	return &SplayStore[K, V]{tree: t}
}

// Get finds k, splaying it to the root on a hit.
func (s *SplayStore[K, V]) Get(k K) (V, bool) { return s.tree.Find(k) }

// Put inserts or overwrites k.
func (s *SplayStore[K, V]) Put(k K, v V) { s.tree.Insert(k, v) }

// Tree returns the underlying tree.
func (s *SplayStore[K, V]) Tree() *splay.Tree[K, V] { return s.tree }
