package cache

import (
	"github.com/IvanBrykalov/memocache/dlist"
	"github.com/IvanBrykalov/memocache/policy"
)

// listHooks lends the cache's list to its policy. Every node a policy sees
// came from this cache, so the assertion cannot fail.
type listHooks[K comparable, V any] struct{ l *dlist.List[K, V] }

func (h listHooks[K, V]) PushFront(x policy.Node[K, V])   { h.l.PushNodeFront(x.(*dlist.Node[K, V])) }
func (h listHooks[K, V]) MoveToFront(x policy.Node[K, V]) { h.l.MoveToFront(x.(*dlist.Node[K, V])) }
func (h listHooks[K, V]) Remove(x policy.Node[K, V])      { h.l.Remove(x.(*dlist.Node[K, V])) }
