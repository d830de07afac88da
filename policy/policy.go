// Package policy decouples list ordering from the cache that owns the list.
//
// A cache keeps its own key index and hands each entry's list node to a
// ListPolicy on admission, hit, overwrite and removal. The policy reorders
// the list only through Hooks, whose operations are all O(1).
package policy

// Node is the view of a cache entry a policy receives.
// Value returns a pointer so the entry can be rewritten without relinking.
type Node[K comparable, V any] interface {
	Key() K
	Value() *V
}

// Hooks are the list operations a cache lends to its policy.
// They never touch the cache index.
type Hooks[K comparable, V any] interface {
	PushFront(Node[K, V])   // link a new node at the head
	MoveToFront(Node[K, V]) // relink a linked node at the head
	Remove(Node[K, V])      // unlink a node
}

// ListPolicy reacts to entry events of one cache. OnRemove runs before the
// cache unlinks the node itself.
type ListPolicy[K comparable, V any] interface {
	OnAdd(Node[K, V])
	OnGet(Node[K, V])
	OnUpdate(Node[K, V])
	OnRemove(Node[K, V])
}

// Policy creates a ListPolicy bound to a cache's Hooks. A Policy value may
// be shared by several caches; each gets its own ListPolicy.
type Policy[K comparable, V any] interface {
	New(Hooks[K, V]) ListPolicy[K, V]
}
