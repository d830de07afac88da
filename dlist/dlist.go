// Package dlist implements an intrusive, generic doubly linked list.
//
// The list is ordered head (most recently pushed) to tail (least recently
// pushed). All operations are O(1). A List is not safe for concurrent use.
package dlist

// Node is a list element carrying a key/value pair alongside its links.
// Nodes are owned by the List they were pushed into.
type Node[K comparable, V any] struct {
	key K
	val V

	prev *Node[K, V]
	next *Node[K, V]
}

// NewNode allocates an unlinked node for k→v.
func NewNode[K comparable, V any](k K, v V) *Node[K, V] {
	return &Node[K, V]{key: k, val: v}
}

// Key returns the node key (part of policy.Node).
func (n *Node[K, V]) Key() K { return n.key }

// Value returns a pointer to the stored value (part of policy.Node).
// Writing through it updates the node in place without re-linking.
func (n *Node[K, V]) Value() *V { return &n.val }

// Next returns the neighbour towards the tail, or nil.
func (n *Node[K, V]) Next() *Node[K, V] { return n.next }

// Prev returns the neighbour towards the head, or nil.
func (n *Node[K, V]) Prev() *Node[K, V] { return n.prev }

// List is a doubly linked list. The zero value is an empty list ready to use.
//
// Invariant: head == nil iff tail == nil, and walking next from head visits
// exactly the reverse of walking prev from tail.
type List[K comparable, V any] struct {
	head *Node[K, V]
	tail *Node[K, V]
	len  int
}

// New returns an empty list.
func New[K comparable, V any]() *List[K, V] { return &List[K, V]{} }

// Len returns the number of linked nodes.
func (l *List[K, V]) Len() int { return l.len }

// Front returns the head node, or nil when the list is empty.
func (l *List[K, V]) Front() *Node[K, V] { return l.head }

// Back returns the tail node, or nil when the list is empty.
func (l *List[K, V]) Back() *Node[K, V] { return l.tail }

// PushFront allocates a node for k→v and links it before the head.
func (l *List[K, V]) PushFront(k K, v V) *Node[K, V] {
	n := NewNode(k, v)
	l.PushNodeFront(n)
	return n
}

// PushNodeFront links an unlinked node before the head.
func (l *List[K, V]) PushNodeFront(n *Node[K, V]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.len++
}

// Remove unlinks n, repairing its neighbours and head/tail, and clears n's links.
// n must currently belong to l; this is not checked.
func (l *List[K, V]) Remove(n *Node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.len--
}

// MoveToFront relinks n as the head. No-op if n already is the head.
func (l *List[K, V]) MoveToFront(n *Node[K, V]) {
	if n == l.head {
		return
	}
	l.Remove(n)
	l.PushNodeFront(n)
}

// RemoveLast unlinks and returns the tail, or nil if the list is empty.
func (l *List[K, V]) RemoveLast() *Node[K, V] {
	last := l.tail
	if last == nil {
		return nil
	}
	l.Remove(last)
	return last
}

// Init empties the list. Previously linked nodes are left dangling and must
// not be passed back to l.
func (l *List[K, V]) Init() {
	l.head, l.tail, l.len = nil, nil, 0
}
