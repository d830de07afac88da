// Package splay implements a self-adjusting binary search tree.
//
// Every Insert and every successful Find moves the touched node to the root
// through Zig, Zig-Zig and Zig-Zag rotations, giving amortized O(log n)
// access. A failed Find leaves the tree untouched. The tree has no capacity
// limit and no delete. A Tree is not safe for concurrent use.
package splay

import "cmp"

// Metrics receives tree-level signals. The Prometheus adapter in
// metrics/prom satisfies it.
type Metrics interface {
	Hit()
	Miss()
	Size(entries int)
}

type noopMetrics struct{}

func (noopMetrics) Hit()     {}
func (noopMetrics) Miss()    {}
func (noopMetrics) Size(int) {}

// Option configures a Tree.
type Option func(*options)

type options struct {
	metrics Metrics
}

// WithMetrics reports Find hits/misses and the node count to m.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// node is a tree vertex. A node owns its children; parent is a back
// reference used only for rotations.
type node[K cmp.Ordered, V any] struct {
	key   K
	value V

	left   *node[K, V]
	right  *node[K, V]
	parent *node[K, V]
}

// Tree is a splay tree keyed by K.
// The zero value is not usable; construct trees with New.
type Tree[K cmp.Ordered, V any] struct {
	root      *node[K, V]
	size      int
	rotations uint64

	metrics Metrics
}

// New returns an empty tree.
func New[K cmp.Ordered, V any](opts ...Option) *Tree[K, V] {
	o := options{metrics: noopMetrics{}}
	for _, fn := range opts {
		fn(&o)
	}
	return &Tree[K, V]{metrics: o.metrics}
}

// Len returns the number of keys in the tree.
func (t *Tree[K, V]) Len() int { return t.size }

// Rotations returns the number of single rotations performed so far.
func (t *Tree[K, V]) Rotations() uint64 { return t.rotations }

// Insert stores key→value. A new key is linked at the empty slot reached by
// the descent; an existing key has its value overwritten in place. Either
// way the touched node is splayed to the root.
func (t *Tree[K, V]) Insert(key K, value V) {
	if t.root == nil {
		t.root = &node[K, V]{key: key, value: value}
		t.size++
		t.metrics.Size(t.size)
		return
	}

	cur := t.root
	for {
		switch {
		case key < cur.key:
			if cur.left == nil {
				cur.left = &node[K, V]{key: key, value: value, parent: cur}
				t.grown()
				t.splay(cur.left)
				return
			}
			cur = cur.left
		case key > cur.key:
			if cur.right == nil {
				cur.right = &node[K, V]{key: key, value: value, parent: cur}
				t.grown()
				t.splay(cur.right)
				return
			}
			cur = cur.right
		default:
			cur.value = value
			t.splay(cur)
			return
		}
	}
}

// Find returns the value stored for key. On a hit the node is splayed to
// the root; on a miss the tree shape is unchanged.
func (t *Tree[K, V]) Find(key K) (V, bool) {
	cur := t.root
	for cur != nil {
		switch {
		case key < cur.key:
			cur = cur.left
		case key > cur.key:
			cur = cur.right
		default:
			t.splay(cur)
			t.metrics.Hit()
			return cur.value, true
		}
	}
	t.metrics.Miss()
	var zero V
	return zero, false
}

func (t *Tree[K, V]) grown() {
	t.size++
	t.metrics.Size(t.size)
}

// splay rotates n up until it becomes the root.
func (t *Tree[K, V]) splay(n *node[K, V]) {
	for n.parent != nil {
		p := n.parent
		g := p.parent
		switch {
		case g == nil: // zig
			if n == p.left {
				t.rotateRight(p)
			} else {
				t.rotateLeft(p)
			}
		case n == p.left && p == g.left: // zig-zig
			t.rotateRight(g)
			t.rotateRight(p)
		case n == p.right && p == g.right: // zig-zig
			t.rotateLeft(g)
			t.rotateLeft(p)
		case n == p.left && p == g.right: // zig-zag
			t.rotateRight(p)
			t.rotateLeft(g)
		default: // zig-zag, n == p.right && p == g.left
			t.rotateLeft(p)
			t.rotateRight(g)
		}
	}
}

// rotateRight lifts x.left into x's place. No-op without a left child.
func (t *Tree[K, V]) rotateRight(x *node[K, V]) {
	l := x.left
	if l == nil {
		return
	}
	x.left = l.right
	if l.right != nil {
		l.right.parent = x
	}
	t.replaceChild(x, l)
	l.right = x
	x.parent = l
	t.rotations++
}

// rotateLeft lifts x.right into x's place. No-op without a right child.
func (t *Tree[K, V]) rotateLeft(x *node[K, V]) {
	r := x.right
	if r == nil {
		return
	}
	x.right = r.left
	if r.left != nil {
		r.left.parent = x
	}
	t.replaceChild(x, r)
	r.left = x
	x.parent = r
	t.rotations++
}

// replaceChild links c where old hung off old's parent (or as root).
func (t *Tree[K, V]) replaceChild(old, c *node[K, V]) {
	c.parent = old.parent
	switch {
	case old.parent == nil:
		t.root = c
	case old == old.parent.left:
		old.parent.left = c
	default:
		old.parent.right = c
	}
}
