package splay

// Read-only traversals. None of these splay, so they never change the shape.

// Root returns the key and value at the root.
func (t *Tree[K, V]) Root() (K, V, bool) {
	if t.root == nil {
		var (
			k K
			v V
		)
		return k, v, false
	}
	return t.root.key, t.root.value, true
}

// Walk visits nodes in ascending key order until fn returns false.
// It uses an explicit stack, so degenerate (list-shaped) trees are fine.
func (t *Tree[K, V]) Walk(fn func(k K, v V) bool) {
	var stack []*node[K, V]
	cur := t.root
	for cur != nil || len(stack) > 0 {
		for cur != nil {
			stack = append(stack, cur)
			cur = cur.left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur.key, cur.value) {
			return
		}
		cur = cur.right
	}
}

// Keys returns all keys in ascending order.
func (t *Tree[K, V]) Keys() []K {
	out := make([]K, 0, t.size)
	t.Walk(func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

// Min returns the smallest key.
func (t *Tree[K, V]) Min() (K, bool) {
	var zero K
	if t.root == nil {
		return zero, false
	}
	n := t.root
	for n.left != nil {
		n = n.left
	}
	return n.key, true
}

// Max returns the largest key.
func (t *Tree[K, V]) Max() (K, bool) {
	var zero K
	if t.root == nil {
		return zero, false
	}
	n := t.root
	for n.right != nil {
		n = n.right
	}
	return n.key, true
}

// Height returns the number of nodes on the longest root-to-leaf path
// (0 for an empty tree).
func (t *Tree[K, V]) Height() int {
	if t.root == nil {
		return 0
	}
	level := []*node[K, V]{t.root}
	h := 0
	for len(level) > 0 {
		h++
		var next []*node[K, V]
		for _, n := range level {
			if n.left != nil {
				next = append(next, n.left)
			}
			if n.right != nil {
				next = append(next, n.right)
			}
		}
		level = next
	}
	return h
}
