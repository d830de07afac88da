package lru

import (
	"fmt"
	"slices"
	"testing"

	"github.com/IvanBrykalov/memocache/dlist"
	"github.com/IvanBrykalov/memocache/policy"
)

// callLog records hook calls as "op:key".
type callLog[K comparable, V any] struct{ calls []string }

func (c *callLog[K, V]) PushFront(n policy.Node[K, V])   { c.add("push", n) }
func (c *callLog[K, V]) MoveToFront(n policy.Node[K, V]) { c.add("move", n) }
func (c *callLog[K, V]) Remove(n policy.Node[K, V])      { c.add("remove", n) }

func (c *callLog[K, V]) add(op string, n policy.Node[K, V]) {
	c.calls = append(c.calls, fmt.Sprintf("%s:%v", op, n.Key()))
}

func TestLRU_EventToHook(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		event func(policy.ListPolicy[string, int], policy.Node[string, int])
		want  []string
	}{
		{"add pushes", func(p policy.ListPolicy[string, int], n policy.Node[string, int]) { p.OnAdd(n) }, []string{"push:k"}},
		{"get promotes", func(p policy.ListPolicy[string, int], n policy.Node[string, int]) { p.OnGet(n) }, []string{"move:k"}},
		{"update promotes", func(p policy.ListPolicy[string, int], n policy.Node[string, int]) { p.OnUpdate(n) }, []string{"move:k"}},
		{"remove is silent", func(p policy.ListPolicy[string, int], n policy.Node[string, int]) { p.OnRemove(n) }, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := &callLog[string, int]{}
			tc.event(New[string, int]().New(h), dlist.NewNode("k", 1))
			if !slices.Equal(h.calls, tc.want) {
				t.Fatalf("calls = %v, want %v", h.calls, tc.want)
			}
		})
	}
}

// listHooks drives a real dlist, as the cache does.
type listHooks struct{ l *dlist.List[int, int] }

func (h listHooks) PushFront(n policy.Node[int, int])   { h.l.PushNodeFront(n.(*dlist.Node[int, int])) }
func (h listHooks) MoveToFront(n policy.Node[int, int]) { h.l.MoveToFront(n.(*dlist.Node[int, int])) }
func (h listHooks) Remove(n policy.Node[int, int])      { h.l.Remove(n.(*dlist.Node[int, int])) }

func TestLRU_TailIsLeastRecent(t *testing.T) {
	t.Parallel()

	l := dlist.New[int, int]()
	p := New[int, int]().New(listHooks{l})

	nodes := make([]*dlist.Node[int, int], 5)
	for i := range nodes {
		nodes[i] = dlist.NewNode(i, i)
		p.OnAdd(nodes[i])
	}
	p.OnGet(nodes[0])
	p.OnUpdate(nodes[2])

	var order []int
	for n := l.Front(); n != nil; n = n.Next() {
		order = append(order, n.Key())
	}
	if want := []int{2, 0, 4, 3, 1}; !slices.Equal(order, want) {
		t.Fatalf("MRU->LRU order = %v, want %v", order, want)
	}
	if l.Back().Key() != 1 {
		t.Fatalf("tail = %d, want 1", l.Back().Key())
	}
}
