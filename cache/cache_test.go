package cache

import (
	"errors"
	"strconv"
	"testing"
)

// recMetrics records every signal for assertions.
type recMetrics struct {
	hits, misses int
	evicts       map[EvictReason]int
	size         int
}

func (m *recMetrics) Hit()                { m.hits++ }
func (m *recMetrics) Miss()               { m.misses++ }
func (m *recMetrics) Evict(r EvictReason) { m.evicts[r]++ }
func (m *recMetrics) Size(entries int)    { m.size = entries }

func newRecMetrics() *recMetrics { return &recMetrics{evicts: map[EvictReason]int{}} }

func mustNew[K comparable, V any](t testing.TB, opt Options[K, V]) *Cache[K, V] {
	t.Helper()
	c, err := New[K, V](opt)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// checkIndex verifies the index and list are in 1:1 correspondence.
func checkIndex[K comparable, V any](t *testing.T, c *Cache[K, V]) {
	t.Helper()
	if c.list.Len() != len(c.index) {
		t.Fatalf("list len %d != index len %d", c.list.Len(), len(c.index))
	}
	if len(c.index) > c.cap {
		t.Fatalf("size %d exceeds capacity %d", len(c.index), c.cap)
	}
	for n := c.list.Front(); n != nil; n = n.Next() {
		if c.index[n.Key()] != n {
			t.Fatalf("node %v not aliased by index", n.Key())
		}
	}
}

func TestCache_NewRejectsNonPositiveCapacity(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{0, -1, -100} {
		c, err := New[string, int](Options[string, int]{Capacity: capacity})
		if !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("cap=%d: want ErrInvalidCapacity, got %v", capacity, err)
		}
		if c != nil {
			t.Fatalf("cap=%d: cache must be nil on error", capacity)
		}
	}
}

// Basic Put/Get/Delete semantics.
func TestCache_BasicPutGetDelete(t *testing.T) {
	t.Parallel()

	c := mustNew(t, Options[string, int]{Capacity: 8})

	c.Put("a", 1)
	c.Put("a", 11)
	if v, ok := c.Get("a"); !ok || v != 11 {
		t.Fatalf("Get a want 11, got %v ok=%v", v, ok)
	}
	if c.Len() != 1 {
		t.Fatalf("overwrite must not duplicate, Len=%d", c.Len())
	}

	if !c.Delete("a") {
		t.Fatal("Delete a must be true")
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("a must be absent after Delete")
	}
	checkIndex(t, c)
}

// Deterministic LRU eviction: accessing "a" promotes it; inserting "c" evicts LRU ("b").
func TestCache_EvictionLRU(t *testing.T) {
	t.Parallel()

	c := mustNew(t, Options[string, int]{Capacity: 2})

	c.Put("a", 1) // LRU = a
	c.Put("b", 2) // MRU = b

	if _, ok := c.Get("a"); !ok { // promote a -> MRU
		t.Fatal("expect hit for a")
	}
	c.Put("c", 3) // overflow -> evict LRU (b)

	if _, ok := c.Get("b"); ok {
		t.Fatal("b must be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a must survive (promoted)")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Fatal("c must be present")
	}
	checkIndex(t, c)
}

// With no intervening Get, N puts into capacity C evict k1..k(N-C) in order.
func TestCache_EvictionOrder(t *testing.T) {
	t.Parallel()

	const capacity, n = 3, 10
	var evicted []string
	c := mustNew(t, Options[string, int]{
		Capacity: capacity,
		OnEvict: func(k string, _ int, r EvictReason) {
			if r == EvictCapacity {
				evicted = append(evicted, k)
			}
		},
	})

	for i := 1; i <= n; i++ {
		c.Put("k"+strconv.Itoa(i), i)
		if c.Len() > capacity {
			t.Fatalf("Len %d exceeds capacity after put %d", c.Len(), i)
		}
	}

	if len(evicted) != n-capacity {
		t.Fatalf("want %d evictions, got %d", n-capacity, len(evicted))
	}
	for i, k := range evicted {
		if want := "k" + strconv.Itoa(i+1); k != want {
			t.Fatalf("eviction %d: want %s, got %s", i, want, k)
		}
	}
	if got := c.Keys(); len(got) != 3 || got[0] != "k10" || got[2] != "k8" {
		t.Fatalf("unexpected MRU->LRU keys %v", got)
	}
}

// Updating an existing key promotes it, so it survives the next eviction.
func TestCache_PutUpdatePromotes(t *testing.T) {
	t.Parallel()

	c := mustNew(t, Options[string, int]{Capacity: 2})
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10) // a -> MRU
	c.Put("c", 3)  // evicts b

	if c.Contains("b") {
		t.Fatal("b must be evicted")
	}
	if v, ok := c.Peek("a"); !ok || v != 10 {
		t.Fatalf("a want 10, got %v ok=%v", v, ok)
	}
}

// Miss must not reorder; Peek/Contains must not promote.
func TestCache_NoPromotionWithoutHit(t *testing.T) {
	t.Parallel()

	c := mustNew(t, Options[int, int]{Capacity: 2})
	c.Put(1, 1)
	c.Put(2, 2)

	c.Get(3)
	c.Peek(1)
	c.Contains(1)
	c.Put(3, 3) // still evicts 1

	if c.Contains(1) {
		t.Fatal("1 must be evicted: Peek/Contains/miss must not promote")
	}
}

func TestCache_DeleteIdempotent(t *testing.T) {
	t.Parallel()

	m := newRecMetrics()
	c := mustNew(t, Options[string, int]{Capacity: 4, Metrics: m})
	c.Put("x", 1)
	c.Put("y", 2)

	if !c.Delete("x") {
		t.Fatal("first Delete must report presence")
	}
	if c.Delete("x") {
		t.Fatal("second Delete must be a no-op")
	}
	if c.Len() != 1 || !c.Contains("y") {
		t.Fatalf("unexpected state after double delete: %v", c.Keys())
	}
	if m.evicts[EvictInvalidate] != 1 {
		t.Fatalf("want one invalidation, got %d", m.evicts[EvictInvalidate])
	}
	checkIndex(t, c)
}

func TestCache_DeleteFunc(t *testing.T) {
	t.Parallel()

	c := mustNew(t, Options[int, int]{Capacity: 10})
	for i := 0; i < 10; i++ {
		c.Put(i, i*i)
	}

	removed := c.DeleteFunc(func(k, _ int) bool { return k%2 == 0 })
	if removed != 5 {
		t.Fatalf("want 5 removed, got %d", removed)
	}
	for i := 0; i < 10; i++ {
		if c.Contains(i) == (i%2 == 0) {
			t.Fatalf("key %d presence wrong", i)
		}
	}
	checkIndex(t, c)
}

func TestCache_MetricsAndCallbacks(t *testing.T) {
	t.Parallel()

	m := newRecMetrics()
	var reasons []EvictReason
	c := mustNew(t, Options[string, int]{
		Capacity: 1,
		Metrics:  m,
		OnEvict:  func(_ string, _ int, r EvictReason) { reasons = append(reasons, r) },
	})

	c.Put("a", 1)
	c.Get("a")
	c.Get("zzz")
	c.Put("b", 2) // evicts a
	c.Delete("b")

	if m.hits != 1 || m.misses != 1 {
		t.Fatalf("hits=%d misses=%d", m.hits, m.misses)
	}
	if m.evicts[EvictCapacity] != 1 || m.evicts[EvictInvalidate] != 1 {
		t.Fatalf("unexpected evictions %v", m.evicts)
	}
	if m.size != 0 {
		t.Fatalf("size gauge want 0, got %d", m.size)
	}
	if len(reasons) != 2 || reasons[0] != EvictCapacity || reasons[1] != EvictInvalidate {
		t.Fatalf("unexpected OnEvict reasons %v", reasons)
	}
	if EvictCapacity.String() != "capacity" || EvictInvalidate.String() != "invalidate" {
		t.Fatal("unexpected EvictReason labels")
	}
}

func TestCache_Purge(t *testing.T) {
	t.Parallel()

	c := mustNew(t, Options[int, string]{Capacity: 3})
	c.Put(1, "a")
	c.Put(2, "b")
	c.Purge()

	if c.Len() != 0 || len(c.Keys()) != 0 {
		t.Fatal("cache must be empty after Purge")
	}
	c.Put(3, "c")
	if v, ok := c.Get(3); !ok || v != "c" {
		t.Fatal("cache must be usable after Purge")
	}
	checkIndex(t, c)
}
