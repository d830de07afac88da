package cache

import (
	"math/rand"
	"testing"
)

func BenchmarkCache_GetHit(b *testing.B) {
	const n = 1 << 10
	c := mustNew(b, Options[int, int]{Capacity: n})
	for i := 0; i < n; i++ {
		c.Put(i, i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(i & (n - 1))
	}
}

// Every Put admits a new key into a full cache, so each one evicts.
func BenchmarkCache_PutEvict(b *testing.B) {
	c := mustNew(b, Options[int, int]{Capacity: 1 << 10})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Put(i, i)
	}
}

type window struct{ l, r int }

// benchmarkWindows mimics the range-sum workload: struct keys drawn from a
// small pool, and a covering-range purge for every tenth operation.
func benchmarkWindows(b *testing.B, capacity int) {
	const arrayLen = 100_000
	r := rand.New(rand.NewSource(1))
	pool := make([]window, 1000)
	for i := range pool {
		l := r.Intn(arrayLen - 1000)
		pool[i] = window{l, l + r.Intn(1000)}
	}
	c := mustNew(b, Options[window, int64]{Capacity: capacity})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%10 == 0 {
			idx := r.Intn(arrayLen)
			c.DeleteFunc(func(w window, _ int64) bool { return w.l <= idx && idx <= w.r })
			continue
		}
		w := pool[r.Intn(len(pool))]
		if _, ok := c.Get(w); !ok {
			c.Put(w, int64(w.r-w.l))
		}
	}
}

func BenchmarkCache_Windows100(b *testing.B)  { benchmarkWindows(b, 100) }
func BenchmarkCache_Windows1000(b *testing.B) { benchmarkWindows(b, 1000) }
