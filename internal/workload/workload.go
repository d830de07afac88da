// Package workload generates seeded range-sum query mixes: a random array,
// a fixed share of point updates, and range queries drawn with repetition
// from a small pool of distinct windows so a cache has something to hit.
package workload

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidSpec is returned by Generate for unusable parameters.
var ErrInvalidSpec = errors.New("workload: invalid spec")

// Kind tags a Query.
type Kind uint8

const (
	KindRange Kind = iota
	KindUpdate
)

func (k Kind) String() string {
	if k == KindUpdate {
		return "update"
	}
	return "range"
}

// Query is one operation. For KindRange A and B are the inclusive bounds;
// for KindUpdate A is the index and B the new value.
type Query struct {
	Kind Kind
	A, B int
}

// Spec describes a workload.
type Spec struct {
	ArraySize    int
	Queries      int
	UpdateRatio  float64 // share of Queries that are updates, in [0, 1]
	UniqueRanges int     // upper bound on distinct windows
	MaxSpan      int     // R - L never exceeds this
	MaxValue     int     // elements and update values are in [1, MaxValue]; 0 means 1000
}

func (s Spec) validate() error {
	switch {
	case s.ArraySize <= 0:
		return fmt.Errorf("%w: array size %d", ErrInvalidSpec, s.ArraySize)
	case s.Queries < 0:
		return fmt.Errorf("%w: queries %d", ErrInvalidSpec, s.Queries)
	case s.UpdateRatio < 0 || s.UpdateRatio > 1:
		return fmt.Errorf("%w: update ratio %g", ErrInvalidSpec, s.UpdateRatio)
	case s.UniqueRanges <= 0:
		return fmt.Errorf("%w: unique ranges %d", ErrInvalidSpec, s.UniqueRanges)
	case s.MaxSpan <= 0:
		return fmt.Errorf("%w: max span %d", ErrInvalidSpec, s.MaxSpan)
	case s.MaxValue < 0:
		return fmt.Errorf("%w: max value %d", ErrInvalidSpec, s.MaxValue)
	}
	return nil
}

// Workload is a generated array plus its shuffled query stream.
type Workload struct {
	Data    []int64
	Queries []Query
	Updates int
	Windows int // distinct windows in the pool
}

// Generate builds a workload from r. Equal seeds give equal workloads.
//
// The window pool holds min(UniqueRanges, Queries/10) windows (at least
// one); left bounds leave room for MaxSpan when the array allows it.
func Generate(s Spec, r *rand.Rand) (*Workload, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	maxVal := s.MaxValue
	if maxVal == 0 {
		maxVal = 1000
	}

	w := &Workload{Data: make([]int64, s.ArraySize)}
	for i := range w.Data {
		w.Data[i] = int64(1 + r.Intn(maxVal))
	}

	w.Updates = int(float64(s.Queries) * s.UpdateRatio)
	w.Queries = make([]Query, 0, s.Queries)
	for i := 0; i < w.Updates; i++ {
		w.Queries = append(w.Queries, Query{
			Kind: KindUpdate,
			A:    r.Intn(s.ArraySize),
			B:    1 + r.Intn(maxVal),
		})
	}

	pool := make([]Query, max(1, min(s.UniqueRanges, s.Queries/10)))
	leftMax := max(0, s.ArraySize-s.MaxSpan)
	seen := make(map[Query]struct{}, len(pool))
	for i := range pool {
		l := r.Intn(leftMax + 1)
		hi := min(l+s.MaxSpan, s.ArraySize-1)
		pool[i] = Query{Kind: KindRange, A: l, B: l + r.Intn(hi-l+1)}
		seen[pool[i]] = struct{}{}
	}
	w.Windows = len(seen)

	for len(w.Queries) < s.Queries {
		w.Queries = append(w.Queries, pool[r.Intn(len(pool))])
	}
	r.Shuffle(len(w.Queries), func(i, j int) {
		w.Queries[i], w.Queries[j] = w.Queries[j], w.Queries[i]
	})
	return w, nil
}
