// Package prom exports cache and splay-tree signals as Prometheus metrics.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/memocache/cache"
	"github.com/IvanBrykalov/memocache/splay"
)

// Adapter satisfies both cache.Metrics and splay.Metrics. Prometheus
// collectors are goroutine-safe, so one Adapter may back several
// single-threaded structures at once.
type Adapter struct {
	hits    prometheus.Counter
	misses  prometheus.Counter
	evicts  *prometheus.CounterVec // label: reason
	sizeEnt prometheus.Gauge
}

// New registers the adapter's collectors on reg (nil means
// prometheus.DefaultRegisterer) under namespace ns and subsystem sub.
// constLabels may be nil; use them to tell apart adapters sharing a
// subsystem, e.g. {"structure": "lru"} and {"structure": "splay"}.
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{Namespace: ns, Subsystem: sub, Name: name, Help: help, ConstLabels: constLabels}
	}

	a := &Adapter{
		hits:    prometheus.NewCounter(prometheus.CounterOpts(opts("hits_total", "Lookups answered from the structure"))),
		misses:  prometheus.NewCounter(prometheus.CounterOpts(opts("misses_total", "Lookups that had to be computed"))),
		evicts:  prometheus.NewCounterVec(prometheus.CounterOpts(opts("evictions_total", "Entries removed, by reason")), []string{"reason"}),
		sizeEnt: prometheus.NewGauge(prometheus.GaugeOpts(opts("size_entries", "Resident entries"))),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.sizeEnt)
	return a
}

func (a *Adapter) Hit()  { a.hits.Inc() }
func (a *Adapter) Miss() { a.misses.Inc() }

// Evict counts one removal under its reason ("capacity" or "invalidate").
func (a *Adapter) Evict(r cache.EvictReason) { a.evicts.WithLabelValues(r.String()).Inc() }

func (a *Adapter) Size(entries int) { a.sizeEnt.Set(float64(entries)) }

var (
	_ cache.Metrics = (*Adapter)(nil)
	_ splay.Metrics = (*Adapter)(nil)
)
