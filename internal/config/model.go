// Typed configuration model for memobench.
//
// Struct tags use `koanf:"..."`; koanf ignores `yaml` tags. Defaults live in
// Default() and are overwritten only by keys a layer actually sets.

package config

import "time"

// Config is the merged, validated configuration tree.
type Config struct {
	Log      Log      `koanf:"log"`
	Metrics  Metrics  `koanf:"metrics"`
	Report   Report   `koanf:"report"`
	RangeSum RangeSum `koanf:"rangesum"`
	Fib      Fib      `koanf:"fib"`

	// Seed drives workload generation; equal seeds give equal workloads.
	Seed int64 `koanf:"seed"`
	// Parallel bounds concurrently running trials.
	Parallel int `koanf:"parallel" validate:"gte=1,lte=64"`
}

// Log selects the zap logger shape.
type Log struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=console json"`
	File   string `koanf:"file"`
}

// Metrics controls the Prometheus endpoint. An empty Addr disables it.
type Metrics struct {
	Addr      string `koanf:"addr"      validate:"omitempty,hostname_port"`
	Namespace string `koanf:"namespace" validate:"required"`
}

// Report selects the result encoding on stdout.
type Report struct {
	Format string `koanf:"format" validate:"oneof=table json yaml"`
}

// RangeSum shapes the range-sum workload.
type RangeSum struct {
	ArraySize    int           `koanf:"array_size"    validate:"gte=1"`
	Queries      int           `koanf:"queries"       validate:"gte=1"`
	CacheSize    int           `koanf:"cache_size"    validate:"gte=1"`
	UpdateRatio  float64       `koanf:"update_ratio"  validate:"gte=0,lte=1"`
	UniqueRanges int           `koanf:"unique_ranges" validate:"gte=1"`
	MaxSpan      int           `koanf:"max_span"      validate:"gte=1"`
	ComputeDelay time.Duration `koanf:"compute_delay" validate:"gte=0"`
}

// Fib shapes the Fibonacci comparison: n = 0, Step, 2*Step, ... <= MaxN.
type Fib struct {
	MaxN   int `koanf:"max_n"  validate:"gte=0"`
	Step   int `koanf:"step"   validate:"gte=1"`
	Repeat int `koanf:"repeat" validate:"gte=1"`
	// CacheSize of the LRU store; 0 means MaxN+1 (never evicts).
	CacheSize int `koanf:"cache_size" validate:"omitempty,gte=3"`
}

// Default returns the built-in configuration, mirroring the reference
// workload: 100k elements, 50k queries, 10% updates, a 1000-entry cache.
func Default() Config {
	return Config{
		Log:     Log{Level: "info", Format: "console"},
		Metrics: Metrics{Namespace: "memocache"},
		Report:  Report{Format: "table"},
		RangeSum: RangeSum{
			ArraySize:    100_000,
			Queries:      50_000,
			CacheSize:    1_000,
			UpdateRatio:  0.1,
			UniqueRanges: 1_000,
			MaxSpan:      1_000,
		},
		Fib:      Fib{MaxN: 950, Step: 50, Repeat: 10},
		Seed:     42,
		Parallel: 1,
	}
}
