package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Report formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Report is what the CLI prints. Exactly one of RangeSum and Fib is set.
type Report struct {
	RangeSum *RangeSumResult `json:"rangesum,omitempty" yaml:"rangesum,omitempty"`
	Fib      *FibResult      `json:"fib,omitempty" yaml:"fib,omitempty"`
}

// Render writes r to w as an aligned table, JSON or YAML.
func Render(w io.Writer, format string, r Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable, "":
		return renderTable(w, r)
	default:
		return fmt.Errorf("bench: unknown report format %q", format)
	}
}

func renderTable(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if rs := r.RangeSum; rs != nil {
		fmt.Fprintf(tw, "run\t%s\n", rs.RunID)
		fmt.Fprintf(tw, "array size\t%d\n", rs.ArraySize)
		fmt.Fprintf(tw, "queries\t%d (%d updates, %d windows)\n", rs.Queries, rs.Updates, rs.Windows)
		fmt.Fprintf(tw, "cache size\t%d\n", rs.CacheSize)
		fmt.Fprintf(tw, "no cache\t%.4f s\n", rs.NoCacheSec)
		fmt.Fprintf(tw, "lru cache\t%.4f s\n", rs.WithCacheSec)
		fmt.Fprintf(tw, "speedup\t%.2fx\n", rs.Speedup)
		fmt.Fprintf(tw, "hit rate\t%.2f%% (%d hits, %d misses)\n", rs.HitRate*100, rs.Hits, rs.Misses)
		fmt.Fprintf(tw, "evictions\t%d\n", rs.Evictions)
		fmt.Fprintf(tw, "invalidated\t%d\n", rs.Invalidated)
	}
	if f := r.Fib; f != nil {
		fmt.Fprintf(tw, "n\tlru cold (s)\tsplay cold (s)\tlru warm (s)\tsplay warm (s)\trotations\n")
		for _, row := range f.Rows {
			fmt.Fprintf(tw, "%d\t%.8f\t%.8f\t%.8f\t%.8f\t%d\n",
				row.N, row.LRUColdSec, row.SplayColdSec, row.LRUWarmSec, row.SplayWarmSec, row.SplayRotations)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(w, "\nrun %s: %s faster overall; splay/lru cold time ratio %.2f (lru capacity %d)\n",
			f.RunID, f.Faster, f.Ratio, f.CacheSize)
		return nil
	}
	return tw.Flush()
}
