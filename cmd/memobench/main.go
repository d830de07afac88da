// Command memobench compares memoization structures: range sums with and
// without an LRU cache, and Fibonacci memoized in an LRU cache versus a
// splay tree. Optional Prometheus metrics are served while it runs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
