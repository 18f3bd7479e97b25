package spawn

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gooze.dev/pkg/scoped"
)

// ForEach runs fn once per item across a bounded set of goroutines.
// Every invocation sees the inheritable bindings that were visible in
// ctx when ForEach was called. workers caps concurrency; values <= 0
// mean runtime.GOMAXPROCS(0). The first error cancels the context the
// remaining invocations receive, and ForEach returns that error after
// all started invocations finish.
func ForEach[T any](ctx context.Context, items []T, workers int, fn func(context.Context, T) error) error {
	if len(items) == 0 {
		return nil
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	snap := scoped.Capture(ctx)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for _, item := range items {
		eg.Go(func() error {
			return snap.Run(egCtx, func(itemCtx context.Context) error {
				return fn(itemCtx, item)
			})
		})
	}

	return eg.Wait()
}
