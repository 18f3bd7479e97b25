package scenario

import (
	"context"
	"log/slog"
	"time"

	"gooze.dev/pkg/scoped"
	m "gooze.dev/pkg/scoped/internal/model"
)

// BenchOptions sizes the timed measurements.
type BenchOptions struct {
	Depth      int // nested scopes for chain-walk and capture measurements
	Width      int // bindings in one frame for the indexed-lookup measurement
	Iterations int
}

// Bencher times resolution, scope entry, and snapshot capture.
type Bencher interface {
	Run(ctx context.Context, opts BenchOptions) ([]m.BenchRow, error)
}

type bencher struct{}

// NewBencher creates a Bencher.
func NewBencher() Bencher {
	return &bencher{}
}

func (b *bencher) Run(ctx context.Context, opts BenchOptions) ([]m.BenchRow, error) {
	opts = normalizeBenchOptions(opts)

	measurements := []struct {
		name string
		fn   func(context.Context, BenchOptions) (time.Duration, error)
	}{
		{"get/nearest", b.measureGetNearest},
		{"get/chain-walk", b.measureGetChainWalk},
		{"get/wide-frame", b.measureGetWideFrame},
		{"scope/enter-exit", b.measureScopeEnterExit},
		{"capture/shared", b.measureCaptureShared},
		{"capture/filtered", b.measureCaptureFiltered},
		{"snapshot/install", b.measureSnapshotInstall},
	}

	rows := make([]m.BenchRow, 0, len(measurements))

	for _, measurement := range measurements {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		elapsed, err := measurement.fn(ctx, opts)
		if err != nil {
			return rows, err
		}

		row := m.BenchRow{
			Name:       measurement.name,
			Depth:      opts.Depth,
			Width:      opts.Width,
			Iterations: opts.Iterations,
			NsPerOp:    float64(elapsed.Nanoseconds()) / float64(opts.Iterations),
		}
		rows = append(rows, row)

		slog.Debug("Measured", "name", row.Name, "ns_per_op", row.NsPerOp)
	}

	return rows, nil
}

// atDepth runs fn under depth nested scopes, each rebinding key.
func (b *bencher) atDepth(ctx context.Context, key *scoped.Key[int], depth int, fn func(context.Context) error) error {
	if depth == 0 {
		return fn(ctx)
	}

	return scoped.Run(ctx, scoped.NewCarrier(key.Bind(depth)), func(inner context.Context) error {
		return b.atDepth(inner, key, depth-1, fn)
	})
}

// measureGetNearest resolves a key rebound at every level, so the hit
// is always in the leaf frame.
func (b *bencher) measureGetNearest(ctx context.Context, opts BenchOptions) (time.Duration, error) {
	key := scoped.Declare[int]("bench_level")

	var elapsed time.Duration

	err := b.atDepth(ctx, key, opts.Depth, func(leaf context.Context) error {
		start := time.Now()

		for range opts.Iterations {
			if _, err := key.Get(leaf); err != nil {
				return err
			}
		}

		elapsed = time.Since(start)

		return nil
	})

	return elapsed, err
}

// measureGetChainWalk resolves a key bound only at the root, under
// Depth unrelated frames.
func (b *bencher) measureGetChainWalk(ctx context.Context, opts BenchOptions) (time.Duration, error) {
	target := scoped.Declare[int]("bench_root")
	filler := scoped.Declare[int]("bench_filler")

	var elapsed time.Duration

	err := scoped.Run(ctx, scoped.NewCarrier(target.Bind(1)), func(rooted context.Context) error {
		return b.atDepth(rooted, filler, opts.Depth, func(leaf context.Context) error {
			start := time.Now()

			for range opts.Iterations {
				if _, err := target.Get(leaf); err != nil {
					return err
				}
			}

			elapsed = time.Since(start)

			return nil
		})
	})

	return elapsed, err
}

// measureGetWideFrame resolves against a single frame wide enough to
// carry a lookup index.
func (b *bencher) measureGetWideFrame(ctx context.Context, opts BenchOptions) (time.Duration, error) {
	keys := make([]*scoped.Key[int], opts.Width)
	carrier := scoped.NewCarrier()

	for i := range keys {
		keys[i] = scoped.Declare[int]("bench_wide")
		carrier = carrier.With(keys[i].Bind(i))
	}

	last := keys[len(keys)-1]

	var elapsed time.Duration

	err := scoped.Run(ctx, carrier, func(inner context.Context) error {
		start := time.Now()

		for range opts.Iterations {
			if _, err := last.Get(inner); err != nil {
				return err
			}
		}

		elapsed = time.Since(start)

		return nil
	})

	return elapsed, err
}

func (b *bencher) measureScopeEnterExit(ctx context.Context, opts BenchOptions) (time.Duration, error) {
	key := scoped.Declare[int]("bench_scope")
	carrier := scoped.NewCarrier(key.Bind(1))

	start := time.Now()

	for range opts.Iterations {
		if err := scoped.Run(ctx, carrier, func(context.Context) error { return nil }); err != nil {
			return 0, err
		}
	}

	return time.Since(start), nil
}

// measureCaptureShared captures a chain whose bindings are all
// inheritable, the case where the chain is shared as-is.
func (b *bencher) measureCaptureShared(ctx context.Context, opts BenchOptions) (time.Duration, error) {
	key := scoped.Declare[int]("bench_inherit")

	var elapsed time.Duration

	err := b.atDepth(ctx, key, opts.Depth, func(leaf context.Context) error {
		start := time.Now()

		for range opts.Iterations {
			_ = scoped.Capture(leaf)
		}

		elapsed = time.Since(start)

		return nil
	})

	return elapsed, err
}

// measureCaptureFiltered captures a chain with a non-inheritable
// binding at every level, forcing the filtered rebuild.
func (b *bencher) measureCaptureFiltered(ctx context.Context, opts BenchOptions) (time.Duration, error) {
	keep := scoped.Declare[int]("bench_keep")
	drop := scoped.Declare[int]("bench_drop", scoped.NotInherited())

	var elapsed time.Duration

	var descend func(context.Context, int) error
	descend = func(cur context.Context, depth int) error {
		if depth == 0 {
			start := time.Now()

			for range opts.Iterations {
				_ = scoped.Capture(cur)
			}

			elapsed = time.Since(start)

			return nil
		}

		carrier := scoped.NewCarrier(keep.Bind(depth), drop.Bind(depth))

		return scoped.Run(cur, carrier, func(inner context.Context) error {
			return descend(inner, depth-1)
		})
	}

	err := descend(ctx, opts.Depth)

	return elapsed, err
}

func (b *bencher) measureSnapshotInstall(ctx context.Context, opts BenchOptions) (time.Duration, error) {
	key := scoped.Declare[int]("bench_snap")

	var elapsed time.Duration

	err := b.atDepth(ctx, key, opts.Depth, func(leaf context.Context) error {
		snap := scoped.Capture(leaf)
		start := time.Now()

		for range opts.Iterations {
			if err := snap.Run(ctx, func(context.Context) error { return nil }); err != nil {
				return err
			}
		}

		elapsed = time.Since(start)

		return nil
	})

	return elapsed, err
}

func normalizeBenchOptions(opts BenchOptions) BenchOptions {
	if opts.Depth <= 0 {
		opts.Depth = 8
	}

	if opts.Width <= 0 {
		opts.Width = 16
	}

	if opts.Iterations <= 0 {
		opts.Iterations = 50000
	}

	return opts
}
