package scenario

import (
	"context"
	"errors"

	"gooze.dev/pkg/scoped"
	m "gooze.dev/pkg/scoped/internal/model"
	"gooze.dev/pkg/scoped/spawn"
)

type pool struct {
	workers int
}

// NewPool creates the scenario showing worker-pool propagation: each
// task runs under the bindings captured when it was submitted, even
// when the submitting scope is long gone by the time a worker picks
// the task up.
func NewPool(workers int) Scenario {
	return &pool{workers: normalizeWorkers(workers)}
}

func (s *pool) Name() string { return "pool" }

func (s *pool) Synopsis() string {
	return "pool tasks run under the bindings captured at submit time"
}

func (s *pool) Run(ctx context.Context, emit func(m.Event)) error {
	n := newNarrator(s.Name(), emit)

	user := scoped.Declare[string]("user")

	p := spawn.NewPool(
		spawn.WithWorkers(s.workers),
		spawn.WithQueueDepth(4),
		spawn.WithErrorHandler(func(err error) {
			n.note("pool", 0, "task error: %v", err)
		}),
	)
	if err := p.Start(ctx); err != nil {
		return err
	}

	results := make(chan string, 4)

	submitAs := func(name string) error {
		return scoped.Run(ctx, scoped.NewCarrier(user.Bind(name)), func(inner context.Context) error {
			n.spawn("main", 1, "submitting a task while user=%s is bound", name)

			return p.Submit(inner, func(taskCtx context.Context) error {
				results <- name + ":" + user.GetOr(taskCtx, "unbound")
				return nil
			})
		})
	}

	if err := submitAs("ana"); err != nil {
		return err
	}

	if err := submitAs("runa"); err != nil {
		return err
	}

	var snap scoped.Snapshot

	err := scoped.Run(ctx, scoped.NewCarrier(user.Bind("kai")), func(inner context.Context) error {
		snap = scoped.Capture(inner)
		return nil
	})
	if err != nil {
		return err
	}

	n.spawn("main", 0, "the scope for user=kai has exited; submitting its snapshot")

	err = p.SubmitSnapshot(ctx, snap, func(taskCtx context.Context) error {
		results <- "kai:" + user.GetOr(taskCtx, "unbound")
		return nil
	})
	if err != nil {
		return err
	}

	// Stop waits for the workers to drain the queue.
	if err := p.Stop(ctx); err != nil {
		return err
	}

	close(results)

	seen := make(map[string]bool)
	for r := range results {
		seen[r] = true
	}

	n.check("task submitted as ana saw ana", seen["ana:ana"], "ana:ana", firstMatching(seen, "ana:"))
	n.check("task submitted as runa saw runa", seen["runa:runa"], "runa:runa", firstMatching(seen, "runa:"))
	n.check("snapshot task saw kai after its scope exited", seen["kai:kai"], "kai:kai", firstMatching(seen, "kai:"))

	err = p.Submit(ctx, func(context.Context) error { return nil })
	n.check("submissions rejected after stop", errors.Is(err, spawn.ErrPoolStopped), spawn.ErrPoolStopped.Error(), errText(err))

	return nil
}

func firstMatching(seen map[string]bool, prefix string) string {
	for r := range seen {
		if len(r) >= len(prefix) && r[:len(prefix)] == prefix {
			return r
		}
	}

	return "missing"
}
