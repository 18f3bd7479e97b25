package scenario

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gooze.dev/pkg/scoped"
	m "gooze.dev/pkg/scoped/internal/model"
	"gooze.dev/pkg/scoped/spawn"
)

type inherit struct {
	workers int
}

// NewInherit creates the scenario showing cross-goroutine propagation:
// snapshots hand inheritable bindings to spawned goroutines while
// bindings declared non-inheritable stay behind.
func NewInherit(workers int) Scenario {
	return &inherit{workers: normalizeWorkers(workers)}
}

func (s *inherit) Name() string { return "inherit" }

func (s *inherit) Synopsis() string {
	return "spawned goroutines inherit snapshots of inheritable bindings"
}

func (s *inherit) Run(ctx context.Context, emit func(m.Event)) error {
	n := newNarrator(s.Name(), emit)

	tenant := scoped.Declare[string]("tenant")
	connID := scoped.Declare[string]("conn_id", scoped.NotInherited())

	carrier := scoped.NewCarrier(tenant.Bind("acme"), connID.Bind(uuid.NewString()))

	return scoped.Run(ctx, carrier, func(inner context.Context) error {
		n.resolve(inner, "main", 1, "bindings before spawning")

		if err := s.runGroup(inner, n, tenant, connID); err != nil {
			return err
		}

		if err := s.runForEach(inner, n, tenant); err != nil {
			return err
		}

		return s.checkSnapshotIndependence(inner, n, tenant)
	})
}

func (s *inherit) runGroup(ctx context.Context, n *narrator, tenant *scoped.Key[string], connID *scoped.Key[string]) error {
	g, _ := spawn.WithContext(ctx)

	for i := range s.workers {
		unit := fmt.Sprintf("worker-%d", i+1)
		n.spawn("main", 1, "starting %s", unit)

		g.Go(func(taskCtx context.Context) error {
			n.resolve(taskCtx, unit, 1, "visible in the worker")

			got := tenant.GetOr(taskCtx, "unbound")
			n.check(unit+" inherits tenant", got == "acme", "acme", got)
			n.check(unit+" does not inherit conn_id", !connID.IsBound(taskCtx), "unbound", boundState(connID.IsBound(taskCtx)))

			return nil
		})
	}

	return g.Wait()
}

func (s *inherit) runForEach(ctx context.Context, n *narrator, tenant *scoped.Key[string]) error {
	items := []string{"alpha", "beta", "gamma"}
	n.spawn("main", 1, "fanning %d items out across %d workers", len(items), s.workers)

	return spawn.ForEach(ctx, items, s.workers, func(itemCtx context.Context, item string) error {
		got := tenant.GetOr(itemCtx, "unbound")
		n.check("item "+item+" sees tenant", got == "acme", "acme", got)

		return nil
	})
}

// checkSnapshotIndependence shows that a snapshot keeps the values
// captured at the time, unaffected by rebinding afterwards.
func (s *inherit) checkSnapshotIndependence(ctx context.Context, n *narrator, tenant *scoped.Key[string]) error {
	snap := scoped.Capture(ctx)

	return scoped.Run(ctx, scoped.NewCarrier(tenant.Bind("globex")), func(rebound context.Context) error {
		now := tenant.MustGet(rebound)
		n.check("rebinding changes the live value", now == "globex", "globex", now)

		return snap.Run(rebound, func(snapCtx context.Context) error {
			then := tenant.MustGet(snapCtx)
			n.check("snapshot keeps the captured value", then == "acme", "acme", then)

			return nil
		})
	})
}
