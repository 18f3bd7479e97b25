package spawn

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gooze.dev/pkg/scoped"
)

// Group is an errgroup whose tasks inherit scoped bindings. Tasks started
// with Go run under the snapshot captured when the group was created;
// GoFrom captures fresh at the call site instead. Cancellation keeps
// errgroup semantics: the first error cancels the context every task
// receives.
type Group struct {
	eg   *errgroup.Group
	ctx  context.Context
	snap scoped.Snapshot
}

// WithContext creates a Group and captures the inheritable bindings
// visible in ctx. The returned context is the group's: it is canceled
// the first time a task returns a non-nil error or Wait returns.
func WithContext(ctx context.Context) (*Group, context.Context) {
	eg, groupCtx := errgroup.WithContext(ctx)

	return &Group{
		eg:   eg,
		ctx:  groupCtx,
		snap: scoped.Capture(ctx),
	}, groupCtx
}

// SetLimit bounds the number of tasks running simultaneously; see
// errgroup.Group.SetLimit.
func (g *Group) SetLimit(n int) {
	g.eg.SetLimit(n)
}

// Go starts fn on a new goroutine. fn receives the group context seeded
// with the snapshot captured at group creation: exactly the inheritable
// bindings the creating goroutine saw then, regardless of what it has
// rebound since.
func (g *Group) Go(fn func(context.Context) error) {
	g.eg.Go(func() error {
		return g.snap.Run(g.ctx, fn)
	})
}

// GoFrom starts fn like Go but captures from ctx at the call site, for
// spawning out of a scope nested more deeply than the group itself.
// The capture happens synchronously, before GoFrom returns.
func (g *Group) GoFrom(ctx context.Context, fn func(context.Context) error) {
	snap := scoped.Capture(ctx)

	g.eg.Go(func() error {
		return snap.Run(g.ctx, fn)
	})
}

// Wait blocks until all tasks have returned, then returns the first
// non-nil error among them.
func (g *Group) Wait() error {
	return g.eg.Wait()
}
