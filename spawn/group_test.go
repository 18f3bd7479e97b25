package spawn

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/scoped"
)

func TestGroupInheritsBindings(t *testing.T) {
	user := scoped.Declare[string]("user")

	err := scoped.Run(context.Background(), scoped.NewCarrier(user.Bind("ana")), func(ctx context.Context) error {
		g, _ := WithContext(ctx)

		g.Go(func(taskCtx context.Context) error {
			got, getErr := user.Get(taskCtx)
			require.NoError(t, getErr)
			assert.Equal(t, "ana", got)
			return nil
		})

		return g.Wait()
	})
	require.NoError(t, err)
}

func TestGroupMasksNonInheritableBindings(t *testing.T) {
	user := scoped.Declare[string]("user")
	trace := scoped.Declare[string]("trace", scoped.NotInherited())

	carrier := scoped.NewCarrier(user.Bind("ana"), trace.Bind("t-1"))

	err := scoped.Run(context.Background(), carrier, func(ctx context.Context) error {
		require.True(t, trace.IsBound(ctx))

		g, _ := WithContext(ctx)

		g.Go(func(taskCtx context.Context) error {
			assert.True(t, user.IsBound(taskCtx))
			assert.False(t, trace.IsBound(taskCtx))
			return nil
		})

		return g.Wait()
	})
	require.NoError(t, err)
}

func TestGroupCapturesAtCreation(t *testing.T) {
	depth := scoped.Declare[int]("depth")

	err := scoped.Run(context.Background(), scoped.NewCarrier(depth.Bind(1)), func(ctx context.Context) error {
		g, _ := WithContext(ctx)

		// Rebinding after the group exists must not affect what Go sees.
		return scoped.Run(ctx, scoped.NewCarrier(depth.Bind(2)), func(innerCtx context.Context) error {
			g.Go(func(taskCtx context.Context) error {
				assert.Equal(t, 1, depth.MustGet(taskCtx))
				return nil
			})
			return g.Wait()
		})
	})
	require.NoError(t, err)
}

func TestGroupGoFromCapturesAtCall(t *testing.T) {
	depth := scoped.Declare[int]("depth")

	err := scoped.Run(context.Background(), scoped.NewCarrier(depth.Bind(1)), func(ctx context.Context) error {
		g, _ := WithContext(ctx)

		return scoped.Run(ctx, scoped.NewCarrier(depth.Bind(2)), func(innerCtx context.Context) error {
			g.GoFrom(innerCtx, func(taskCtx context.Context) error {
				assert.Equal(t, 2, depth.MustGet(taskCtx))
				return nil
			})
			return g.Wait()
		})
	})
	require.NoError(t, err)
}

func TestGroupSetLimitBoundsConcurrency(t *testing.T) {
	g, _ := WithContext(context.Background())
	g.SetLimit(2)

	var inFlight, peak atomic.Int32
	for range 8 {
		g.Go(func(context.Context) error {
			cur := inFlight.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			inFlight.Add(-1)
			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestGroupFirstErrorCancelsSiblings(t *testing.T) {
	errBoom := errors.New("boom")

	g, _ := WithContext(context.Background())

	g.Go(func(taskCtx context.Context) error {
		<-taskCtx.Done()
		return taskCtx.Err()
	})
	g.Go(func(context.Context) error {
		return errBoom
	})

	require.ErrorIs(t, g.Wait(), errBoom)
}
