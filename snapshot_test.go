package scoped

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureEmptyContext(t *testing.T) {
	snap := Capture(context.Background())

	assert.True(t, snap.IsEmpty())
	assert.Nil(t, snap.Describe())
}

func TestCaptureSharesAllInheritableChain(t *testing.T) {
	user := Declare[string]("user")
	request := Declare[int]("request")

	err := Run(context.Background(), NewCarrier(user.Bind("ana")), func(ctx context.Context) error {
		return Run(ctx, NewCarrier(request.Bind(7)), func(ctx context.Context) error {
			snap := Capture(ctx)

			assert.Same(t, frameFrom(ctx), snap.head, "an all-inheritable chain is shared, not copied")

			return nil
		})
	})
	require.NoError(t, err)
}

func TestCaptureOmitsNonInheritableBindings(t *testing.T) {
	user := Declare[string]("user")
	secret := Declare[string]("secret", NotInherited())

	err := Run(context.Background(), NewCarrier(user.Bind("ana"), secret.Bind("hunter2")), func(ctx context.Context) error {
		require.True(t, secret.IsBound(ctx), "non-inheritable keys stay readable on their own goroutine")

		snap := Capture(ctx)

		return snap.Run(context.Background(), func(ctx context.Context) error {
			assert.True(t, user.IsBound(ctx))
			assert.False(t, secret.IsBound(ctx), "snapshots must not expose non-inheritable bindings")

			return nil
		})
	})
	require.NoError(t, err)
}

func TestCaptureElidesFramesLeftEmpty(t *testing.T) {
	user := Declare[string]("user")
	secret := Declare[string]("secret", NotInherited())

	err := Run(context.Background(), NewCarrier(user.Bind("ana")), func(ctx context.Context) error {
		outer := frameFrom(ctx)

		return Run(ctx, NewCarrier(secret.Bind("hunter2")), func(ctx context.Context) error {
			snap := Capture(ctx)

			assert.Same(t, outer, snap.head, "a frame holding only non-inheritable bindings drops out of the capture")

			return nil
		})
	})
	require.NoError(t, err)
}

func TestSnapshotIndependentOfLaterRebinding(t *testing.T) {
	key := Declare[int]("count")

	err := Run(context.Background(), NewCarrier(key.Bind(1)), func(ctx context.Context) error {
		snap := Capture(ctx)

		return Run(ctx, NewCarrier(key.Bind(2)), func(context.Context) error {
			return snap.Run(context.Background(), func(ctx context.Context) error {
				assert.Equal(t, 1, key.MustGet(ctx), "rebinding after capture must not leak into the snapshot")
				return nil
			})
		})
	})
	require.NoError(t, err)
}

func TestSnapshotOutlivesCapturingScope(t *testing.T) {
	key := Declare[string]("user")

	var snap Snapshot

	err := Run(context.Background(), NewCarrier(key.Bind("ana")), func(ctx context.Context) error {
		snap = Capture(ctx)
		return nil
	})
	require.NoError(t, err)

	// The capturing scope has exited; the snapshot still resolves.
	value, err := CallIn(context.Background(), snap, func(ctx context.Context) (string, error) {
		return key.Get(ctx)
	})
	require.NoError(t, err)
	assert.Equal(t, "ana", value)
}

func TestSnapshotOutlivesCapturingGoroutine(t *testing.T) {
	key := Declare[int]("count")

	snapCh := make(chan Snapshot)

	go func() {
		_ = Run(context.Background(), NewCarrier(key.Bind(12)), func(ctx context.Context) error {
			snapCh <- Capture(ctx)
			return nil
		})
	}()

	snap := <-snapCh

	err := snap.Run(context.Background(), func(ctx context.Context) error {
		assert.Equal(t, 12, key.MustGet(ctx))
		return nil
	})
	require.NoError(t, err)
}

func TestSnapshotContextReplacesExistingChain(t *testing.T) {
	local := Declare[string]("local")

	err := Run(context.Background(), NewCarrier(local.Bind("here")), func(ctx context.Context) error {
		empty := Snapshot{}

		seeded := empty.Context(ctx)
		assert.False(t, local.IsBound(seeded), "installing a snapshot replaces the chain, it never merges")

		return nil
	})
	require.NoError(t, err)
}

func TestSnapshotPreservesNearestWinsOrder(t *testing.T) {
	key := Declare[string]("user")

	err := Run(context.Background(), NewCarrier(key.Bind("outer")), func(ctx context.Context) error {
		return Run(ctx, NewCarrier(key.Bind("inner")), func(ctx context.Context) error {
			snap := Capture(ctx)

			return snap.Run(context.Background(), func(ctx context.Context) error {
				assert.Equal(t, "inner", key.MustGet(ctx))
				return nil
			})
		})
	})
	require.NoError(t, err)
}

func TestSnapshotSharedAcrossGoroutines(t *testing.T) {
	key := Declare[int]("count")

	err := Run(context.Background(), NewCarrier(key.Bind(3)), func(ctx context.Context) error {
		snap := Capture(ctx)

		const readers = 16

		var wg sync.WaitGroup

		results := make([]int, readers)

		for i := range readers {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_ = snap.Run(context.Background(), func(ctx context.Context) error {
					results[i] = key.MustGet(ctx)
					return nil
				})
			}()
		}

		wg.Wait()

		for _, got := range results {
			assert.Equal(t, 3, got)
		}

		return nil
	})
	require.NoError(t, err)
}

func TestEndToEndPropagation(t *testing.T) {
	key := Declare[int]("count")

	err := Run(context.Background(), NewCarrier(key.Bind(1)), func(outer context.Context) error {
		err := Run(outer, NewCarrier(key.Bind(2)), func(inner context.Context) error {
			assert.Equal(t, 2, key.MustGet(inner))
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, 1, key.MustGet(outer))

		snap := Capture(outer)

		return Run(outer, NewCarrier(key.Bind(3)), func(rebound context.Context) error {
			assert.Equal(t, 3, key.MustGet(rebound))

			done := make(chan int, 1)

			go func() {
				_ = snap.Run(context.Background(), func(ctx context.Context) error {
					done <- key.MustGet(ctx)
					return nil
				})
			}()

			assert.Equal(t, 1, <-done, "the snapshot sees the capture-time value, not the rebound one")

			return nil
		})
	})
	require.NoError(t, err)
}
