package spawn

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gooze.dev/pkg/scoped"
)

func receiveErr(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a pool error")
		return nil
	}
}

func TestPoolExecutesSubmittedTasks(t *testing.T) {
	pool := NewPool(WithWorkers(2), WithQueueDepth(8))
	require.NoError(t, pool.Start(context.Background()))

	var count atomic.Int32
	var wg sync.WaitGroup

	for range 5 {
		wg.Add(1)
		err := pool.Submit(context.Background(), func(context.Context) error {
			defer wg.Done()
			count.Add(1)
			return nil
		})
		require.NoError(t, err)
	}

	wg.Wait()
	require.NoError(t, pool.Stop(context.Background()))
	assert.Equal(t, int32(5), count.Load())
}

func TestPoolCapturesBindingsAtSubmit(t *testing.T) {
	user := scoped.Declare[string]("user")

	pool := NewPool(WithWorkers(1))
	require.NoError(t, pool.Start(context.Background()))
	defer pool.Stop(context.Background())

	got := make(chan string, 1)
	err := scoped.Run(context.Background(), scoped.NewCarrier(user.Bind("ana")), func(ctx context.Context) error {
		return pool.Submit(ctx, func(taskCtx context.Context) error {
			got <- user.GetOr(taskCtx, "unbound")
			return nil
		})
	})
	require.NoError(t, err)

	select {
	case v := <-got:
		assert.Equal(t, "ana", v)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the first task")
	}

	// The worker's baseline context carries nothing over between tasks.
	err = pool.Submit(context.Background(), func(taskCtx context.Context) error {
		got <- user.GetOr(taskCtx, "unbound")
		return nil
	})
	require.NoError(t, err)

	select {
	case v := <-got:
		assert.Equal(t, "unbound", v)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the second task")
	}
}

func TestPoolSubmitSnapshotOutlivesScope(t *testing.T) {
	job := scoped.Declare[int]("job")

	var snap scoped.Snapshot
	err := scoped.Run(context.Background(), scoped.NewCarrier(job.Bind(42)), func(ctx context.Context) error {
		snap = scoped.Capture(ctx)
		return nil
	})
	require.NoError(t, err)

	pool := NewPool(WithWorkers(1))
	require.NoError(t, pool.Start(context.Background()))

	got := make(chan int, 1)
	err = pool.SubmitSnapshot(context.Background(), snap, func(taskCtx context.Context) error {
		got <- job.MustGet(taskCtx)
		return nil
	})
	require.NoError(t, err)

	select {
	case v := <-got:
		assert.Equal(t, 42, v)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the task")
	}

	require.NoError(t, pool.Stop(context.Background()))
}

func TestPoolStopDrainsQueuedTasks(t *testing.T) {
	pool := NewPool(WithWorkers(1), WithQueueDepth(8))

	var count atomic.Int32
	for range 3 {
		err := pool.Submit(context.Background(), func(context.Context) error {
			count.Add(1)
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, pool.Start(context.Background()))
	require.NoError(t, pool.Stop(context.Background()))
	assert.Equal(t, int32(3), count.Load())
}

func TestPoolSubmitAfterStopFails(t *testing.T) {
	pool := NewPool(WithWorkers(1))
	require.NoError(t, pool.Start(context.Background()))
	require.NoError(t, pool.Stop(context.Background()))

	err := pool.Submit(context.Background(), func(context.Context) error { return nil })
	require.ErrorIs(t, err, ErrPoolStopped)
}

func TestPoolRejectsNilTask(t *testing.T) {
	pool := NewPool()
	err := pool.Submit(context.Background(), nil)
	require.ErrorIs(t, err, ErrNilTask)
}

func TestPoolSubmitHonorsContextWhileQueueFull(t *testing.T) {
	pool := NewPool(WithWorkers(1), WithQueueDepth(1))

	// Not started, so the single queue slot stays occupied.
	err := pool.Submit(context.Background(), func(context.Context) error { return nil })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = pool.Submit(ctx, func(context.Context) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestPoolErrorHandlerReceivesTaskErrors(t *testing.T) {
	errBoom := errors.New("boom")

	errs := make(chan error, 1)
	pool := NewPool(WithWorkers(1), WithErrorHandler(func(err error) { errs <- err }))
	require.NoError(t, pool.Start(context.Background()))
	defer pool.Stop(context.Background())

	err := pool.Submit(context.Background(), func(context.Context) error { return errBoom })
	require.NoError(t, err)

	require.ErrorIs(t, receiveErr(t, errs), errBoom)
}

func TestPoolRecoversPanickingTasks(t *testing.T) {
	errs := make(chan error, 1)
	pool := NewPool(WithWorkers(1), WithErrorHandler(func(err error) { errs <- err }))
	require.NoError(t, pool.Start(context.Background()))
	defer pool.Stop(context.Background())

	err := pool.Submit(context.Background(), func(context.Context) error { panic("zonk") })
	require.NoError(t, err)

	assert.Contains(t, receiveErr(t, errs).Error(), "zonk")

	// The worker survives the panic and keeps serving tasks.
	done := make(chan struct{})
	err = pool.Submit(context.Background(), func(context.Context) error {
		close(done)
		return nil
	})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not run tasks after a panic")
	}
}

func TestPoolStopTwice(t *testing.T) {
	pool := NewPool(WithWorkers(1))
	require.NoError(t, pool.Start(context.Background()))
	require.NoError(t, pool.Stop(context.Background()))
	require.NoError(t, pool.Stop(context.Background()))
}
