package spawn

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"gooze.dev/pkg/scoped"
)

// Task is a unit of work executed by a Pool worker. The context it
// receives carries the bindings captured when the task was submitted.
type Task func(ctx context.Context) error

// submission pairs a task with the snapshot it must run under.
type submission struct {
	snap scoped.Snapshot
	task Task
}

// Pool manages a fixed set of worker goroutines executing submitted
// tasks. Each task runs under the snapshot captured at submit time, so
// workers never leak one caller's bindings into another caller's task.
type Pool struct {
	workers    int
	queueDepth int
	logger     *slog.Logger
	errHandler func(error)

	tasks  chan submission
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
	stopped bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines. Values <= 0 keep
// the default of runtime.GOMAXPROCS(0).
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithQueueDepth sets how many submissions may wait unexecuted before
// Submit blocks.
func WithQueueDepth(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.queueDepth = n
		}
	}
}

// WithLogger sets the pool's logger.
func WithLogger(l *slog.Logger) PoolOption {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithErrorHandler sets the function invoked with every task error,
// including errors synthesized from recovered panics. The default
// handler logs the error.
func WithErrorHandler(fn func(error)) PoolOption {
	return func(p *Pool) { p.errHandler = fn }
}

// NewPool creates a pool. Call Start to launch its workers.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		workers:    runtime.GOMAXPROCS(0),
		queueDepth: 16,
		logger:     slog.Default(),
		stopCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.tasks = make(chan submission, p.queueDepth)
	return p
}

// Start launches the worker goroutines and returns immediately. Tasks
// run with ctx as their base context; cancelling it cancels tasks that
// are in flight. Starting a pool twice is a no-op.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running || p.stopped {
		return nil
	}
	p.running = true

	p.logger.Info("pool starting",
		slog.Int("workers", p.workers),
		slog.Int("queue_depth", p.queueDepth),
	)

	for range p.workers {
		p.wg.Add(1)
		go p.workerLoop(ctx)
	}

	return nil
}

// Submit captures the inheritable bindings visible in ctx and enqueues
// task to run under them. It blocks while the queue is full and returns
// ErrPoolStopped once Stop has been called.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	return p.SubmitSnapshot(ctx, scoped.Capture(ctx), task)
}

// SubmitSnapshot enqueues task to run under a snapshot captured
// earlier, typically inside a scope that has since been exited. ctx
// bounds only the wait for queue space.
func (p *Pool) SubmitSnapshot(ctx context.Context, snap scoped.Snapshot, task Task) error {
	if task == nil {
		return ErrNilTask
	}

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ErrPoolStopped
	}
	p.mu.Unlock()

	select {
	case p.tasks <- submission{snap: snap, task: task}:
		return nil
	case <-p.stopCh:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop rejects further submissions, lets the workers drain the queue,
// and waits for them to exit. If ctx expires first, Stop returns
// ctx.Err() without waiting further. Stopping twice is a no-op.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	started := p.running
	p.running = false
	p.mu.Unlock()

	p.logger.Info("pool stopping")
	close(p.stopCh)

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("pool stopped")
		return nil
	case <-ctx.Done():
		p.logger.Warn("pool shutdown timed out")
		return ctx.Err()
	}
}

// workerLoop is run by each worker goroutine.
func (p *Pool) workerLoop(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopCh:
			p.drain(ctx)
			return
		case sub := <-p.tasks:
			p.runTask(ctx, sub)
		}
	}
}

// drain executes submissions that were already queued when the pool
// stopped.
func (p *Pool) drain(ctx context.Context) {
	for {
		select {
		case sub := <-p.tasks:
			p.runTask(ctx, sub)
		default:
			return
		}
	}
}

func (p *Pool) runTask(ctx context.Context, sub submission) {
	defer func() {
		if r := recover(); r != nil {
			p.handleError(fmt.Errorf("spawn: task panicked: %v", r))
		}
	}()

	if err := sub.snap.Run(ctx, sub.task); err != nil {
		p.handleError(err)
	}
}

func (p *Pool) handleError(err error) {
	if p.errHandler != nil {
		p.errHandler(err)
		return
	}
	p.logger.Error("pool task failed", slog.String("error", err.Error()))
}
