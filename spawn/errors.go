package spawn

import "errors"

var (
	// ErrPoolStopped is returned by Submit and Start once the pool has
	// been stopped.
	ErrPoolStopped = errors.New("spawn: pool stopped")

	// ErrNilTask is returned when a nil task is submitted.
	ErrNilTask = errors.New("spawn: nil task")
)
