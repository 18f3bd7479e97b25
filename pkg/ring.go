// Package pkg is a package that provides utilities for scoped.
package pkg

import (
	"fmt"
	"log/slog"
	"sync"
)

// Ring is a generic bounded buffer that keeps the most recent items of
// type T, evicting the oldest once full.
type Ring[T any] interface {
	Len() int
	Cap() int
	Append(item T)
	Get(index int) (T, error)
	Items() []T
	Range(f func(index int, item T) error) error
	Clear()
}

type ringImpl[T any] struct {
	mu     sync.Mutex
	buf    []T
	start  int
	length int
}

// Append implements Ring.
func (r *ringImpl[T]) Append(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.length < len(r.buf) {
		r.buf[(r.start+r.length)%len(r.buf)] = item
		r.length++
	} else {
		r.buf[r.start] = item
		r.start = (r.start + 1) % len(r.buf)
	}

	slog.Debug("appended item", "length", r.length, "capacity", len(r.buf))
}

// Get implements Ring. Index 0 is the oldest retained item.
func (r *ringImpl[T]) Get(index int) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= r.length {
		var zero T

		slog.Warn("get index out of bounds", "index", index, "length", r.length)

		return zero, fmt.Errorf("index %d out of bounds (length %d)", index, r.length)
	}

	return r.buf[(r.start+index)%len(r.buf)], nil
}

// Items implements Ring. The returned slice is a copy, oldest first.
func (r *ringImpl[T]) Items() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]T, r.length)
	for i := range r.length {
		items[i] = r.buf[(r.start+i)%len(r.buf)]
	}

	return items
}

// Len implements Ring.
func (r *ringImpl[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.length
}

// Cap implements Ring.
func (r *ringImpl[T]) Cap() int {
	return len(r.buf)
}

// Range implements Ring.
func (r *ringImpl[T]) Range(f func(index int, item T) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.length {
		if err := f(i, r.buf[(r.start+i)%len(r.buf)]); err != nil {
			slog.Warn("range callback error", "index", i, "error", err)
			return err
		}
	}

	return nil
}

// Clear implements Ring.
func (r *ringImpl[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.start = 0
	r.length = 0

	slog.Debug("cleared ring", "capacity", len(r.buf))
}

// NewRing creates a Ring holding at most capacity items of type T.
func NewRing[T any](capacity int) (Ring[T], error) {
	if capacity < 1 {
		slog.Error("invalid ring capacity", "capacity", capacity)
		return nil, fmt.Errorf("ring capacity must be positive, got %d", capacity)
	}

	return &ringImpl[T]{
		buf: make([]T, capacity),
	}, nil
}
