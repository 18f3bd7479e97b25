// Package spawn starts goroutines that inherit scoped bindings.
//
// The scoped package deliberately does not create execution units; it
// exposes a capture/install protocol and leaves spawning to collaborators.
// This package provides three such collaborators, each following the same
// contract: capture a snapshot on the submitting goroutine, install it on
// the worker's context before the worker's body runs.
//
//   - Group wraps errgroup with snapshot inheritance per task.
//   - ForEach runs a function over a slice with bounded parallelism.
//   - Pool runs long-lived workers; each task carries the bindings of
//     whoever submitted it, captured at submit time.
//
// Cancellation always flows through contexts; bindings always flow
// through snapshots. Installing a snapshot replaces whatever chain the
// worker context carried, so non-inheritable bindings never leak into
// spawned work.
package spawn
