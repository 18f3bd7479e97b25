package scoped

import "context"

// Snapshot is an immutable capture of the inheritable bindings visible at
// one point on one goroutine, usable to seed other goroutines. It holds
// its own reference to the frame chain: rebinding keys, exiting scopes,
// or the capturing goroutine terminating never changes what the snapshot
// resolves. The zero Snapshot is valid and empty.
type Snapshot struct {
	head *frame
}

// Capture returns a Snapshot of the inheritable bindings reachable from
// ctx, preserving nearest-binding-wins order. Bindings of NotInherited
// keys are omitted entirely; they cannot be observed or reconstructed
// through the result.
//
// Capture copies no values. Frames made solely of inheritable bindings
// are shared with the live chain by reference; only frames that mix in
// non-inheritable bindings are rebuilt, and frames left empty by the
// filter are elided.
func Capture(ctx context.Context) Snapshot {
	return Snapshot{head: capturedChain(frameFrom(ctx))}
}

func capturedChain(f *frame) *frame {
	if f == nil {
		return nil
	}

	parent := capturedChain(f.parent)

	kept := inheritableBindings(f.bindings)
	if len(kept) == 0 {
		return parent
	}

	// Unfiltered frame over an unfiltered ancestry: share it as-is.
	if parent == f.parent && len(kept) == len(f.bindings) {
		return f
	}

	return newFrame(parent, kept)
}

// inheritableBindings returns bindings itself when every entry is
// inheritable, so the caller can detect the no-copy case by length.
func inheritableBindings(bindings []Binding) []Binding {
	for i, b := range bindings {
		if b.key.Inheritable() {
			continue
		}

		kept := make([]Binding, 0, len(bindings)-1)
		kept = append(kept, bindings[:i]...)

		for _, rest := range bindings[i+1:] {
			if rest.key.Inheritable() {
				kept = append(kept, rest)
			}
		}

		return kept
	}

	return bindings
}

// Run executes body with the snapshot's bindings as the entire visible
// chain. Any chain already on ctx is replaced, not merged, so the
// executing goroutine sees exactly what was captured, while deadlines,
// values, and cancellation of ctx still apply. The restore guarantee
// matches the package-level Run: the caller's context is untouched on
// every exit path.
func (s Snapshot) Run(ctx context.Context, body func(context.Context) error) error {
	return body(s.Context(ctx))
}

// CallIn is Snapshot.Run for bodies that produce a result.
func CallIn[T any](ctx context.Context, s Snapshot, body func(context.Context) (T, error)) (T, error) {
	return body(s.Context(ctx))
}

// Context returns ctx with the snapshot's chain installed, replacing any
// chain ctx carried. This is the integration point for executors that
// start goroutines on behalf of their callers: capture on the submitting
// goroutine, install on the worker's context before its body runs. The
// spawn subpackage does exactly this.
func (s Snapshot) Context(ctx context.Context) context.Context {
	return withFrame(ctx, s.head)
}

// IsEmpty reports whether the snapshot captured no bindings.
func (s Snapshot) IsEmpty() bool {
	return s.head == nil
}

// Describe returns the snapshot's bindings, nearest-first, in the same
// form as the package-level Describe.
func (s Snapshot) Describe() []BindingInfo {
	return describeChain(s.head)
}
