package scoped

import "context"

// frameCtxKey is the single context key under which the current frame
// chain travels. Everything in this package reads and derives contexts
// through it; nothing outside can reach the chain.
type frameCtxKey struct{}

func frameFrom(ctx context.Context) *frame {
	f, _ := ctx.Value(frameCtxKey{}).(*frame)
	return f
}

func withFrame(ctx context.Context, f *frame) context.Context {
	return context.WithValue(ctx, frameCtxKey{}, f)
}

// Run executes body with the carrier's bindings in scope. The body, and
// every function it calls with the context it receives, resolves those
// bindings; the moment Run returns they are out of scope again. The
// restore is unconditional on every exit path (normal return, error,
// panic, cancellation) because the caller's own context is never
// modified, only derived from.
//
// Rebinding a key already bound in an enclosing scope shadows it for the
// duration of body; the outer value reappears automatically afterwards.
// Nested Run/Call invocations on the same goroutine strictly nest.
//
// The body's error is returned unchanged; Run neither wraps, logs, nor
// recovers anything.
func Run(ctx context.Context, c Carrier, body func(context.Context) error) error {
	return body(scopeContext(ctx, c))
}

// Call is Run for bodies that produce a result. It is a free function
// because Go methods cannot introduce type parameters.
func Call[T any](ctx context.Context, c Carrier, body func(context.Context) (T, error)) (T, error) {
	return body(scopeContext(ctx, c))
}

// scopeContext derives the context body runs under. An empty carrier adds
// no frame: an empty frame binds nothing, so skipping it is unobservable.
func scopeContext(ctx context.Context, c Carrier) context.Context {
	if len(c.pending) == 0 {
		return ctx
	}

	return withFrame(ctx, newFrame(frameFrom(ctx), c.pending))
}
