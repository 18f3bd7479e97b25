// Package scoped binds immutable named values to the dynamic extent of a
// call and propagates selected bindings into concurrently spawned
// goroutines without copying them.
//
// A value is bound for exactly the duration of a Run or Call invocation:
// the body passed to Run, and everything it calls with the context it
// receives, observes the binding; once Run returns the binding is gone on
// every exit path, including panics and cancellation. Bindings are held in
// an immutable chain of frames carried by the context, so "restoring" the
// previous state is structural: the caller's context was never modified.
//
// # Quick start
//
//	var user = scoped.Declare[string]("user")
//
//	err := scoped.Run(ctx, scoped.NewCarrier(user.Bind("ana")), func(ctx context.Context) error {
//		name, err := user.Get(ctx) // "ana"
//		...
//		return nil
//	})
//
// Rebinding a key in a nested Run shadows the outer value for the inner
// extent only; the outer value is visible again as soon as the inner body
// returns.
//
// # Propagation across goroutines
//
// Capture takes an immutable Snapshot of the inheritable bindings visible
// at the call site. Installing a snapshot on another goroutine shares the
// existing frame chain by reference; no binding is copied, and the
// snapshot stays valid after the capturing scope has exited:
//
//	snap := scoped.Capture(ctx)
//	go func() {
//		_ = snap.Run(context.Background(), func(ctx context.Context) error {
//			name := user.GetOr(ctx, "nobody") // still "ana"
//			return nil
//		})
//	}()
//
// Keys declared with NotInherited are readable only on the goroutine that
// bound them; Capture omits them entirely. The spawn subpackage wires this
// capture/install protocol into errgroup-style groups, parallel iteration,
// and long-lived worker pools.
//
// # Errors
//
// Binding a runtime value of the wrong type fails immediately with a
// TypeMismatchError (never deferred to resolution), and resolving an
// unbound key fails with an UnboundKeyError at the Get call site. Both
// match their package sentinels via errors.Is. Errors returned by a body
// pass through Run and Call unchanged.
package scoped
