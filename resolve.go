package scoped

import "context"

// Get resolves the key against the context's frame chain, nearest binding
// first. It fails with an *UnboundKeyError (matching ErrUnbound) when no
// frame binds the key. For a fixed context the result is deterministic:
// frames never change once constructed.
func (k *Key[T]) Get(ctx context.Context) (T, error) {
	if v, ok := lookupChain(frameFrom(ctx), k); ok {
		return v.(T), nil
	}

	var zero T

	return zero, &UnboundKeyError{Key: k}
}

// GetOr resolves the key, substituting fallback when it is unbound.
func (k *Key[T]) GetOr(ctx context.Context, fallback T) T {
	if v, ok := lookupChain(frameFrom(ctx), k); ok {
		return v.(T)
	}

	return fallback
}

// MustGet resolves the key and panics when it is unbound. It is a
// convenience for call sites that guarantee an enclosing binding.
func (k *Key[T]) MustGet(ctx context.Context) T {
	v, err := k.Get(ctx)
	if err != nil {
		panic(err)
	}

	return v
}

// IsBound reports whether any frame in the context's chain binds the key.
func (k *Key[T]) IsBound(ctx context.Context) bool {
	_, ok := lookupChain(frameFrom(ctx), k)
	return ok
}

// Value resolves key without its static type, for callers that hold
// keys of mixed types behind AnyKey. It reports whether key was bound.
func Value(ctx context.Context, key AnyKey) (any, bool) {
	return lookupChain(frameFrom(ctx), key)
}
