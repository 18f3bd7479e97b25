package scoped

// Binding is one pending key/value pair. Bindings are produced by
// Key.Bind or Key.BindAny (the zero Binding is invalid) and collected in a
// Carrier before taking effect through Run or Call.
type Binding struct {
	key   AnyKey
	value any
}

// Key returns the bound key.
func (b Binding) Key() AnyKey {
	return b.key
}

// Value returns the bound value.
func (b Binding) Value() any {
	return b.value
}

// Carrier accumulates bindings for one Run or Call invocation. The zero
// Carrier is empty and ready to use. A Carrier is immutable: With returns
// a new value and never changes the receiver, so carriers can be shared
// across goroutines and reused as templates for repeated invocations.
type Carrier struct {
	pending []Binding
}

// NewCarrier returns a Carrier holding the given bindings, applying the
// same last-write-wins rule as With.
func NewCarrier(bindings ...Binding) Carrier {
	return Carrier{}.With(bindings...)
}

// With returns a Carrier whose pending set is the receiver's plus the
// given bindings. When a key is already pending, the new binding
// supersedes the old one (last write wins within one Carrier). A binding
// with a nil key panics, mirroring context.WithValue.
func (c Carrier) With(bindings ...Binding) Carrier {
	if len(bindings) == 0 {
		return c
	}

	merged := make([]Binding, 0, len(c.pending)+len(bindings))
	merged = append(merged, c.pending...)

	for _, b := range bindings {
		if b.key == nil {
			panic("scoped: cannot carry a binding with a nil key")
		}

		merged = withoutKey(merged, b.key)
		merged = append(merged, b)
	}

	return Carrier{pending: merged}
}

// WithAny is the runtime-checked counterpart of With: it binds a value
// whose type is only known dynamically, failing with a *TypeMismatchError
// before anything is carried.
func (c Carrier) WithAny(key AnyKey, value any) (Carrier, error) {
	if key == nil {
		panic("scoped: cannot carry a binding with a nil key")
	}

	binding, err := key.BindAny(value)
	if err != nil {
		return c, err
	}

	return c.With(binding), nil
}

// Len returns the number of pending bindings.
func (c Carrier) Len() int {
	return len(c.pending)
}

// Bindings returns a copy of the pending bindings in carrier order.
func (c Carrier) Bindings() []Binding {
	if len(c.pending) == 0 {
		return nil
	}

	out := make([]Binding, len(c.pending))
	copy(out, c.pending)

	return out
}

// withoutKey filters bindings for key in place; bindings must be a fresh
// slice owned by the caller.
func withoutKey(bindings []Binding, key AnyKey) []Binding {
	kept := bindings[:0]

	for _, b := range bindings {
		if b.key != key {
			kept = append(kept, b)
		}
	}

	return kept
}
