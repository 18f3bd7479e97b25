package scoped

import (
	"fmt"
	"reflect"
)

// AnyKey is the type-erased view of a *Key[T], used wherever keys of
// different value types travel together (bindings, carriers, inspection).
// Only keys produced by Declare implement it.
type AnyKey interface {
	// Name returns the diagnostic name given at declaration. It plays no
	// part in key identity.
	Name() string
	// Inheritable reports whether bindings of this key are captured into
	// snapshots.
	Inheritable() bool
	// ValueType returns the declared value type.
	ValueType() reflect.Type
	// BindAny builds a Binding from a runtime value, failing with a
	// *TypeMismatchError if the value is not assignable to the declared
	// type.
	BindAny(value any) (Binding, error)

	fmt.Stringer

	// sealed keeps AnyKey implementable only inside this package.
	sealed()
}

// Key is a unique identity token for one dynamically scoped value of type
// T. Identity is the pointer: two keys declared with identical arguments
// are distinct and never resolve each other's bindings. Keys are immutable
// and safe for concurrent use; they are typically declared once as
// package-level variables.
type Key[T any] struct {
	name        string
	inheritable bool
}

// KeyOption configures a key at declaration time.
type KeyOption func(*keySettings)

type keySettings struct {
	inheritable bool
}

// NotInherited excludes the key's bindings from snapshots. The key stays
// fully readable on the goroutine that bound it, but Capture omits it and
// no goroutine operating from a Snapshot can observe or reconstruct it.
func NotInherited() KeyOption {
	return func(s *keySettings) {
		s.inheritable = false
	}
}

// Declare creates a fresh key for values of type T. Keys are inheritable
// unless NotInherited is given. The name is used in error messages and
// inspection output only.
func Declare[T any](name string, opts ...KeyOption) *Key[T] {
	settings := keySettings{inheritable: true}
	for _, opt := range opts {
		opt(&settings)
	}

	return &Key[T]{
		name:        name,
		inheritable: settings.inheritable,
	}
}

// Name implements AnyKey.
func (k *Key[T]) Name() string {
	return k.name
}

// Inheritable implements AnyKey.
func (k *Key[T]) Inheritable() bool {
	return k.inheritable
}

// ValueType implements AnyKey.
func (k *Key[T]) ValueType() reflect.Type {
	return reflect.TypeFor[T]()
}

// String renders the key as name[type] for diagnostics.
func (k *Key[T]) String() string {
	name := k.name
	if name == "" {
		name = "anonymous"
	}

	return fmt.Sprintf("%s[%s]", name, k.ValueType())
}

// Bind associates a value with the key. The association takes effect only
// once the resulting Binding is passed through a Carrier to Run or Call.
func (k *Key[T]) Bind(value T) Binding {
	return Binding{key: k, value: value}
}

// BindAny implements AnyKey. It is the runtime-checked counterpart of Bind
// for values whose type is only known dynamically, such as values decoded
// from configuration. The check happens here, at binding time; a value
// that passes can never fail later at resolution.
func (k *Key[T]) BindAny(value any) (Binding, error) {
	if value == nil {
		if !nilable(k.ValueType().Kind()) {
			return Binding{}, &TypeMismatchError{Key: k, Value: value}
		}

		var zero T

		return Binding{key: k, value: zero}, nil
	}

	typed, ok := value.(T)
	if !ok {
		return Binding{}, &TypeMismatchError{Key: k, Value: value}
	}

	return Binding{key: k, value: typed}, nil
}

func (k *Key[T]) sealed() {}

func nilable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
