package scoped

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrTypeMismatch matches any *TypeMismatchError via errors.Is.
var ErrTypeMismatch = errors.New("scoped: value type mismatch")

// ErrUnbound matches any *UnboundKeyError via errors.Is.
var ErrUnbound = errors.New("scoped: key not bound")

// TypeMismatchError reports an attempt to bind a value that is not
// assignable to the key's declared type. It is returned at binding time by
// BindAny and Carrier.WithAny, never at resolution time.
type TypeMismatchError struct {
	Key   AnyKey
	Value any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("scoped: cannot bind value of type %s to key %s", valueTypeName(e.Value), e.Key)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// UnboundKeyError reports a Get on a key that no frame in the current
// chain binds.
type UnboundKeyError struct {
	Key AnyKey
}

func (e *UnboundKeyError) Error() string {
	return fmt.Sprintf("scoped: key %s is not bound in the current scope", e.Key)
}

// Is reports whether target is ErrUnbound.
func (e *UnboundKeyError) Is(target error) bool {
	return target == ErrUnbound
}

func valueTypeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "untyped nil"
	}

	return t.String()
}
