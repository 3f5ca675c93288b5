package erased

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrTypeMismatch is returned when a Value is extracted as a type other than
// the one it was stored under.
var ErrTypeMismatch = errors.New("type mismatch")

// Value holds a value together with the type tag it was stored under.
// The zero Value holds nothing.
type Value struct {
	tag reflect.Type
	v   any
}

// Store wraps v, tagging it with the static type T. For interface types the tag
// is the interface itself, not the dynamic type of v.
func Store[T any](v T) Value {
	return Value{tag: reflect.TypeFor[T](), v: v}
}

// Extract returns the stored value if it was stored as exactly T.
func Extract[T any](v Value) (T, error) {
	want := reflect.TypeFor[T]()
	if v.tag != want {
		var zero T
		return zero, &MismatchError{Stored: v.tag, Requested: want}
	}
	// A nil interface stored as T comes back as the zero T.
	out, _ := v.v.(T)
	return out, nil
}

// Tag returns the type the value was stored under, or nil for the zero Value.
func (v Value) Tag() reflect.Type {
	return v.tag
}

// IsZero reports whether v holds nothing.
func (v Value) IsZero() bool {
	return v.tag == nil
}

// Interface returns the stored value as an untyped interface.
func (v Value) Interface() any {
	return v.v
}

// String renders the type tag.
func (v Value) String() string {
	if v.tag == nil {
		return "erased.Value(<empty>)"
	}
	return fmt.Sprintf("erased.Value(%s)", v.tag)
}

// MismatchError describes a failed extraction.
type MismatchError struct {
	Stored    reflect.Type
	Requested reflect.Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: stored as %s, requested %s", ErrTypeMismatch, typeName(e.Stored), typeName(e.Requested))
}

// Is makes errors.Is(err, ErrTypeMismatch) hold for every MismatchError.
func (e *MismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<empty>"
	}
	return t.String()
}
