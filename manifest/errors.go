package manifest

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/vk/sgoplug/erased"
)

var (
	// ErrClassNotFound indicates a lookup of a name the manifest does not declare.
	ErrClassNotFound = errors.New("class not found in manifest")
	// ErrTypeMismatch indicates a lookup with a type other than the declared one.
	ErrTypeMismatch = erased.ErrTypeMismatch
	// ErrDuplicateClass indicates a name declared twice in one manifest.
	ErrDuplicateClass = errors.New("class already declared in manifest")
	// ErrInvalidEntry indicates an entry without a name or without a MetaClass.
	ErrInvalidEntry = errors.New("invalid manifest entry")
)

// ClassError reports a failure concerning a single class name.
type ClassError struct {
	Name string
	// Requested is the type asked for by a lookup, if any.
	Requested reflect.Type
	// Stored is the type the class was declared with, if known.
	Stored reflect.Type
	Err    error
}

func (e *ClassError) Error() string {
	if errors.Is(e.Err, ErrTypeMismatch) {
		return fmt.Sprintf("class %q: %v: declared as %s, requested %s", e.Name, e.Err, typeString(e.Stored), typeString(e.Requested))
	}
	return fmt.Sprintf("class %q: %v", e.Name, e.Err)
}

func (e *ClassError) Unwrap() error {
	return e.Err
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<unknown>"
	}
	return t.String()
}
