package manifest

import (
	"reflect"

	"github.com/vk/sgoplug/sgo"
)

var rootType = reflect.TypeFor[sgo.Object]()

// MetaClass binds the type T to a function creating new instances of it.
type MetaClass[T any] struct {
	create func() T
}

// NewMetaClass returns a MetaClass calling create for every new instance.
func NewMetaClass[T any](create func() T) MetaClass[T] {
	return MetaClass[T]{create: create}
}

// Instance creates a new instance. A MetaClass without a creation function
// returns the zero T.
func (m MetaClass[T]) Instance() T {
	if m.create == nil {
		var zero T
		return zero
	}
	return m.create()
}

// Type returns the type tag of the class.
func (m MetaClass[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// IsZero reports whether m has no creation function.
func (m MetaClass[T]) IsZero() bool {
	return m.create == nil
}

// metaclass is satisfied by every MetaClass[T] and lets the manifest inspect
// erased entries without knowing T.
type metaclass interface {
	Type() reflect.Type
	root() (MetaClass[sgo.Object], bool)
}

// root returns m as a root-typed MetaClass when T satisfies sgo.Object.
func (m MetaClass[T]) root() (MetaClass[sgo.Object], bool) {
	if r, ok := any(m).(MetaClass[sgo.Object]); ok {
		return r, true
	}
	if !reflect.TypeFor[T]().Implements(rootType) {
		return MetaClass[sgo.Object]{}, false
	}
	return NewMetaClass(func() sgo.Object {
		obj, _ := any(m.Instance()).(sgo.Object)
		return obj
	}), true
}
