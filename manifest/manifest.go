package manifest

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/vk/sgoplug/erased"
)

// Entry pairs a class name with an erased MetaClass.
type Entry struct {
	Name  string
	Class erased.Value
}

// Class returns an entry declaring name as a class of type T.
func Class[T any](name string, create func() T) Entry {
	return Entry{Name: name, Class: erased.Store(NewMetaClass(create))}
}

// Manifest describes the classes exported by a library.
//
// The zero Manifest is empty and valid. Copies share immutable state.
type Manifest struct {
	self *self
}

type self struct {
	description string
	classes     map[string]erased.Value
}

// New builds a manifest from the given entries. A name may be declared only
// once; a repeated name fails with ErrDuplicateClass.
func New(description string, entries ...Entry) (Manifest, error) {
	s := &self{
		description: description,
		classes:     make(map[string]erased.Value, len(entries)),
	}
	for _, e := range entries {
		if err := s.addClass(e); err != nil {
			return Manifest{}, err
		}
	}
	return Manifest{self: s}, nil
}

// MustNew is like New but panics on error.
func MustNew(description string, entries ...Entry) Manifest {
	m, err := New(description, entries...)
	if err != nil {
		panic(fmt.Sprintf("manifest %q: %v", description, err))
	}
	return m
}

func (s *self) addClass(e Entry) error {
	if e.Name == "" {
		return &ClassError{Err: fmt.Errorf("%w: empty class name", ErrInvalidEntry)}
	}
	meta, ok := e.Class.Interface().(metaclass)
	if !ok || reflect.TypeOf(meta) != e.Class.Tag() {
		return &ClassError{Name: e.Name, Stored: e.Class.Tag(), Err: fmt.Errorf("%w: value is not a MetaClass", ErrInvalidEntry)}
	}
	if existing, ok := s.classes[e.Name]; ok {
		return &ClassError{Name: e.Name, Stored: existing.Interface().(metaclass).Type(), Requested: meta.Type(), Err: ErrDuplicateClass}
	}
	s.classes[e.Name] = e.Class
	return nil
}

func (m Manifest) findClass(name string) (erased.Value, bool) {
	if m.self == nil {
		return erased.Value{}, false
	}
	clazz, ok := m.self.classes[name]
	return clazz, ok
}

// ClassByName returns the MetaClass declared under name, typed as T.
//
// Requesting sgo.Object succeeds for every class whose declared type satisfies
// sgo.Object. Any other T must match the declared type exactly.
func ClassByName[T any](m Manifest, name string) (MetaClass[T], error) {
	requested := reflect.TypeFor[T]()
	clazz, ok := m.findClass(name)
	if !ok {
		return MetaClass[T]{}, &ClassError{Name: name, Requested: requested, Err: ErrClassNotFound}
	}
	meta := clazz.Interface().(metaclass)

	if requested == rootType {
		if root, ok := meta.root(); ok {
			return any(root).(MetaClass[T]), nil
		}
		return MetaClass[T]{}, &ClassError{Name: name, Requested: requested, Stored: meta.Type(), Err: ErrTypeMismatch}
	}

	typed, err := erased.Extract[MetaClass[T]](clazz)
	if err != nil {
		return MetaClass[T]{}, &ClassError{Name: name, Requested: requested, Stored: meta.Type(), Err: ErrTypeMismatch}
	}
	return typed, nil
}

// Description returns the library description.
func (m Manifest) Description() string {
	if m.self == nil {
		return ""
	}
	return m.self.description
}

// ClassList returns every declared class name in sorted order.
func (m Manifest) ClassList() []string {
	if m.self == nil {
		return []string{}
	}
	return slices.Sorted(maps.Keys(m.self.classes))
}

// ClassType returns the type a class was declared with.
func (m Manifest) ClassType(name string) (reflect.Type, bool) {
	clazz, ok := m.findClass(name)
	if !ok {
		return nil, false
	}
	return clazz.Interface().(metaclass).Type(), true
}

// Has reports whether name is declared.
func (m Manifest) Has(name string) bool {
	_, ok := m.findClass(name)
	return ok
}

// Len returns the number of declared classes.
func (m Manifest) Len() int {
	if m.self == nil {
		return 0
	}
	return len(m.self.classes)
}

// Equal reports whether both manifests have the same description and declare
// the same class names. Creation functions are not compared.
func (m Manifest) Equal(other Manifest) bool {
	if m.Description() != other.Description() || m.Len() != other.Len() {
		return false
	}
	for name := range m.classes() {
		if !other.Has(name) {
			return false
		}
	}
	return true
}

// Clone returns a manifest with its own copy of the class table.
func (m Manifest) Clone() Manifest {
	if m.self == nil {
		return Manifest{}
	}
	return Manifest{self: &self{
		description: m.self.description,
		classes:     maps.Clone(m.self.classes),
	}}
}

func (m Manifest) classes() map[string]erased.Value {
	if m.self == nil {
		return nil
	}
	return m.self.classes
}

// String implements fmt.Stringer.
func (m Manifest) String() string {
	return fmt.Sprintf("manifest(%q, %d classes)", m.Description(), m.Len())
}
