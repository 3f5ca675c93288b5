package manifest

import (
	"sync"

	"github.com/vk/sgoplug/sgo"
)

// EntryPointSymbol is the name of the function a plugin's package main must
// export:
//
//	func ShogunManifest() manifest.Manifest
const EntryPointSymbol = "ShogunManifest"

// RootSuffix is appended to an exported identifier to form the key of its
// root-typed entry.
const RootSuffix = "_sgo"

// RootName returns the root-typed key for identifier.
func RootName(identifier string) string {
	return identifier + RootSuffix
}

// EntryPoint returns the manifest of a library.
type EntryPoint func() Manifest

// Module contributes classes to a manifest under construction.
type Module interface {
	Register(b *Builder)
}

// RegisterFunc adapts a function to the Module interface.
type RegisterFunc func(b *Builder)

// Register calls f(b).
func (f RegisterFunc) Register(b *Builder) {
	f(b)
}

// Builder accumulates entries for a single manifest.
type Builder struct {
	description string
	entries     []Entry
}

// NewBuilder returns an empty builder for a manifest with the given description.
func NewBuilder(description string) *Builder {
	return &Builder{description: description}
}

// Add appends a single class of type T.
func Add[T any](b *Builder, name string, create func() T) {
	b.entries = append(b.entries, Class(name, create))
}

// Export appends the two entries of an exported class: RootName(identifier)
// typed as sgo.Object and identifier typed as I. Both call create.
func Export[I sgo.Object](b *Builder, identifier string, create func() I) {
	b.entries = append(b.entries, Exports(identifier, create)...)
}

// Exports returns the two entries Export would append.
func Exports[I sgo.Object](identifier string, create func() I) []Entry {
	return []Entry{
		Class(RootName(identifier), func() sgo.Object { return create() }),
		Class(identifier, create),
	}
}

// Entries returns a copy of the entries added so far.
func (b *Builder) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Build creates the manifest.
func (b *Builder) Build() (Manifest, error) {
	return New(b.description, b.entries...)
}

// Declare returns the entry point of a library. The manifest is built from the
// modules on the first call and the same manifest is returned on every call
// after that, including concurrent first calls. A module declaring a class
// twice is a programming error and makes the entry point panic.
func Declare(description string, modules ...Module) EntryPoint {
	return sync.OnceValue(func() Manifest {
		b := NewBuilder(description)
		for _, mod := range modules {
			mod.Register(b)
		}
		return MustNew(description, b.entries...)
	})
}
