package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/vk/sgoplug/internal/config"
	"github.com/vk/sgoplug/internal/library"
	"github.com/vk/sgoplug/manifest"
	"github.com/vk/sgoplug/sgo"
)

// Module is the interface that host modules implement to register the
// capability interfaces they consume.
type Module interface {
	Register(r *Registry)
}

// Binding ties an interface name to the Go interface a class is looked up as.
type Binding struct {
	Name string
	Type reflect.Type

	lookup func(m manifest.Manifest, class string) (func() sgo.Object, error)
}

// Bind returns the binding of name to the interface I.
func Bind[I sgo.Object](name string) Binding {
	return Binding{
		Name: name,
		Type: reflect.TypeFor[I](),
		lookup: func(m manifest.Manifest, class string) (func() sgo.Object, error) {
			meta, err := manifest.ClassByName[I](m, class)
			if err != nil {
				return nil, err
			}
			return func() sgo.Object { return meta.Instance() }, nil
		},
	}
}

// Registry holds the interface bindings and opened libraries of a single
// application instance.
type Registry struct {
	interfaces map[string]Binding
	libraries  map[string]*library.Library
	converter  config.Converter
}

// New creates an empty registry. The converter applies capability settings
// and may be nil when no capability carries any.
func New(converter config.Converter) *Registry {
	return &Registry{
		interfaces: make(map[string]Binding),
		libraries:  make(map[string]*library.Library),
		converter:  converter,
	}
}

// RegisterInterface makes an interface available to capabilities.
func (r *Registry) RegisterInterface(b Binding) {
	if b.lookup == nil {
		panic(fmt.Sprintf("interface '%s' was not created with Bind", b.Name))
	}
	if _, exists := r.interfaces[b.Name]; exists {
		panic(fmt.Sprintf("interface with name '%s' already registered", b.Name))
	}
	slog.Debug("Registering capability interface.", "name", b.Name, "interface", b.Type.String())
	r.interfaces[b.Name] = b
}

// Interface returns the binding registered under name.
func (r *Registry) Interface(name string) (Binding, bool) {
	b, ok := r.interfaces[name]
	return b, ok
}

// Interfaces returns the registered interface names in sorted order.
func (r *Registry) Interfaces() []string {
	names := make([]string, 0, len(r.interfaces))
	for name := range r.interfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddLibrary records an opened library.
func (r *Registry) AddLibrary(lib *library.Library) error {
	if _, exists := r.libraries[lib.Name]; exists {
		return fmt.Errorf("library %q already added", lib.Name)
	}
	r.libraries[lib.Name] = lib
	return nil
}

// Library returns the opened library with the given name.
func (r *Registry) Library(name string) (*library.Library, bool) {
	lib, ok := r.libraries[name]
	return lib, ok
}

// Libraries returns the opened libraries ordered by name.
func (r *Registry) Libraries() []*library.Library {
	libs := make([]*library.Library, 0, len(r.libraries))
	for _, lib := range r.libraries {
		libs = append(libs, lib)
	}
	sort.Slice(libs, func(i, j int) bool { return libs[i].Name < libs[j].Name })
	return libs
}

// Classify returns the name of the most specific registered interface that
// class of m can be looked up as, preferring any interface over the root
// object one. It returns "" when none matches.
func (r *Registry) Classify(m manifest.Manifest, class string) string {
	rootType := reflect.TypeFor[sgo.Object]()
	fallback := ""
	for _, name := range r.Interfaces() {
		b := r.interfaces[name]
		if _, err := b.lookup(m, class); err != nil {
			continue
		}
		if b.Type != rootType {
			return name
		}
		if fallback == "" {
			fallback = name
		}
	}
	return fallback
}
