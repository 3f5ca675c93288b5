package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/sgoplug/internal/ctxlog"
	"github.com/vk/sgoplug/manifest"
)

// BuiltinScheme prefixes the path of a library compiled into the host.
const BuiltinScheme = "builtin:"

var (
	// ErrSymbolNotFound indicates a plugin that does not export manifest.EntryPointSymbol.
	ErrSymbolNotFound = errors.New("entry point symbol not found")
	// ErrBadEntryPoint indicates an entry point symbol with an unexpected type.
	ErrBadEntryPoint = errors.New("entry point has the wrong type")
	// ErrEntryPointPanic indicates an entry point that panicked while building its manifest.
	ErrEntryPointPanic = errors.New("entry point panicked")
	// ErrPluginsUnsupported indicates a platform or build without Go plugin support.
	ErrPluginsUnsupported = errors.New("go plugins are not supported by this build")
	// ErrUnknownBuiltin indicates a builtin path that names no compiled-in library.
	ErrUnknownBuiltin = errors.New("unknown builtin library")
)

// Library is an opened plugin library.
type Library struct {
	Name     string
	Path     string
	Manifest manifest.Manifest
}

// IsBuiltin reports whether the library is compiled into the host.
func (l *Library) IsBuiltin() bool {
	return IsBuiltinPath(l.Path)
}

// IsBuiltinPath reports whether path uses BuiltinScheme.
func IsBuiltinPath(path string) bool {
	return strings.HasPrefix(path, BuiltinScheme)
}

// Opener opens the library found at path and names it name.
type Opener interface {
	Open(ctx context.Context, name, path string) (*Library, error)
}

// Load turns an entry point symbol into a Library by calling it once.
// A panicking entry point is reported as ErrEntryPointPanic.
func Load(ctx context.Context, name, path string, sym any) (lib *Library, err error) {
	logger := ctxlog.FromContext(ctx)

	entryPoint, err := entryPointFromSymbol(sym)
	if err != nil {
		return nil, fmt.Errorf("library %q at %s: %w", name, path, err)
	}

	defer func() {
		if r := recover(); r != nil {
			lib = nil
			err = fmt.Errorf("library %q at %s: %w: %v", name, path, ErrEntryPointPanic, r)
		}
	}()
	m := entryPoint()

	logger.Debug("Loaded library manifest.", "library", name, "path", path, "description", m.Description(), "classes", m.Len())
	return &Library{Name: name, Path: path, Manifest: m}, nil
}

// entryPointFromSymbol accepts the shapes a plugin lookup can produce: a
// function for `func ShogunManifest()`, or a pointer for an exported variable.
func entryPointFromSymbol(sym any) (manifest.EntryPoint, error) {
	var ep manifest.EntryPoint
	switch fn := sym.(type) {
	case func() manifest.Manifest:
		ep = fn
	case manifest.EntryPoint:
		ep = fn
	case *func() manifest.Manifest:
		if fn != nil {
			ep = *fn
		}
	case *manifest.EntryPoint:
		if fn != nil {
			ep = *fn
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrBadEntryPoint, sym)
	}
	if ep == nil {
		return nil, fmt.Errorf("%w: nil function", ErrBadEntryPoint)
	}
	return ep, nil
}
