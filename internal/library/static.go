package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/sgoplug/manifest"
)

// Static opens libraries compiled into the host, keyed by the name that
// follows BuiltinScheme in their path.
type Static map[string]manifest.EntryPoint

// Open implements Opener.
func (s Static) Open(ctx context.Context, name, path string) (*Library, error) {
	key := strings.TrimPrefix(path, BuiltinScheme)
	entryPoint, ok := s[key]
	if !ok {
		return nil, fmt.Errorf("library %q: %w: %q", name, ErrUnknownBuiltin, key)
	}
	return Load(ctx, name, path, entryPoint)
}

// Router sends builtin paths to Builtin and every other path to Files.
type Router struct {
	Builtin Opener
	Files   Opener
}

// Open implements Opener.
func (r *Router) Open(ctx context.Context, name, path string) (*Library, error) {
	if IsBuiltinPath(path) {
		if r.Builtin == nil {
			return nil, fmt.Errorf("library %q: %w: %q", name, ErrUnknownBuiltin, path)
		}
		return r.Builtin.Open(ctx, name, path)
	}
	if r.Files == nil {
		return nil, fmt.Errorf("library %q at %s: %w", name, path, ErrPluginsUnsupported)
	}
	return r.Files.Open(ctx, name, path)
}
