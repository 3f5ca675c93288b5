//go:build (linux || darwin || freebsd) && cgo

package library

import (
	"context"
	"fmt"
	"plugin"

	"github.com/vk/sgoplug/internal/ctxlog"
	"github.com/vk/sgoplug/manifest"
)

// PluginsSupported reports whether this build can open Go plugins.
const PluginsSupported = true

// PluginOpener opens Go plugins built with -buildmode=plugin.
type PluginOpener struct{}

// NewPluginOpener returns an opener backed by the plugin package.
func NewPluginOpener() *PluginOpener {
	return &PluginOpener{}
}

// Open implements Opener.
func (o *PluginOpener) Open(ctx context.Context, name, path string) (*Library, error) {
	ctxlog.FromContext(ctx).Debug("Opening plugin.", "library", name, "path", path)

	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("library %q: failed to open plugin %s: %w", name, path, err)
	}
	sym, err := p.Lookup(manifest.EntryPointSymbol)
	if err != nil {
		return nil, fmt.Errorf("library %q at %s: %w: %s", name, path, ErrSymbolNotFound, manifest.EntryPointSymbol)
	}
	return Load(ctx, name, path, sym)
}
