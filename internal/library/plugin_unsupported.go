//go:build !((linux || darwin || freebsd) && cgo)

package library

import (
	"context"
	"fmt"
)

// PluginsSupported reports whether this build can open Go plugins.
const PluginsSupported = false

// PluginOpener rejects every path on builds without plugin support.
type PluginOpener struct{}

// NewPluginOpener returns an opener that always fails with ErrPluginsUnsupported.
func NewPluginOpener() *PluginOpener {
	return &PluginOpener{}
}

// Open implements Opener.
func (o *PluginOpener) Open(_ context.Context, name, path string) (*Library, error) {
	return nil, fmt.Errorf("library %q at %s: %w", name, path, ErrPluginsUnsupported)
}
