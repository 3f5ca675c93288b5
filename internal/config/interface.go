package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given files or directories and
	// translates it into the format-agnostic model, along with the converter
	// able to apply the settings values it produced.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter applies configured settings to freshly created plugin objects.
type Converter interface {
	// ApplySettings assigns each setting to the exported field with a
	// matching name on target, which must be a pointer to a struct.
	ApplySettings(ctx context.Context, target any, settings map[string]cty.Value) error
}
