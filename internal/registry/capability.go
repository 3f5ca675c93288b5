package registry

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/vk/sgoplug/internal/config"
	"github.com/vk/sgoplug/sgo"
	"github.com/zclconf/go-cty/cty"
)

// ErrNotImplemented indicates an instance that does not implement the
// interface it was requested as.
var ErrNotImplemented = errors.New("instance does not implement interface")

// Capability is a resolved capability: a factory for one class of a library,
// typed by a registered interface.
type Capability struct {
	Name      string
	Library   string
	Class     string
	Interface string
	Type      reflect.Type

	create    func() sgo.Object
	settings  map[string]cty.Value
	converter config.Converter
}

// New creates a fresh instance and applies the configured settings to it.
func (c *Capability) New(ctx context.Context) (sgo.Object, error) {
	obj := c.create()
	if len(c.settings) == 0 {
		return obj, nil
	}
	if c.converter == nil {
		return nil, fmt.Errorf("capability %q: settings given but no converter configured", c.Name)
	}
	if err := c.converter.ApplySettings(ctx, obj, c.settings); err != nil {
		return nil, fmt.Errorf("capability %q: %w", c.Name, err)
	}
	return obj, nil
}

// Instance creates a fresh instance of c as I.
func Instance[I sgo.Object](ctx context.Context, c *Capability) (I, error) {
	var zero I
	obj, err := c.New(ctx)
	if err != nil {
		return zero, err
	}
	i, ok := obj.(I)
	if !ok {
		return zero, fmt.Errorf("capability %q: %w: %T is not %s", c.Name, ErrNotImplemented, obj, reflect.TypeFor[I]())
	}
	return i, nil
}
