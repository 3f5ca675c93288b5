package hcl

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vk/sgoplug/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter is the HCL-specific implementation of the config.Converter interface.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// ApplySettings assigns each setting to the exported field whose name matches
// case-insensitively. Settings are applied in name order.
func (c *Converter) ApplySettings(ctx context.Context, target any, settings map[string]cty.Value) error {
	if len(settings) == 0 {
		return nil
	}
	logger := ctxlog.FromContext(ctx)

	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() || ptr.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("settings target must be a non-nil pointer to a struct, got %T", target)
	}
	structVal := ptr.Elem()

	names := make([]string, 0, len(settings))
	for name := range settings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field, err := settingField(structVal, name)
		if err != nil {
			return err
		}
		if err := c.decode(ctx, settings[name], field.Addr().Interface()); err != nil {
			return fmt.Errorf("failed to apply setting %q: %w", name, err)
		}
		logger.Debug("Applied setting.", "target", structVal.Type().String(), "setting", name)
	}
	return nil
}

// settingField finds the exported field a setting names. An exact match wins,
// otherwise the case-insensitive match must be unique at the shallowest depth.
func settingField(structVal reflect.Value, name string) (reflect.Value, error) {
	var matches []reflect.StructField
	for _, f := range reflect.VisibleFields(structVal.Type()) {
		if !f.IsExported() || !strings.EqualFold(f.Name, name) {
			continue
		}
		if f.Name == name {
			matches = []reflect.StructField{f}
			break
		}
		switch {
		case len(matches) == 0 || len(f.Index) < len(matches[0].Index):
			matches = []reflect.StructField{f}
		case len(f.Index) == len(matches[0].Index):
			matches = append(matches, f)
		}
	}

	switch len(matches) {
	case 0:
		return reflect.Value{}, fmt.Errorf("unknown setting %q for %s", name, structVal.Type())
	case 1:
	default:
		return reflect.Value{}, fmt.Errorf("ambiguous setting %q for %s: matches %s and %s", name, structVal.Type(), matches[0].Name, matches[1].Name)
	}

	field, err := structVal.FieldByIndexErr(matches[0].Index)
	if err != nil || !field.CanSet() {
		return reflect.Value{}, fmt.Errorf("setting %q cannot be assigned on %s", name, structVal.Type())
	}
	return field, nil
}

// decode handles the conversion and decoding of a cty.Value into a Go pointer.
func (c *Converter) decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)
	valPtr := reflect.ValueOf(goVal)

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.", "go_type", valPtr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	if !val.Type().Equals(convertedVal.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", convertedVal.Type().FriendlyName(),
		)
	}

	return gocty.FromCtyValue(convertedVal, goVal)
}
