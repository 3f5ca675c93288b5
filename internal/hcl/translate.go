package hcl

import (
	"fmt"
	"strings"
	"time"

	"github.com/vk/sgoplug/internal/config"
	"github.com/vk/sgoplug/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

const (
	defaultInterface = "object"
	defaultEvent     = "inventory"
	defaultNamespace = "/"
	defaultTimeout   = 10 * time.Second
)

func translateLibrary(s *schema.Library) *config.Library {
	return &config.Library{Name: s.Name, Path: strings.TrimSpace(s.Path)}
}

// translateCapability converts a capability block, defaulting the interface
// to the root object interface.
func translateCapability(s *schema.Capability) (*config.Capability, error) {
	c := &config.Capability{
		Name:      s.Name,
		Library:   s.Library,
		Class:     s.Class,
		Interface: s.Interface,
		Optional:  s.Optional,
	}
	if c.Interface == "" {
		c.Interface = defaultInterface
	}
	if s.Settings == nil || s.Settings.IsNull() {
		return c, nil
	}

	val := *s.Settings
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("capability %q: settings must be known values", s.Name)
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("capability %q: settings must be an object, got %s", s.Name, val.Type().FriendlyName())
	}
	c.Settings = make(map[string]cty.Value)
	for name, v := range val.AsValueMap() {
		c.Settings[name] = v
	}
	return c, nil
}

func translatePublish(s *schema.Publish) (*config.Publish, error) {
	p := &config.Publish{
		URL:                s.URL,
		Namespace:          s.Namespace,
		Event:              s.Event,
		AckEvent:           s.AckEvent,
		Timeout:            defaultTimeout,
		InsecureSkipVerify: s.InsecureSkipVerify,
	}
	if p.Namespace == "" {
		p.Namespace = defaultNamespace
	}
	if p.Event == "" {
		p.Event = defaultEvent
	}
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return nil, fmt.Errorf("publish: invalid timeout %q: %w", s.Timeout, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("publish: timeout must be positive, got %s", d)
		}
		p.Timeout = d
	}
	return p, nil
}
