package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zclconf/go-cty/cty"
)

// ErrInvalidModel indicates a configuration that is well-formed but inconsistent.
var ErrInvalidModel = errors.New("invalid configuration")

// Model is the unified, format-agnostic representation of the host configuration.
type Model struct {
	Libraries    map[string]*Library
	Capabilities []*Capability
	Publish      *Publish
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Libraries: make(map[string]*Library)}
}

// Library names a plugin library and where to open it from.
type Library struct {
	Name string
	// Path is a file path to a Go plugin or "builtin:<name>" for a library
	// compiled into the host.
	Path string
}

// Capability asks for one class of a library through a named interface.
type Capability struct {
	Name      string
	Library   string
	Class     string
	Interface string
	// Optional capabilities may be rejected without failing the run.
	Optional bool
	Settings map[string]cty.Value
}

// Publish configures where the resolved inventory is sent.
type Publish struct {
	URL                string
	Namespace          string
	Event              string
	AckEvent           string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// LibraryNames returns the configured library names in sorted order.
func (m *Model) LibraryNames() []string {
	names := make([]string, 0, len(m.Libraries))
	for name := range m.Libraries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the blocks for consistency. Library references are left to
// CheckReferences since a capability may target a library that is only
// discovered at run time.
func (m *Model) Validate() error {
	var errs []string
	seen := make(map[string]struct{}, len(m.Capabilities))
	for _, c := range m.Capabilities {
		if _, dup := seen[c.Name]; dup {
			errs = append(errs, fmt.Sprintf("capability %q declared more than once", c.Name))
		}
		seen[c.Name] = struct{}{}
		if strings.TrimSpace(c.Class) == "" {
			errs = append(errs, fmt.Sprintf("capability %q has an empty class", c.Name))
		}
	}
	for name, lib := range m.Libraries {
		if strings.TrimSpace(lib.Path) == "" {
			errs = append(errs, fmt.Sprintf("library %q has an empty path", name))
		}
	}
	if m.Publish != nil && strings.TrimSpace(m.Publish.URL) == "" {
		errs = append(errs, "publish block has an empty url")
	}
	return invalid(errs)
}

// CheckReferences reports capabilities whose library is neither declared in
// the model nor among available.
func (m *Model) CheckReferences(available []*Library) error {
	known := make(map[string]struct{}, len(m.Libraries)+len(available))
	for name := range m.Libraries {
		known[name] = struct{}{}
	}
	for _, lib := range available {
		known[lib.Name] = struct{}{}
	}

	var errs []string
	for _, c := range m.Capabilities {
		if _, ok := known[c.Library]; !ok {
			errs = append(errs, fmt.Sprintf("capability %q references undeclared library %q", c.Name, c.Library))
		}
	}
	return invalid(errs)
}

func invalid(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	sort.Strings(errs)
	return fmt.Errorf("%w:\n- %s", ErrInvalidModel, strings.Join(errs, "\n- "))
}
