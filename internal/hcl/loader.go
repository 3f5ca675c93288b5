package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/sgoplug/internal/config"
	"github.com/vk/sgoplug/internal/ctxlog"
	"github.com/vk/sgoplug/internal/fsutil"
	"github.com/vk/sgoplug/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var (
	_ config.Loader    = (*Loader)(nil)
	_ config.Converter = (*Converter)(nil)
)

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and merges them into a single
// model. Library and capability names must be unique across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	var files []string
	seen := make(map[string]struct{})
	for _, path := range paths {
		found, err := fsutil.FindFiles(path, ".hcl")
		if err != nil {
			return nil, nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		for _, f := range found {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.File
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := l.merge(model, &root, file); err != nil {
			return nil, nil, err
		}
	}

	if err := model.Validate(); err != nil {
		return nil, nil, err
	}

	logger.Debug("HCL loading complete.", "libraries", len(model.Libraries), "capabilities", len(model.Capabilities), "publish", model.Publish != nil)
	return model, NewConverter(), nil
}

// merge translates one decoded file into the model.
func (l *Loader) merge(model *config.Model, root *schema.File, file string) error {
	for _, lib := range root.Libraries {
		if _, dup := model.Libraries[lib.Name]; dup {
			return fmt.Errorf("%s: library %q declared more than once", file, lib.Name)
		}
		model.Libraries[lib.Name] = translateLibrary(lib)
	}
	for _, c := range root.Capabilities {
		capability, err := translateCapability(c)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		model.Capabilities = append(model.Capabilities, capability)
	}
	for _, p := range root.Publish {
		if model.Publish != nil {
			return fmt.Errorf("%s: only one publish block is allowed", file)
		}
		publish, err := translatePublish(p)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		model.Publish = publish
	}
	return nil
}
