package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/sgoplug/internal/config"
	"github.com/vk/sgoplug/internal/ctxlog"
	"github.com/vk/sgoplug/internal/inventory"
	"github.com/vk/sgoplug/internal/library"
	"github.com/vk/sgoplug/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Run loads the configuration, opens every library, resolves the configured
// capabilities and writes the inventory. It returns an error when a required
// capability is rejected.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, converter, err := a.loadModel(ctx)
	if err != nil {
		return err
	}

	libs, err := a.collectLibraries(ctx, model)
	if err != nil {
		return err
	}
	if err := model.CheckReferences(libs); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	set, err := library.OpenAll(ctx, a.opener, libs, a.config.Concurrency)
	if err != nil {
		return fmt.Errorf("failed to open libraries: %w", err)
	}

	reg := registry.New(converter)
	for _, mod := range a.modules {
		mod.Register(reg)
	}
	a.logger.Debug("All Go modules registered.", "count", len(a.modules), "interfaces", reg.Interfaces())

	for _, name := range sortedNames(set.Libraries) {
		if err := reg.AddLibrary(set.Libraries[name]); err != nil {
			return err
		}
	}
	a.registry = reg

	report := reg.Resolve(ctx, model.Capabilities, set.Failures)
	a.report = report
	if len(report.Rejected) > 0 {
		a.logger.Warn("Some capabilities were rejected.", "rejected", len(report.Rejected), "reasons", report.Summary())
	}

	inv := inventory.Build(reg.Libraries(), set.Failures, report)
	if err := a.render(inv, reg); err != nil {
		return err
	}

	if a.config.Publish {
		if err := a.publishInventory(ctx, model, inv); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return report.Err()
}

func (a *App) loadModel(ctx context.Context) (*config.Model, config.Converter, error) {
	if len(a.config.ConfigPaths) == 0 {
		a.logger.Debug("No configuration paths given, using an empty model.")
		return config.NewModel(), nil, nil
	}
	model, converter, err := a.loader.Load(ctx, a.config.ConfigPaths...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Configuration loaded and translated into unified model.", "libraries", len(model.Libraries), "capabilities", len(model.Capabilities))
	return model, converter, nil
}

// collectLibraries merges the declared libraries with those discovered in
// the plugins directory. A declared library wins over a discovered one with
// the same name.
func (a *App) collectLibraries(ctx context.Context, model *config.Model) ([]*config.Library, error) {
	logger := ctxlog.FromContext(ctx)
	merged := make(map[string]*config.Library, len(model.Libraries))
	for name, lib := range model.Libraries {
		merged[name] = lib
	}

	if a.config.PluginsDir != "" {
		discovered, err := library.Discover(a.config.PluginsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plugins directory %s: %w", a.config.PluginsDir, err)
		}
		for _, lib := range discovered {
			if declared, ok := merged[lib.Name]; ok {
				logger.Debug("Discovered plugin shadowed by declared library.", "library", lib.Name, "declared_path", declared.Path, "discovered_path", lib.Path)
				continue
			}
			merged[lib.Name] = lib
		}
		logger.Debug("Plugins directory scanned.", "dir", a.config.PluginsDir, "found", len(discovered))
	}

	libs := make([]*config.Library, 0, len(merged))
	for _, name := range sortedNames(merged) {
		libs = append(libs, merged[name])
	}
	return libs, nil
}

func (a *App) render(inv cty.Value, reg *registry.Registry) error {
	switch a.config.Output {
	case OutputJSON:
		out, err := inventory.JSON(inv)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.outW, string(out))
		return err
	case OutputHCL:
		_, err := a.outW.Write(inventory.Scaffold(reg.Libraries(), reg))
		return err
	default:
		return inventory.WriteText(a.outW, inv)
	}
}

func (a *App) publishInventory(ctx context.Context, model *config.Model, inv cty.Value) error {
	if model.Publish == nil {
		return fmt.Errorf("publishing requested but the configuration has no publish block")
	}
	payload, err := inventory.JSON(inv)
	if err != nil {
		return err
	}
	if err := a.publish(ctx, model.Publish, payload); err != nil {
		return fmt.Errorf("failed to publish inventory: %w", err)
	}
	return nil
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
