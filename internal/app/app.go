package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/sgoplug/internal/config"
	"github.com/vk/sgoplug/internal/library"
	"github.com/vk/sgoplug/internal/publish"
	"github.com/vk/sgoplug/internal/registry"
)

// publishFunc sends a rendered inventory to the configured target.
type publishFunc func(ctx context.Context, cfg *config.Publish, payload []byte) error

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loader  config.Loader
	opener  library.Opener
	modules []registry.Module
	publish publishFunc

	registry *registry.Registry
	report   *registry.Report
}

// NewApp is the constructor for the main application. The inventory is
// written to outW and logs to logW. Without modules the core interface
// bindings are registered.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader, opener library.Opener, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	if opener == nil {
		opener = DefaultOpener()
	}

	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		loader:  loader,
		opener:  opener,
		modules: modules,
		publish: publishToSocket,
	}
}

// Registry returns the registry of the last run. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Report returns the resolution report of the last run.
func (a *App) Report() *registry.Report {
	return a.report
}

func publishToSocket(ctx context.Context, cfg *config.Publish, payload []byte) error {
	p, err := publish.New(cfg)
	if err != nil {
		return err
	}
	_, err = p.Publish(ctx, payload)
	return err
}
