package app

import (
	"errors"
	"fmt"
)

const (
	OutputText = "text"
	OutputJSON = "json"
	// OutputHCL writes a host configuration skeleton for the opened libraries.
	OutputHCL = "hcl"

	// DefaultConcurrency bounds how many libraries are opened at once.
	DefaultConcurrency = 4
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths []string // hcl files or directories
	PluginsDir  string   // *.so files, each opened as a library

	LogFormat   string
	LogLevel    string
	Output      string
	Publish     bool
	Concurrency int
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ConfigPaths) == 0 && cfg.PluginsDir == "" {
		return nil, errors.New("at least one configuration path or a plugins directory is required")
	}

	switch cfg.Output {
	case "":
		cfg.Output = OutputText
	case OutputText, OutputJSON, OutputHCL:
	default:
		return nil, fmt.Errorf("invalid output %q: must be %q, %q or %q", cfg.Output, OutputText, OutputJSON, OutputHCL)
	}

	if cfg.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must not be negative, got %d", cfg.Concurrency)
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	return &cfg, nil
}
