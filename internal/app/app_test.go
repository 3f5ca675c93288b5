package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/sgoplug/internal/config"
	"github.com/vk/sgoplug/internal/ctxlog"
	"github.com/vk/sgoplug/internal/hcl"
	"github.com/vk/sgoplug/internal/library"
	"github.com/vk/sgoplug/internal/registry"
	"github.com/vk/sgoplug/internal/testutil"
	"github.com/vk/sgoplug/plugins/kernels"
	"github.com/vk/sgoplug/sgo"
)

const hostHCL = `
	library "kernels" {
	  path = "builtin:kernels"
	}
	library "machines" {
	  path = "builtin:machines"
	}

	capability "rbf" {
	  library   = "kernels"
	  class     = "GaussianKernel"
	  interface = "kernel"
	  settings = {
	    width = 0.5
	  }
	}
	capability "learner" {
	  library   = "machines"
	  class     = "Perceptron"
	  interface = "machine"
	}
	capability "anything" {
	  library = "machines"
	  class   = "MeanRegressor_sgo"
	}
`

func runApp(t *testing.T, cfg Config, files map[string]string) (*App, string, string, error) {
	t.Helper()
	dir := testutil.WriteFiles(t, files)
	cfg.ConfigPaths = []string{dir}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	a := NewApp(out, logs, appConfig, hcl.NewLoader(), nil)
	err = a.Run(context.Background())
	return a, out.String(), logs.String(), err
}

func TestApp_Run_ResolvesCapabilities(t *testing.T) {
	a, out, logs, err := runApp(t, Config{Output: OutputJSON}, map[string]string{"host.hcl": hostHCL})
	require.NoError(t, err)

	var doc struct {
		Libraries    []map[string]any `json:"libraries"`
		Capabilities []map[string]any `json:"capabilities"`
		Rejected     []map[string]any `json:"rejected"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Libraries, 2)
	assert.Len(t, doc.Capabilities, 3)
	assert.Empty(t, doc.Rejected)

	rbf, ok := a.Report().Capability("rbf")
	require.True(t, ok)
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	kernel, err := registry.Instance[sgo.Kernel](ctx, rbf)
	require.NoError(t, err)
	assert.Equal(t, 0.5, kernel.(*kernels.Gaussian).Width)

	assert.Equal(t, []string{"kernel", "machine", "object"}, a.Registry().Interfaces())
	assert.Contains(t, logs, "Capability resolved.")
}

func TestApp_Run_RequiredRejectionFails(t *testing.T) {
	files := map[string]string{
		"host.hcl": hostHCL,
		"extra.hcl": `
			capability "sigmoid" {
			  library   = "kernels"
			  class     = "SigmoidKernel"
			  interface = "kernel"
			}
			capability "maybe" {
			  library   = "kernels"
			  class     = "GaussianKernel"
			  interface = "machine"
			  optional  = true
			}
		`,
	}

	a, out, logs, err := runApp(t, Config{}, files)

	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrCapabilityRejected)
	assert.Contains(t, err.Error(), `"sigmoid"`)
	assert.NotContains(t, err.Error(), `"maybe"`)
	assert.Len(t, a.Report().Rejected, 2)

	assert.Contains(t, out, "CAPABILITY")
	assert.Contains(t, out, "rejected: not_found")
	assert.Contains(t, out, "rejected: type_mismatch (optional)")
	assert.Contains(t, logs, "Capability rejected.")
}

func TestApp_Run_UnavailableLibrary(t *testing.T) {
	files := map[string]string{"host.hcl": `
		library "remote" {
		  path = "builtin:remote"
		}
		capability "k" {
		  library  = "remote"
		  class    = "GaussianKernel"
		  optional = true
		}
	`}

	a, out, _, err := runApp(t, Config{}, files)

	require.NoError(t, err)
	require.Len(t, a.Report().Rejected, 1)
	assert.Equal(t, registry.ReasonLibraryUnavailable, a.Report().Rejected[0].Reason)
	assert.ErrorIs(t, a.Report().Rejected[0].Err, library.ErrUnknownBuiltin)
	assert.Contains(t, out, "FAILED")
}

func TestApp_Run_ConfigError(t *testing.T) {
	_, _, _, err := runApp(t, Config{}, map[string]string{"bad.hcl": `library "x" {`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Run_Publish(t *testing.T) {
	files := map[string]string{"host.hcl": hostHCL + `
		publish {
		  url = "http://localhost:3000/socket.io/"
		}
	`}
	dir := testutil.WriteFiles(t, files)
	appConfig, err := NewConfig(Config{ConfigPaths: []string{dir}, Publish: true})
	require.NoError(t, err)

	a := NewApp(&bytes.Buffer{}, &testutil.SafeBuffer{}, appConfig, hcl.NewLoader(), nil)

	var published []byte
	var target *config.Publish
	a.publish = func(_ context.Context, cfg *config.Publish, payload []byte) error {
		target = cfg
		published = payload
		return nil
	}

	require.NoError(t, a.Run(context.Background()))
	require.NotNil(t, target)
	assert.Equal(t, "inventory", target.Event)
	assert.True(t, json.Valid(published))

	a.publish = func(context.Context, *config.Publish, []byte) error { return errors.New("refused") }
	err = a.Run(context.Background())
	assert.ErrorContains(t, err, "failed to publish inventory: refused")
}

func TestApp_Run_PublishWithoutBlock(t *testing.T) {
	_, _, _, err := runApp(t, Config{Publish: true}, map[string]string{"host.hcl": hostHCL})
	assert.ErrorContains(t, err, "no publish block")
}

func TestApp_Run_PluginsDirOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.so"), []byte("not a plugin"), 0644))

	appConfig, err := NewConfig(Config{PluginsDir: dir, Output: OutputJSON})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	a := NewApp(out, &testutil.SafeBuffer{}, appConfig, hcl.NewLoader(), nil)
	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), `"failed_libraries":[{"error":`)
	assert.Contains(t, out.String(), `"name":"broken"`)
	assert.Empty(t, a.Registry().Libraries())
}

func TestApp_Run_CapabilityOnDiscoveredLibrary(t *testing.T) {
	pluginsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(pluginsDir, "broken.so"), []byte("not a plugin"), 0644))

	files := map[string]string{"host.hcl": `
		capability "k" {
		  library  = "broken"
		  class    = "GaussianKernel"
		  optional = true
		}
	`}

	a, _, _, err := runApp(t, Config{PluginsDir: pluginsDir}, files)

	require.NoError(t, err)
	require.Len(t, a.Report().Rejected, 1)
	assert.Equal(t, "k", a.Report().Rejected[0].Name)
	assert.Equal(t, registry.ReasonLibraryUnavailable, a.Report().Rejected[0].Reason)
}

func TestApp_Run_UndeclaredLibrary(t *testing.T) {
	files := map[string]string{"host.hcl": `
		capability "k" {
		  library = "nowhere"
		  class   = "GaussianKernel"
		}
	`}

	_, _, _, err := runApp(t, Config{PluginsDir: t.TempDir()}, files)

	require.ErrorIs(t, err, config.ErrInvalidModel)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Contains(t, err.Error(), `references undeclared library "nowhere"`)
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{ConfigPaths: []string{"host.hcl"}})
	require.NoError(t, err)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)

	_, err = NewConfig(Config{})
	assert.Error(t, err)
	_, err = NewConfig(Config{PluginsDir: "plugins", Output: "yaml"})
	assert.ErrorContains(t, err, "invalid output")
	_, err = NewConfig(Config{PluginsDir: "plugins", Concurrency: -1})
	assert.Error(t, err)
}

func TestApp_Run_ScaffoldOutput(t *testing.T) {
	files := map[string]string{"host.hcl": `
		library "kernels" {
		  path = "builtin:kernels"
		}
	`}

	_, out, _, err := runApp(t, Config{Output: OutputHCL}, files)

	require.NoError(t, err)
	assert.Contains(t, out, `capability "kernels_PolyKernel" {`)
	assert.Contains(t, out, `interface = "kernel"`)
}
