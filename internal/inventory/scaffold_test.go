package inventory

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/sgoplug/internal/ctxlog"
	"github.com/vk/sgoplug/internal/hcl"
	"github.com/vk/sgoplug/internal/library"
	"github.com/vk/sgoplug/internal/registry"
	"github.com/vk/sgoplug/plugins/kernels"
	"github.com/vk/sgoplug/plugins/machines"
	"github.com/vk/sgoplug/sgo"
)

func TestScaffold_RoundTrips(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := registry.New(nil)
	r.RegisterInterface(registry.Bind[sgo.Object]("object"))
	r.RegisterInterface(registry.Bind[sgo.Kernel]("kernel"))
	r.RegisterInterface(registry.Bind[sgo.Machine]("machine"))
	static := library.Static{"kernels": kernels.Manifest, "machines": machines.Manifest}
	for _, name := range []string{"kernels", "machines"} {
		lib, err := static.Open(ctx, name, library.BuiltinScheme+name)
		require.NoError(t, err)
		require.NoError(t, r.AddLibrary(lib))
	}

	out := Scaffold(r.Libraries(), r)

	assert.Contains(t, string(out), `library "kernels" {`)
	assert.Contains(t, string(out), `capability "kernels_GaussianKernel" {`)
	assert.Contains(t, string(out), `interface = "machine"`)
	assert.NotContains(t, string(out), "_sgo")

	// The scaffold is a valid configuration that resolves completely.
	path := filepath.Join(t.TempDir(), "scaffold.hcl")
	require.NoError(t, os.WriteFile(path, out, 0644))
	model, _, err := hcl.NewLoader().Load(ctx, path)
	require.NoError(t, err)
	assert.Len(t, model.Capabilities, 5)

	report := r.Resolve(ctx, model.Capabilities, nil)
	assert.Len(t, report.Resolved, 5)
	assert.NoError(t, report.Err())
}
