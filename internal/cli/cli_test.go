package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/sgoplug/internal/app"
)

func TestParse(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{
		"-c", "libs.hcl",
		"--config", "caps",
		"--plugins-dir", "plugins",
		"--output", "JSON",
		"--log-level", "debug",
		"--publish",
		"--concurrency", "2",
		"extra.hcl",
	}, out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, []string{"libs.hcl", "caps", "extra.hcl"}, cfg.ConfigPaths)
	assert.Equal(t, "plugins", cfg.PluginsDir)
	assert.Equal(t, app.OutputJSON, cfg.Output)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.Publish)
	assert.Equal(t, 2, cfg.Concurrency)
}

func TestParse_Exits(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"help", []string{"-h"}},
		{"nothing to do", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, shouldExit, err := Parse(tc.args, out)
			require.NoError(t, err)
			assert.True(t, shouldExit)
			assert.Nil(t, cfg)
			assert.Contains(t, out.String(), "Usage:")
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		args        []string
		errContains string
	}{
		{"unknown flag", []string{"--nope"}, "flag provided but not defined"},
		{"bad log format", []string{"--log-format", "xml", "a.hcl"}, "invalid log-format"},
		{"bad log level", []string{"--log-level", "loud", "a.hcl"}, "invalid log-level"},
		{"bad output", []string{"--output", "yaml", "a.hcl"}, "invalid output"},
		{"bad concurrency", []string{"--concurrency", "0", "a.hcl"}, "invalid concurrency"},
		{"empty config path", []string{"-c", ""}, "path must not be empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.errContains)
		})
	}
}
