package publish

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/sgoplug/internal/config"
	"github.com/vk/sgoplug/internal/ctxlog"
)

func validConfig() *config.Publish {
	return &config.Publish{
		URL:       "http://localhost:3000/socket.io/",
		Namespace: "/",
		Event:     "inventory",
		Timeout:   time.Second,
	}
}

func TestNew(t *testing.T) {
	p, err := New(validConfig())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", p.baseURL)
	assert.Equal(t, "/socket.io/", p.path)

	noPath := validConfig()
	noPath.URL = "wss://example.com"
	p, err = New(noPath)
	require.NoError(t, err)
	assert.Equal(t, "/socket.io/", p.path, "path defaults to the socket.io mount point")
}

func TestNew_Invalid(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *config.Publish)
	}{
		{"bad scheme", func(c *config.Publish) { c.URL = "ftp://localhost/" }},
		{"no host", func(c *config.Publish) { c.URL = "http:///socket.io/" }},
		{"unparsable", func(c *config.Publish) { c.URL = "http://[::1" }},
		{"empty event", func(c *config.Publish) { c.Event = "" }},
		{"zero timeout", func(c *config.Publish) { c.Timeout = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			_, err := New(cfg)
			assert.ErrorIs(t, err, ErrInvalidTarget)
		})
	}

	_, err := New(nil)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestDecodePayload(t *testing.T) {
	data, err := decodePayload([]byte(`{"libraries":[],"rejected":[{"name":"x"}]}`))
	require.NoError(t, err)
	assert.Contains(t, data, "libraries")

	_, err = decodePayload([]byte(`[1,2]`))
	assert.Error(t, err)
	_, err = decodePayload([]byte(`null`))
	assert.Error(t, err)
}

func TestConnectError(t *testing.T) {
	assert.EqualError(t, connectError(nil), "connect_error")
	assert.EqualError(t, connectError([]any{"refused"}), "connect_error: refused")
	assert.EqualError(t, connectError([]any{context.DeadlineExceeded}), context.DeadlineExceeded.Error())
}

func TestPublish_Unreachable(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	cfg := validConfig()
	cfg.URL = "http://127.0.0.1:1/socket.io/"
	cfg.Timeout = 300 * time.Millisecond

	p, err := New(cfg)
	require.NoError(t, err)

	start := time.Now()
	_, err = p.Publish(ctx, []byte(`{"libraries":[]}`))

	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestPublish_RejectsBadPayload(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	p, err := New(validConfig())
	require.NoError(t, err)

	_, err = p.Publish(ctx, []byte(`not json`))
	assert.ErrorContains(t, err, "payload must be a JSON object")
}
