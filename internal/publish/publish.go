package publish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/vk/sgoplug/internal/config"
	"github.com/vk/sgoplug/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// ErrInvalidTarget indicates a publish configuration that cannot be dialled.
var ErrInvalidTarget = errors.New("invalid publish target")

// Result describes a completed publish.
type Result struct {
	SID string
	// Ack holds the first argument of the acknowledgement event when one is
	// configured, otherwise the first argument the server acknowledged with.
	Ack any
}

// Publisher emits inventories to one socket.io namespace.
type Publisher struct {
	cfg     config.Publish
	baseURL string
	path    string
}

// New validates cfg and returns a publisher for it.
func New(cfg *config.Publish) (*Publisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: no publish configuration", ErrInvalidTarget)
	}
	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse URL: %w", ErrInvalidTarget, err)
	}
	switch parsedURL.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidTarget, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("%w: URL %q has no host", ErrInvalidTarget, cfg.URL)
	}
	if cfg.Event == "" {
		return nil, fmt.Errorf("%w: event name is empty", ErrInvalidTarget)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("%w: timeout must be positive", ErrInvalidTarget)
	}

	path := parsedURL.Path
	if path == "" {
		path = "/socket.io/"
	}
	return &Publisher{
		cfg:     *cfg,
		baseURL: fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host),
		path:    path,
	}, nil
}

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	value *Result
	err   error
}

// Publish connects and emits payload as the configured event with an
// acknowledgement callback, so it returns only once the server has received
// it. When an acknowledgement event is configured it also waits for that
// event. payload must be a JSON object. The whole exchange is bounded by the
// configured timeout.
func (p *Publisher) Publish(ctx context.Context, payload []byte) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("url", p.cfg.URL, "namespace", p.cfg.Namespace, "event", p.cfg.Event)
	logger.Debug("Publishing inventory.")

	data, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}

	var isConnected, isAcked atomic.Bool
	done := make(chan opResult, 1)
	finish := func(res opResult) {
		select {
		case done <- res:
		default:
		}
	}

	opCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	opts := socket.DefaultOptions()
	opts.SetPath(p.path)
	if p.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(p.baseURL, opts)
	io := manager.Socket(p.cfg.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	// --- Event Listeners ---
	io.Once(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		sid := io.Id()
		logger.Info("Connected, emitting inventory.", "sid", sid)

		err := io.Emit(p.cfg.Event, data, func(args []any, err error) {
			if err != nil {
				finish(opResult{err: fmt.Errorf("event '%s' was not acknowledged: %w", p.cfg.Event, err)})
				return
			}
			isAcked.Store(true)
			logger.Debug("Server acknowledged inventory.", "sid", sid)
			if p.cfg.AckEvent == "" {
				finish(opResult{value: &Result{SID: sid, Ack: firstArg(args)}})
			}
		})
		if err != nil {
			finish(opResult{err: fmt.Errorf("failed to emit event '%s': %w", p.cfg.Event, err)})
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		finish(opResult{err: fmt.Errorf("failed to connect to %s: %w", p.cfg.URL, connectError(errs))})
	})

	if p.cfg.AckEvent != "" {
		io.Once(types.EventName(p.cfg.AckEvent), func(args ...any) {
			finish(opResult{value: &Result{SID: io.Id(), Ack: firstArg(args)}})
		})
	}

	// --- Execution Block ---
	io.Connect()

	select {
	case <-opCtx.Done():
		switch {
		case !isConnected.Load():
			return nil, errors.New("timed out while waiting for initial connection")
		case !isAcked.Load():
			return nil, fmt.Errorf("timed out after connecting while waiting for the server to acknowledge event '%s'", p.cfg.Event)
		default:
			return nil, fmt.Errorf("timed out after connecting while waiting for event '%s'", p.cfg.AckEvent)
		}
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		logger.Info("Inventory published.", "sid", res.value.SID)
		return res.value, nil
	}
}

// decodePayload turns a JSON object into the map the socket client encodes.
func decodePayload(payload []byte) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("payload must be a JSON object: %w", err)
	}
	if data == nil {
		return nil, errors.New("payload must be a JSON object, got null")
	}
	return data, nil
}

func connectError(args []any) error {
	if len(args) == 0 {
		return errors.New("connect_error")
	}
	if err, ok := args[0].(error); ok {
		return err
	}
	return fmt.Errorf("connect_error: %v", args[0])
}

func firstArg(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}
