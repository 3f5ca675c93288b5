package hcl

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/sgoplug/internal/ctxlog"
)

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}
