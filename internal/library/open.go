package library

import (
	"context"
	"sync"

	"github.com/vk/sgoplug/internal/config"
	"github.com/vk/sgoplug/internal/ctxlog"
	"github.com/vk/sgoplug/internal/fsutil"
	"golang.org/x/sync/errgroup"
)

// Set is the outcome of opening a group of libraries. A library appears in
// exactly one of the two maps.
type Set struct {
	Libraries map[string]*Library
	Failures  map[string]error
}

// OpenAll opens every library concurrently, at most limit at a time. A failed
// library is recorded in Failures and does not stop the others. The returned
// error is non-nil only when ctx is cancelled.
func OpenAll(ctx context.Context, opener Opener, libs []*config.Library, limit int) (*Set, error) {
	logger := ctxlog.FromContext(ctx)
	set := &Set{
		Libraries: make(map[string]*Library, len(libs)),
		Failures:  make(map[string]error),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, spec := range libs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lib, err := opener.Open(ctxlog.With(gctx, "library", spec.Name), spec.Name, spec.Path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("Failed to open library.", "library", spec.Name, "path", spec.Path, "error", err)
				set.Failures[spec.Name] = err
				return nil
			}
			set.Libraries[spec.Name] = lib
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Info("Opened libraries.", "opened", len(set.Libraries), "failed", len(set.Failures))
	return set, nil
}

// Discover lists the Go plugins under dir. Each library is named after the
// file stem.
func Discover(dir string) ([]*config.Library, error) {
	files, err := fsutil.FindFiles(dir, ".so")
	if err != nil {
		return nil, err
	}
	libs := make([]*config.Library, 0, len(files))
	for _, f := range files {
		libs = append(libs, &config.Library{Name: fsutil.Stem(f), Path: f})
	}
	return libs, nil
}
