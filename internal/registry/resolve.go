package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/sgoplug/internal/config"
	"github.com/vk/sgoplug/internal/ctxlog"
	"github.com/vk/sgoplug/manifest"
)

// Resolve looks up every capability in its library's manifest. libFailures
// maps library names that failed to open to their error. Rejections are
// logged at warn level and resolution continues.
func (r *Registry) Resolve(ctx context.Context, caps []*config.Capability, libFailures map[string]error) *Report {
	logger := ctxlog.FromContext(ctx)
	report := &Report{}

	for _, c := range caps {
		resolved, reason, err := r.resolveOne(ctx, c, libFailures)
		if err != nil {
			logger.Warn("Capability rejected.",
				"capability", c.Name,
				"library", c.Library,
				"class", c.Class,
				"interface", c.Interface,
				"reason", string(reason),
				"optional", c.Optional,
				"error", err,
			)
			report.Rejected = append(report.Rejected, Rejection{
				Name:      c.Name,
				Library:   c.Library,
				Class:     c.Class,
				Interface: c.Interface,
				Optional:  c.Optional,
				Reason:    reason,
				Err:       err,
			})
			continue
		}
		logger.Info("Capability resolved.", "capability", c.Name, "library", c.Library, "class", c.Class, "interface", c.Interface)
		report.Resolved = append(report.Resolved, resolved)
	}

	logger.Debug("Capability resolution complete.", "resolved", len(report.Resolved), "rejected", len(report.Rejected))
	return report
}

func (r *Registry) resolveOne(ctx context.Context, c *config.Capability, libFailures map[string]error) (*Capability, Reason, error) {
	binding, ok := r.interfaces[c.Interface]
	if !ok {
		return nil, ReasonUnknownInterface, fmt.Errorf("interface %q is not registered", c.Interface)
	}

	if err, failed := libFailures[c.Library]; failed {
		return nil, ReasonLibraryUnavailable, err
	}
	lib, ok := r.libraries[c.Library]
	if !ok {
		return nil, ReasonLibraryUnavailable, fmt.Errorf("library %q is not open", c.Library)
	}

	create, err := binding.lookup(lib.Manifest, c.Class)
	switch {
	case errors.Is(err, manifest.ErrClassNotFound):
		return nil, ReasonNotFound, err
	case errors.Is(err, manifest.ErrTypeMismatch):
		return nil, ReasonTypeMismatch, err
	case err != nil:
		return nil, ReasonNotFound, err
	}

	resolved := &Capability{
		Name:      c.Name,
		Library:   c.Library,
		Class:     c.Class,
		Interface: c.Interface,
		Type:      binding.Type,
		create:    create,
		settings:  c.Settings,
		converter: r.converter,
	}

	// Settings are checked against a throwaway instance.
	if len(c.Settings) > 0 {
		if _, err := resolved.New(ctx); err != nil {
			return nil, ReasonInvalidSettings, err
		}
	}
	return resolved, "", nil
}
