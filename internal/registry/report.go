package registry

import (
	"errors"
	"fmt"
	"sort"
)

// ErrCapabilityRejected wraps every rejection of a required capability.
var ErrCapabilityRejected = errors.New("capability rejected")

// Reason classifies why a capability was rejected.
type Reason string

const (
	ReasonNotFound           Reason = "not_found"
	ReasonTypeMismatch       Reason = "type_mismatch"
	ReasonLibraryUnavailable Reason = "library_unavailable"
	ReasonUnknownInterface   Reason = "unknown_interface"
	ReasonInvalidSettings    Reason = "invalid_settings"
)

// Rejection records a capability that could not be resolved.
type Rejection struct {
	Name      string
	Library   string
	Class     string
	Interface string
	Optional  bool
	Reason    Reason
	Err       error
}

// Report is the outcome of resolving a set of capabilities, in
// configuration order.
type Report struct {
	Resolved []*Capability
	Rejected []Rejection
}

// Capability returns the resolved capability with the given name.
func (r *Report) Capability(name string) (*Capability, bool) {
	for _, c := range r.Resolved {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Reasons counts the rejections per reason.
func (r *Report) Reasons() map[Reason]int {
	counts := make(map[Reason]int)
	for _, rej := range r.Rejected {
		counts[rej.Reason]++
	}
	return counts
}

// Err joins the rejections of required capabilities. Optional rejections
// never produce an error.
func (r *Report) Err() error {
	var errs []error
	for _, rej := range r.Rejected {
		if rej.Optional {
			continue
		}
		errs = append(errs, fmt.Errorf("%w: %q (%s): %w", ErrCapabilityRejected, rej.Name, rej.Reason, rej.Err))
	}
	return errors.Join(errs...)
}

// Summary returns "reason=count" pairs in reason order, for logging.
func (r *Report) Summary() []string {
	counts := r.Reasons()
	out := make([]string, 0, len(counts))
	for reason, n := range counts {
		out = append(out, fmt.Sprintf("%s=%d", reason, n))
	}
	sort.Strings(out)
	return out
}
