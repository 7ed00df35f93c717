// Package capgate gates access to optional capabilities of the host
// environment. Utility surfaces declare what they need as a capability
// descriptor, register it once at startup, and obtain their backing
// handles through Require or TryRequire; a missing external dependency
// becomes a well-typed, catchable condition instead of a failure deep
// inside a helper.
package capgate

import (
	"context"
	"errors"

	"github.com/capgate/capgate/capability"
	"github.com/capgate/capgate/registry"
)

// Require resolves name against reg and returns the resolved handles, in
// declared requirement order. It fails with an UnavailableError when the
// capability's probe resolved to unavailable, and with an
// UnknownCapabilityError when the name was never registered.
func Require(ctx context.Context, reg *registry.Registry, name string) ([]capability.Handle, error) {
	result, err := reg.Resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	if !result.IsAvailable() {
		return nil, &capability.UnavailableError{
			Name:   name,
			Reason: result.Reason(),
		}
	}

	return result.Handles(), nil
}

// TryRequire is the non-failing variant of Require for callers with a
// fallback code path. Unavailability is reported as ok == false with a
// nil error; an unknown name still surfaces its error, since that is a
// wiring bug rather than a missing optional dependency.
func TryRequire(ctx context.Context, reg *registry.Registry, name string) (handles []capability.Handle, ok bool, err error) {
	handles, err = Require(ctx, reg, name)
	if err != nil {
		if errors.Is(err, capability.ErrUnavailable) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return handles, true, nil
}
