package capgate

import (
	"context"

	"github.com/capgate/capgate/capability"
	"github.com/capgate/capgate/registry"
)

// defaultRegistry is the process-wide registry offered as a convenience.
// Hosts that want isolation construct their own registry.New() and pass
// it explicitly.
var defaultRegistry = registry.New()

// Default returns the process-wide registry.
func Default() *registry.Registry {
	return defaultRegistry
}

// Register adds a descriptor to the default registry.
func Register(desc capability.Descriptor) error {
	return defaultRegistry.Register(desc)
}

// MustRegister adds a descriptor to the default registry and panics on a
// configuration error. For init() functions of utility surfaces.
func MustRegister(desc capability.Descriptor) {
	defaultRegistry.MustRegister(desc)
}

// Resolve returns the cached probe result for name from the default
// registry, probing on first call.
func Resolve(ctx context.Context, name string) (capability.ProbeResult, error) {
	return defaultRegistry.Resolve(ctx, name)
}

// IsAvailable reports whether name is available in the default registry.
func IsAvailable(ctx context.Context, name string) bool {
	return defaultRegistry.IsAvailable(ctx, name)
}

// RequireDefault resolves name against the default registry.
func RequireDefault(ctx context.Context, name string) ([]capability.Handle, error) {
	return Require(ctx, defaultRegistry, name)
}

// TryRequireDefault is TryRequire against the default registry.
func TryRequireDefault(ctx context.Context, name string) ([]capability.Handle, bool, error) {
	return TryRequire(ctx, defaultRegistry, name)
}

// Snapshot returns the diagnostic listing of the default registry.
func Snapshot(ctx context.Context) []registry.CapabilityStatus {
	return defaultRegistry.Snapshot(ctx)
}
