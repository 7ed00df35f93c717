// Package registry implements the process-wide capability registry: the
// single source of truth mapping capability names to probe results.
//
// Probing is lazy and per-name: the first Resolve for a name runs the
// probe and caches the result for the process lifetime. Concurrent
// first-time resolves of the same name may race the probe, but exactly
// one result is durably stored; every caller observes that one value.
package registry

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/capgate/capgate/capability"
	"github.com/capgate/capgate/probe"
)

// Registry maps capability names to their descriptors and cached probe
// results. Safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]capability.Descriptor
	results     map[string]capability.ProbeResult

	prober probe.Prober
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithProber replaces the default prober.
func WithProber(p probe.Prober) Option {
	return func(r *Registry) {
		if p != nil {
			r.prober = p
		}
	}
}

// WithLogger sets the structured logger for probe outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		descriptors: make(map[string]capability.Descriptor),
		results:     make(map[string]capability.ProbeResult),
		prober:      probe.New(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a descriptor to the known set. Registering a malformed
// descriptor or re-registering a name is a configuration error; the
// existing registration is never silently overwritten.
func (r *Registry) Register(desc capability.Descriptor) error {
	if err := desc.Validate(); err != nil {
		return &capability.ConfigurationError{
			Name:   desc.Name.String(),
			Detail: err.Error(),
		}
	}

	name := desc.Name.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[name]; exists {
		return &capability.ConfigurationError{
			Name:   name,
			Detail: "already registered",
		}
	}

	r.descriptors[name] = desc
	return nil
}

// MustRegister registers a descriptor and panics on error.
// Use in init() functions where a configuration error is a library bug.
func (r *Registry) MustRegister(desc capability.Descriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

// Resolve returns the cached probe result for name, running the probe on
// first call. The result is stable for the process lifetime: once a name
// has been probed, every later Resolve returns the identical value.
func (r *Registry) Resolve(ctx context.Context, name string) (capability.ProbeResult, error) {
	r.mu.RLock()
	desc, registered := r.descriptors[name]
	result, probed := r.results[name]
	r.mu.RUnlock()

	if !registered {
		return capability.ProbeResult{}, &capability.UnknownCapabilityError{Name: name}
	}
	if probed {
		return result, nil
	}

	// Probe outside the lock: resolution may exec a --version subprocess
	// or instantiate a wasm module, and probing is side-effect-free, so
	// a concurrent duplicate probe is harmless.
	fresh := r.prober.Probe(ctx, desc)

	r.mu.Lock()
	if existing, ok := r.results[name]; ok {
		// Lost the race; the first stored result wins.
		r.mu.Unlock()
		return existing, nil
	}
	r.results[name] = fresh
	r.mu.Unlock()

	if fresh.IsAvailable() {
		r.logger.Info("capability available",
			"capability", name,
			"requirements", len(desc.Requires),
		)
	} else {
		r.logger.Info("capability unavailable",
			"capability", name,
			"reason", fresh.Reason(),
		)
	}

	return fresh, nil
}

// IsAvailable is a convenience boolean view over Resolve.
// Unknown names report false.
func (r *Registry) IsAvailable(ctx context.Context, name string) bool {
	result, err := r.Resolve(ctx, name)
	if err != nil {
		return false
	}
	return result.IsAvailable()
}

// Refresh clears the cached result for name, forcing the next Resolve to
// re-probe. Test use only: re-probing while other goroutines resolve the
// same name can make the capability appear to flip mid-operation, which
// callers are not designed to handle.
func (r *Registry) Refresh(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, registered := r.descriptors[name]; !registered {
		return &capability.UnknownCapabilityError{Name: name}
	}
	delete(r.results, name)
	return nil
}

// Names returns all registered capability names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CapabilityStatus is one entry of the diagnostic listing.
type CapabilityStatus struct {
	Name        string
	Available   bool
	Reason      string
	Requires    []string
	InstallHint string
}

// Snapshot resolves every registered capability and returns its status,
// sorted by name. Intended for one-shot "what can this library do here"
// reports; it triggers probing for names not yet resolved.
func (r *Registry) Snapshot(ctx context.Context) []CapabilityStatus {
	names := r.Names()

	statuses := make([]CapabilityStatus, 0, len(names))
	for _, name := range names {
		result, err := r.Resolve(ctx, name)
		if err != nil {
			continue
		}

		r.mu.RLock()
		desc := r.descriptors[name]
		r.mu.RUnlock()

		requires := make([]string, 0, len(desc.Requires))
		for _, req := range desc.Requires {
			requires = append(requires, req.String())
		}

		statuses = append(statuses, CapabilityStatus{
			Name:        name,
			Available:   result.IsAvailable(),
			Reason:      result.Reason(),
			Requires:    requires,
			InstallHint: desc.InstallHint,
		})
	}
	return statuses
}
