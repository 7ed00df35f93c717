// Package probe resolves capability requirements against the host
// environment: executables on PATH, shared libraries, files, environment
// variables, and wasm provider modules.
package probe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/capgate/capgate/capability"
)

// DefaultProber resolves each requirement of a descriptor in declared
// order, short-circuiting on the first failure. Probing is read-only with
// respect to the rest of the process and safe to run concurrently.
type DefaultProber struct {
	resolvers map[capability.Kind]Resolver
	logger    *slog.Logger
}

// Option configures a DefaultProber.
type Option func(*DefaultProber)

// WithLogger sets the structured logger used for probe outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(p *DefaultProber) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithResolver overrides the resolver for one requirement kind.
// Primarily useful for tests and for hosts with exotic environments.
func WithResolver(kind capability.Kind, r Resolver) Option {
	return func(p *DefaultProber) {
		p.resolvers[kind] = r
	}
}

// New creates a prober with the default resolver per requirement kind.
func New(opts ...Option) *DefaultProber {
	p := &DefaultProber{
		resolvers: map[capability.Kind]Resolver{
			capability.KindBinary:  NewBinaryResolver(),
			capability.KindLibrary: NewLibraryResolver(),
			capability.KindFile:    &FileResolver{},
			capability.KindEnv:     &EnvResolver{},
			capability.KindWasm:    NewWasmResolver(),
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe resolves every requirement of desc in declared order. On the first
// failure it stops and returns Unavailable with the descriptor's message
// template filled in; if all resolve it returns Available holding the
// handles in the same order.
func (p *DefaultProber) Probe(ctx context.Context, desc capability.Descriptor) capability.ProbeResult {
	handles := make([]capability.Handle, 0, len(desc.Requires))

	for _, req := range desc.Requires {
		resolver, ok := p.resolvers[req.Kind]
		if !ok || resolver == nil {
			// Descriptor validation rejects unknown kinds; hitting this
			// means a resolver was explicitly removed.
			reason := desc.UnavailableReason(req, fmt.Errorf("no resolver for requirement kind %q", req.Kind))
			return capability.NewUnavailable(reason)
		}

		handle, err := resolver.Resolve(ctx, req)
		if err != nil {
			reason := desc.UnavailableReason(req, err)
			p.logger.Debug("capability requirement unresolved",
				"capability", desc.Name.String(),
				"requirement", req.String(),
				"error", err,
			)
			return capability.NewUnavailable(reason)
		}

		handles = append(handles, handle)
	}

	p.logger.Debug("capability resolved",
		"capability", desc.Name.String(),
		"requirements", len(handles),
	)
	return capability.NewAvailable(handles)
}
