package probe

import (
	"context"

	"github.com/capgate/capgate/capability"
)

// Prober resolves one capability descriptor against the host environment.
// A Prober never returns an error: resolution failures are captured into
// an Unavailable result.
type Prober interface {
	Probe(ctx context.Context, desc capability.Descriptor) capability.ProbeResult
}

// Resolver resolves a single requirement of one kind. A failed resolution
// is reported as an error; the prober turns it into an Unavailable result
// using the descriptor's message template.
type Resolver interface {
	Resolve(ctx context.Context, req capability.Requirement) (capability.Handle, error)
}
