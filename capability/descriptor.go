// Package capability defines the data model of the capability layer:
// descriptors declaring what an optional feature needs from the host
// environment, probe results recording whether those needs were met, and
// the error taxonomy shared by the registry and the gated accessor.
package capability

import (
	"fmt"
	"strings"

	"github.com/capgate/capgate/capability/values"
)

// Kind identifies how a Requirement is resolved against the host.
type Kind string

const (
	// KindBinary requires an executable resolvable on PATH, optionally
	// gated by a semver constraint checked against its --version output.
	KindBinary Kind = "binary"

	// KindLibrary requires a shared library present under the system
	// library search paths. Target is a glob, e.g. "libnvidia-ml.so*".
	KindLibrary Kind = "library"

	// KindFile requires an absolute path to exist.
	KindFile Kind = "file"

	// KindEnv requires a non-empty environment variable.
	KindEnv Kind = "env"

	// KindWasm requires a provider module on disk that compiles,
	// instantiates, and exports the provider entry point.
	KindWasm Kind = "wasm"
)

// knownKinds is the closed set of requirement kinds the prober supports.
var knownKinds = map[Kind]bool{
	KindBinary:  true,
	KindLibrary: true,
	KindFile:    true,
	KindEnv:     true,
	KindWasm:    true,
}

// Requirement is one external dependency a capability needs. Requirements
// are resolved in declared order and all must resolve for the capability
// to be available.
type Requirement struct {
	// Kind selects the resolution strategy.
	Kind Kind

	// Target is what to resolve: binary name, library glob, absolute
	// file path, environment variable name, or wasm module path.
	Target string

	// Constraint is an optional semver constraint (binary kind only),
	// e.g. ">= 2.20".
	Constraint string
}

// Validate checks that the requirement is structurally sound.
// Violations are configuration errors, not probe failures.
func (r Requirement) Validate() error {
	if !knownKinds[r.Kind] {
		return fmt.Errorf("unknown requirement kind %q", r.Kind)
	}
	if strings.TrimSpace(r.Target) == "" {
		return fmt.Errorf("requirement target cannot be empty")
	}
	if r.Constraint != "" && r.Kind != KindBinary {
		return fmt.Errorf("version constraint is only valid for binary requirements, not %q", r.Kind)
	}
	return nil
}

// String returns a compact human-readable form, e.g. "binary:git (>= 2.20)".
func (r Requirement) String() string {
	if r.Constraint == "" {
		return fmt.Sprintf("%s:%s", r.Kind, r.Target)
	}
	return fmt.Sprintf("%s:%s (%s)", r.Kind, r.Target, r.Constraint)
}

// defaultUnavailableMessage formats the failing target and the underlying
// resolution error when a descriptor does not carry its own template.
const defaultUnavailableMessage = "requires %s: %v"

// Descriptor is the static declaration of one optional capability.
// Descriptors are immutable: constructed once at startup and never mutated.
type Descriptor struct {
	// Name uniquely identifies the capability within a registry.
	Name values.CapabilityName

	// Requires lists the external dependencies, all of which must
	// resolve, in order.
	Requires []Requirement

	// UnavailableMessage is a fmt template with two verbs: the failing
	// requirement target (%s) and the underlying error (%v). Empty means
	// the default template.
	UnavailableMessage string

	// InstallHint is an optional human-readable suggestion surfaced by
	// diagnostic reports, e.g. "install git 2.20 or newer".
	InstallHint string
}

// DescriptorOption configures optional Descriptor fields.
type DescriptorOption func(*Descriptor)

// WithUnavailableMessage overrides the default unavailability template.
func WithUnavailableMessage(template string) DescriptorOption {
	return func(d *Descriptor) {
		d.UnavailableMessage = template
	}
}

// WithInstallHint attaches an install suggestion for diagnostic reports.
func WithInstallHint(hint string) DescriptorOption {
	return func(d *Descriptor) {
		d.InstallHint = hint
	}
}

// NewDescriptor creates a validated Descriptor. The name must be a valid
// capability name and at least one requirement must be declared.
func NewDescriptor(name string, requires []Requirement, opts ...DescriptorOption) (Descriptor, error) {
	cn, err := values.NewCapabilityName(name)
	if err != nil {
		return Descriptor{}, err
	}

	if len(requires) == 0 {
		return Descriptor{}, fmt.Errorf("capability %q declares no requirements", cn.String())
	}

	for i, req := range requires {
		if err := req.Validate(); err != nil {
			return Descriptor{}, fmt.Errorf("capability %q requirement %d: %w", cn.String(), i, err)
		}
	}

	d := Descriptor{
		Name:     cn,
		Requires: append([]Requirement(nil), requires...),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d, nil
}

// MustNewDescriptor creates a Descriptor or panics.
// Use in init() functions where a malformed descriptor is a library bug.
func MustNewDescriptor(name string, requires []Requirement, opts ...DescriptorOption) Descriptor {
	d, err := NewDescriptor(name, requires, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Validate re-checks descriptor invariants. Registries call this at
// registration time so that hand-built descriptors fail fast too.
func (d Descriptor) Validate() error {
	if d.Name.IsEmpty() {
		return fmt.Errorf("descriptor has no name")
	}
	if len(d.Requires) == 0 {
		return fmt.Errorf("capability %q declares no requirements", d.Name.String())
	}
	for i, req := range d.Requires {
		if err := req.Validate(); err != nil {
			return fmt.Errorf("capability %q requirement %d: %w", d.Name.String(), i, err)
		}
	}
	return nil
}

// UnavailableReason fills the descriptor's message template with the
// failing requirement and the underlying resolution error.
func (d Descriptor) UnavailableReason(failed Requirement, cause error) string {
	template := d.UnavailableMessage
	if template == "" {
		template = defaultUnavailableMessage
	}
	return fmt.Sprintf(template, failed.Target, cause)
}
