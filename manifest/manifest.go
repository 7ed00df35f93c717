// Package manifest loads declarative capability manifests: documents
// listing the optional capabilities a library ships, what each requires
// from the host, and how its absence is reported. Manifests are validated
// against a JSON Schema generated from these structs before registration.
package manifest

import (
	"fmt"

	"github.com/capgate/capgate/capability"
)

// Manifest is the top-level capability manifest document.
type Manifest struct {
	// Version is the manifest schema version. Currently always 1.
	Version int `json:"version" yaml:"version" jsonschema:"minimum=1,maximum=1"`

	// Capabilities lists the declared capabilities.
	Capabilities []Declaration `json:"capabilities" yaml:"capabilities" jsonschema:"minItems=1"`
}

// Declaration declares one capability.
type Declaration struct {
	Name string `json:"name" yaml:"name" jsonschema:"pattern=^[a-z][a-z0-9_-]*$"`

	Requires []RequirementDecl `json:"requires" yaml:"requires" jsonschema:"minItems=1"`

	UnavailableMessage string `json:"unavailable_message,omitempty" yaml:"unavailable_message,omitempty"`

	InstallHint string `json:"install_hint,omitempty" yaml:"install_hint,omitempty"`
}

// RequirementDecl declares one external requirement of a capability.
type RequirementDecl struct {
	Kind string `json:"kind" yaml:"kind" jsonschema:"enum=binary,enum=library,enum=file,enum=env,enum=wasm"`

	Target string `json:"target" yaml:"target" jsonschema:"minLength=1"`

	Constraint string `json:"constraint,omitempty" yaml:"constraint,omitempty"`
}

// ToDescriptor converts the declaration into a validated capability
// descriptor.
func (d Declaration) ToDescriptor() (capability.Descriptor, error) {
	requires := make([]capability.Requirement, 0, len(d.Requires))
	for _, req := range d.Requires {
		requires = append(requires, capability.Requirement{
			Kind:       capability.Kind(req.Kind),
			Target:     req.Target,
			Constraint: req.Constraint,
		})
	}

	var opts []capability.DescriptorOption
	if d.UnavailableMessage != "" {
		opts = append(opts, capability.WithUnavailableMessage(d.UnavailableMessage))
	}
	if d.InstallHint != "" {
		opts = append(opts, capability.WithInstallHint(d.InstallHint))
	}

	return capability.NewDescriptor(d.Name, requires, opts...)
}

// Descriptors converts every declaration, failing on the first invalid one.
func (m *Manifest) Descriptors() ([]capability.Descriptor, error) {
	descriptors := make([]capability.Descriptor, 0, len(m.Capabilities))
	for i, decl := range m.Capabilities {
		desc, err := decl.ToDescriptor()
		if err != nil {
			return nil, fmt.Errorf("capability %d (%q): %w", i, decl.Name, err)
		}
		descriptors = append(descriptors, desc)
	}
	return descriptors, nil
}
