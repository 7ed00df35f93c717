package values

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CapabilityName represents a validated capability identifier.
// Enforces non-empty, trimmed capability names.
type CapabilityName struct {
	value string
}

// NewCapabilityName creates a CapabilityName with strict validation.
// A valid capability name must:
// - Be non-empty
// - contain only lowercase alphanumeric characters, underscores, and hyphens
// - start with a letter
// - Be at most 64 characters long
func NewCapabilityName(name string) (CapabilityName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CapabilityName{}, fmt.Errorf("capability name cannot be empty")
	}

	if len(name) > 64 {
		return CapabilityName{}, fmt.Errorf("capability name too long (max 64 chars)")
	}

	first := rune(name[0])
	if first < 'a' || first > 'z' {
		return CapabilityName{}, fmt.Errorf("invalid capability name %q: must start with a lowercase letter", name)
	}

	for _, ch := range name {
		if !isValidCapabilityChar(ch) {
			return CapabilityName{}, fmt.Errorf("invalid capability name %q: must contain only lowercase alphanumeric characters, underscores, and hyphens", name)
		}
	}

	return CapabilityName{value: name}, nil
}

func isValidCapabilityChar(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= '0' && r <= '9') ||
		r == '_' ||
		r == '-'
}

// MustNewCapabilityName creates a CapabilityName or panics
func MustNewCapabilityName(name string) CapabilityName {
	cn, err := NewCapabilityName(name)
	if err != nil {
		panic(err)
	}
	return cn
}

// String returns the string representation
func (c CapabilityName) String() string {
	return c.value
}

// IsEmpty returns true if this is the zero value
func (c CapabilityName) IsEmpty() bool {
	return c.value == ""
}

// Equals checks if two capability names are equal
func (c CapabilityName) Equals(other CapabilityName) bool {
	return c.value == other.value
}

// MarshalJSON implements json.Marshaler.
// Uses json.Marshal for proper character escaping.
func (c CapabilityName) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (c *CapabilityName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid capability name JSON: %w", err)
	}

	name, err := NewCapabilityName(s)
	if err != nil {
		return err
	}
	*c = name
	return nil
}
