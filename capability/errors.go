package capability

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error patterns.
// These allow both errors.Is() checks and errors.As() for detailed information.
var (
	// ErrConfiguration is returned for registration-time mistakes:
	// duplicate names, malformed descriptors. Always a library bug.
	ErrConfiguration = errors.New("capability configuration error")

	// ErrUnknownCapability is returned when a name was never registered.
	// Indicates broken wiring between a utility surface and the registry.
	ErrUnknownCapability = errors.New("unknown capability")

	// ErrUnavailable is returned by the gated accessor when a capability's
	// probe resolved to unavailable. Expected and recoverable.
	ErrUnavailable = errors.New("capability unavailable")
)

// ConfigurationError indicates a registration-time mistake.
// Never expected in normal operation; not retried.
type ConfigurationError struct {
	Name   string
	Detail string
}

func (e *ConfigurationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("capability configuration error: %s", e.Detail)
	}
	return fmt.Sprintf("capability configuration error for %q: %s", e.Name, e.Detail)
}

// Is implements error matching for errors.Is() checks.
// This allows: errors.Is(err, capability.ErrConfiguration)
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// UnknownCapabilityError indicates a lookup for a name that was never
// registered. Surfaced immediately rather than masked as unavailability.
type UnknownCapabilityError struct {
	Name string
}

func (e *UnknownCapabilityError) Error() string {
	return fmt.Sprintf("unknown capability %q: not registered", e.Name)
}

// Is implements error matching for errors.Is() checks.
// This allows: errors.Is(err, capability.ErrUnknownCapability)
func (e *UnknownCapabilityError) Is(target error) bool {
	return target == ErrUnknownCapability
}

// UnavailableError carries the capability name and the stored probe reason
// when the gated accessor is asked to enforce availability.
type UnavailableError struct {
	Name   string
	Reason string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("capability %q unavailable: %s", e.Name, e.Reason)
}

// Is implements error matching for errors.Is() checks.
// This allows: errors.Is(err, capability.ErrUnavailable)
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}
