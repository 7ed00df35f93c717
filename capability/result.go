package capability

// Status is the resolved availability of a capability.
type Status string

const (
	// StatusAvailable means every declared requirement resolved.
	StatusAvailable Status = "available"

	// StatusUnavailable means resolution stopped at a failing requirement.
	StatusUnavailable Status = "unavailable"
)

// Handle is the opaque reference a successful resolution yields for one
// requirement. Exactly one field besides Requirement is meaningful per
// kind: Location for binary/library/file/wasm, Value for env.
type Handle struct {
	// Requirement is the declaration this handle resolves.
	Requirement Requirement

	// Location is the resolved filesystem path.
	Location string

	// Version is the detected version for version-gated binaries.
	Version string

	// Value is the resolved value for env requirements.
	Value string

	// Provider is an optional runtime object backing the handle, such as
	// an instantiated wasm provider module.
	Provider any
}

// ProbeResult records the outcome of probing one capability. Immutable
// after creation; registries cache it for the process lifetime.
type ProbeResult struct {
	status  Status
	handles []Handle
	reason  string
}

// NewAvailable creates an Available result holding the resolved handles
// in the same order the requirements were declared.
func NewAvailable(handles []Handle) ProbeResult {
	return ProbeResult{
		status:  StatusAvailable,
		handles: append([]Handle(nil), handles...),
	}
}

// NewUnavailable creates an Unavailable result carrying the reason the
// first failing requirement could not resolve.
func NewUnavailable(reason string) ProbeResult {
	return ProbeResult{
		status: StatusUnavailable,
		reason: reason,
	}
}

// Status returns the availability status.
func (r ProbeResult) Status() Status {
	return r.status
}

// IsAvailable reports whether every requirement resolved.
func (r ProbeResult) IsAvailable() bool {
	return r.status == StatusAvailable
}

// Handles returns the resolved handles, in declared requirement order.
// Empty for unavailable results.
func (r ProbeResult) Handles() []Handle {
	return r.handles
}

// Reason returns the unavailability reason, empty for available results.
func (r ProbeResult) Reason() string {
	return r.reason
}

// IsZero reports whether this is the zero value, i.e. no probe has run.
func (r ProbeResult) IsZero() bool {
	return r.status == ""
}
