package capability_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/capgate/capgate/capability"
)

func Test_ConfigurationError(t *testing.T) {
	err := &capability.ConfigurationError{Name: "git", Detail: "already registered"}

	assert.True(t, errors.Is(err, capability.ErrConfiguration))
	assert.False(t, errors.Is(err, capability.ErrUnknownCapability))
	assert.Contains(t, err.Error(), "git")
	assert.Contains(t, err.Error(), "already registered")

	anonymous := &capability.ConfigurationError{Detail: "nil descriptor"}
	assert.Contains(t, anonymous.Error(), "nil descriptor")
}

func Test_UnknownCapabilityError(t *testing.T) {
	err := &capability.UnknownCapabilityError{Name: "telepathy"}

	assert.True(t, errors.Is(err, capability.ErrUnknownCapability))
	assert.False(t, errors.Is(err, capability.ErrUnavailable))
	assert.Contains(t, err.Error(), "telepathy")
}

func Test_UnavailableError(t *testing.T) {
	err := &capability.UnavailableError{Name: "plotting", Reason: "requires gnuplot: not found"}

	assert.True(t, errors.Is(err, capability.ErrUnavailable))
	assert.False(t, errors.Is(err, capability.ErrUnknownCapability))
	assert.Contains(t, err.Error(), "plotting")
	assert.Contains(t, err.Error(), "gnuplot")
}

func Test_Errors_AsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading image helper: %w",
		&capability.UnavailableError{Name: "image-ops", Reason: "requires convert: not found"})

	var unavailable *capability.UnavailableError
	assert.True(t, errors.As(wrapped, &unavailable))
	assert.Equal(t, "image-ops", unavailable.Name)
	assert.True(t, errors.Is(wrapped, capability.ErrUnavailable))
}
