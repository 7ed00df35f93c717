package stdcaps_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capgate/capgate/capability"
	"github.com/capgate/capgate/registry"
	"github.com/capgate/capgate/stdcaps"
)

func Test_All_DescriptorsAreWellFormed(t *testing.T) {
	descriptors := stdcaps.All()
	require.NotEmpty(t, descriptors)

	seen := make(map[string]bool)
	for _, desc := range descriptors {
		require.NoError(t, desc.Validate())
		assert.False(t, seen[desc.Name.String()], "duplicate name %s", desc.Name)
		seen[desc.Name.String()] = true
	}

	assert.True(t, seen[stdcaps.Git])
	assert.True(t, seen[stdcaps.GPUStats])
	assert.True(t, seen[stdcaps.Locking])
}

func Test_RegisterAll(t *testing.T) {
	reg := registry.New()
	require.NoError(t, stdcaps.RegisterAll(reg))

	assert.Len(t, reg.Names(), len(stdcaps.All()))
	assert.Contains(t, reg.Names(), stdcaps.Plotting)

	// A second registration collides.
	err := stdcaps.RegisterAll(reg)
	assert.True(t, errors.Is(err, capability.ErrConfiguration))
}
