package capgate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	capgate "github.com/capgate/capgate"
	"github.com/capgate/capgate/capability"
	"github.com/capgate/capgate/probe"
	"github.com/capgate/capgate/registry"
)

// fixedProber is a test double resolving every descriptor to a fixed
// result per capability name.
type fixedProber struct {
	results map[string]capability.ProbeResult
}

var _ probe.Prober = (*fixedProber)(nil)

func (p *fixedProber) Probe(_ context.Context, desc capability.Descriptor) capability.ProbeResult {
	if res, ok := p.results[desc.Name.String()]; ok {
		return res
	}
	return capability.NewUnavailable("unresolvable in test environment")
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New(registry.WithProber(&fixedProber{
		results: map[string]capability.ProbeResult{
			"locking": capability.NewAvailable([]capability.Handle{
				{Location: "/var/lock"},
			}),
			"plotting": capability.NewUnavailable(
				"requires gnuplot: executable \"gnuplot\" not found in PATH"),
		},
	}))
	reg.MustRegister(capability.MustNewDescriptor("locking",
		[]capability.Requirement{{Kind: capability.KindFile, Target: "/var/lock"}}))
	reg.MustRegister(capability.MustNewDescriptor("plotting",
		[]capability.Requirement{{Kind: capability.KindBinary, Target: "gnuplot"}}))
	return reg
}

func Test_Require_Available(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	handles, err := capgate.Require(ctx, reg, "locking")
	require.NoError(t, err)
	require.Len(t, handles, 1)
	assert.Equal(t, "/var/lock", handles[0].Location)

	// A second call returns the identical cached handle.
	again, err := capgate.Require(ctx, reg, "locking")
	require.NoError(t, err)
	assert.Equal(t, handles, again)
}

func Test_Require_Unavailable(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := capgate.Require(context.Background(), reg, "plotting")

	require.Error(t, err)
	assert.True(t, errors.Is(err, capability.ErrUnavailable))

	var unavailable *capability.UnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "plotting", unavailable.Name)
	assert.Contains(t, unavailable.Reason, "gnuplot")
}

func Test_Require_UnknownName(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := capgate.Require(context.Background(), reg, "telepathy")

	require.Error(t, err)
	assert.True(t, errors.Is(err, capability.ErrUnknownCapability))
	assert.False(t, errors.Is(err, capability.ErrUnavailable))
}

func Test_TryRequire(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	t.Run("AvailableMatchesRequire", func(t *testing.T) {
		required, err := capgate.Require(ctx, reg, "locking")
		require.NoError(t, err)

		tried, ok, err := capgate.TryRequire(ctx, reg, "locking")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, required, tried)
	})

	t.Run("UnavailableIsNotAnError", func(t *testing.T) {
		handles, ok, err := capgate.TryRequire(ctx, reg, "plotting")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, handles)
	})

	t.Run("UnknownNameStillSurfaces", func(t *testing.T) {
		_, ok, err := capgate.TryRequire(ctx, reg, "telepathy")
		assert.False(t, ok)
		assert.True(t, errors.Is(err, capability.ErrUnknownCapability))
	})
}

func Test_DefaultRegistry(t *testing.T) {
	// The default registry is shared process state; use a name no other
	// test registers.
	desc := capability.MustNewDescriptor("gate-test-probe", []capability.Requirement{
		{Kind: capability.KindEnv, Target: "CAPGATE_GATE_TEST_UNSET"},
	})
	require.NoError(t, capgate.Register(desc))

	ctx := context.Background()
	assert.False(t, capgate.IsAvailable(ctx, "gate-test-probe"))

	_, err := capgate.RequireDefault(ctx, "gate-test-probe")
	assert.True(t, errors.Is(err, capability.ErrUnavailable))

	_, ok, err := capgate.TryRequireDefault(ctx, "gate-test-probe")
	require.NoError(t, err)
	assert.False(t, ok)

	statuses := capgate.Snapshot(ctx)
	var found bool
	for _, status := range statuses {
		if status.Name == "gate-test-probe" {
			found = true
			assert.False(t, status.Available)
		}
	}
	assert.True(t, found)

	// Duplicate registration fails fast.
	assert.True(t, errors.Is(capgate.Register(desc), capability.ErrConfiguration))
}
