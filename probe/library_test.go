package probe_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capgate/capgate/capability"
	"github.com/capgate/capgate/probe"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte{0x7f, 'E', 'L', 'F'}, 0o644))
}

func Test_LibraryResolver_FindsNestedLibrary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x86_64-linux-gnu", "libnvidia-ml.so.1"))

	r := probe.NewLibraryResolver(probe.WithSearchPaths(dir))

	handle, err := r.Resolve(context.Background(), capability.Requirement{
		Kind: capability.KindLibrary, Target: "libnvidia-ml.so*",
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "x86_64-linux-gnu", "libnvidia-ml.so.1"), handle.Location)
}

func Test_LibraryResolver_DeterministicAcrossMatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "libfoo.so.2"))
	writeFile(t, filepath.Join(dir, "libfoo.so.1"))

	r := probe.NewLibraryResolver(probe.WithSearchPaths(dir))

	handle, err := r.Resolve(context.Background(), capability.Requirement{
		Kind: capability.KindLibrary, Target: "libfoo.so*",
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "libfoo.so.1"), handle.Location)
}

func Test_LibraryResolver_SearchPathOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(first, "libbar.so"))
	writeFile(t, filepath.Join(second, "libbar.so"))

	r := probe.NewLibraryResolver(probe.WithSearchPaths(first, second))

	handle, err := r.Resolve(context.Background(), capability.Requirement{
		Kind: capability.KindLibrary, Target: "libbar.so",
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(first, "libbar.so"), handle.Location)
}

func Test_LibraryResolver_NotFound(t *testing.T) {
	r := probe.NewLibraryResolver(probe.WithSearchPaths(t.TempDir()))

	_, err := r.Resolve(context.Background(), capability.Requirement{
		Kind: capability.KindLibrary, Target: "libnvidia-ml.so*",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "libnvidia-ml.so*")
}
