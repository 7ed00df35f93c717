package probe

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/capgate/capgate/capability"
)

// defaultLibraryPaths are the system locations searched for shared
// libraries, in order.
var defaultLibraryPaths = []string{
	"/usr/lib",
	"/usr/lib64",
	"/usr/local/lib",
	"/usr/lib/x86_64-linux-gnu",
	"/usr/lib/aarch64-linux-gnu",
	"/lib",
}

// LibraryResolver resolves shared-library requirements by glob matching
// the target pattern under the library search paths.
type LibraryResolver struct {
	searchPaths []string
}

// LibraryOption configures a LibraryResolver.
type LibraryOption func(*LibraryResolver)

// WithSearchPaths replaces the default library search paths.
func WithSearchPaths(paths ...string) LibraryOption {
	return func(r *LibraryResolver) {
		if len(paths) > 0 {
			r.searchPaths = paths
		}
	}
}

// NewLibraryResolver creates a resolver over the default search paths.
func NewLibraryResolver(opts ...LibraryOption) *LibraryResolver {
	r := &LibraryResolver{
		searchPaths: defaultLibraryPaths,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the first match of the target glob under the search
// paths. Lexically smallest match wins within a path so that results are
// deterministic across runs.
func (r *LibraryResolver) Resolve(_ context.Context, req capability.Requirement) (capability.Handle, error) {
	for _, base := range r.searchPaths {
		pattern := filepath.Join(base, "**", req.Target)
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return capability.Handle{}, fmt.Errorf("invalid library pattern %q: %w", req.Target, err)
		}
		if len(matches) == 0 {
			continue
		}
		sort.Strings(matches)
		return capability.Handle{
			Requirement: req,
			Location:    matches[0],
		}, nil
	}
	return capability.Handle{}, fmt.Errorf("shared library %q not found under %v", req.Target, r.searchPaths)
}
