package probe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/capgate/capgate/capability"
)

// FileResolver resolves file requirements: the target must be an absolute
// path that exists.
type FileResolver struct{}

// Resolve stats the target path.
func (FileResolver) Resolve(_ context.Context, req capability.Requirement) (capability.Handle, error) {
	if !filepath.IsAbs(req.Target) {
		return capability.Handle{}, fmt.Errorf("file requirement %q must be an absolute path", req.Target)
	}
	if _, err := os.Stat(req.Target); err != nil {
		return capability.Handle{}, fmt.Errorf("path %q not accessible: %w", req.Target, err)
	}
	return capability.Handle{
		Requirement: req,
		Location:    req.Target,
	}, nil
}

// EnvResolver resolves environment variable requirements: the target
// variable must be set to a non-empty value.
type EnvResolver struct{}

// Resolve looks up the target variable.
func (EnvResolver) Resolve(_ context.Context, req capability.Requirement) (capability.Handle, error) {
	value, ok := os.LookupEnv(req.Target)
	if !ok {
		return capability.Handle{}, fmt.Errorf("environment variable %q not set", req.Target)
	}
	if value == "" {
		return capability.Handle{}, fmt.Errorf("environment variable %q is empty", req.Target)
	}
	return capability.Handle{
		Requirement: req,
		Value:       value,
	}, nil
}
