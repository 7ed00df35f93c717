package probe

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/capgate/capgate/capability"
)

// versionPattern extracts the first dotted version number from
// a --version banner, e.g. "git version 2.43.0" -> "2.43.0".
var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// versionTimeout bounds the --version subprocess during probing.
const versionTimeout = 5 * time.Second

// BinaryResolver resolves binary requirements via PATH lookup and, when a
// constraint is declared, a version check against `<binary> --version`.
type BinaryResolver struct {
	lookPath   func(name string) (string, error)
	runVersion func(ctx context.Context, path string) (string, error)
}

// BinaryOption configures a BinaryResolver.
type BinaryOption func(*BinaryResolver)

// WithLookPath overrides PATH resolution. For tests.
func WithLookPath(fn func(name string) (string, error)) BinaryOption {
	return func(r *BinaryResolver) {
		r.lookPath = fn
	}
}

// WithVersionCommand overrides how the version banner is obtained. For tests.
func WithVersionCommand(fn func(ctx context.Context, path string) (string, error)) BinaryOption {
	return func(r *BinaryResolver) {
		r.runVersion = fn
	}
}

// NewBinaryResolver creates a resolver using exec.LookPath and a
// `--version` subprocess.
func NewBinaryResolver(opts ...BinaryOption) *BinaryResolver {
	r := &BinaryResolver{
		lookPath:   exec.LookPath,
		runVersion: runVersionCommand,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve locates the executable and enforces the semver constraint when
// one is declared.
func (r *BinaryResolver) Resolve(ctx context.Context, req capability.Requirement) (capability.Handle, error) {
	path, err := r.lookPath(req.Target)
	if err != nil {
		return capability.Handle{}, fmt.Errorf("executable %q not found in PATH", req.Target)
	}

	handle := capability.Handle{
		Requirement: req,
		Location:    path,
	}

	if req.Constraint == "" {
		return handle, nil
	}

	constraint, err := semver.NewConstraint(req.Constraint)
	if err != nil {
		return capability.Handle{}, fmt.Errorf("invalid version constraint %q: %w", req.Constraint, err)
	}

	banner, err := r.runVersion(ctx, path)
	if err != nil {
		return capability.Handle{}, fmt.Errorf("could not determine version of %q: %w", req.Target, err)
	}

	raw := versionPattern.FindString(banner)
	if raw == "" {
		return capability.Handle{}, fmt.Errorf("could not parse version from %q output %q", req.Target, firstLine(banner))
	}

	version, err := semver.NewVersion(raw)
	if err != nil {
		return capability.Handle{}, fmt.Errorf("could not parse version %q of %q: %w", raw, req.Target, err)
	}

	if !constraint.Check(version) {
		return capability.Handle{}, fmt.Errorf("version incompatible: %s %s does not satisfy %q", req.Target, version.Original(), req.Constraint)
	}

	handle.Version = version.Original()
	return handle, nil
}

// runVersionCommand executes `<path> --version` and returns its combined
// output.
func runVersionCommand(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("running %s --version: %w", path, err)
	}
	return string(out), nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}
