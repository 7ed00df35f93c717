// Package stdcaps declares the standard capability set of the library:
// one descriptor per optional utility surface, gated on the host tools
// and libraries that surface fronts. Surfaces never probe on their own;
// they register here once and go through the gated accessor.
package stdcaps

import (
	"github.com/capgate/capgate/capability"
	"github.com/capgate/capgate/registry"
)

// Capability names of the standard set.
const (
	Git             = "git"
	GPUStats        = "gpu_stats"
	Locking         = "locking"
	Plotting        = "plotting"
	ImageOps        = "image-ops"
	ProcessInspect  = "process-inspect"
	Transliteration = "transliteration"
)

// All returns the standard descriptors. Each call returns fresh values;
// descriptors are immutable once registered.
func All() []capability.Descriptor {
	return []capability.Descriptor{
		capability.MustNewDescriptor(Git,
			[]capability.Requirement{
				{Kind: capability.KindBinary, Target: "git", Constraint: ">= 2.20"},
			},
			capability.WithInstallHint("install git 2.20 or newer"),
		),
		capability.MustNewDescriptor(GPUStats,
			[]capability.Requirement{
				{Kind: capability.KindLibrary, Target: "libnvidia-ml.so*"},
				{Kind: capability.KindBinary, Target: "nvidia-smi"},
			},
			capability.WithUnavailableMessage("GPU statistics need %s: %v"),
			capability.WithInstallHint("install the NVIDIA driver and management library"),
		),
		capability.MustNewDescriptor(Locking,
			[]capability.Requirement{
				{Kind: capability.KindFile, Target: "/var/lock"},
			},
			capability.WithInstallHint("ensure /var/lock exists and is writable"),
		),
		capability.MustNewDescriptor(Plotting,
			[]capability.Requirement{
				{Kind: capability.KindBinary, Target: "gnuplot", Constraint: ">= 5.0"},
			},
			capability.WithInstallHint("install gnuplot 5 or newer"),
		),
		capability.MustNewDescriptor(ImageOps,
			[]capability.Requirement{
				{Kind: capability.KindBinary, Target: "convert"},
			},
			capability.WithInstallHint("install ImageMagick"),
		),
		capability.MustNewDescriptor(ProcessInspect,
			[]capability.Requirement{
				{Kind: capability.KindFile, Target: "/proc/self/status"},
			},
		),
		capability.MustNewDescriptor(Transliteration,
			[]capability.Requirement{
				{Kind: capability.KindBinary, Target: "iconv"},
			},
			capability.WithInstallHint("install GNU libiconv"),
		),
	}
}

// RegisterAll registers the standard set with reg. Fails fast on the
// first configuration error, e.g. when a name is already taken.
func RegisterAll(reg *registry.Registry) error {
	for _, desc := range All() {
		if err := reg.Register(desc); err != nil {
			return err
		}
	}
	return nil
}
