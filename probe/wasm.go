package probe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/capgate/capgate/capability"
)

// ProviderEntryPoint is the export every wasm capability provider must
// expose. Modules without it are rejected at probe time.
const ProviderEntryPoint = "capability_probe"

// hostModuleName is the module name under which host functions are made
// available to provider guests.
const hostModuleName = "capgate"

// WasmProvider is the runtime handle for an instantiated provider module.
// It is stored in the probe Handle's Provider field and stays alive for
// the process lifetime unless the owner closes it explicitly.
type WasmProvider struct {
	runtime wazero.Runtime

	// Module is the instantiated provider, ready for export calls.
	Module api.Module
}

// Close releases the provider's runtime and all its modules.
func (p *WasmProvider) Close(ctx context.Context) error {
	return p.runtime.Close(ctx)
}

// WasmResolver resolves wasm requirements by compiling and instantiating
// the provider module at the target path and checking for the provider
// entry point. This is the dynamic-load path of the capability layer;
// modules are trusted local files.
type WasmResolver struct {
	logger *slog.Logger
}

// WasmOption configures a WasmResolver.
type WasmOption func(*WasmResolver)

// WithWasmLogger sets the logger that receives guest log messages.
func WithWasmLogger(logger *slog.Logger) WasmOption {
	return func(r *WasmResolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewWasmResolver creates a resolver for wasm provider modules.
func NewWasmResolver(opts ...WasmOption) *WasmResolver {
	r := &WasmResolver{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve loads, compiles, and instantiates the module at the target
// path. On success the returned handle carries a live *WasmProvider.
func (r *WasmResolver) Resolve(ctx context.Context, req capability.Requirement) (capability.Handle, error) {
	source, err := os.ReadFile(req.Target)
	if err != nil {
		return capability.Handle{}, fmt.Errorf("provider module %q not readable: %w", req.Target, err)
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)

	if err := r.registerHostFunctions(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return capability.Handle{}, fmt.Errorf("registering host functions: %w", err)
	}

	name := filepath.Base(req.Target)
	mod, err := rt.InstantiateWithConfig(ctx, source,
		wazero.NewModuleConfig().WithName(name).WithStartFunctions())
	if err != nil {
		_ = rt.Close(ctx)
		return capability.Handle{}, fmt.Errorf("instantiating provider module %q: %w", req.Target, err)
	}

	if mod.ExportedFunction(ProviderEntryPoint) == nil {
		_ = rt.Close(ctx)
		return capability.Handle{}, fmt.Errorf("provider module %q does not export %q", req.Target, ProviderEntryPoint)
	}

	return capability.Handle{
		Requirement: req,
		Location:    req.Target,
		Provider: &WasmProvider{
			runtime: rt,
			Module:  mod,
		},
	}, nil
}

// registerHostFunctions exposes the host surface providers may import.
// Currently only log_message, which forwards guest logs to slog.
func (r *WasmResolver) registerHostFunctions(ctx context.Context, rt wazero.Runtime) error {
	_, err := rt.NewHostModuleBuilder(hostModuleName).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(r.logMessage),
			[]api.ValueType{api.ValueTypeI64}, nil).
		Export("log_message").
		Instantiate(ctx)
	return err
}

// logMessage implements the `log_message` host function. It receives a
// packed uint64 (ptr+len) pointing to a UTF-8 message in guest memory.
func (r *WasmResolver) logMessage(ctx context.Context, mod api.Module, stack []uint64) {
	ptr, length := UnpackPtrLen(stack[0])

	message, ok := mod.Memory().Read(ptr, length)
	if !ok {
		r.logger.ErrorContext(ctx, "wasm provider: failed to read log message from guest memory",
			"ptr", ptr, "len", length)
		return
	}

	r.logger.InfoContext(ctx, string(message), "provider", mod.Name())
}

// UnpackPtrLen splits a packed uint64 into a guest pointer and length.
// Providers pack the pointer into the high 32 bits, the length into the
// low 32 bits.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	//nolint:gosec // wasm pointers and lengths are 32-bit
	return uint32(packed >> 32), uint32(packed)
}
