// Package lua runs Lua drawing scripts against a canvasmem proxy.
//
// Scripts call canvas operations as globals (moveTo(10, 20), fill(),
// ...) and can query the position tracking of the proxy between calls.
// Execution is bounded by CPU and memory limits.
package lua

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// Config contains configuration options for the Lua runtime.
type Config struct {
	// CPULimit is the CPU instruction limit for one execution.
	// 0 means unlimited.
	CPULimit uint64
	// MemoryLimit is the maximum memory in bytes that Lua can allocate.
	// 0 means unlimited.
	MemoryLimit uint64
	// Stdout is the writer for Lua print output.
	// If nil, output is discarded.
	Stdout io.Writer
}

// DefaultConfig returns a Config with a 10M instruction CPU limit and a
// 50 MB memory limit, printing to os.Stdout.
func DefaultConfig() Config {
	return Config{
		CPULimit:    10_000_000,
		MemoryLimit: 50 * 1024 * 1024,
		Stdout:      os.Stdout,
	}
}

// Runtime wraps a Golua runtime with resource limits.
// It is safe for concurrent use; executions are serialized.
type Runtime struct {
	config  Config
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// New creates a Runtime with the Lua standard libraries loaded.
func New(config Config) *Runtime {
	stdout := config.Stdout
	if stdout == nil {
		stdout = io.Discard
	}

	r := rt.New(stdout)
	cleanup := lib.LoadAll(r)

	return &Runtime{
		config:  config,
		runtime: r,
		cleanup: cleanup,
	}
}

// LoadString compiles a chunk of Lua code.
func (r *Runtime) LoadString(name, code string) (*rt.Closure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	closure, err := r.runtime.CompileAndLoadLuaChunk(
		name,
		[]byte(code),
		rt.TableValue(r.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("lua: load %s: %w", name, err)
	}
	return closure, nil
}

// LoadFile reads and compiles a Lua file.
func (r *Runtime) LoadFile(path string) (*rt.Closure, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lua: read %s: %w", path, err)
	}
	return r.LoadString(path, string(content))
}

// Execute runs a compiled closure within the configured limits.
// Exceeding a limit makes golua panic with a ContextTerminationError;
// that panic is returned as an error wrapping ErrLimitExceeded. Any
// other panic is propagated.
func (r *Runtime) Execute(closure *rt.Closure) (result rt.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			termErr, ok := p.(rt.ContextTerminationError)
			if !ok {
				panic(p)
			}
			result = rt.NilValue
			err = fmt.Errorf("lua: %w: %w", ErrLimitExceeded, termErr)
		}
	}()

	r.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    r.config.CPULimit,
			Memory: r.config.MemoryLimit,
		},
	})
	defer r.runtime.PopContext()

	result, err = rt.Call1(r.runtime.MainThread(), rt.FunctionValue(closure))
	if err != nil {
		return rt.NilValue, fmt.Errorf("lua: %w", err)
	}
	return result, nil
}

// ExecuteString compiles and runs a chunk of Lua code.
func (r *Runtime) ExecuteString(name, code string) (rt.Value, error) {
	closure, err := r.LoadString(name, code)
	if err != nil {
		return rt.NilValue, err
	}
	return r.Execute(closure)
}

// ExecuteFile loads and runs a Lua file.
func (r *Runtime) ExecuteFile(path string) (rt.Value, error) {
	closure, err := r.LoadFile(path)
	if err != nil {
		return rt.NilValue, err
	}
	return r.Execute(closure)
}

// SetGoFunction registers fn as a global Lua function. Functions are
// declared CPU and memory safe so they run under the limits.
func (r *Runtime) SetGoFunction(name string, fn rt.GoFunctionFunc, nArgs int, hasVarArgs bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	goFunc := rt.NewGoFunction(fn, name, nArgs, hasVarArgs)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, goFunc)
	r.runtime.GlobalEnv().Set(rt.StringValue(name), rt.FunctionValue(goFunc))
}

// Close releases the runtime. It must not be used afterwards.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cleanup != nil {
		r.cleanup()
		r.cleanup = nil
	}
	return nil
}
