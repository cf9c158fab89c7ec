package lua

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rt "github.com/arnodel/golua/runtime"
)

// globalValue reads a global of r's environment.
func globalValue(r *Runtime, name string) rt.Value {
	return r.runtime.GlobalEnv().Get(rt.StringValue(name))
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.CPULimit != 10_000_000 {
		t.Errorf("expected CPULimit 10000000, got %d", config.CPULimit)
	}
	if config.MemoryLimit != 50*1024*1024 {
		t.Errorf("expected MemoryLimit %d, got %d", 50*1024*1024, config.MemoryLimit)
	}
	if config.Stdout != os.Stdout {
		t.Error("expected Stdout to be os.Stdout")
	}
}

func TestExecuteString(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(Config{CPULimit: 1_000_000, MemoryLimit: 10 * 1024 * 1024, Stdout: buf})
	defer r.Close()

	result, err := r.ExecuteString("test", `print("hello") return "done"`)
	if err != nil {
		t.Fatalf("ExecuteString() error = %v", err)
	}
	if result.AsString() != "done" {
		t.Errorf("result = %q, want done", result.AsString())
	}
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("stdout = %q, want hello", buf.String())
	}
}

func TestExecuteWithoutStdout(t *testing.T) {
	r := New(Config{})
	defer r.Close()

	if _, err := r.ExecuteString("quiet", `print("dropped")`); err != nil {
		t.Fatalf("ExecuteString() error = %v", err)
	}
}

func TestExecuteStringSyntaxError(t *testing.T) {
	r := New(Config{})
	defer r.Close()

	if _, err := r.ExecuteString("bad", "this is not lua"); err == nil {
		t.Error("expected a compile error")
	}
}

func TestExecuteFile(t *testing.T) {
	r := New(Config{})
	defer r.Close()

	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte("answer = 6 * 7"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ExecuteFile(path); err != nil {
		t.Fatalf("ExecuteFile() error = %v", err)
	}
	if v, ok := globalValue(r, "answer").TryInt(); !ok || v != 42 {
		t.Errorf("answer = %v, want 42", globalValue(r, "answer"))
	}

	if _, err := r.ExecuteFile(filepath.Join(t.TempDir(), "missing.lua")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want ErrNotExist", err)
	}
}

func TestCPULimit(t *testing.T) {
	r := New(Config{CPULimit: 100, MemoryLimit: 1024 * 1024})
	defer r.Close()

	code := `
		local sum = 0
		for i = 1, 100000 do
			sum = sum + i
		end
		return sum
	`
	_, err := r.ExecuteString("loop", code)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("err = %v, want ErrLimitExceeded", err)
	}
	var termErr rt.ContextTerminationError
	if !errors.As(err, &termErr) {
		t.Errorf("err = %v, want it to wrap the termination error", err)
	}
}

func TestGoPanicPropagates(t *testing.T) {
	r := New(Config{CPULimit: 1_000_000, MemoryLimit: 10 * 1024 * 1024})
	defer r.Close()

	r.SetGoFunction("broken", func(*rt.Thread, *rt.GoCont) (rt.Cont, error) {
		var m map[string]int
		m["x"] = 1
		return nil, nil
	}, 0, false)

	defer func() {
		p := recover()
		if p == nil {
			t.Fatal("expected the Go panic to propagate")
		}
		if _, ok := p.(rt.ContextTerminationError); ok {
			t.Errorf("recovered %v, want the original panic", p)
		}
	}()
	_, err := r.ExecuteString("broken", `broken()`)
	t.Errorf("ExecuteString() returned err = %v instead of panicking", err)
}
