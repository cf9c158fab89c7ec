package watch

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestWatcherDetectsChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.lua")
	writeFile(t, path, "moveTo(0, 0)")

	var count atomic.Int32
	w, err := New(path, 50*time.Millisecond, func() error {
		count.Add(1)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.Start()
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "moveTo(1, 1)")
	time.Sleep(250 * time.Millisecond)

	if got := count.Load(); got != 1 {
		t.Errorf("expected 1 change, got %d", got)
	}
}

func TestWatcherDebounces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.lua")
	writeFile(t, path, "")

	var count atomic.Int32
	w, err := New(path, 100*time.Millisecond, func() error {
		count.Add(1)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.Start()
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 5; i++ {
		writeFile(t, path, "lineTo(1, 1)"+string(rune('0'+i)))
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(250 * time.Millisecond)

	if got := count.Load(); got != 1 {
		t.Errorf("expected 1 debounced change, got %d", got)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draw.lua")
	writeFile(t, path, "")

	var count atomic.Int32
	w, err := New(path, 50*time.Millisecond, func() error {
		count.Add(1)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.Start()
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "other.lua"), "fill()")
	time.Sleep(200 * time.Millisecond)

	if got := count.Load(); got != 0 {
		t.Errorf("expected no changes, got %d", got)
	}
}

func TestWatcherReportsChangeErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.lua")
	writeFile(t, path, "")

	errBroken := errors.New("script failed")
	var got atomic.Value
	w, err := New(path, 50*time.Millisecond, func() error {
		return errBroken
	}, func(err error) {
		got.Store(err)
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.Start()
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "stroke()")
	time.Sleep(250 * time.Millisecond)

	if err, _ := got.Load().(error); !errors.Is(err, errBroken) {
		t.Errorf("onError got %v, want %v", err, errBroken)
	}
}

func TestWatcherStopWithoutStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draw.lua")
	writeFile(t, path, "")

	w, err := New(path, 0, nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
	}
	w.Stop()
	w.Stop()
	w.Start() // no-op after Stop
}

func TestNewMissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing", "draw.lua"), 0, nil, nil); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
