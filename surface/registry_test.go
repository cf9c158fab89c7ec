// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/canvasmem"
)

func imageFactory(opts Options) (canvasmem.Surface, error) {
	return NewImageSurface(opts.Width, opts.Height), nil
}

// pathsOnly is an image surface that reports support for path
// construction only.
type pathsOnly struct {
	*ImageSurface
}

func (pathsOnly) Capabilities() []canvasmem.Op {
	return []canvasmem.Op{canvasmem.OpMoveTo, canvasmem.OpLineTo}
}

func pathsOnlyFactory(opts Options) (canvasmem.Surface, error) {
	return pathsOnly{NewImageSurface(opts.Width, opts.Height)}, nil
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, imageFactory)
	r.Register("high", 100, imageFactory)
	r.Register("mid", 50, imageFactory)
	r.Register("also-mid", 50, imageFactory)

	want := []string{"high", "also-mid", "mid", "low"}
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	r.Register("low", 200, imageFactory)
	if got := r.Names()[0]; got != "low" {
		t.Errorf("re-registered target ranked %q first, want low", got)
	}
}

func TestRegistryOpen(t *testing.T) {
	r := NewRegistry()
	r.Register("image", 10, imageFactory)

	s, err := r.Open("image", Options{Width: 64, Height: 32})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	img, ok := s.(*ImageSurface)
	if !ok {
		t.Fatalf("Open() returned %T, want *ImageSurface", s)
	}
	if img.Width() != 64 || img.Height() != 32 {
		t.Errorf("size = %dx%d, want 64x32", img.Width(), img.Height())
	}
}

func TestRegistryOpenErrors(t *testing.T) {
	r := NewRegistry()
	r.Register("image", 10, imageFactory)

	_, err := r.Open("plotter", Options{Width: 1, Height: 1})
	var unknown *UnknownTargetError
	if !errors.As(err, &unknown) || unknown.Name != "plotter" {
		t.Errorf("unknown target: err = %v, want UnknownTargetError", err)
	}
	if got := err.Error(); got != "surface: unknown target plotter" {
		t.Errorf("Error() = %q", got)
	}

	if _, err := r.Open("image", Options{Width: 0, Height: 10}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero width: err = %v, want ErrInvalidSize", err)
	}
}

func TestRegistryOpenForPrefersCapableTarget(t *testing.T) {
	r := NewRegistry()
	r.Register("paths", 100, pathsOnlyFactory)
	r.Register("image", 10, imageFactory)

	name, s, err := r.OpenFor([]canvasmem.Op{canvasmem.OpMoveTo}, Options{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("OpenFor(moveTo) error = %v", err)
	}
	if name != "paths" {
		t.Errorf("OpenFor(moveTo) = %q, want the higher ranked paths", name)
	}
	if _, ok := s.(pathsOnly); !ok {
		t.Errorf("OpenFor(moveTo) returned %T", s)
	}

	name, s, err = r.OpenFor(canvasmem.DefaultOperations(), Options{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("OpenFor(defaults) error = %v", err)
	}
	if name != "image" {
		t.Errorf("OpenFor(defaults) = %q, want image", name)
	}
	if _, err := canvasmem.Wrap(s); err != nil {
		t.Errorf("Wrap(selected target) error = %v", err)
	}
}

func TestRegistryOpenForFailures(t *testing.T) {
	errBroken := errors.New("broken")
	r := NewRegistry()
	if _, _, err := r.OpenFor(nil, Options{Width: 1, Height: 1}); !errors.Is(err, ErrNoTarget) {
		t.Errorf("empty registry: err = %v, want ErrNoTarget", err)
	}

	r.Register("broken", 100, func(Options) (canvasmem.Surface, error) {
		return nil, errBroken
	})
	r.Register("paths", 50, pathsOnlyFactory)

	_, s, err := r.OpenFor([]canvasmem.Op{canvasmem.OpFill}, Options{Width: 1, Height: 1})
	if s != nil {
		t.Errorf("OpenFor() returned %T, want nil", s)
	}
	for _, want := range []error{ErrNoTarget, errBroken, canvasmem.ErrUnsupportedCapability} {
		if !errors.Is(err, want) {
			t.Errorf("err = %v, want it to wrap %v", err, want)
		}
	}
}

func TestDefaultRegistry(t *testing.T) {
	if got := Names(); len(got) == 0 || got[0] != "image" {
		t.Errorf("Names() = %v, want image first", got)
	}
	s, err := Open("image", Options{Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("Open(image) error = %v", err)
	}
	if _, err := canvasmem.Wrap(s); err != nil {
		t.Errorf("Wrap(image surface) error = %v", err)
	}
	name, _, err := OpenFor(canvasmem.DefaultOperations(), Options{Width: 10, Height: 10})
	if err != nil || name != "image" {
		t.Errorf("OpenFor(defaults) = %q, %v; want image", name, err)
	}
}
