// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/canvasmem"
)

// Factory creates a drawing target of the requested size.
type Factory func(opts Options) (canvasmem.Surface, error)

var (
	// ErrInvalidSize is returned for non-positive dimensions.
	ErrInvalidSize = errors.New("surface: invalid size")

	// ErrNoTarget is returned by OpenFor when no registered target
	// can execute every requested operation.
	ErrNoTarget = errors.New("surface: no target supports the requested operations")
)

// UnknownTargetError reports a name that was never registered.
type UnknownTargetError struct {
	Name string
}

func (e *UnknownTargetError) Error() string {
	return "surface: unknown target " + e.Name
}

type target struct {
	name    string
	rank    int
	factory Factory
}

// Registry maps target names to factories.
//
// Target packages register themselves from init, so a blank import is
// enough to make a target selectable:
//
//	import _ "github.com/gogpu/canvasmem/recording"
//
//	s, err := surface.Open("record", surface.Options{Width: 800, Height: 600})
type Registry struct {
	mu      sync.RWMutex
	targets map[string]target
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{targets: make(map[string]target)}
}

var defaultRegistry = NewRegistry()

// Register adds factory under name to the default registry. Targets
// with a higher rank are preferred by OpenFor.
func Register(name string, rank int, factory Factory) {
	defaultRegistry.Register(name, rank, factory)
}

// Names lists the default registry's targets, preferred first.
func Names() []string {
	return defaultRegistry.Names()
}

// Open creates the named target from the default registry.
func Open(name string, opts Options) (canvasmem.Surface, error) {
	return defaultRegistry.Open(name, opts)
}

// OpenFor creates the preferred target of the default registry that
// supports every op in ops.
func OpenFor(ops []canvasmem.Op, opts Options) (string, canvasmem.Surface, error) {
	return defaultRegistry.OpenFor(ops, opts)
}

// Register adds factory under name, replacing any previous entry.
func (r *Registry) Register(name string, rank int, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[name] = target{name: name, rank: rank, factory: factory}
}

// Names lists the registered targets by descending rank, then by name.
func (r *Registry) Names() []string {
	ranked := r.ranked()
	names := make([]string, len(ranked))
	for i, t := range ranked {
		names[i] = t.name
	}
	return names
}

// Open creates the named target.
func (r *Registry) Open(name string, opts Options) (canvasmem.Surface, error) {
	r.mu.RLock()
	t, ok := r.targets[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownTargetError{Name: name}
	}
	return t.open(opts)
}

// OpenFor walks the targets by descending rank and returns the first
// one that can be created and that supports every op in ops, as
// reported by canvasmem.Supports. Failed attempts are joined onto
// ErrNoTarget.
func (r *Registry) OpenFor(ops []canvasmem.Op, opts Options) (string, canvasmem.Surface, error) {
	errs := []error{ErrNoTarget}
	for _, t := range r.ranked() {
		s, err := t.open(opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.name, err))
			continue
		}
		if op, ok := firstUnsupported(s, ops); ok {
			errs = append(errs, fmt.Errorf("%s: %w: %s", t.name, canvasmem.ErrUnsupportedCapability, op))
			continue
		}
		return t.name, s, nil
	}
	return "", nil, errors.Join(errs...)
}

func (r *Registry) ranked() []target {
	r.mu.RLock()
	ranked := make([]target, 0, len(r.targets))
	for _, t := range r.targets {
		ranked = append(ranked, t)
	}
	r.mu.RUnlock()

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].rank != ranked[j].rank {
			return ranked[i].rank > ranked[j].rank
		}
		return ranked[i].name < ranked[j].name
	})
	return ranked
}

func (t target) open(opts Options) (canvasmem.Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, ErrInvalidSize
	}
	return t.factory(opts)
}

func firstUnsupported(s canvasmem.Surface, ops []canvasmem.Op) (canvasmem.Op, bool) {
	for _, op := range ops {
		if !canvasmem.Supports(s, op) {
			return op, true
		}
	}
	return 0, false
}

func init() {
	Register("image", 10, func(opts Options) (canvasmem.Surface, error) {
		return NewImageSurface(opts.Width, opts.Height), nil
	})
}
