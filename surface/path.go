// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// ctmFinite reports whether every coefficient of m is finite.
func ctmFinite(m matrix.Matrix) bool {
	return finite(m[:]...)
}

// ctmDet returns the determinant of the linear part of m.
func ctmDet(m matrix.Matrix) float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// ctmInverse returns the inverse of m, or false if m is singular.
func ctmInverse(m matrix.Matrix) (matrix.Matrix, bool) {
	det := ctmDet(m)
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return matrix.Identity, false
	}
	return m.Inv(), true
}

// subpath is a flattened polyline in device space.
type subpath struct {
	pts    []vec.Vec2
	closed bool
}

// devicePath holds the current path already mapped to device space.
// Curves and arcs are flattened when they are added.
type devicePath struct {
	subs []subpath
}

func (p *devicePath) reset() {
	p.subs = p.subs[:0]
}

func (p *devicePath) empty() bool {
	return len(p.subs) == 0
}

// current returns the open subpath being extended, or nil.
func (p *devicePath) current() *subpath {
	if len(p.subs) == 0 {
		return nil
	}
	return &p.subs[len(p.subs)-1]
}

// last returns the last point of the path.
func (p *devicePath) last() (vec.Vec2, bool) {
	s := p.current()
	if s == nil || len(s.pts) == 0 {
		return vec.Vec2{}, false
	}
	return s.pts[len(s.pts)-1], true
}

func (p *devicePath) moveTo(pt vec.Vec2) {
	p.subs = append(p.subs, subpath{pts: []vec.Vec2{pt}})
}

// lineTo extends the current subpath; with no current point it starts
// a new subpath, as a canvas does.
func (p *devicePath) lineTo(pt vec.Vec2) {
	s := p.current()
	if s == nil || s.closed {
		start := pt
		if s != nil && s.closed && len(s.pts) > 0 {
			start = s.pts[0]
		}
		p.moveTo(start)
		s = p.current()
	}
	s.pts = append(s.pts, pt)
}

func (p *devicePath) closePath() {
	s := p.current()
	if s == nil || len(s.pts) == 0 || s.closed {
		return
	}
	s.closed = true
}

// flattenSteps chooses a segment count for a curve whose control
// polygon has length l in device pixels.
func flattenSteps(l float64) int {
	n := int(math.Ceil(l / 4))
	switch {
	case n < 4:
		return 4
	case n > 256:
		return 256
	}
	return n
}

func (p *devicePath) quadTo(c, end vec.Vec2) {
	start, ok := p.last()
	if !ok {
		p.moveTo(c)
		start = c
	}
	n := flattenSteps(dist(start, c) + dist(c, end))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		p.lineTo(vec.Vec2{
			X: u*u*start.X + 2*u*t*c.X + t*t*end.X,
			Y: u*u*start.Y + 2*u*t*c.Y + t*t*end.Y,
		})
	}
}

func (p *devicePath) cubicTo(c1, c2, end vec.Vec2) {
	start, ok := p.last()
	if !ok {
		p.moveTo(c1)
		start = c1
	}
	n := flattenSteps(dist(start, c1) + dist(c1, c2) + dist(c2, end))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		p.lineTo(vec.Vec2{
			X: u*u*u*start.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*end.X,
			Y: u*u*u*start.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*end.Y,
		})
	}
}

func dist(a, b vec.Vec2) float64 {
	return b.Sub(a).Length()
}

// rasterize adds every subpath to r as closed polygons.
func (p *devicePath) rasterize(r *vector.Rasterizer) {
	for _, s := range p.subs {
		if len(s.pts) < 2 {
			continue
		}
		r.MoveTo(float32(s.pts[0].X), float32(s.pts[0].Y))
		for _, pt := range s.pts[1:] {
			r.LineTo(float32(pt.X), float32(pt.Y))
		}
		r.ClosePath()
	}
}
