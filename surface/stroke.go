// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/vec"
)

// strokePath adds one quad per segment of p to r. Joins are left to
// the overlap of neighbouring quads; round joins and caps add a disc at
// each vertex, square caps extend open ends by half the width.
func strokePath(r *vector.Rasterizer, p *devicePath, width float64, lineCap LineCap, lineJoin LineJoin) {
	hw := width / 2
	if hw <= 0 {
		return
	}
	for _, s := range p.subs {
		pts := s.pts
		if len(pts) < 2 {
			continue
		}
		n := len(pts) - 1
		if s.closed {
			n = len(pts)
		}
		for i := 0; i < n; i++ {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if !s.closed && lineCap == LineCapSquare {
				if i == 0 {
					a = extend(a, b, hw)
				}
				if i == n-1 {
					b = extend(b, a, hw)
				}
			}
			strokeSegment(r, a, b, hw)
		}
		if lineJoin == LineJoinRound || lineCap == LineCapRound {
			for i, pt := range pts {
				end := i == 0 || i == len(pts)-1
				if end && !s.closed && lineCap != LineCapRound {
					continue
				}
				if !end && lineJoin != LineJoinRound {
					continue
				}
				disc(r, pt, hw)
			}
		}
	}
}

// strokeSegment adds the rectangle of half-width hw around a-b.
func strokeSegment(r *vector.Rasterizer, a, b vec.Vec2, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	r.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	r.LineTo(float32(b.X+nx), float32(b.Y+ny))
	r.LineTo(float32(b.X-nx), float32(b.Y-ny))
	r.LineTo(float32(a.X-nx), float32(a.Y-ny))
	r.ClosePath()
}

// extend moves a away from b by d.
func extend(a, b vec.Vec2, d float64) vec.Vec2 {
	u := a.Sub(b)
	if u.Length() == 0 {
		return a
	}
	return a.Add(u.Normalize().Mul(d))
}

// disc adds a polygonal circle of radius rad around c, wound the same
// way as the segment quads so overlaps do not cancel.
func disc(r *vector.Rasterizer, c vec.Vec2, rad float64) {
	const n = 16
	r.MoveTo(float32(c.X+rad), float32(c.Y))
	for i := 1; i < n; i++ {
		t := -2 * math.Pi * float64(i) / n
		r.LineTo(float32(c.X+rad*math.Cos(t)), float32(c.Y+rad*math.Sin(t)))
	}
	r.ClosePath()
}
