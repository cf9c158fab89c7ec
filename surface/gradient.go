// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"
	"math"
	"sort"

	"seehuhn.de/go/geom/matrix"
)

var (
	// ErrOffsetOutOfRange is returned by AddColorStop for offsets
	// outside [0, 1].
	ErrOffsetOutOfRange = errors.New("surface: color stop offset out of range")

	// ErrInvalidColor is returned by AddColorStop for colours that do
	// not parse.
	ErrInvalidColor = errors.New("surface: invalid color")

	// ErrNegativeRadius is returned by CreateRadialGradient for a
	// negative radius.
	ErrNegativeRadius = errors.New("surface: negative radius")
)

type gradientKind uint8

const (
	gradientLinear gradientKind = iota
	gradientRadial
)

type colorStop struct {
	offset float64
	color  color.NRGBA
}

// Gradient is a linear or radial gradient in user space.
// Its geometry is interpreted with the transform in effect when it is
// painted, as on a canvas.
type Gradient struct {
	kind       gradientKind
	x0, y0, r0 float64
	x1, y1, r1 float64
	stops      []colorStop
}

// AddColorStop adds a colour at offset in [0, 1].
// Stops with equal offsets keep their insertion order.
func (g *Gradient) AddColorStop(offset float64, c string) error {
	if math.IsNaN(offset) || offset < 0 || offset > 1 {
		return ErrOffsetOutOfRange
	}
	col, ok := ParseColor(c)
	if !ok {
		return ErrInvalidColor
	}
	g.stops = append(g.stops, colorStop{offset: offset, color: col})
	sort.SliceStable(g.stops, func(i, j int) bool {
		return g.stops[i].offset < g.stops[j].offset
	})
	return nil
}

// param returns the gradient parameter of a user-space point.
// Radial gradients are treated as concentric around the end circle.
func (g *Gradient) param(x, y float64) float64 {
	switch g.kind {
	case gradientRadial:
		dr := g.r1 - g.r0
		if dr == 0 {
			return 0
		}
		return (math.Hypot(x-g.x1, y-g.y1) - g.r0) / dr
	default:
		dx, dy := g.x1-g.x0, g.y1-g.y0
		l2 := dx*dx + dy*dy
		if l2 == 0 {
			return 0
		}
		return ((x-g.x0)*dx + (y-g.y0)*dy) / l2
	}
}

// colorAt returns the interpolated colour at parameter t.
func (g *Gradient) colorAt(t float64) color.NRGBA {
	n := len(g.stops)
	if n == 0 {
		return color.NRGBA{}
	}
	if t <= g.stops[0].offset {
		return g.stops[0].color
	}
	if t >= g.stops[n-1].offset {
		return g.stops[n-1].color
	}
	for i := 1; i < n; i++ {
		s0, s1 := g.stops[i-1], g.stops[i]
		if t > s1.offset {
			continue
		}
		span := s1.offset - s0.offset
		if span <= 0 {
			return s1.color
		}
		f := (t - s0.offset) / span
		return color.NRGBA{
			R: lerpByte(s0.color.R, s1.color.R, f),
			G: lerpByte(s0.color.G, s1.color.G, f),
			B: lerpByte(s0.color.B, s1.color.B, f),
			A: lerpByte(s0.color.A, s1.color.A, f),
		}
	}
	return g.stops[n-1].color
}

func lerpByte(a, b uint8, f float64) uint8 {
	return clampByte(float64(a) + (float64(b)-float64(a))*f)
}

// gradientSource adapts a gradient to an image.Image sampled in device
// space, for use as the src of a rasterizer draw.
type gradientSource struct {
	g     *Gradient
	inv   matrix.Matrix
	alpha float64
}

func (s *gradientSource) ColorModel() color.Model { return color.NRGBAModel }

func (s *gradientSource) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (s *gradientSource) At(x, y int) color.Color {
	ux, uy := s.inv.Apply(float64(x)+0.5, float64(y)+0.5)
	return withAlpha(s.g.colorAt(s.g.param(ux, uy)), s.alpha)
}
