// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/canvasmem"
)

// ImageSurface is a CPU canvas that renders to an *image.RGBA.
//
// Like a browser canvas it keeps its transformation matrix, current
// point and state stack private: path coordinates are mapped to device
// space as they are added and cannot be read back. Paths are filled with
// golang.org/x/image/vector using the non-zero rule.
//
// Shadow properties are stored and reported but not rendered.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	s.SetStyleValue("fillStyle", "crimson")
//	s.Translate(100, 100)
//	s.Rect(0, 0, 50, 50)
//	_ = s.Fill()
//	_ = s.SavePNG("out.png")
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA
	raster *vector.Rasterizer

	path  devicePath
	state drawState
	stack []drawState
}

// drawState is the part of the surface saved by Save.
type drawState struct {
	ctm           matrix.Matrix
	fill          paint
	stroke        paint
	lineWidth     float64
	lineCap       LineCap
	lineJoin      LineJoin
	miterLimit    float64
	globalAlpha   float64
	shadowBlur    float64
	shadowColor   color.NRGBA
	shadowOffsetX float64
	shadowOffsetY float64
}

// paint is a solid colour or a gradient.
type paint struct {
	color    color.NRGBA
	gradient *Gradient
}

func (p paint) value() any {
	if p.gradient != nil {
		return p.gradient
	}
	return FormatColor(p.color)
}

func defaultState() drawState {
	black := color.NRGBA{A: 255}
	return drawState{
		ctm:         matrix.Identity,
		fill:        paint{color: black},
		stroke:      paint{color: black},
		lineWidth:   1,
		lineCap:     LineCapButt,
		lineJoin:    LineJoinMiter,
		miterLimit:  10,
		globalAlpha: 1,
		shadowColor: color.NRGBA{},
	}
}

// Compile-time interface checks.
var (
	_ canvasmem.Surface          = (*ImageSurface)(nil)
	_ canvasmem.PathBuilder      = (*ImageSurface)(nil)
	_ canvasmem.Painter          = (*ImageSurface)(nil)
	_ canvasmem.Transformer      = (*ImageSurface)(nil)
	_ canvasmem.ResetTransformer = (*ImageSurface)(nil)
	_ canvasmem.StateSaver       = (*ImageSurface)(nil)
	_ canvasmem.GradientFactory  = (*ImageSurface)(nil)
)

// NewImageSurface creates a transparent surface with the given dimensions.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		raster: vector.NewRasterizer(width, height),
		state:  defaultState(),
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Image returns the backing image. It is not a copy.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Clear fills the whole surface with c, ignoring transform and alpha.
func (s *ImageSurface) Clear(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// EncodePNG writes the surface as PNG.
func (s *ImageSurface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

// SavePNG writes the surface to a PNG file.
func (s *ImageSurface) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// --------------------------------------------------------------------------
// Style
// --------------------------------------------------------------------------

// StyleValue implements canvasmem.StyleTarget.
func (s *ImageSurface) StyleValue(name string) (any, bool) {
	st := &s.state
	switch name {
	case canvasmem.PropLineWidth:
		return st.lineWidth, true
	case canvasmem.PropLineJoin:
		return st.lineJoin.String(), true
	case canvasmem.PropLineCap:
		return st.lineCap.String(), true
	case canvasmem.PropFillStyle:
		return st.fill.value(), true
	case canvasmem.PropStrokeStyle:
		return st.stroke.value(), true
	case canvasmem.PropGlobalAlpha:
		return st.globalAlpha, true
	case canvasmem.PropMiterLimit:
		return st.miterLimit, true
	case canvasmem.PropShadowBlur:
		return st.shadowBlur, true
	case canvasmem.PropShadowColor:
		return FormatColor(st.shadowColor), true
	case canvasmem.PropShadowOffsetX:
		return st.shadowOffsetX, true
	case canvasmem.PropShadowOffsetY:
		return st.shadowOffsetY, true
	}
	return nil, false
}

// SetStyleValue implements canvasmem.StyleTarget. Values of the wrong
// type or out of range are ignored.
func (s *ImageSurface) SetStyleValue(name string, value any) {
	st := &s.state
	switch name {
	case canvasmem.PropLineWidth:
		if v, ok := toFloat(value); ok && v > 0 {
			st.lineWidth = v
		}
	case canvasmem.PropLineJoin:
		if v, ok := value.(string); ok {
			if j, ok := parseLineJoin(v); ok {
				st.lineJoin = j
			}
		}
	case canvasmem.PropLineCap:
		if v, ok := value.(string); ok {
			if c, ok := parseLineCap(v); ok {
				st.lineCap = c
			}
		}
	case canvasmem.PropFillStyle:
		if p, ok := toPaint(value); ok {
			st.fill = p
		}
	case canvasmem.PropStrokeStyle:
		if p, ok := toPaint(value); ok {
			st.stroke = p
		}
	case canvasmem.PropGlobalAlpha:
		if v, ok := toFloat(value); ok && v >= 0 && v <= 1 {
			st.globalAlpha = v
		}
	case canvasmem.PropMiterLimit:
		if v, ok := toFloat(value); ok && v > 0 {
			st.miterLimit = v
		}
	case canvasmem.PropShadowBlur:
		if v, ok := toFloat(value); ok && v >= 0 {
			st.shadowBlur = v
		}
	case canvasmem.PropShadowColor:
		if v, ok := value.(string); ok {
			if c, ok := ParseColor(v); ok {
				st.shadowColor = c
			}
		}
	case canvasmem.PropShadowOffsetX:
		if v, ok := toFloat(value); ok {
			st.shadowOffsetX = v
		}
	case canvasmem.PropShadowOffsetY:
		if v, ok := toFloat(value); ok {
			st.shadowOffsetY = v
		}
	}
}

// toFloat accepts finite numbers of any Go numeric kind.
func toFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toPaint(v any) (paint, bool) {
	switch x := v.(type) {
	case string:
		c, ok := ParseColor(x)
		return paint{color: c}, ok
	case *Gradient:
		if x == nil {
			return paint{}, false
		}
		return paint{gradient: x}, true
	case color.Color:
		return paint{color: color.NRGBAModel.Convert(x).(color.NRGBA)}, true
	}
	return paint{}, false
}

// --------------------------------------------------------------------------
// Path construction
// --------------------------------------------------------------------------

func (s *ImageSurface) device(x, y float64) vec.Vec2 {
	dx, dy := s.state.ctm.Apply(x, y)
	return vec.Vec2{X: dx, Y: dy}
}

// BeginPath discards the current path.
func (s *ImageSurface) BeginPath() {
	s.path.reset()
}

// ClosePath closes the current subpath.
func (s *ImageSurface) ClosePath() {
	s.path.closePath()
}

// MoveTo starts a new subpath at (x, y).
func (s *ImageSurface) MoveTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	s.path.moveTo(s.device(x, y))
}

// LineTo adds a line to (x, y).
func (s *ImageSurface) LineTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	s.path.lineTo(s.device(x, y))
}

// Rect adds a closed rectangle subpath and starts a new subpath at (x, y).
func (s *ImageSurface) Rect(x, y, width, height float64) {
	if !finite(x, y, width, height) {
		return
	}
	s.path.moveTo(s.device(x, y))
	s.path.lineTo(s.device(x+width, y))
	s.path.lineTo(s.device(x+width, y+height))
	s.path.lineTo(s.device(x, y+height))
	s.path.closePath()
	s.path.moveTo(s.device(x, y))
}

// Arc adds a circular arc, connected to the current point by a line.
func (s *ImageSurface) Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool) {
	if !finite(x, y, radius, startAngle, endAngle) || radius < 0 {
		return
	}
	sweep := endAngle - startAngle
	switch {
	case !counterclockwise && sweep >= 2*math.Pi, counterclockwise && -sweep >= 2*math.Pi:
		sweep = 2 * math.Pi
		if counterclockwise {
			sweep = -sweep
		}
	case !counterclockwise:
		sweep = math.Mod(sweep, 2*math.Pi)
		if sweep < 0 {
			sweep += 2 * math.Pi
		}
	default:
		sweep = math.Mod(sweep, 2*math.Pi)
		if sweep > 0 {
			sweep -= 2 * math.Pi
		}
	}

	scale := math.Sqrt(math.Abs(ctmDet(s.state.ctm)))
	n := flattenSteps(math.Abs(sweep) * radius * scale)
	for i := 0; i <= n; i++ {
		t := startAngle + sweep*float64(i)/float64(n)
		pt := s.device(x+radius*math.Cos(t), y+radius*math.Sin(t))
		if i == 0 && s.path.empty() {
			s.path.moveTo(pt)
			continue
		}
		s.path.lineTo(pt)
	}
}

// BezierCurveTo adds a cubic Bézier curve.
func (s *ImageSurface) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	if !finite(cp1x, cp1y, cp2x, cp2y, x, y) {
		return
	}
	s.path.cubicTo(s.device(cp1x, cp1y), s.device(cp2x, cp2y), s.device(x, y))
}

// QuadraticCurveTo adds a quadratic Bézier curve.
func (s *ImageSurface) QuadraticCurveTo(cpx, cpy, x, y float64) {
	if !finite(cpx, cpy, x, y) {
		return
	}
	s.path.quadTo(s.device(cpx, cpy), s.device(x, y))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// --------------------------------------------------------------------------
// Painting
// --------------------------------------------------------------------------

// Fill fills the current path with fillStyle.
func (s *ImageSurface) Fill() error {
	s.raster.Reset(s.width, s.height)
	s.path.rasterize(s.raster)
	s.draw(s.state.fill)
	return nil
}

// Stroke strokes the current path with strokeStyle and lineWidth.
func (s *ImageSurface) Stroke() error {
	s.raster.Reset(s.width, s.height)
	strokePath(s.raster, &s.path, s.deviceLineWidth(), s.state.lineCap, s.state.lineJoin)
	s.draw(s.state.stroke)
	return nil
}

// FillRect fills a rectangle without touching the current path.
func (s *ImageSurface) FillRect(x, y, width, height float64) error {
	if !finite(x, y, width, height) {
		return nil
	}
	var p devicePath
	p.moveTo(s.device(x, y))
	p.lineTo(s.device(x+width, y))
	p.lineTo(s.device(x+width, y+height))
	p.lineTo(s.device(x, y+height))
	p.closePath()
	s.raster.Reset(s.width, s.height)
	p.rasterize(s.raster)
	s.draw(s.state.fill)
	return nil
}

// StrokeRect strokes a rectangle without touching the current path.
func (s *ImageSurface) StrokeRect(x, y, width, height float64) error {
	if !finite(x, y, width, height) {
		return nil
	}
	var p devicePath
	p.moveTo(s.device(x, y))
	p.lineTo(s.device(x+width, y))
	p.lineTo(s.device(x+width, y+height))
	p.lineTo(s.device(x, y+height))
	p.closePath()
	s.raster.Reset(s.width, s.height)
	strokePath(s.raster, &p, s.deviceLineWidth(), s.state.lineCap, s.state.lineJoin)
	s.draw(s.state.stroke)
	return nil
}

// deviceLineWidth approximates the line width in pixels under the CTM.
func (s *ImageSurface) deviceLineWidth() float64 {
	return s.state.lineWidth * math.Sqrt(math.Abs(ctmDet(s.state.ctm)))
}

// draw composites the rasterizer coverage with p onto the image.
func (s *ImageSurface) draw(p paint) {
	var src image.Image
	if p.gradient != nil {
		inv, ok := ctmInverse(s.state.ctm)
		if !ok {
			return
		}
		src = &gradientSource{g: p.gradient, inv: inv, alpha: s.state.globalAlpha}
	} else {
		src = image.NewUniform(withAlpha(p.color, s.state.globalAlpha))
	}
	s.raster.DrawOp = draw.Over
	s.raster.Draw(s.img, s.img.Bounds(), src, image.Point{})
}

// --------------------------------------------------------------------------
// Gradients
// --------------------------------------------------------------------------

// CreateLinearGradient returns a gradient along (x0, y0)-(x1, y1).
func (s *ImageSurface) CreateLinearGradient(x0, y0, x1, y1 float64) (canvasmem.Gradient, error) {
	return &Gradient{kind: gradientLinear, x0: x0, y0: y0, x1: x1, y1: y1}, nil
}

// CreateRadialGradient returns a gradient between two circles.
func (s *ImageSurface) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) (canvasmem.Gradient, error) {
	if r0 < 0 || r1 < 0 {
		return nil, ErrNegativeRadius
	}
	return &Gradient{kind: gradientRadial, x0: x0, y0: y0, r0: r0, x1: x1, y1: y1, r1: r1}, nil
}

// --------------------------------------------------------------------------
// Transforms
// --------------------------------------------------------------------------

// setCTM installs m unless it contains non-finite values.
func (s *ImageSurface) setCTM(m matrix.Matrix) {
	if ctmFinite(m) {
		s.state.ctm = m
	}
}

// concat applies m before the current CTM.
func (s *ImageSurface) concat(m matrix.Matrix) {
	s.setCTM(m.Mul(s.state.ctm))
}

// Translate moves the origin.
func (s *ImageSurface) Translate(x, y float64) {
	s.concat(matrix.Translate(x, y))
}

// Scale scales the axes.
func (s *ImageSurface) Scale(x, y float64) {
	s.concat(matrix.Scale(x, y))
}

// Rotate rotates the axes (radians).
func (s *ImageSurface) Rotate(angle float64) {
	s.concat(matrix.Rotate(angle))
}

// Transform multiplies the CTM by the given matrix.
func (s *ImageSurface) Transform(m11, m12, m21, m22, dx, dy float64) {
	s.concat(matrix.Matrix{m11, m12, m21, m22, dx, dy})
}

// SetTransform replaces the CTM.
func (s *ImageSurface) SetTransform(m11, m12, m21, m22, dx, dy float64) {
	s.setCTM(matrix.Matrix{m11, m12, m21, m22, dx, dy})
}

// ResetTransform sets the CTM to the identity.
func (s *ImageSurface) ResetTransform() {
	s.state.ctm = matrix.Identity
}

// CTM returns the current transformation matrix in canvas order
// (a, b, c, d, e, f).
func (s *ImageSurface) CTM() matrix.Matrix {
	return s.state.ctm
}

// --------------------------------------------------------------------------
// State
// --------------------------------------------------------------------------

// Save pushes the drawing state. The current path is not part of it.
func (s *ImageSurface) Save() {
	s.stack = append(s.stack, s.state)
}

// Restore pops the drawing state. It does nothing if the stack is empty.
func (s *ImageSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}
