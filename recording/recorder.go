package recording

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gogpu/canvasmem"
	"github.com/gogpu/canvasmem/surface"
)

// Recorder captures drawing operations as commands.
// It implements every canvasmem capability interface, so it can be
// bound by a proxy or driven directly. Use FinishRecording to obtain
// an immutable Recording that can be replayed onto other surfaces.
//
// Style properties are stored as given; the Recorder does not validate
// them. Save and Restore keep a style stack so that paint commands carry
// the style a canvas would use.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command
	style         canvasmem.Style
	stack         []canvasmem.Style
}

// Compile-time interface checks.
var (
	_ canvasmem.Surface          = (*Recorder)(nil)
	_ canvasmem.PathBuilder      = (*Recorder)(nil)
	_ canvasmem.Painter          = (*Recorder)(nil)
	_ canvasmem.Transformer      = (*Recorder)(nil)
	_ canvasmem.ResetTransformer = (*Recorder)(nil)
	_ canvasmem.StateSaver       = (*Recorder)(nil)
	_ canvasmem.GradientFactory  = (*Recorder)(nil)
)

// NewRecorder creates a Recorder for the given dimensions, starting with
// canvas default styles.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:    width,
		height:   height,
		commands: make([]Command, 0, 256),
		style:    defaultStyle(),
		stack:    make([]canvasmem.Style, 0, 8),
	}
}

func defaultStyle() canvasmem.Style {
	return canvasmem.Style{
		canvasmem.PropLineWidth:     1.0,
		canvasmem.PropLineJoin:      "miter",
		canvasmem.PropLineCap:       "butt",
		canvasmem.PropFillStyle:     "#000000",
		canvasmem.PropStrokeStyle:   "#000000",
		canvasmem.PropGlobalAlpha:   1.0,
		canvasmem.PropMiterLimit:    10.0,
		canvasmem.PropShadowBlur:    0.0,
		canvasmem.PropShadowColor:   "rgba(0, 0, 0, 0)",
		canvasmem.PropShadowOffsetX: 0.0,
		canvasmem.PropShadowOffsetY: 0.0,
	}
}

// Width returns the width of the recording canvas.
func (r *Recorder) Width() int {
	return r.width
}

// Height returns the height of the recording canvas.
func (r *Recorder) Height() int {
	return r.height
}

// Len returns the number of commands recorded so far.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// FinishRecording returns an immutable Recording of all commands so far.
// The Recorder may keep recording; later commands are not included.
func (r *Recorder) FinishRecording() *Recording {
	commands := make([]Command, len(r.commands))
	for i, c := range r.commands {
		commands[i] = c.clone()
	}
	return &Recording{
		width:    r.width,
		height:   r.height,
		commands: commands,
	}
}

func (r *Recorder) record(op canvasmem.Op, args ...float64) {
	r.commands = append(r.commands, Command{Op: op, Args: args})
}

func (r *Recorder) recordPaint(op canvasmem.Op, args ...float64) error {
	r.commands = append(r.commands, Command{Op: op, Args: args, Style: r.style.Clone()})
	return nil
}

// --------------------------------------------------------------------------
// Style
// --------------------------------------------------------------------------

// StyleValue implements canvasmem.StyleTarget.
func (r *Recorder) StyleValue(name string) (any, bool) {
	return r.style.Get(name)
}

// SetStyleValue implements canvasmem.StyleTarget.
func (r *Recorder) SetStyleValue(name string, value any) {
	r.style[name] = value
}

// --------------------------------------------------------------------------
// Path construction
// --------------------------------------------------------------------------

// BeginPath records beginPath.
func (r *Recorder) BeginPath() { r.record(canvasmem.OpBeginPath) }

// ClosePath records closePath.
func (r *Recorder) ClosePath() { r.record(canvasmem.OpClosePath) }

// MoveTo records moveTo.
func (r *Recorder) MoveTo(x, y float64) { r.record(canvasmem.OpMoveTo, x, y) }

// LineTo records lineTo.
func (r *Recorder) LineTo(x, y float64) { r.record(canvasmem.OpLineTo, x, y) }

// Rect records rect.
func (r *Recorder) Rect(x, y, width, height float64) {
	r.record(canvasmem.OpRect, x, y, width, height)
}

// Arc records arc.
func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool) {
	ccw := 0.0
	if counterclockwise {
		ccw = 1
	}
	r.record(canvasmem.OpArc, x, y, radius, startAngle, endAngle, ccw)
}

// BezierCurveTo records bezierCurveTo.
func (r *Recorder) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	r.record(canvasmem.OpBezierCurveTo, cp1x, cp1y, cp2x, cp2y, x, y)
}

// QuadraticCurveTo records quadraticCurveTo.
func (r *Recorder) QuadraticCurveTo(cpx, cpy, x, y float64) {
	r.record(canvasmem.OpQuadraticCurveTo, cpx, cpy, x, y)
}

// --------------------------------------------------------------------------
// Painting
// --------------------------------------------------------------------------

// Fill records fill with the current style.
func (r *Recorder) Fill() error { return r.recordPaint(canvasmem.OpFill) }

// Stroke records stroke with the current style.
func (r *Recorder) Stroke() error { return r.recordPaint(canvasmem.OpStroke) }

// FillRect records fillRect with the current style.
func (r *Recorder) FillRect(x, y, width, height float64) error {
	return r.recordPaint(canvasmem.OpFillRect, x, y, width, height)
}

// StrokeRect records strokeRect with the current style.
func (r *Recorder) StrokeRect(x, y, width, height float64) error {
	return r.recordPaint(canvasmem.OpStrokeRect, x, y, width, height)
}

// --------------------------------------------------------------------------
// Gradients
// --------------------------------------------------------------------------

// CreateLinearGradient records createLinearGradient.
func (r *Recorder) CreateLinearGradient(x0, y0, x1, y1 float64) (canvasmem.Gradient, error) {
	return r.createGradient(canvasmem.OpCreateLinearGradient, x0, y0, x1, y1), nil
}

// CreateRadialGradient records createRadialGradient. Negative radii are
// rejected as they are by a canvas.
func (r *Recorder) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) (canvasmem.Gradient, error) {
	if r0 < 0 || r1 < 0 {
		return nil, surface.ErrNegativeRadius
	}
	return r.createGradient(canvasmem.OpCreateRadialGradient, x0, y0, r0, x1, y1, r1), nil
}

func (r *Recorder) createGradient(op canvasmem.Op, args ...float64) *Gradient {
	g := &Gradient{op: op, args: args}
	r.commands = append(r.commands, Command{Op: op, Args: args, Gradient: g})
	return g
}

// --------------------------------------------------------------------------
// Transforms
// --------------------------------------------------------------------------

// Translate records translate.
func (r *Recorder) Translate(x, y float64) { r.record(canvasmem.OpTranslate, x, y) }

// Scale records scale.
func (r *Recorder) Scale(x, y float64) { r.record(canvasmem.OpScale, x, y) }

// Rotate records rotate.
func (r *Recorder) Rotate(angle float64) { r.record(canvasmem.OpRotate, angle) }

// Transform records transform.
func (r *Recorder) Transform(m11, m12, m21, m22, dx, dy float64) {
	r.record(canvasmem.OpTransform, m11, m12, m21, m22, dx, dy)
}

// SetTransform records setTransform.
func (r *Recorder) SetTransform(m11, m12, m21, m22, dx, dy float64) {
	r.record(canvasmem.OpSetTransform, m11, m12, m21, m22, dx, dy)
}

// ResetTransform records resetTransform.
func (r *Recorder) ResetTransform() { r.record(canvasmem.OpResetTransform) }

// --------------------------------------------------------------------------
// State
// --------------------------------------------------------------------------

// Save records save and pushes the current style.
func (r *Recorder) Save() {
	r.stack = append(r.stack, r.style.Clone())
	r.record(canvasmem.OpSave)
}

// Restore pops the saved style and records restore.
// If nothing is saved, this is a no-op and nothing is recorded.
func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.style = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.record(canvasmem.OpRestore)
}

// --------------------------------------------------------------------------
// Recording
// --------------------------------------------------------------------------

// Recording is an immutable container for recorded drawing commands.
type Recording struct {
	width, height int
	commands      []Command
}

// Width returns the width of the recording canvas.
func (r *Recording) Width() int {
	return r.width
}

// Height returns the height of the recording canvas.
func (r *Recording) Height() int {
	return r.height
}

// Len returns the number of recorded commands.
func (r *Recording) Len() int {
	return len(r.commands)
}

// Commands returns a copy of the recorded commands.
func (r *Recording) Commands() []Command {
	out := make([]Command, len(r.commands))
	for i, c := range r.commands {
		out[i] = c.clone()
	}
	return out
}

// Ops returns the distinct operations used, in declaration order.
func (r *Recording) Ops() []canvasmem.Op {
	seen := make(map[canvasmem.Op]bool)
	for _, c := range r.commands {
		seen[c.Op] = true
	}
	return slices.Sorted(maps.Keys(seen))
}

// styleProperties returns every style property named by a paint
// command, sorted.
func (r *Recording) styleProperties() []string {
	seen := make(map[string]bool)
	for _, c := range r.commands {
		for name := range c.Style {
			seen[name] = true
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Playback replays the recording onto dst through a proxy bound to the
// operations the recording uses. Before each paint command the recorded
// style is assigned; recorded gradients are recreated on dst with their
// stops. Playback stops at the first error.
func (r *Recording) Playback(dst canvasmem.Surface, opts ...canvasmem.Option) error {
	opts = append([]canvasmem.Option{
		canvasmem.WithOperations(r.Ops()...),
		canvasmem.WithStyleProperties(r.styleProperties()...),
	}, opts...)
	p, err := canvasmem.Wrap(dst, opts...)
	if err != nil {
		return fmt.Errorf("recording: playback: %w", err)
	}

	created := make(map[*Gradient]canvasmem.Gradient)
	for i, c := range r.commands {
		for name, v := range c.Style {
			if g, ok := v.(*Gradient); ok {
				dg, ok := created[g]
				if !ok {
					continue
				}
				v = dg
			}
			p.SetStyle(name, v)
		}

		g, err := p.Call(c.Op, c.Args...)
		if err != nil {
			return fmt.Errorf("recording: command %d %s: %w", i, c, err)
		}
		if c.Gradient != nil && g != nil {
			if err := c.Gradient.replay(g); err != nil {
				return fmt.Errorf("recording: command %d %s: %w", i, c, err)
			}
			created[c.Gradient] = g
		}
	}

	canvasmem.Logger().Debug("recording: playback done",
		"commands", len(r.commands),
		"target", fmt.Sprintf("%T", dst))
	return nil
}
