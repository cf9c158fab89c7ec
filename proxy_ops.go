package canvasmem

import "fmt"

// --------------------------------------------------------------------------
// Path construction
// --------------------------------------------------------------------------

// BeginPath forwards beginPath.
func (p *Proxy) BeginPath() {
	p.intercept(OpBeginPath, nil, func() error {
		p.paths.BeginPath()
		return nil
	})
}

// ClosePath forwards closePath.
func (p *Proxy) ClosePath() {
	p.intercept(OpClosePath, nil, func() error {
		p.paths.ClosePath()
		return nil
	})
}

// MoveTo forwards moveTo and records the new position.
func (p *Proxy) MoveTo(x, y float64) {
	p.intercept(OpMoveTo, []float64{x, y}, func() error {
		p.paths.MoveTo(x, y)
		return nil
	})
}

// LineTo forwards lineTo and records the new position.
func (p *Proxy) LineTo(x, y float64) {
	p.intercept(OpLineTo, []float64{x, y}, func() error {
		p.paths.LineTo(x, y)
		return nil
	})
}

// Rect forwards rect and records (x, y) as the new position.
func (p *Proxy) Rect(x, y, width, height float64) {
	p.intercept(OpRect, []float64{x, y, width, height}, func() error {
		p.paths.Rect(x, y, width, height)
		return nil
	})
}

// Arc forwards arc. The hooks see counterclockwise as a trailing 1 or 0.
func (p *Proxy) Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool) {
	args := []float64{x, y, radius, startAngle, endAngle, boolArg(counterclockwise)}
	p.intercept(OpArc, args, func() error {
		p.paths.Arc(x, y, radius, startAngle, endAngle, counterclockwise)
		return nil
	})
}

// BezierCurveTo forwards bezierCurveTo and records the end point.
func (p *Proxy) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	p.intercept(OpBezierCurveTo, []float64{cp1x, cp1y, cp2x, cp2y, x, y}, func() error {
		p.paths.BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y)
		return nil
	})
}

// QuadraticCurveTo forwards quadraticCurveTo and records the end point.
func (p *Proxy) QuadraticCurveTo(cpx, cpy, x, y float64) {
	p.intercept(OpQuadraticCurveTo, []float64{cpx, cpy, x, y}, func() error {
		p.paths.QuadraticCurveTo(cpx, cpy, x, y)
		return nil
	})
}

// --------------------------------------------------------------------------
// Painting
// --------------------------------------------------------------------------

// Fill forwards fill after applying the proxy's style to the target.
func (p *Proxy) Fill() error {
	return p.intercept(OpFill, nil, func() error {
		return p.painter.Fill()
	})
}

// Stroke forwards stroke after applying the proxy's style to the target.
func (p *Proxy) Stroke() error {
	return p.intercept(OpStroke, nil, func() error {
		return p.painter.Stroke()
	})
}

// FillRect forwards fillRect after applying the proxy's style.
func (p *Proxy) FillRect(x, y, width, height float64) error {
	return p.intercept(OpFillRect, []float64{x, y, width, height}, func() error {
		return p.painter.FillRect(x, y, width, height)
	})
}

// StrokeRect forwards strokeRect after applying the proxy's style.
func (p *Proxy) StrokeRect(x, y, width, height float64) error {
	return p.intercept(OpStrokeRect, []float64{x, y, width, height}, func() error {
		return p.painter.StrokeRect(x, y, width, height)
	})
}

// --------------------------------------------------------------------------
// Gradients
// --------------------------------------------------------------------------

// CreateLinearGradient forwards createLinearGradient.
func (p *Proxy) CreateLinearGradient(x0, y0, x1, y1 float64) (Gradient, error) {
	var g Gradient
	err := p.intercept(OpCreateLinearGradient, []float64{x0, y0, x1, y1}, func() error {
		var err error
		g, err = p.grads.CreateLinearGradient(x0, y0, x1, y1)
		return err
	})
	return g, err
}

// CreateRadialGradient forwards createRadialGradient.
func (p *Proxy) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) (Gradient, error) {
	var g Gradient
	err := p.intercept(OpCreateRadialGradient, []float64{x0, y0, r0, x1, y1, r1}, func() error {
		var err error
		g, err = p.grads.CreateRadialGradient(x0, y0, r0, x1, y1, r1)
		return err
	})
	return g, err
}

// --------------------------------------------------------------------------
// Transforms
// --------------------------------------------------------------------------

// Translate forwards translate and composes it onto the tracked matrix.
func (p *Proxy) Translate(x, y float64) {
	p.intercept(OpTranslate, []float64{x, y}, func() error {
		p.trans.Translate(x, y)
		return nil
	})
}

// Scale forwards scale and composes it onto the tracked matrix.
func (p *Proxy) Scale(x, y float64) {
	p.intercept(OpScale, []float64{x, y}, func() error {
		p.trans.Scale(x, y)
		return nil
	})
}

// Rotate forwards rotate and composes it onto the tracked matrix.
func (p *Proxy) Rotate(angle float64) {
	p.intercept(OpRotate, []float64{angle}, func() error {
		p.trans.Rotate(angle)
		return nil
	})
}

// Transform forwards transform and composes its matrix onto the
// tracked one.
func (p *Proxy) Transform(m11, m12, m21, m22, dx, dy float64) {
	p.intercept(OpTransform, []float64{m11, m12, m21, m22, dx, dy}, func() error {
		p.trans.Transform(m11, m12, m21, m22, dx, dy)
		return nil
	})
}

// SetTransform forwards setTransform and replaces the tracked matrix.
func (p *Proxy) SetTransform(m11, m12, m21, m22, dx, dy float64) {
	p.intercept(OpSetTransform, []float64{m11, m12, m21, m22, dx, dy}, func() error {
		p.trans.SetTransform(m11, m12, m21, m22, dx, dy)
		return nil
	})
}

// ResetTransform forwards resetTransform and resets the tracked matrix.
func (p *Proxy) ResetTransform() {
	p.intercept(OpResetTransform, nil, func() error {
		p.resetter.ResetTransform()
		return nil
	})
}

// --------------------------------------------------------------------------
// State
// --------------------------------------------------------------------------

// Save forwards save and pushes the tracked matrix and style.
func (p *Proxy) Save() {
	p.intercept(OpSave, nil, func() error {
		p.saver.Save()
		return nil
	})
}

// Restore forwards restore and pops the tracked matrix and style.
// With nothing saved the tracked state is left untouched.
func (p *Proxy) Restore() {
	p.intercept(OpRestore, nil, func() error {
		p.saver.Restore()
		return nil
	})
}

// --------------------------------------------------------------------------
// Dynamic dispatch
// --------------------------------------------------------------------------

// Call invokes op with numeric arguments, as used by scripting and
// playback. The arc counterclockwise flag is passed as a trailing
// number (non-zero means true). Call returns the gradient for gradient
// operations and nil otherwise.
func (p *Proxy) Call(op Op, args ...float64) (Gradient, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("canvasmem: %w: %s", ErrUnknownOperation, op)
	}
	if len(args) != op.Arity() {
		return nil, fmt.Errorf("canvasmem: %s: %w: got %d, want %d", op, ErrArity, len(args), op.Arity())
	}
	if !p.Bound(op) {
		return nil, p.intercept(op, args, nil)
	}

	a := args
	switch op {
	case OpBeginPath:
		p.BeginPath()
	case OpClosePath:
		p.ClosePath()
	case OpMoveTo:
		p.MoveTo(a[0], a[1])
	case OpLineTo:
		p.LineTo(a[0], a[1])
	case OpRect:
		p.Rect(a[0], a[1], a[2], a[3])
	case OpArc:
		p.Arc(a[0], a[1], a[2], a[3], a[4], a[5] != 0)
	case OpBezierCurveTo:
		p.BezierCurveTo(a[0], a[1], a[2], a[3], a[4], a[5])
	case OpQuadraticCurveTo:
		p.QuadraticCurveTo(a[0], a[1], a[2], a[3])
	case OpFillRect:
		return nil, p.FillRect(a[0], a[1], a[2], a[3])
	case OpStrokeRect:
		return nil, p.StrokeRect(a[0], a[1], a[2], a[3])
	case OpStroke:
		return nil, p.Stroke()
	case OpFill:
		return nil, p.Fill()
	case OpCreateLinearGradient:
		return p.CreateLinearGradient(a[0], a[1], a[2], a[3])
	case OpCreateRadialGradient:
		return p.CreateRadialGradient(a[0], a[1], a[2], a[3], a[4], a[5])
	case OpTranslate:
		p.Translate(a[0], a[1])
	case OpScale:
		p.Scale(a[0], a[1])
	case OpRotate:
		p.Rotate(a[0])
	case OpTransform:
		p.Transform(a[0], a[1], a[2], a[3], a[4], a[5])
	case OpSetTransform:
		p.SetTransform(a[0], a[1], a[2], a[3], a[4], a[5])
	case OpResetTransform:
		p.ResetTransform()
	case OpSave:
		p.Save()
	case OpRestore:
		p.Restore()
	}
	return nil, nil
}

func boolArg(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
