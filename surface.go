package canvasmem

// Surface is a drawing target the proxy can bind to.
//
// Only style access is mandatory. Drawing operations are grouped into
// optional capability interfaces (PathBuilder, Painter, Transformer,
// ResetTransformer, StateSaver, GradientFactory); Bind checks that the
// target implements the groups covering every configured operation.
// A target may narrow its advertised operations further by implementing
// CapabilityReporter.
type Surface interface {
	StyleTarget
}

// PathBuilder is implemented by surfaces that build paths.
type PathBuilder interface {
	BeginPath()
	ClosePath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Rect(x, y, width, height float64)
	Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool)
	BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)
}

// Painter is implemented by surfaces that paint paths and rectangles
// with their current style.
type Painter interface {
	Fill() error
	Stroke() error
	FillRect(x, y, width, height float64) error
	StrokeRect(x, y, width, height float64) error
}

// Transformer is implemented by surfaces with a current transform.
type Transformer interface {
	Translate(x, y float64)
	Scale(x, y float64)
	Rotate(angle float64)
	Transform(m11, m12, m21, m22, dx, dy float64)
	SetTransform(m11, m12, m21, m22, dx, dy float64)
}

// ResetTransformer is implemented by surfaces that can reset their
// transform to the identity.
type ResetTransformer interface {
	ResetTransform()
}

// StateSaver is implemented by surfaces with a save/restore stack.
type StateSaver interface {
	Save()
	Restore()
}

// Gradient is a paint source created by a GradientFactory.
// It can be assigned to the fillStyle and strokeStyle properties.
type Gradient interface {
	AddColorStop(offset float64, color string) error
}

// GradientFactory is implemented by surfaces that create gradients.
type GradientFactory interface {
	CreateLinearGradient(x0, y0, x1, y1 float64) (Gradient, error)
	CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) (Gradient, error)
}

// CapabilityReporter is implemented by surfaces that support only part
// of the operations their method set suggests.
type CapabilityReporter interface {
	Capabilities() []Op
}

// Supports reports whether s can execute op.
func Supports(s Surface, op Op) bool {
	if s == nil || !op.Valid() {
		return false
	}
	if r, ok := s.(CapabilityReporter); ok {
		found := false
		for _, c := range r.Capabilities() {
			if c == op {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	var ok bool
	switch op {
	case OpBeginPath, OpClosePath, OpMoveTo, OpLineTo, OpRect, OpArc,
		OpBezierCurveTo, OpQuadraticCurveTo:
		_, ok = s.(PathBuilder)
	case OpFillRect, OpStrokeRect, OpStroke, OpFill:
		_, ok = s.(Painter)
	case OpCreateLinearGradient, OpCreateRadialGradient:
		_, ok = s.(GradientFactory)
	case OpTranslate, OpScale, OpRotate, OpTransform, OpSetTransform:
		_, ok = s.(Transformer)
	case OpResetTransform:
		_, ok = s.(ResetTransformer)
	case OpSave, OpRestore:
		_, ok = s.(StateSaver)
	}
	return ok
}
