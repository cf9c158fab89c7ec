package canvasmem

// Accumulator tracks the cumulative affine transform of a drawing
// surface, mirroring the effect of save, restore and the transform
// operations without reading the surface's own state.
//
// New operations pre-multiply onto the accumulated matrix, so an
// operation issued later applies to points before the earlier ones do.
//
// The zero value is not ready for use; call NewAccumulator.
type Accumulator struct {
	matrix Matrix
	stack  []frame
}

// frame is one outstanding save.
type frame struct {
	matrix Matrix
	style  Style
}

// NewAccumulator returns an accumulator holding the identity transform
// and an empty save stack.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		matrix: Identity(),
		stack:  make([]frame, 0, 8),
	}
}

// Matrix returns the current accumulated matrix.
func (a *Accumulator) Matrix() Matrix {
	return a.matrix
}

// Depth returns the number of saves not yet restored.
func (a *Accumulator) Depth() int {
	return len(a.stack)
}

// TrySet replaces the current matrix with candidate if every element of
// candidate is finite. Otherwise the current matrix is kept and TrySet
// reports false.
func (a *Accumulator) TrySet(candidate Matrix) bool {
	if !candidate.IsFinite() {
		return false
	}
	a.matrix = candidate
	return true
}

// Apply composes op onto the current matrix (op * current).
func (a *Accumulator) Apply(op Matrix) bool {
	return a.TrySet(op.Multiply(a.matrix))
}

// Translate composes a translation.
func (a *Accumulator) Translate(x, y float64) bool {
	return a.Apply(Translate(x, y))
}

// Scale composes a scale.
func (a *Accumulator) Scale(x, y float64) bool {
	return a.Apply(Scale(x, y))
}

// Rotate composes a rotation (radians).
func (a *Accumulator) Rotate(angle float64) bool {
	return a.Apply(Rotate(angle))
}

// Transform composes the matrix built from its own arguments.
func (a *Accumulator) Transform(m11, m12, m21, m22, dx, dy float64) bool {
	return a.Apply(NewMatrix(m11, m12, m21, m22, dx, dy))
}

// SetTransform replaces the current matrix outright.
func (a *Accumulator) SetTransform(m11, m12, m21, m22, dx, dy float64) bool {
	return a.TrySet(NewMatrix(m11, m12, m21, m22, dx, dy))
}

// Save pushes a copy of style together with the current matrix. The
// current matrix itself is left as it is.
func (a *Accumulator) Save(style Style) {
	a.stack = append(a.stack, frame{matrix: a.matrix, style: style.Clone()})
}

// Restore pops the most recent save, reinstating its matrix, and returns
// the style saved with it. With nothing saved Restore changes nothing
// and returns (nil, false).
func (a *Accumulator) Restore() (Style, bool) {
	if len(a.stack) == 0 {
		return nil, false
	}
	top := a.stack[len(a.stack)-1]
	a.stack[len(a.stack)-1] = frame{}
	a.stack = a.stack[:len(a.stack)-1]
	a.matrix = top.matrix
	return top.style, true
}
