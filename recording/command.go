package recording

import (
	"strconv"
	"strings"

	"github.com/gogpu/canvasmem"
)

// Command is one recorded operation.
type Command struct {
	// Op is the recorded operation.
	Op canvasmem.Op

	// Args are the numeric arguments in signature order. The arc
	// counterclockwise flag is stored as a trailing 1 or 0.
	Args []float64

	// Style is the paint style in effect for painting operations
	// (fill, stroke, fillRect, strokeRect) and nil otherwise.
	Style canvasmem.Style

	// Gradient is the gradient returned by a gradient-creating
	// operation, and nil otherwise.
	Gradient *Gradient
}

// IsPaint reports whether the command paints pixels.
func (c Command) IsPaint() bool {
	switch c.Op {
	case canvasmem.OpFill, canvasmem.OpStroke, canvasmem.OpFillRect, canvasmem.OpStrokeRect:
		return true
	}
	return false
}

// String formats the command as a canvas call, e.g. "moveTo(1, 2)".
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Op.String())
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
	}
	b.WriteByte(')')
	return b.String()
}

// clone returns a deep copy of c. Gradients are shared.
func (c Command) clone() Command {
	c.Args = append([]float64(nil), c.Args...)
	if c.Style != nil {
		c.Style = c.Style.Clone()
	}
	return c
}
