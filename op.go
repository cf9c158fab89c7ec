package canvasmem

import (
	"fmt"
	"strings"
)

// Op identifies an interceptable drawing operation.
type Op uint8

const (
	// Path construction
	OpBeginPath        Op = iota // beginPath()
	OpClosePath                  // closePath()
	OpMoveTo                     // moveTo(x, y)
	OpLineTo                     // lineTo(x, y)
	OpRect                       // rect(x, y, w, h)
	OpArc                        // arc(x, y, r, start, end, ccw)
	OpBezierCurveTo              // bezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y)
	OpQuadraticCurveTo           // quadraticCurveTo(cpx, cpy, x, y)

	// Painting
	OpFillRect   // fillRect(x, y, w, h)
	OpStrokeRect // strokeRect(x, y, w, h)
	OpStroke     // stroke()
	OpFill       // fill()

	// Gradients
	OpCreateLinearGradient // createLinearGradient(x0, y0, x1, y1)
	OpCreateRadialGradient // createRadialGradient(x0, y0, r0, x1, y1, r1)

	// Transforms
	OpTranslate      // translate(x, y)
	OpScale          // scale(x, y)
	OpRotate         // rotate(angle)
	OpTransform      // transform(m11, m12, m21, m22, dx, dy)
	OpSetTransform   // setTransform(m11, m12, m21, m22, dx, dy)
	OpResetTransform // resetTransform()

	// State
	OpSave    // save()
	OpRestore // restore()

	numOps
)

// opInfo describes the static shape of an operation.
type opInfo struct {
	name  string
	arity int
}

var opTable = [numOps]opInfo{
	OpBeginPath:            {"beginPath", 0},
	OpClosePath:            {"closePath", 0},
	OpMoveTo:               {"moveTo", 2},
	OpLineTo:               {"lineTo", 2},
	OpRect:                 {"rect", 4},
	OpArc:                  {"arc", 6},
	OpBezierCurveTo:        {"bezierCurveTo", 6},
	OpQuadraticCurveTo:     {"quadraticCurveTo", 4},
	OpFillRect:             {"fillRect", 4},
	OpStrokeRect:           {"strokeRect", 4},
	OpStroke:               {"stroke", 0},
	OpFill:                 {"fill", 0},
	OpCreateLinearGradient: {"createLinearGradient", 4},
	OpCreateRadialGradient: {"createRadialGradient", 6},
	OpTranslate:            {"translate", 2},
	OpScale:                {"scale", 2},
	OpRotate:               {"rotate", 1},
	OpTransform:            {"transform", 6},
	OpSetTransform:         {"setTransform", 6},
	OpResetTransform:       {"resetTransform", 0},
	OpSave:                 {"save", 0},
	OpRestore:              {"restore", 0},
}

// Valid reports whether op denotes a known operation.
func (op Op) Valid() bool {
	return op < numOps
}

// String returns the canvas name of the operation.
func (op Op) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	return opTable[op].name
}

// Arity returns the number of numeric arguments the operation takes.
// The counterclockwise flag of arc counts as one argument (1 or 0).
func (op Op) Arity() int {
	if !op.Valid() {
		return -1
	}
	return opTable[op].arity
}

// ParseOp returns the operation with the given canvas name.
// Matching ignores case.
func ParseOp(name string) (Op, error) {
	for op := Op(0); op < numOps; op++ {
		if strings.EqualFold(opTable[op].name, name) {
			return op, nil
		}
	}
	return 0, fmt.Errorf("canvasmem: %w: %q", ErrUnknownOperation, name)
}

// ParseOps parses a list of operation names.
func ParseOps(names []string) ([]Op, error) {
	ops := make([]Op, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		op, err := ParseOp(name)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// AllOps returns every known operation in declaration order.
func AllOps() []Op {
	ops := make([]Op, 0, numOps)
	for op := Op(0); op < numOps; op++ {
		ops = append(ops, op)
	}
	return ops
}

// DefaultOperations returns the operations every target must support
// for the default proxy configuration: everything except
// resetTransform, which older surfaces lack. A fresh slice is returned
// on every call.
func DefaultOperations() []Op {
	ops := make([]Op, 0, numOps)
	for _, op := range AllOps() {
		if op != OpResetTransform {
			ops = append(ops, op)
		}
	}
	return ops
}
