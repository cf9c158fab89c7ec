package recording

import (
	"fmt"
	"math"

	"github.com/gogpu/canvasmem"
	"github.com/gogpu/canvasmem/surface"
)

// ColorStop is one recorded gradient colour stop.
type ColorStop struct {
	Offset float64
	Color  string
}

// Gradient is a recorded gradient. Its stops are replayed onto the
// gradient created by the destination surface during playback.
type Gradient struct {
	op    canvasmem.Op
	args  []float64
	stops []ColorStop
}

var _ canvasmem.Gradient = (*Gradient)(nil)

// Op returns the operation that created the gradient.
func (g *Gradient) Op() canvasmem.Op {
	return g.op
}

// Stops returns a copy of the colour stops in insertion order.
func (g *Gradient) Stops() []ColorStop {
	return append([]ColorStop(nil), g.stops...)
}

// AddColorStop records a colour stop. Offsets must lie in [0, 1] and
// colours must parse as CSS colours.
func (g *Gradient) AddColorStop(offset float64, color string) error {
	if math.IsNaN(offset) || offset < 0 || offset > 1 {
		return fmt.Errorf("recording: offset %v: %w", offset, surface.ErrOffsetOutOfRange)
	}
	if _, ok := surface.ParseColor(color); !ok {
		return fmt.Errorf("recording: %q: %w", color, surface.ErrInvalidColor)
	}
	g.stops = append(g.stops, ColorStop{Offset: offset, Color: color})
	return nil
}

// replay adds the recorded stops to dst.
func (g *Gradient) replay(dst canvasmem.Gradient) error {
	for _, s := range g.stops {
		if err := dst.AddColorStop(s.Offset, s.Color); err != nil {
			return err
		}
	}
	return nil
}
