package canvasmem

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func origin(a *Accumulator) Point {
	return a.Matrix().TransformPoint(Pt(0, 0))
}

func TestAccumulatorStartsAtIdentity(t *testing.T) {
	a := NewAccumulator()
	if !a.Matrix().IsIdentity() {
		t.Errorf("Matrix() = %v, want identity", a.Matrix())
	}
	if a.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", a.Depth())
	}
}

func TestAccumulatorComposition(t *testing.T) {
	tests := []struct {
		name  string
		steps func(a *Accumulator)
		want  Point
	}{
		{"translate twice", func(a *Accumulator) {
			a.Translate(5, 5)
			a.Translate(3, 0)
		}, Pt(8, 5)},
		{"scale then translate", func(a *Accumulator) {
			a.Scale(2, 2)
			a.Translate(1, 0)
		}, Pt(2, 0)},
		{"translate then scale", func(a *Accumulator) {
			a.Translate(1, 0)
			a.Scale(2, 2)
		}, Pt(1, 0)},
		{"rotate then translate", func(a *Accumulator) {
			a.Rotate(math.Pi / 2)
			a.Translate(1, 0)
		}, Pt(0, 1)},
		{"transform composes its own matrix", func(a *Accumulator) {
			a.Translate(10, 0)
			a.Transform(2, 0, 0, 2, 1, 1)
		}, Pt(11, 1)},
		{"setTransform replaces", func(a *Accumulator) {
			a.Translate(10, 10)
			a.SetTransform(1, 0, 0, 1, 4, 2)
		}, Pt(4, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccumulator()
			tt.steps(a)
			if diff := cmp.Diff(tt.want, origin(a), approx); diff != "" {
				t.Errorf("origin mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAccumulatorRejectsNonFinite(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name string
		op   func(a *Accumulator) bool
	}{
		{"scale NaN", func(a *Accumulator) bool { return a.Scale(nan, 1) }},
		{"translate Inf", func(a *Accumulator) bool { return a.Translate(inf, 0) }},
		{"rotate NaN", func(a *Accumulator) bool { return a.Rotate(nan) }},
		{"transform NaN", func(a *Accumulator) bool { return a.Transform(1, 0, 0, 1, nan, 0) }},
		{"setTransform Inf", func(a *Accumulator) bool { return a.SetTransform(inf, 0, 0, 1, 0, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccumulator()
			a.Translate(7, 3)
			before := a.Matrix()
			if tt.op(a) {
				t.Error("non-finite update reported success")
			}
			if a.Matrix() != before {
				t.Errorf("Matrix() = %v, want unchanged %v", a.Matrix(), before)
			}
		})
	}
}

func TestAccumulatorSaveRestore(t *testing.T) {
	a := NewAccumulator()
	a.Translate(4, 2)
	want := a.Matrix()

	a.Save(Style{PropFillStyle: "red"})
	a.Scale(3, 3)
	a.Rotate(0.4)
	a.Transform(1, 0.5, 0, 1, 9, 9)
	if a.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", a.Depth())
	}

	s, ok := a.Restore()
	if !ok {
		t.Fatal("Restore() reported empty stack")
	}
	if a.Matrix() != want {
		t.Errorf("Matrix() after restore = %v, want %v", a.Matrix(), want)
	}
	if diff := cmp.Diff(Style{PropFillStyle: "red"}, s); diff != "" {
		t.Errorf("restored style mismatch (-want +got):\n%s", diff)
	}
}

func TestAccumulatorSaveCopiesStyle(t *testing.T) {
	a := NewAccumulator()
	s := Style{PropLineWidth: 2.0}
	a.Save(s)
	s[PropLineWidth] = 9.0

	got, _ := a.Restore()
	if got.Float(PropLineWidth, 0) != 2 {
		t.Errorf("saved lineWidth = %v, want 2", got[PropLineWidth])
	}
}

func TestAccumulatorNestedSaves(t *testing.T) {
	a := NewAccumulator()
	var want []Matrix
	for i := range 3 {
		want = append(want, a.Matrix())
		a.Save(nil)
		a.Translate(float64(i+1), 0)
	}
	for i := 2; i >= 0; i-- {
		if _, ok := a.Restore(); !ok {
			t.Fatalf("Restore() %d reported empty stack", i)
		}
		if a.Matrix() != want[i] {
			t.Errorf("level %d: Matrix() = %v, want %v", i, a.Matrix(), want[i])
		}
	}
}

func TestAccumulatorRestoreEmpty(t *testing.T) {
	a := NewAccumulator()
	a.Scale(2, 5)
	before := a.Matrix()

	s, ok := a.Restore()
	if ok || s != nil {
		t.Errorf("Restore() = (%v, %v), want (nil, false)", s, ok)
	}
	if a.Matrix() != before {
		t.Errorf("Matrix() = %v, want %v", a.Matrix(), before)
	}
}

func TestAccumulatorSaveKeepsMatrix(t *testing.T) {
	a := NewAccumulator()
	a.Translate(3, 4)
	a.Rotate(0.5)
	before := a.Matrix()
	a.Save(nil)
	if a.Matrix() != before {
		t.Errorf("Matrix() after Save = %v, want %v", a.Matrix(), before)
	}
	if a.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", a.Depth())
	}
}
