package canvasmem

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/matrix"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Translate(10, 20), Pt(1, 2), Pt(11, 22)},
		{"scale", Scale(2, 3), Pt(1, 2), Pt(2, 6)},
		{"rotate 90deg", Rotate(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"general", NewMatrix(1, 2, 3, 4, 5, 6), Pt(1, 1), Pt(9, 12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("TransformPoint(%v) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestMatrixTransformVectorIgnoresTranslation(t *testing.T) {
	m := Scale(2, 2).Multiply(Translate(100, 100))
	got := m.TransformVector(Pt(1, 1))
	if diff := cmp.Diff(Pt(2, 2), got, approx); diff != "" {
		t.Errorf("TransformVector mismatch (-want +got):\n%s", diff)
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// m.Multiply(n) applies m first.
	p := Scale(2, 2).Multiply(Translate(1, 0)).TransformPoint(Pt(1, 1))
	if diff := cmp.Diff(Pt(3, 2), p, approx); diff != "" {
		t.Errorf("scale then translate (-want +got):\n%s", diff)
	}
	p = Translate(1, 0).Multiply(Scale(2, 2)).TransformPoint(Pt(1, 1))
	if diff := cmp.Diff(Pt(4, 2), p, approx); diff != "" {
		t.Errorf("translate then scale (-want +got):\n%s", diff)
	}
}

func TestMatrixMultiplyMatchesAffine(t *testing.T) {
	a := NewMatrix(1, 0.5, -0.25, 2, 3, -4)
	b := Rotate(0.3).Multiply(Translate(7, 1))
	want := FromAffine(a.Affine().Mul(b.Affine()))
	got := a.Multiply(b)
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Multiply disagrees with geom/matrix (-want +got):\n%s", diff)
	}
}

func TestMatrixAffineRoundTrip(t *testing.T) {
	m := NewMatrix(1, 2, 3, 4, 5, 6)
	if got := m.Affine(); got != (matrix.Matrix{1, 2, 3, 4, 5, 6}) {
		t.Errorf("Affine() = %v", got)
	}
	if got := FromAffine(m.Affine()); got != m {
		t.Errorf("FromAffine(Affine()) = %v, want %v", got, m)
	}
	if got := FromAffine(matrix.Identity); !got.IsIdentity() {
		t.Errorf("FromAffine(identity) = %v", got)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Rotate(0.7).Multiply(Scale(2, 0.5)).Multiply(Translate(-3, 8))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert() reported singular matrix")
	}
	if diff := cmp.Diff(Identity(), m.Multiply(inv), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("m * inv mismatch (-want +got):\n%s", diff)
	}

	for _, sing := range []Matrix{Scale(0, 1), {}, NewMatrix(1, 2, 2, 4, 0, 0)} {
		inv, ok := sing.Invert()
		if ok {
			t.Errorf("Invert(%v) ok = true, want false", sing)
		}
		if !inv.IsIdentity() {
			t.Errorf("Invert(%v) = %v, want identity", sing, inv)
		}
	}
}

func TestMatrixIsFinite(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"zero", Matrix{}, true},
		{"NaN scale", Scale(math.NaN(), 1), false},
		{"Inf translate", Translate(math.Inf(1), 0), false},
		{"-Inf", NewMatrix(1, 0, 0, 1, 0, math.Inf(-1)), false},
		{"NaN in last column", Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, math.NaN()}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatrixDeterminant(t *testing.T) {
	if got := Scale(2, 3).Determinant(); got != 6 {
		t.Errorf("Determinant() = %v, want 6", got)
	}
	if got := Rotate(1.1).Determinant(); math.Abs(got-1) > 1e-12 {
		t.Errorf("rotation Determinant() = %v, want 1", got)
	}
}

func TestMatrixString(t *testing.T) {
	if got, want := NewMatrix(1, 0, 0, 2, 3.5, -4).String(), "[1 0 0 2 3.5 -4]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
