package ftle

import (
	"math"
	"testing"

	"github.com/george9932/LCS-FTLE-Optimized/internal/field"
)

func testGrid(t *testing.T) *field.Grid {
	t.Helper()
	g, err := field.NewGrid(-1, 1, -1, 1, 21, 21)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// mapField applies fn to every node coordinate.
func mapField(g *field.Grid, fn func(field.Vec2) field.Vec2) *field.VectorField {
	f := field.NewVectorField(g)
	for i := 0; i < g.NX; i++ {
		for j := 0; j < g.NY; j++ {
			f.Set(i, j, fn(g.Node(i, j)))
		}
	}
	return f
}

func TestIdentityMapZeroExponent(t *testing.T) {
	g := testGrid(t)
	fm := mapField(g, func(p field.Vec2) field.Vec2 { return p })

	f, err := Compute(fm, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range f.Vals {
		if math.Abs(v) > 1e-12 {
			t.Fatalf("node %d: ftle = %g, want 0", k, v)
		}
	}
}

// The saddle flow map (x,y) -> (x e^T, y e^-T) is linear, so central
// differences recover its gradient exactly and the exponent is 1
// everywhere, independent of T.
func TestSaddleFlowUnitExponent(t *testing.T) {
	g := testGrid(t)
	for _, T := range []float64{0.5, 2.0} {
		s := math.Exp(T)
		fm := mapField(g, func(p field.Vec2) field.Vec2 {
			return field.Vec2{X: p.X * s, Y: p.Y / s}
		})

		f, err := Compute(fm, T)
		if err != nil {
			t.Fatal(err)
		}
		for k, v := range f.Vals {
			if math.Abs(v-1) > 1e-10 {
				t.Fatalf("T=%g node %d: ftle = %g, want 1", T, k, v)
			}
		}
	}
}

// A backward horizon must give the same magnitude normalization.
func TestNegativeHorizon(t *testing.T) {
	g := testGrid(t)
	s := math.Exp(1.5)
	fm := mapField(g, func(p field.Vec2) field.Vec2 {
		return field.Vec2{X: p.X * s, Y: p.Y / s}
	})

	fwd, err := Compute(fm, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Compute(fm, -1.5)
	if err != nil {
		t.Fatal(err)
	}
	for k := range fwd.Vals {
		if fwd.Vals[k] != back.Vals[k] {
			t.Fatalf("node %d: %g vs %g", k, fwd.Vals[k], back.Vals[k])
		}
	}
}

func TestZeroHorizonRejected(t *testing.T) {
	g := testGrid(t)
	fm := mapField(g, func(p field.Vec2) field.Vec2 { return p })
	if _, err := Compute(fm, 0); err == nil {
		t.Error("expected error for zero horizon")
	}
}

// Uniform contraction in both directions gives a negative exponent.
func TestContractionNegativeExponent(t *testing.T) {
	g := testGrid(t)
	fm := mapField(g, func(p field.Vec2) field.Vec2 {
		return p.Scale(0.5)
	})

	f, err := Compute(fm, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Log(0.25) / 2 // λmax = 0.25
	for k, v := range f.Vals {
		if math.Abs(v-want) > 1e-10 {
			t.Fatalf("node %d: ftle = %g, want %g", k, v, want)
		}
	}
}
