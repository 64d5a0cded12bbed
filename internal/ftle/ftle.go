// Package ftle computes Finite-Time Lyapunov Exponent fields from flow
// maps. The FTLE at a node is ln(λmax)/(2|T|) where λmax is the largest
// eigenvalue of the Cauchy-Green strain tensor of the flow map over the
// integration horizon T.
package ftle

import (
	"fmt"
	"math"

	"github.com/george9932/LCS-FTLE-Optimized/internal/field"
)

// Compute derives the FTLE field from a flow map whose nodes started on
// the uniform grid of fm.Grid and ended at fm's values after horizon |T|.
func Compute(fm *field.VectorField, horizon float64) (*field.ScalarField, error) {
	if horizon == 0 {
		return nil, fmt.Errorf("ftle: zero integration horizon")
	}
	g := fm.Grid
	out := field.NewScalarField(g)
	out.Time = fm.Time

	absT := math.Abs(horizon)
	for i := 0; i < g.NX; i++ {
		for j := 0; j < g.NY; j++ {
			jac := jacobianAt(fm, i, j)
			out.Set(i, j, exponent(jac, absT))
		}
	}
	return out, nil
}

// jacobian is the 2x2 flow-map gradient [dXdx dXdy; dYdx dYdy].
type jacobian struct {
	a, b, c, d float64
}

// jacobianAt estimates the flow-map gradient at node (i,j) by central
// differences, falling back to one-sided differences on the boundary.
func jacobianAt(fm *field.VectorField, i, j int) jacobian {
	g := fm.Grid

	il, ir := i-1, i+1
	if il < 0 {
		il = 0
	}
	if ir > g.NX-1 {
		ir = g.NX - 1
	}
	jl, jr := j-1, j+1
	if jl < 0 {
		jl = 0
	}
	if jr > g.NY-1 {
		jr = g.NY - 1
	}

	dx := float64(ir-il) * g.DX()
	dy := float64(jr-jl) * g.DY()

	px := fm.At(ir, j)
	mx := fm.At(il, j)
	py := fm.At(i, jr)
	my := fm.At(i, jl)

	return jacobian{
		a: (px.X - mx.X) / dx,
		b: (py.X - my.X) / dy,
		c: (px.Y - mx.Y) / dx,
		d: (py.Y - my.Y) / dy,
	}
}

// exponent converts a flow-map gradient into the FTLE value over |T|.
func exponent(j jacobian, absT float64) float64 {
	// Cauchy-Green tensor C = JᵀJ, symmetric 2x2.
	cxx := j.a*j.a + j.c*j.c
	cxy := j.a*j.b + j.c*j.d
	cyy := j.b*j.b + j.d*j.d

	half := (cxx + cyy) / 2
	disc := math.Sqrt((cxx-cyy)*(cxx-cyy)/4 + cxy*cxy)
	lmax := half + disc
	if lmax < 1e-300 {
		lmax = 1e-300
	}
	return math.Log(lmax) / (2 * absT)
}
