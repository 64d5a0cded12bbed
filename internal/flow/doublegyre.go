package flow

import (
	"math"

	"github.com/george9932/LCS-FTLE-Optimized/internal/field"
)

// DoubleGyre is the unsteady double gyre of Shadden, Lekien and Marsden,
// the standard benchmark flow for LCS extraction. Defined on [0,2]x[0,1].
type DoubleGyre struct {
	A       float64 // velocity amplitude
	Epsilon float64 // gyre oscillation amplitude
	Omega   float64 // oscillation frequency
}

func NewDoubleGyre() *DoubleGyre {
	return &DoubleGyre{A: 0.1, Epsilon: 0.25, Omega: 2 * math.Pi / 10}
}

func (d *DoubleGyre) Velocity(p field.Vec2, t float64) (field.Vec2, error) {
	a := d.Epsilon * math.Sin(d.Omega*t)
	b := 1 - 2*d.Epsilon*math.Sin(d.Omega*t)
	f := a*p.X*p.X + b*p.X
	dfdx := 2*a*p.X + b

	return field.Vec2{
		X: -math.Pi * d.A * math.Sin(math.Pi*f) * math.Cos(math.Pi*p.Y),
		Y: math.Pi * d.A * math.Cos(math.Pi*f) * math.Sin(math.Pi*p.Y) * dfdx,
	}, nil
}

// Sample evaluates the model on every node of g at time t.
func (d *DoubleGyre) Sample(g *field.Grid, t float64) *field.VectorField {
	vf := field.NewVectorField(g)
	vf.Time = t
	for i := 0; i < g.NX; i++ {
		for j := 0; j < g.NY; j++ {
			v, _ := d.Velocity(g.Node(i, j), t)
			vf.Set(i, j, v)
		}
	}
	return vf
}
